package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/yungbote/kingbayo/internal/engine"
	"github.com/yungbote/kingbayo/internal/extract"
	"github.com/yungbote/kingbayo/internal/mockgen"
	"github.com/yungbote/kingbayo/internal/normalize"
	"github.com/yungbote/kingbayo/internal/observability"
	"github.com/yungbote/kingbayo/internal/router"
	"github.com/yungbote/kingbayo/internal/ticket"
)

type Source string

const (
	SourceUpstream Source = "upstream"
	SourceFallback Source = "fallback"
)

// Fallback reasons, also used as metric labels.
const (
	ReasonNoCredential = "no_credential"
	ReasonTransport    = "transport"
	ReasonExtraction   = "extraction"
	ReasonEmptyBatch   = "empty_batch"
	ReasonUnknown      = "unknown"
)

var (
	ErrNoEngine   = errors.New("no upstream engine configured")
	ErrEmptyBatch = errors.New("normalized batch is empty")
)

// Producer yields one batch of tickets or a Failure. Producers are tried in
// order; the first non-empty batch wins.
type Producer interface {
	Source() Source
	Produce(ctx context.Context, req ticket.Request, now time.Time) ([]ticket.Ticket, error)
}

// Failure tags a producer error with the stage it stopped in and a short
// reason suitable for logs and metric labels.
type Failure struct {
	Stage  State
	Reason string
	Err    error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Reason
	}
	return f.Reason + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error { return f.Err }

func failureReason(err error) string {
	var f *Failure
	if errors.As(err, &f) && f.Reason != "" {
		return f.Reason
	}
	return ReasonUnknown
}

type upstreamProducer struct {
	route       router.Route
	temperature float64
	metrics     *observability.Metrics
}

// NewUpstreamProducer calls the routed engine, extracts the embedded payload
// and normalizes it. An unavailable route fails immediately without I/O.
func NewUpstreamProducer(route router.Route, temperature float64, metrics *observability.Metrics) Producer {
	return &upstreamProducer{route: route, temperature: temperature, metrics: metrics}
}

func (u *upstreamProducer) Source() Source { return SourceUpstream }

func (u *upstreamProducer) Produce(ctx context.Context, req ticket.Request, now time.Time) ([]ticket.Ticket, error) {
	if !u.route.Available() {
		return nil, &Failure{Stage: StateRequesting, Reason: ReasonNoCredential, Err: ErrNoEngine}
	}

	start := time.Now()
	raw, err := u.route.Engine.GenerateText(ctx, u.route.UpstreamModel, Messages(req), engine.GenerateOptions{Temperature: u.temperature})
	status := "ok"
	if err != nil {
		status = "error"
	}
	u.metrics.ObserveUpstream(u.route.UpstreamModel, status, time.Since(start))
	if err != nil {
		return nil, &Failure{Stage: StateRequesting, Reason: ReasonTransport, Err: err}
	}

	entries, err := extract.Payload(raw)
	if err != nil {
		return nil, &Failure{Stage: StateRequesting, Reason: ReasonExtraction, Err: err}
	}

	tickets := normalize.Tickets(entries, req.RiskTier, req.Mode, now)
	if len(tickets) == 0 {
		return nil, &Failure{Stage: StateValidating, Reason: ReasonEmptyBatch, Err: ErrEmptyBatch}
	}
	return tickets, nil
}

type fallbackProducer struct{}

// NewFallbackProducer wraps the deterministic mock generator. It never fails.
func NewFallbackProducer() Producer {
	return fallbackProducer{}
}

func (fallbackProducer) Source() Source { return SourceFallback }

func (fallbackProducer) Produce(_ context.Context, req ticket.Request, now time.Time) ([]ticket.Ticket, error) {
	return mockgen.Generate(req.Mode, req.RiskTier, now), nil
}
