// Package pipeline turns a generation request into a batch of validated
// tickets, falling back to the deterministic generator whenever the upstream
// path is unavailable or unusable.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/kingbayo/internal/observability"
	"github.com/yungbote/kingbayo/internal/platform/logger"
	"github.com/yungbote/kingbayo/internal/router"
	"github.com/yungbote/kingbayo/internal/ticket"
)

type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateValidating State = "validating"
	StateFallback   State = "fallback"
	StateComplete   State = "complete"
)

// ErrUnexpectedFault is the only error Generate returns for a valid request.
var ErrUnexpectedFault = errors.New("unexpected generation fault")

type Result struct {
	Tickets []ticket.Ticket
	Source  Source
	// FallbackReason is the first producer failure reason, empty when the
	// first producer succeeded.
	FallbackReason string
	States         []State
}

type Options struct {
	Route       router.Route
	Temperature float64
	Logger      *logger.Logger
	Metrics     *observability.Metrics
	Now         func() time.Time
}

type Pipeline struct {
	producers []Producer
	log       *logger.Logger
	metrics   *observability.Metrics
	now       func() time.Time
}

// New builds the standard chain: upstream engine, then the fallback generator.
func New(opts Options) *Pipeline {
	return NewWithProducers(opts.Logger, opts.Metrics, opts.Now,
		NewUpstreamProducer(opts.Route, opts.Temperature, opts.Metrics),
		NewFallbackProducer(),
	)
}

func NewWithProducers(log *logger.Logger, metrics *observability.Metrics, now func() time.Time, producers ...Producer) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &Pipeline{producers: producers, log: log, metrics: metrics, now: now}
}

// Generate runs the producers in order and returns the first non-empty batch.
// Producer failures are logged and never surfaced; only a panic or a chain
// that yields nothing returns ErrUnexpectedFault.
func (p *Pipeline) Generate(ctx context.Context, req ticket.Request) (res Result, err error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	ctx, span := observability.Tracer().Start(ctx, "pipeline.Generate", trace.WithAttributes(
		attribute.String("kb.mode", string(req.Mode)),
		attribute.String("kb.risk_tier", string(req.RiskTier)),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("ticket generation panicked", "panic", r, "stack", string(debug.Stack()))
			res = Result{}
			err = fmt.Errorf("%w: %v", ErrUnexpectedFault, r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	now := p.now()
	res.States = []State{StateIdle, StateRequesting}

	for _, prod := range p.producers {
		tickets, perr := p.attempt(ctx, prod, req, now)
		if perr == nil {
			res.Tickets = tickets
			res.Source = prod.Source()
			res.States = append(res.States, StateComplete)
			span.SetAttributes(
				attribute.String("kb.source", string(res.Source)),
				attribute.String("kb.fallback_reason", res.FallbackReason),
				attribute.Int("kb.tickets", len(tickets)),
			)
			p.metrics.ObserveGeneration(string(res.Source), res.FallbackReason, time.Since(start))
			return res, nil
		}

		var f *Failure
		if errors.As(perr, &f) && f.Stage == StateValidating {
			res.States = append(res.States, StateValidating)
		}
		if res.FallbackReason == "" {
			res.FallbackReason = failureReason(perr)
			res.States = append(res.States, StateFallback)
		}

		if failureReason(perr) == ReasonNoCredential {
			p.log.Debug("no upstream engine, using fallback generator", "mode", req.Mode, "risk_tier", req.RiskTier)
		} else {
			p.log.Warn("ticket producer failed, falling back",
				"source", prod.Source(),
				"reason", failureReason(perr),
				"error", perr,
				"mode", req.Mode,
				"risk_tier", req.RiskTier,
			)
		}
	}

	return Result{}, fmt.Errorf("%w: every producer failed", ErrUnexpectedFault)
}

func (p *Pipeline) attempt(ctx context.Context, prod Producer, req ticket.Request, now time.Time) ([]ticket.Ticket, error) {
	ctx, span := observability.Tracer().Start(ctx, "pipeline.produce", trace.WithAttributes(
		attribute.String("kb.source", string(prod.Source())),
	))
	defer span.End()

	tickets, err := prod.Produce(ctx, req, now)
	if err == nil && len(tickets) == 0 {
		err = &Failure{Reason: ReasonEmptyBatch, Err: ErrEmptyBatch}
	}
	if err != nil {
		span.SetStatus(codes.Error, failureReason(err))
		return nil, err
	}
	if len(tickets) > ticket.BatchSize {
		tickets = tickets[:ticket.BatchSize]
	}
	return tickets, nil
}
