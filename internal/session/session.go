// Package session owns the process-lifetime state the pipeline writes to: the
// current batch and the history log. It admits one generation at a time.
package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/yungbote/kingbayo/internal/history"
	"github.com/yungbote/kingbayo/internal/observability"
	"github.com/yungbote/kingbayo/internal/pipeline"
	"github.com/yungbote/kingbayo/internal/platform/logger"
	"github.com/yungbote/kingbayo/internal/ticket"
)

var ErrGenerationInFlight = errors.New("a generation is already in flight")

// Generator is satisfied by *pipeline.Pipeline.
type Generator interface {
	Generate(ctx context.Context, req ticket.Request) (pipeline.Result, error)
}

type Options struct {
	// Timeout bounds each generation; zero means no caller-level timeout.
	Timeout  time.Duration
	Location *time.Location
	Logger   *logger.Logger
	Metrics  *observability.Metrics
	Now      func() time.Time
}

type Session struct {
	gen      Generator
	inflight *semaphore.Weighted
	timeout  time.Duration
	loc      *time.Location
	log      *logger.Logger
	metrics  *observability.Metrics
	now      func() time.Time

	mu      sync.RWMutex
	current []ticket.Ticket
	history history.Log
}

func New(gen Generator, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Session{
		gen:      gen,
		inflight: semaphore.NewWeighted(1),
		timeout:  opts.Timeout,
		loc:      opts.Location,
		log:      opts.Logger,
		metrics:  opts.Metrics,
		now:      opts.Now,
	}
}

// Generate runs one generation. A trigger while another is outstanding
// returns ErrGenerationInFlight without touching the pipeline. On success the
// batch replaces the current slot and is recorded in history in one step.
func (s *Session) Generate(ctx context.Context, req ticket.Request) (pipeline.Result, error) {
	if err := req.Validate(); err != nil {
		return pipeline.Result{}, err
	}
	if !s.inflight.TryAcquire(1) {
		s.metrics.IncInflightRejected()
		return pipeline.Result{}, ErrGenerationInFlight
	}
	defer s.inflight.Release(1)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.log.Error("ticket generation failed", "mode", req.Mode, "risk_tier", req.RiskTier, "error", err)
		return pipeline.Result{}, err
	}

	s.mu.Lock()
	s.current = ticket.CloneAll(res.Tickets)
	s.history = s.history.Record(res.Tickets)
	n := s.history.Len()
	s.mu.Unlock()

	s.metrics.SetHistoryLength(n)
	s.log.Info("tickets generated",
		"mode", req.Mode,
		"risk_tier", req.RiskTier,
		"source", res.Source,
		"fallback_reason", res.FallbackReason,
		"tickets", len(res.Tickets),
		"history", n,
	)
	res.Tickets = ticket.CloneAll(res.Tickets)
	return res, nil
}

// Current returns the most recent batch, or nil before the first generation.
func (s *Session) Current() []ticket.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ticket.CloneAll(s.current)
}

func (s *Session) History() []ticket.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Entries()
}

func (s *Session) ClearHistory() {
	s.mu.Lock()
	s.history = s.history.Clear()
	s.mu.Unlock()
	s.metrics.SetHistoryLength(0)
}

// ExportHistory writes the history log as CSV and returns a suggested
// filename for the download.
func (s *Session) ExportHistory(w io.Writer) (string, error) {
	s.mu.RLock()
	snapshot := s.history
	s.mu.RUnlock()
	if err := history.WriteCSV(w, snapshot, s.loc); err != nil {
		return "", err
	}
	return history.ExportFilename(s.now()), nil
}

// InFlight reports whether a generation currently holds the gate.
func (s *Session) InFlight() bool {
	if s.inflight.TryAcquire(1) {
		s.inflight.Release(1)
		return false
	}
	return true
}
