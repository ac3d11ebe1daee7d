package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/kingbayo/internal/config"
	"github.com/yungbote/kingbayo/internal/httpapi"
	"github.com/yungbote/kingbayo/internal/observability"
	"github.com/yungbote/kingbayo/internal/pipeline"
	"github.com/yungbote/kingbayo/internal/platform/logger"
	"github.com/yungbote/kingbayo/internal/router"
	"github.com/yungbote/kingbayo/internal/session"
)

type App struct {
	Log      *logger.Logger
	Config   *config.Config
	Route    router.Route
	Pipeline *pipeline.Pipeline
	Session  *session.Session
	Metrics  *observability.Metrics

	server        *http.Server
	traceShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return NewWithConfig(ctx, cfg, log)
}

// NewWithConfig wires every component from an already-loaded config.
func NewWithConfig(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	route, err := router.New(cfg)
	if err != nil {
		return nil, err
	}

	traceShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Environment: cfg.Env,
		Version:     cfg.Telemetry.Version,
	})
	metrics := observability.Init(log)

	p := pipeline.New(pipeline.Options{
		Route:       route,
		Temperature: cfg.Generation.Temperature,
		Logger:      log,
		Metrics:     metrics,
	})
	s := session.New(p, session.Options{
		Timeout: cfg.Generation.Timeout.Duration,
		Logger:  log,
		Metrics: metrics,
	})

	if route.Available() {
		log.Info("upstream engine configured", "engine", route.Kind, "model", route.UpstreamModel)
	} else {
		log.Info("no upstream engine, serving fallback tickets", "engine", route.Kind, "reason", route.Reason)
	}

	return &App{
		Log:      log,
		Config:   cfg,
		Route:    route,
		Pipeline: p,
		Session:  s,
		Metrics:  metrics,
		server: httpapi.NewServer(httpapi.Deps{
			Config:  cfg,
			Log:     log,
			Route:   route,
			Session: s,
			Metrics: metrics,
		}),
		traceShutdown: traceShutdown,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then drains the server and flushes
// traces within the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info("http server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		timeout := a.Config.HTTP.ShutdownTimeout.Duration
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := a.server.Shutdown(shutdownCtx)
		if a.traceShutdown != nil {
			if terr := a.traceShutdown(shutdownCtx); terr != nil {
				a.Log.Warn("otel shutdown failed", "error", terr)
			}
		}
		return err
	})

	err := g.Wait()
	a.Log.Sync()
	return err
}
