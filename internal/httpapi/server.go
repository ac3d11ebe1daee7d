package httpapi

import (
	"net/http"

	"github.com/yungbote/kingbayo/internal/config"
	apiv1 "github.com/yungbote/kingbayo/internal/httpapi/v1"
	"github.com/yungbote/kingbayo/internal/observability"
	"github.com/yungbote/kingbayo/internal/platform/logger"
	"github.com/yungbote/kingbayo/internal/router"
	"github.com/yungbote/kingbayo/internal/session"
)

type Deps struct {
	Config  *config.Config
	Log     *logger.Logger
	Route   router.Route
	Session *session.Session
	Metrics *observability.Metrics
}

func NewServer(d Deps) *http.Server {
	return &http.Server{
		Addr:              d.Config.HTTP.Addr,
		Handler:           NewHandler(d),
		ReadHeaderTimeout: d.Config.HTTP.ReadHeaderTimeout.Duration,
		IdleTimeout:       d.Config.HTTP.IdleTimeout.Duration,
		WriteTimeout:      0,
	}
}

func NewHandler(d Deps) http.Handler {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /readyz", handleReadyz(d.Route))
	mux.Handle("GET /metrics", d.Metrics.Handler())

	apiv1.Register(mux, apiv1.Deps{
		Config:  d.Config,
		Log:     d.Log,
		Session: d.Session,
	})

	var h http.Handler = mux
	h = metricsMiddleware(d.Metrics)(h)
	h = recoverMiddleware(d.Log)(h)
	h = accessLogMiddleware(d.Log)(h)
	h = requestIDMiddleware()(h)

	return h
}
