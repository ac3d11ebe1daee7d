package v1

import (
	"net/http"

	"github.com/yungbote/kingbayo/internal/config"
	"github.com/yungbote/kingbayo/internal/platform/logger"
	"github.com/yungbote/kingbayo/internal/session"
)

type Deps struct {
	Config  *config.Config
	Log     *logger.Logger
	Session *session.Session
}

func Register(mux *http.ServeMux, d Deps) {
	mux.HandleFunc("GET /v1/strategies", handleStrategies())

	mux.HandleFunc("POST /v1/tickets/generate", handleGenerate(d))
	mux.HandleFunc("GET /v1/tickets/current", handleCurrent(d))

	mux.HandleFunc("GET /v1/history", handleHistory(d))
	mux.HandleFunc("DELETE /v1/history", handleClearHistory(d))
	mux.HandleFunc("GET /v1/history/export", handleExportHistory(d))
}
