package router

import (
	"fmt"
	"strings"

	"github.com/yungbote/kingbayo/internal/config"
	"github.com/yungbote/kingbayo/internal/engine"
	"github.com/yungbote/kingbayo/internal/engine/mock"
	"github.com/yungbote/kingbayo/internal/engine/oaihttp"
)

// Route is the resolved upstream for ticket generation. A nil Engine means no
// upstream is available and every request goes to the fallback generator;
// Reason then says why.
type Route struct {
	Kind          string
	UpstreamModel string
	Engine        engine.Engine
	Reason        string
}

func (r Route) Available() bool {
	return r.Engine != nil
}

// New resolves the configured engine. An oai_http engine without a usable
// API key resolves to an unavailable route rather than an error.
func New(cfg *config.Config) (Route, error) {
	if cfg == nil {
		return Route{}, fmt.Errorf("config required")
	}
	kind := strings.ToLower(strings.TrimSpace(cfg.Engine.Type))
	model := strings.TrimSpace(cfg.Engine.Model)

	switch kind {
	case "mock":
		if model == "" {
			model = "mock"
		}
		return Route{Kind: kind, UpstreamModel: model, Engine: mock.New()}, nil
	case "openai_http", "oai_http":
		if !cfg.HasCredential() {
			return Route{Kind: "oai_http", UpstreamModel: model, Reason: "missing credential"}, nil
		}
		e, err := oaihttp.New(cfg.Engine)
		if err != nil {
			return Route{}, err
		}
		return Route{Kind: "oai_http", UpstreamModel: model, Engine: e}, nil
	case "", "none":
		return Route{Kind: "none", Reason: "missing credential"}, nil
	default:
		return Route{}, fmt.Errorf("unsupported engine type %q", cfg.Engine.Type)
	}
}
