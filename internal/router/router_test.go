package router

import (
	"testing"

	"github.com/yungbote/kingbayo/internal/config"
)

func TestNewResolvesEngineKinds(t *testing.T) {
	cases := []struct {
		name      string
		engine    config.EngineConfig
		available bool
		kind      string
	}{
		{name: "none", engine: config.EngineConfig{Type: "none"}, available: false, kind: "none"},
		{name: "mock", engine: config.EngineConfig{Type: "mock"}, available: true, kind: "mock"},
		{name: "oai without key", engine: config.EngineConfig{Type: "oai_http", BaseURL: "http://x", Model: "m"}, available: false, kind: "oai_http"},
		{name: "oai placeholder key", engine: config.EngineConfig{Type: "oai_http", BaseURL: "http://x", Model: "m", APIKey: config.PlaceholderAPIKey}, available: false, kind: "oai_http"},
		{name: "oai with key", engine: config.EngineConfig{Type: "openai_http", BaseURL: "http://x", Model: "m", APIKey: "k"}, available: true, kind: "oai_http"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := New(&config.Config{Engine: tc.engine})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if r.Available() != tc.available || r.Kind != tc.kind {
				t.Fatalf("route=%+v", r)
			}
			if !r.Available() && r.Reason == "" {
				t.Fatalf("unavailable route without reason")
			}
		})
	}
}

func TestNewRejectsUnknownType(t *testing.T) {
	if _, err := New(&config.Config{Engine: config.EngineConfig{Type: "grpc"}}); err == nil {
		t.Fatalf("expected error")
	}
}
