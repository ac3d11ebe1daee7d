package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsHandlerExposesGenerationCounters(t *testing.T) {
	m := New()
	m.ObserveGeneration("fallback", "no_credential", 2*time.Millisecond)
	m.ObserveUpstream("gemini-2.0-flash", "error", time.Second)
	m.IncInflightRejected()
	m.SetHistoryLength(9)

	srv := httptest.NewServer(m.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	body := string(b)

	for _, want := range []string{
		`kb_generations_total{reason="no_credential",source="fallback"} 1`,
		`kb_upstream_requests_total{model="gemini-2.0-flash",status="error"} 1`,
		`kb_generation_inflight_rejected_total 1`,
		`kb_history_length 9`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/healthz", "200", time.Millisecond)
	m.ObserveGeneration("upstream", "", time.Millisecond)
	m.IncInflightRejected()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d", rec.Code)
	}
}
