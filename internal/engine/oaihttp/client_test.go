package oaihttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yungbote/kingbayo/internal/config"
	"github.com/yungbote/kingbayo/internal/engine"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, v any) *http.Response {
	b, _ := json.Marshal(v)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(b)),
	}
}

func completion(text string) map[string]any {
	return map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"content": text}},
		},
	}
}

func testConfig() config.EngineConfig {
	return config.EngineConfig{
		Type:                "oai_http",
		BaseURL:             "http://upstream/",
		ChatCompletionsPath: "/chat/completions",
		APIKey:              "k-123",
		Timeout:             config.Duration{Duration: 2 * time.Second},
	}
}

func TestGenerateText(t *testing.T) {
	client := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.URL.Path != "/chat/completions" {
				t.Fatalf("unexpected path: %s", req.URL.Path)
			}
			if got := req.Header.Get("Authorization"); got != "Bearer k-123" {
				t.Fatalf("authorization=%q", got)
			}

			var in chatCompletionRequest
			if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
				t.Fatalf("decode req: %v", err)
			}
			if in.Model != "gemini-test" {
				t.Fatalf("model=%q", in.Model)
			}
			if len(in.Messages) != 2 {
				t.Fatalf("expected blank message to be dropped, got %d", len(in.Messages))
			}
			return jsonResponse(http.StatusOK, completion(`[{"strategy":"x"}]`)), nil
		}),
	}

	e, err := NewWithHTTPClient(testConfig(), client)
	if err != nil {
		t.Fatalf("NewWithHTTPClient: %v", err)
	}

	out, err := e.GenerateText(context.Background(), "gemini-test", []engine.Message{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "   "},
		{Role: "user", Content: "slips please"},
	}, engine.GenerateOptions{Temperature: 0.3})
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if out != `[{"strategy":"x"}]` {
		t.Fatalf("out=%q", out)
	}
}

func TestGenerateTextRetriesRateLimit(t *testing.T) {
	var calls int32
	client := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				return jsonResponse(http.StatusTooManyRequests, map[string]any{"error": "quota"}), nil
			}
			return jsonResponse(http.StatusOK, completion("ok")), nil
		}),
	}

	cfg := testConfig()
	cfg.MaxRetries = 1
	cfg.RetryBackoff = config.Duration{Duration: 20 * time.Millisecond}
	e, err := NewWithHTTPClient(cfg, client)
	if err != nil {
		t.Fatalf("NewWithHTTPClient: %v", err)
	}
	start := time.Now()
	out, err := e.GenerateText(context.Background(), "m", []engine.Message{{Role: "user", Content: "hi"}}, engine.GenerateOptions{})
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if out != "ok" || atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("out=%q calls=%d", out, calls)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("retried without waiting: %s", elapsed)
	}
}

func TestGenerateTextRetryWaitStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int32
	client := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			atomic.AddInt32(&calls, 1)
			cancel()
			return jsonResponse(http.StatusServiceUnavailable, map[string]any{"error": "busy"}), nil
		}),
	}

	cfg := testConfig()
	cfg.MaxRetries = 3
	cfg.RetryBackoff = config.Duration{Duration: time.Minute}
	e, _ := NewWithHTTPClient(cfg, client)

	start := time.Now()
	_, err := e.GenerateText(ctx, "m", []engine.Message{{Role: "user", Content: "hi"}}, engine.GenerateOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("calls=%d", calls)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("cancel did not interrupt backoff: %s", elapsed)
	}
}

func TestGenerateTextHonoursRetryAfter(t *testing.T) {
	var calls int32
	client := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				resp := jsonResponse(http.StatusTooManyRequests, map[string]any{"error": "quota"})
				resp.Header.Set("Retry-After", "1")
				return resp, nil
			}
			return jsonResponse(http.StatusOK, completion("ok")), nil
		}),
	}

	cfg := testConfig()
	cfg.MaxRetries = 1
	cfg.RetryBackoff = config.Duration{Duration: time.Millisecond}
	e, _ := NewWithHTTPClient(cfg, client)

	start := time.Now()
	out, err := e.GenerateText(context.Background(), "m", []engine.Message{{Role: "user", Content: "hi"}}, engine.GenerateOptions{})
	if err != nil || out != "ok" {
		t.Fatalf("out=%q err=%v", out, err)
	}
	if elapsed := time.Since(start); elapsed < time.Second {
		t.Fatalf("Retry-After ignored: %s", elapsed)
	}
}

func TestGenerateTextDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	client := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			atomic.AddInt32(&calls, 1)
			return jsonResponse(http.StatusUnauthorized, map[string]any{"error": "bad key"}), nil
		}),
	}

	cfg := testConfig()
	cfg.MaxRetries = 3
	e, _ := NewWithHTTPClient(cfg, client)
	_, err := e.GenerateText(context.Background(), "m", []engine.Message{{Role: "user", Content: "hi"}}, engine.GenerateOptions{})

	var he *HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusUnauthorized {
		t.Fatalf("err=%v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("calls=%d", calls)
	}
}

func TestGenerateTextEmptyCompletion(t *testing.T) {
	client := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, completion("   ")), nil
		}),
	}
	e, _ := NewWithHTTPClient(testConfig(), client)
	_, err := e.GenerateText(context.Background(), "m", []engine.Message{{Role: "user", Content: "hi"}}, engine.GenerateOptions{})
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("err=%v", err)
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(config.EngineConfig{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestHTTPErrorTruncatesBody(t *testing.T) {
	he := &HTTPError{StatusCode: http.StatusBadGateway, Body: strings.Repeat("x", 4096)}
	msg := he.Error()
	if len(msg) > maxErrorBody+64 {
		t.Fatalf("error message too long: %d bytes", len(msg))
	}
	if !strings.HasSuffix(msg, "...(truncated)") {
		t.Fatalf("msg suffix=%q", msg[len(msg)-20:])
	}
	if got := (&HTTPError{StatusCode: 500, Body: "short"}).Error(); got != "upstream http error: status=500 body=short" {
		t.Fatalf("got %q", got)
	}
}

func TestParseRetryAfter(t *testing.T) {
	cases := map[string]time.Duration{
		"3":                             3 * time.Second,
		" 10 ":                          10 * time.Second,
		"":                              0,
		"-1":                            0,
		"Wed, 21 Oct 2026 07:28:00 GMT": 0,
	}
	for in, want := range cases {
		if got := parseRetryAfter(in); got != want {
			t.Fatalf("parseRetryAfter(%q)=%s want %s", in, got, want)
		}
	}
	if got := retryDelay(&HTTPError{StatusCode: 429, RetryAfter: time.Hour}, time.Millisecond); got != maxRetryBackoff {
		t.Fatalf("retryDelay=%s", got)
	}
}
