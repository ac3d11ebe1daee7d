package oaihttp

import (
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"
)

// maxErrorBody bounds how much of an upstream body Error() repeats.
const maxErrorBody = 512

var ErrEmptyCompletion = errors.New("oai_http: empty upstream completion")

type HTTPError struct {
	StatusCode int
	Body       string
	// RetryAfter is the server's Retry-After hint, zero when absent.
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "upstream http error"
	}
	if e.Body == "" {
		return fmt.Sprintf("upstream http error: status=%d", e.StatusCode)
	}
	body := e.Body
	if len(body) > maxErrorBody {
		n := maxErrorBody
		for n > 0 && !utf8.RuneStart(body[n]) {
			n--
		}
		body = body[:n] + "...(truncated)"
	}
	return fmt.Sprintf("upstream http error: status=%d body=%s", e.StatusCode, body)
}

// Retryable reports whether another attempt may succeed (rate limit or 5xx).
func (e *HTTPError) Retryable() bool {
	if e == nil {
		return false
	}
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func retryable(err error) bool {
	if errors.Is(err, ErrEmptyCompletion) {
		return true
	}
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Retryable()
	}
	return false
}
