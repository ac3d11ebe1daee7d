package requestid

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSanitize(t *testing.T) {
	if got := Sanitize("  abc-123 "); got != "abc-123" {
		t.Fatalf("got %q", got)
	}
	for _, bad := range []string{"", "has space", "bad\nline", strings.Repeat("x", maxLen+1)} {
		got := Sanitize(bad)
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("Sanitize(%q)=%q, want fresh uuid", bad, got)
		}
	}
}
