package envutil

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"", 7 * time.Second},
		{"45s", 45 * time.Second},
		{"30", 30 * time.Second},
		{"soon", 7 * time.Second},
	}
	for _, tc := range cases {
		t.Setenv("KB_TEST_DURATION", tc.raw)
		if got := Duration("KB_TEST_DURATION", 7*time.Second); got != tc.want {
			t.Fatalf("raw=%q got=%s want=%s", tc.raw, got, tc.want)
		}
	}
}

func TestBoolAndInt(t *testing.T) {
	t.Setenv("KB_TEST_BOOL", "on")
	if !Bool("KB_TEST_BOOL", false) {
		t.Fatalf("expected true")
	}
	t.Setenv("KB_TEST_INT", "x")
	if got := Int("KB_TEST_INT", 3); got != 3 {
		t.Fatalf("got=%d", got)
	}
}
