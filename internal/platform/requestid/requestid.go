package requestid

import (
	"strings"

	"github.com/google/uuid"
)

const maxLen = 128

func New() string {
	return uuid.NewString()
}

// Sanitize returns a caller-supplied id if it is short and printable,
// otherwise a fresh one.
func Sanitize(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > maxLen {
		return New()
	}
	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return New()
		}
	}
	return id
}
