// Package extract isolates the structured ticket payload embedded in free-form
// model output.
package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoPayload means the text holds no balanced [...] region.
	ErrNoPayload = errors.New("extract: no bracketed payload")
	// ErrMalformedPayload means regions were found but none decoded as an
	// array of objects.
	ErrMalformedPayload = errors.New("extract: payload is not an array of objects")
)

// maxCandidates caps how many opening brackets are tried on pathological input.
const maxCandidates = 64

// Entries is the decoded payload: one loosely typed object per ticket.
// Numbers are kept as json.Number.
type Entries []map[string]any

// Payload returns the first bracket-delimited region of raw that decodes as a
// JSON array of objects. Regions are taken from an opening bracket to its
// matching closing bracket; as a last resort the widest region (first "[" to
// last "]") is tried.
func Payload(raw string) (Entries, error) {
	var (
		found   bool
		lastErr error
	)
	offset := 0
	for tries := 0; tries < maxCandidates; tries++ {
		i := strings.IndexByte(raw[offset:], '[')
		if i < 0 {
			break
		}
		start := offset + i
		if end, ok := matchingBracket(raw, start); ok {
			found = true
			entries, err := decode(raw[start : end+1])
			if err == nil {
				return entries, nil
			}
			lastErr = err
		}
		offset = start + 1
	}

	first := strings.IndexByte(raw, '[')
	last := strings.LastIndexByte(raw, ']')
	if first >= 0 && last > first {
		found = true
		entries, err := decode(raw[first : last+1])
		if err == nil {
			return entries, nil
		}
		lastErr = err
	}

	if !found {
		return nil, ErrNoPayload
	}
	return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, lastErr)
}

// matchingBracket returns the index of the "]" closing the "[" at start.
// Brackets inside JSON string literals are ignored.
func matchingBracket(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func decode(region string) (Entries, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(region)))
	dec.UseNumber()

	var items []any
	if err := dec.Decode(&items); err != nil {
		return nil, err
	}
	out := make(Entries, 0, len(items))
	for i, it := range items {
		obj, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("element %d is %T, not an object", i, it)
		}
		out = append(out, obj)
	}
	return out, nil
}
