// Package engine abstracts the external text-generation service.
package engine

import "context"

type Message struct {
	Role    string
	Content string
}

type GenerateOptions struct {
	Temperature float64
}

// Engine produces free-form text for a chat-style prompt. Implementations
// return an error for any transport, quota or empty-output failure.
type Engine interface {
	GenerateText(ctx context.Context, model string, messages []Message, opts GenerateOptions) (string, error)
}
