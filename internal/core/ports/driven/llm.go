// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// LLMProvider is a single language-model backend. The LLM gateway
// (core/services) orders several of these by preference and exposes the
// degraded-mode logic C9 requires; LLMProvider itself just talks to one
// backend.
//
// Implementations:
//   - Ollama (local, self-hosted)
//   - OpenAI-compatible (hosted)
//   - DeepSeek (hosted, OpenAI-compatible wire format)
type LLMProvider interface {
	// ID is the provider identifier used in available_providers/set_active
	// (e.g. "ollama", "openai", "deepseek").
	ID() string

	// Chat conducts a multi-turn conversation with a fixed system prompt.
	Chat(ctx context.Context, system string, history []ChatMessage, user string, opts ChatOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	// The LLM gateway calls it at startup to decide which providers are available.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
