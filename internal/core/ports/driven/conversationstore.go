package driven

import (
	"context"

	"github.com/custodia-labs/serchad/internal/core/domain"
)

// ConversationStore holds per-conversation bounded message history (C8).
// Implementations are in-process only; the spec excludes long-term
// persistence.
type ConversationStore interface {
	// Append adds a message to the conversation, creating it if absent, and
	// trims to domain.MaxConversationHistory entries.
	Append(ctx context.Context, conversationID string, msg domain.Message) error

	// LastN returns up to n of the most recent messages, oldest first.
	LastN(ctx context.Context, conversationID string, n int) ([]domain.Message, error)

	// Get returns the full bounded history for a conversation.
	Get(ctx context.Context, conversationID string) (*domain.Conversation, error)

	// Count returns the number of distinct conversations held.
	Count(ctx context.Context) (int, error)
}
