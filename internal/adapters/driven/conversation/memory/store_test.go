package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/serchad/internal/core/domain"
)

func TestStore_Append_CreatesConversationLazily(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Append(ctx, "conv-1", domain.Message{Role: domain.RoleUser, Content: "hi"}))

	conv, err := s.Get(ctx, "conv-1")
	require.NoError(t, err)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, "hi", conv.Messages[0].Content)
}

func TestStore_Get_UnknownConversation(t *testing.T) {
	conv, err := New().Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, conv.Messages)
}

func TestStore_Append_TrimsToMaxHistory(t *testing.T) {
	ctx := context.Background()
	s := New()

	for i := 0; i < domain.MaxConversationHistory+5; i++ {
		require.NoError(t, s.Append(ctx, "conv-1", domain.Message{
			Role:      domain.RoleUser,
			Content:   "msg",
			Timestamp: time.Now(),
		}))
	}

	conv, err := s.Get(ctx, "conv-1")
	require.NoError(t, err)
	assert.Len(t, conv.Messages, domain.MaxConversationHistory)
}

func TestStore_LastN(t *testing.T) {
	ctx := context.Background()
	s := New()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(ctx, "conv-1", domain.Message{Content: string(rune('a' + i))}))
	}

	last, err := s.LastN(ctx, "conv-1", 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "d", last[0].Content)
	assert.Equal(t, "e", last[1].Content)
}

func TestStore_LastN_MoreThanAvailable(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Append(ctx, "conv-1", domain.Message{Content: "only"}))

	last, err := s.LastN(ctx, "conv-1", 10)
	require.NoError(t, err)
	require.Len(t, last, 1)
}

func TestStore_LastN_UnknownConversation(t *testing.T) {
	last, err := New().LastN(context.Background(), "missing", 5)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestStore_Conversations_AreIsolated(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Append(ctx, "a", domain.Message{Content: "from a"}))
	require.NoError(t, s.Append(ctx, "b", domain.Message{Content: "from b"}))

	convA, _ := s.Get(ctx, "a")
	convB, _ := s.Get(ctx, "b")

	require.Len(t, convA.Messages, 1)
	require.Len(t, convB.Messages, 1)
	assert.Equal(t, "from a", convA.Messages[0].Content)
	assert.Equal(t, "from b", convB.Messages[0].Content)
}
