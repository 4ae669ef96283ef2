package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/serchad/internal/core/ports/driven"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	p, err := New(Config{APIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, p.ModelName())
	assert.Equal(t, providerID, p.ID())
}

func TestChat_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		messages, _ := body["messages"].([]any)
		require.NotEmpty(t, messages)

		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": "hi there"},
					"finish_reason": "stop",
				},
			},
		})
	}))
	defer srv.Close()

	p, err := New(Config{APIKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	out, err := p.Chat(context.Background(), "system prompt", nil, "hello", driven.ChatOptions{Temperature: 0.3})
	require.NoError(t, err)
	assert.Equal(t, "hi there", out)
}

func TestChat_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"choices": []map[string]any{},
		})
	}))
	defer srv.Close()

	p, err := New(Config{APIKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = p.Chat(context.Background(), "sys", nil, "hi", driven.ChatOptions{})
	assert.Error(t, err)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.LLMProvider = (*Provider)(nil)
}
