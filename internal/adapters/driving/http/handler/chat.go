package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/custodia-labs/serchad/internal/adapters/driving/http/response"
	"github.com/custodia-labs/serchad/internal/core/domain"
	"github.com/custodia-labs/serchad/internal/core/services"
)

// ChatHandler serves POST /api/chat.
type ChatHandler struct {
	router *services.Router
}

// NewChatHandler constructs the chat handler.
func NewChatHandler(router *services.Router) *ChatHandler {
	return &ChatHandler{router: router}
}

// chatRequest is the body of POST /api/chat. Streaming is accepted on the
// wire for forward compatibility but has no effect: this transport always
// returns a complete, non-chunked response.
type chatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversationId"`
	Mode            string `json:"mode"`
	Streaming       bool   `json:"streaming"`
}

type sourceResponse struct {
	ID         int    `json:"id"`
	Content    string `json:"content"`
	Source     string `json:"source"`
	Score      string `json:"score"`
	ChunkIndex int    `json:"chunkIndex"`
}

// Chat handles POST /api/chat: resolves the mode, retrieves and assembles
// context when grounded, and calls the LLM gateway.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request: message is required")
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	result, err := h.router.Route(c.Request.Context(), conversationID, req.Message, domain.ParseMode(req.Mode))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	sources := make([]sourceResponse, len(result.Sources))
	for i, s := range result.Sources {
		sources[i] = sourceResponse{ID: s.ID, Content: s.Content, Source: s.SourceName, Score: s.Score, ChunkIndex: s.ChunkIndex}
	}

	body := gin.H{
		"conversationId": conversationID,
		"answer":          result.Answer,
		"mode":            string(result.Mode),
		"sources":         sources,
	}
	if result.Mode == domain.ModeRAG {
		body["retrievedCount"] = result.RetrievedCount
	}
	if result.NoRelevantResults {
		body["noRelevantResults"] = true
	}

	response.OK(c, http.StatusOK, body)
}
