package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/serchad/internal/adapters/driving/http/response"
	"github.com/custodia-labs/serchad/internal/core/ports/driven"
	"github.com/custodia-labs/serchad/internal/core/services"
)

// StatsHandler serves GET /api/stats.
type StatsHandler struct {
	ingestor *services.Ingestor
	convos   driven.ConversationStore
	llm      *services.LLMGateway
}

// NewStatsHandler constructs the stats handler.
func NewStatsHandler(ingestor *services.Ingestor, convos driven.ConversationStore, llm *services.LLMGateway) *StatsHandler {
	return &StatsHandler{ingestor: ingestor, convos: convos, llm: llm}
}

// Stats handles GET /api/stats.
func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.ingestor.Stats(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to read index stats")
		return
	}

	conversationCount, err := h.convos.Count(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to read conversation count")
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"documents":     stats.DocumentCount,
		"chunks":        stats.ChunkCount,
		"conversations": conversationCount,
		"currentModel":  h.llm.CurrentModel(),
	})
}
