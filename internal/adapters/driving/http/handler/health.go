package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/serchad/internal/adapters/driving/http/response"
	"github.com/custodia-labs/serchad/internal/core/services"
)

// HealthHandler serves GET /api/health.
type HealthHandler struct {
	ingestor *services.Ingestor
	llm      *services.LLMGateway
}

// NewHealthHandler constructs the health handler.
func NewHealthHandler(ingestor *services.Ingestor, llm *services.LLMGateway) *HealthHandler {
	return &HealthHandler{ingestor: ingestor, llm: llm}
}

// Check reports overall readiness: corpus size and which LLM providers
// responded to Ping at startup.
func (h *HealthHandler) Check(c *gin.Context) {
	stats, err := h.ingestor.Stats(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to read index stats")
		return
	}

	status := "ok"
	if h.llm.Degraded() {
		status = "degraded"
	}

	response.OK(c, http.StatusOK, gin.H{
		"status":          status,
		"documentsLoaded": stats.DocumentCount,
		"totalChunks":      stats.ChunkCount,
		"availableModels":  h.llm.AvailableProviders(),
	})
}
