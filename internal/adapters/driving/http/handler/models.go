package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/serchad/internal/adapters/driving/http/response"
	"github.com/custodia-labs/serchad/internal/core/domain"
	"github.com/custodia-labs/serchad/internal/core/services"
)

// ModelsHandler serves GET /api/models and POST /api/models/set.
type ModelsHandler struct {
	llm *services.LLMGateway
}

// NewModelsHandler constructs the models handler.
func NewModelsHandler(llm *services.LLMGateway) *ModelsHandler {
	return &ModelsHandler{llm: llm}
}

// modelEntry names one available provider by both the id POST /models/set
// expects and the model name it is running, so a client can line up
// currentModel (a model name) against an entry in models.
type modelEntry struct {
	ID    string `json:"id"`
	Model string `json:"model"`
}

// List reports the providers that responded to Ping at startup and the
// currently active one.
func (h *ModelsHandler) List(c *gin.Context) {
	available := h.llm.AvailableModels()
	models := make([]modelEntry, len(available))
	for i, m := range available {
		models[i] = modelEntry{ID: m.ID, Model: m.Model}
	}

	response.OK(c, http.StatusOK, gin.H{
		"models":       models,
		"currentModel": h.llm.CurrentModel(),
	})
}

// setModelRequest is the body of POST /api/models/set.
type setModelRequest struct {
	Model string `json:"model" binding:"required"`
}

// Set switches the active LLM provider by id.
func (h *ModelsHandler) Set(c *gin.Context) {
	var req setModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request: model is required")
		return
	}

	if err := h.llm.SetActive(req.Model); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrUnknownProvider) {
			status = http.StatusBadRequest
		}
		response.Fail(c, status, err.Error())
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"success":      true,
		"currentModel": h.llm.CurrentModel(),
	})
}
