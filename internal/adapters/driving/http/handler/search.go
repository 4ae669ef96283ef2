package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/serchad/internal/adapters/driving/http/response"
	"github.com/custodia-labs/serchad/internal/core/services"
)

// SearchHandler serves POST /api/search.
type SearchHandler struct {
	router *services.Router
}

// NewSearchHandler constructs the search handler.
func NewSearchHandler(router *services.Router) *SearchHandler {
	return &SearchHandler{router: router}
}

// searchRequest is the body of POST /api/search.
type searchRequest struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"topK"`
}

type searchResult struct {
	ID           string  `json:"id"`
	Content      string  `json:"content"`
	Source       string  `json:"source"`
	VectorScore  float64 `json:"vectorScore"`
	KeywordScore float64 `json:"keywordScore"`
	Score        float64 `json:"score"`
}

// Search handles POST /api/search: a direct hybrid search with no LLM call.
func (h *SearchHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request: query is required")
		return
	}

	hits, err := h.router.Search(c.Request.Context(), req.Query, req.TopK)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	results := make([]searchResult, len(hits))
	for i, hit := range hits {
		results[i] = searchResult{
			ID:           hit.Chunk.ID,
			Content:      hit.Chunk.Content,
			Source:       hit.Chunk.Source,
			VectorScore:  hit.VectorScore,
			KeywordScore: hit.KeywordScore,
			Score:        hit.Score,
		}
	}

	response.OK(c, http.StatusOK, gin.H{"results": results})
}
