// Package http wires the gin transport: route table, middleware, and one
// handler per resource, each constructed with the core services it needs.
package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/serchad/internal/adapters/driving/http/handler"
	"github.com/custodia-labs/serchad/internal/core/ports/driven"
	"github.com/custodia-labs/serchad/internal/core/services"
	"github.com/custodia-labs/serchad/internal/logger"
)

// Deps collects the core services the route table depends on.
type Deps struct {
	Ingestor *services.Ingestor
	Router   *services.Router
	LLM      *services.LLMGateway
	Convos   driven.ConversationStore
}

// NewRouter builds the gin engine and registers every route in the
// external interface table under /api.
func NewRouter(deps Deps) *gin.Engine {
	engine := gin.New()
	engine.Use(requestLogger(), gin.Recovery())

	health := handler.NewHealthHandler(deps.Ingestor, deps.LLM)
	models := handler.NewModelsHandler(deps.LLM)
	documents := handler.NewDocumentsHandler(deps.Ingestor)
	chat := handler.NewChatHandler(deps.Router)
	search := handler.NewSearchHandler(deps.Router)
	stats := handler.NewStatsHandler(deps.Ingestor, deps.Convos, deps.LLM)

	api := engine.Group("/api")
	api.GET("/health", health.Check)
	api.GET("/models", models.List)
	api.POST("/models/set", models.Set)
	api.POST("/documents/upload", documents.Upload)
	api.POST("/documents/url", documents.AddURL)
	api.GET("/documents", documents.List)
	api.DELETE("/documents/:id", documents.Delete)
	api.POST("/documents/clear", documents.Clear)
	api.POST("/chat", chat.Chat)
	api.POST("/search", search.Search)
	api.GET("/stats", stats.Stats)

	return engine
}

// requestLogger bridges gin's request lifecycle to the logger package's
// verbose-gated Info level.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()
		logger.Info("%s %s -> %d (%s)", c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
