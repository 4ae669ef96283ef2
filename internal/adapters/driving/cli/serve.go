package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	convomem "github.com/custodia-labs/serchad/internal/adapters/driven/conversation/memory"
	embedollama "github.com/custodia-labs/serchad/internal/adapters/driven/embedding/ollama"
	embedopenai "github.com/custodia-labs/serchad/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/serchad/internal/adapters/driven/fetch/webpage"
	indexmem "github.com/custodia-labs/serchad/internal/adapters/driven/index/memory"
	"github.com/custodia-labs/serchad/internal/adapters/driven/llm/deepseek"
	"github.com/custodia-labs/serchad/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/serchad/internal/adapters/driven/llm/openai"
	transporthttp "github.com/custodia-labs/serchad/internal/adapters/driving/http"
	"github.com/custodia-labs/serchad/internal/config"
	"github.com/custodia-labs/serchad/internal/core/ports/driven"
	"github.com/custodia-labs/serchad/internal/core/services"
	"github.com/custodia-labs/serchad/internal/logger"
	"github.com/custodia-labs/serchad/internal/normalisers"
	"github.com/custodia-labs/serchad/internal/normalisers/docx"
	"github.com/custodia-labs/serchad/internal/normalisers/html"
	"github.com/custodia-labs/serchad/internal/normalisers/pdf"
	"github.com/custodia-labs/serchad/internal/normalisers/plaintext"
	"github.com/custodia-labs/serchad/internal/normalisers/pptx"
	"github.com/custodia-labs/serchad/internal/normalisers/xlsx"
	"github.com/custodia-labs/serchad/internal/postprocessors"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the serchad HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	reg := normalisers.NewRegistry()
	reg.Register(plaintext.New())
	reg.Register(html.New())
	reg.Register(pdf.New())
	reg.Register(docx.New())
	reg.Register(pptx.New())
	reg.Register(xlsx.New())

	fetcher := webpage.New()
	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return fmt.Errorf("build postprocessor pipeline: %w", err)
	}

	embedder := services.NewEmbedderGateway(resolveEmbeddingProvider(cfg), cfg.EmbedBatchSize)
	index := indexmem.New()
	ingestor := services.NewIngestor(reg, fetcher, pipeline, embedder, index)

	llmGateway := services.NewLLMGateway(resolveLLMProviders(cfg)...)
	llmGateway.Resolve(cmd.Context())

	convos := convomem.New()
	routerCfg := services.DefaultRouterConfig()
	routerCfg.RelevanceThreshold = cfg.RelevanceThreshold
	routerCfg.FallbackThreshold = cfg.FallbackThreshold
	router := services.NewRouter(index, embedder, llmGateway, convos, routerCfg)

	engine := transporthttp.NewRouter(transporthttp.Deps{
		Ingestor: ingestor,
		Router:   router,
		LLM:      llmGateway,
		Convos:   convos,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// buildPipeline constructs the chunker+keywords pipeline through the
// postprocessors registry, so the config-keyed chunk_size/overlap actually
// flow through the same builder path as any other registered processor.
func buildPipeline(cfg config.Config) (*postprocessors.Pipeline, error) {
	reg := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(reg)

	chunkerProc, err := reg.Build("chunker", map[string]any{
		"chunk_size": cfg.ChunkSize,
		"overlap":    cfg.ChunkOverlap,
	})
	if err != nil {
		return nil, err
	}

	keywordsProc, err := reg.Build("keywords", nil)
	if err != nil {
		return nil, err
	}

	return postprocessors.NewPipeline(chunkerProc, keywordsProc), nil
}

// resolveEmbeddingProvider picks an embedding provider: OpenAI when an API
// key is configured and LLMProvider is "openai", otherwise Ollama (also the
// fallback if the OpenAI client cannot be built). There is no embedding equivalent
// of DeepSeek in the external interface table, so it is not considered
// here.
func resolveEmbeddingProvider(cfg config.Config) driven.EmbeddingProvider {
	if cfg.OpenAIAPIKey != "" && cfg.LLMProvider == "openai" {
		svc, err := embedopenai.NewEmbeddingService(embedopenai.Config{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIEmbedModel,
		})
		if err == nil {
			return svc
		}
		logger.Warn("openai embedding provider unavailable, falling back to ollama: %v", err)
	}
	return embedollama.NewEmbeddingService(embedollama.Config{
		BaseURL: cfg.OllamaBaseURL,
		Model:   cfg.OllamaEmbedModel,
	})
}

// resolveLLMProviders constructs every LLM provider with usable
// credentials, in the preference order ollama, openai, deepseek. The
// gateway pings each at startup and activates the first that answers.
func resolveLLMProviders(cfg config.Config) []driven.LLMProvider {
	var providers []driven.LLMProvider

	providers = append(providers, ollama.New(ollama.Config{
		BaseURL: cfg.OllamaBaseURL,
		Model:   cfg.OllamaModel,
	}))

	if cfg.OpenAIAPIKey != "" {
		if p, err := openai.New(openai.Config{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel}); err == nil {
			providers = append(providers, p)
		} else {
			logger.Warn("openai provider unavailable: %v", err)
		}
	}

	if cfg.DeepSeekAPIKey != "" {
		if p, err := deepseek.New(deepseek.Config{APIKey: cfg.DeepSeekAPIKey, Model: cfg.DeepSeekModel}); err == nil {
			providers = append(providers, p)
		} else {
			logger.Warn("deepseek provider unavailable: %v", err)
		}
	}

	return providers
}
