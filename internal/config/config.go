// Package config loads serchad's runtime configuration from environment
// variables, an optional .env file, and an optional TOML overlay file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/serchad/internal/logger"
)

// Config holds every environment-backed setting consumed by the HTTP
// transport (AS1), the embedder and LLM gateways (C4, C9), the chunker
// (C2), and the chat router (C7).
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// LLMProvider names a provider ("ollama", "openai", or "deepseek"). It
	// only steers the embedding provider choice ("openai" selects OpenAI
	// embeddings when an API key is set); the LLM gateway always tries
	// ollama, openai, deepseek in that fixed order.
	LLMProvider string

	OllamaBaseURL   string
	OllamaModel     string
	OllamaEmbedModel string

	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIEmbedModel string

	DeepSeekAPIKey string
	DeepSeekModel  string

	ChunkSize    int
	ChunkOverlap int

	RelevanceThreshold float64
	FallbackThreshold  float64

	EmbedBatchSize int
}

// Default returns the spec's literal default values, used as the base
// layer before the TOML overlay and environment variables are applied.
func Default() Config {
	return Config{
		Port:             "8080",
		LLMProvider:      "ollama",
		OllamaBaseURL:    "http://localhost:11434",
		OllamaModel:      "llama3.2:1b",
		OllamaEmbedModel: "nomic-embed-text",
		OpenAIModel:      "gpt-4o-mini",
		OpenAIEmbedModel: "text-embedding-3-small",
		DeepSeekModel:    "deepseek-chat",
		ChunkSize:        800,
		ChunkOverlap:     200,
		RelevanceThreshold: 0.15,
		FallbackThreshold:  0.10,
		EmbedBatchSize:      20,
	}
}

// Load builds a Config by layering, in increasing order of precedence:
// the spec defaults, an optional TOML file named by SERCHAD_CONFIG_FILE,
// a .env file loaded via godotenv (a missing file is not an error), and
// finally the process environment.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("SERCHAD_CONFIG_FILE"); path != "" {
		if err := applyTOMLFile(&cfg, path); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not load .env file: %v", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyTOMLFile overlays fields present in a TOML file onto cfg. Unknown
// keys are ignored; this is a config-file layer, not a validated schema.
func applyTOMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["SERCHAD_PORT"].(string); ok {
		cfg.Port = v
	}
	if v, ok := raw["SERCHAD_LLM_PROVIDER"].(string); ok {
		cfg.LLMProvider = v
	}
	if v, ok := raw["OLLAMA_BASE_URL"].(string); ok {
		cfg.OllamaBaseURL = v
	}
	if v, ok := raw["OLLAMA_MODEL"].(string); ok {
		cfg.OllamaModel = v
	}
	if v, ok := raw["OLLAMA_EMBED_MODEL"].(string); ok {
		cfg.OllamaEmbedModel = v
	}
	if v, ok := raw["OPENAI_API_KEY"].(string); ok {
		cfg.OpenAIAPIKey = v
	}
	if v, ok := raw["OPENAI_MODEL"].(string); ok {
		cfg.OpenAIModel = v
	}
	if v, ok := raw["OPENAI_EMBED_MODEL"].(string); ok {
		cfg.OpenAIEmbedModel = v
	}
	if v, ok := raw["DEEPSEEK_API_KEY"].(string); ok {
		cfg.DeepSeekAPIKey = v
	}
	if v, ok := raw["DEEPSEEK_MODEL"].(string); ok {
		cfg.DeepSeekModel = v
	}
	if v, ok := tomlInt(raw, "SERCHAD_CHUNK_SIZE"); ok {
		cfg.ChunkSize = v
	}
	if v, ok := tomlInt(raw, "SERCHAD_CHUNK_OVERLAP"); ok {
		cfg.ChunkOverlap = v
	}
	if v, ok := tomlFloat(raw, "SERCHAD_RELEVANCE_THRESHOLD"); ok {
		cfg.RelevanceThreshold = v
	}
	if v, ok := tomlFloat(raw, "SERCHAD_FALLBACK_THRESHOLD"); ok {
		cfg.FallbackThreshold = v
	}
	if v, ok := tomlInt(raw, "SERCHAD_EMBED_BATCH_SIZE"); ok {
		cfg.EmbedBatchSize = v
	}
	return nil
}

func tomlInt(raw map[string]any, key string) (int, bool) {
	switch v := raw[key].(type) {
	case int64:
		return int(v), true
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func tomlFloat(raw map[string]any, key string) (float64, bool) {
	switch v := raw[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// applyEnv overlays every set environment variable onto cfg, taking
// precedence over both the defaults and the TOML file layer.
func applyEnv(cfg *Config) {
	setString(&cfg.Port, "SERCHAD_PORT")
	setString(&cfg.LLMProvider, "SERCHAD_LLM_PROVIDER")
	setString(&cfg.OllamaBaseURL, "OLLAMA_BASE_URL")
	setString(&cfg.OllamaModel, "OLLAMA_MODEL")
	setString(&cfg.OllamaEmbedModel, "OLLAMA_EMBED_MODEL")
	setString(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&cfg.OpenAIModel, "OPENAI_MODEL")
	setString(&cfg.OpenAIEmbedModel, "OPENAI_EMBED_MODEL")
	setString(&cfg.DeepSeekAPIKey, "DEEPSEEK_API_KEY")
	setString(&cfg.DeepSeekModel, "DEEPSEEK_MODEL")
	setInt(&cfg.ChunkSize, "SERCHAD_CHUNK_SIZE")
	setInt(&cfg.ChunkOverlap, "SERCHAD_CHUNK_OVERLAP")
	setFloat(&cfg.RelevanceThreshold, "SERCHAD_RELEVANCE_THRESHOLD")
	setFloat(&cfg.FallbackThreshold, "SERCHAD_FALLBACK_THRESHOLD")
	setInt(&cfg.EmbedBatchSize, "SERCHAD_EMBED_BATCH_SIZE")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn("invalid integer for %s: %q, keeping previous value", key, v)
		return
	}
	*dst = n
}

func setFloat(dst *float64, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logger.Warn("invalid float for %s: %q, keeping previous value", key, v)
		return
	}
	*dst = f
}
