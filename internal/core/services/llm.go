package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/serchad/internal/core/domain"
	"github.com/custodia-labs/serchad/internal/core/ports/driven"
	"github.com/custodia-labs/serchad/internal/logger"
)

// historyTruncateLen is the maximum number of trailing history messages
// forwarded to a provider on any call (spec C9).
const historyTruncateLen = 6

// LLMGateway is the C9 LLM Gateway. It holds providers ordered by
// preference (local self-hosted first, then hosted providers) and resolves
// which are available at startup via Ping. If none are available it signals
// degraded mode to callers rather than failing.
type LLMGateway struct {
	mu        sync.RWMutex
	providers []driven.LLMProvider
	available []driven.LLMProvider
	active    driven.LLMProvider
}

// NewLLMGateway orders providers by preference exactly as given; callers
// should pass them local-first (e.g. ollama, openai, deepseek).
func NewLLMGateway(providers ...driven.LLMProvider) *LLMGateway {
	return &LLMGateway{providers: providers}
}

// Resolve pings every configured provider and records which responded.
// The first available provider becomes active. Call once at startup.
func (g *LLMGateway) Resolve(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.available = nil
	g.active = nil
	for _, p := range g.providers {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			logger.Debug("llm provider %s unavailable: %v", p.ID(), err)
			continue
		}
		g.available = append(g.available, p)
	}
	if len(g.available) > 0 {
		g.active = g.available[0]
	}
}

// ModelInfo names one available provider by both the id SetActive expects
// and the model name it is currently configured with, so a client can match
// CurrentModel (which reports the active provider's model name) against the
// Model field of an entry in this list.
type ModelInfo struct {
	ID    string
	Model string
}

// AvailableProviders returns the ids of providers that responded to Ping.
func (g *LLMGateway) AvailableProviders() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := make([]string, len(g.available))
	for i, p := range g.available {
		ids[i] = p.ID()
	}
	return ids
}

// AvailableModels returns id/model pairs for every provider that responded
// to Ping.
func (g *LLMGateway) AvailableModels() []ModelInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()
	infos := make([]ModelInfo, len(g.available))
	for i, p := range g.available {
		infos[i] = ModelInfo{ID: p.ID(), Model: p.ModelName()}
	}
	return infos
}

// SetActive selects an available provider by id.
func (g *LLMGateway) SetActive(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range g.available {
		if p.ID() == id {
			g.active = p
			return nil
		}
	}
	return domain.ErrUnknownProvider
}

// CurrentModel returns the active provider's model name, or "" in degraded mode.
func (g *LLMGateway) CurrentModel() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.active == nil {
		return ""
	}
	return g.active.ModelName()
}

// Degraded reports whether no provider is available.
func (g *LLMGateway) Degraded() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.active == nil
}

// Complete runs a chat completion against the active provider. History is
// always truncated to the most recent historyTruncateLen messages before
// being sent. Returns domain.ErrLLMUnavailable in degraded mode.
func (g *LLMGateway) Complete(ctx context.Context, system string, history []driven.ChatMessage, user string, temperature float64) (string, error) {
	g.mu.RLock()
	active := g.active
	g.mu.RUnlock()
	if active == nil {
		return "", domain.ErrLLMUnavailable
	}

	if len(history) > historyTruncateLen {
		history = history[len(history)-historyTruncateLen:]
	}

	return active.Chat(ctx, system, history, user, driven.ChatOptions{Temperature: temperature})
}
