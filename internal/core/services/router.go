package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/serchad/internal/core/domain"
	"github.com/custodia-labs/serchad/internal/core/ports/driven"
	"github.com/custodia-labs/serchad/internal/postprocessors/keywords"
)

// RouterConfig holds the C7 chat router's tunables, read once at startup.
type RouterConfig struct {
	// RelevanceThreshold is the minimum combined score to count a chunk as
	// relevant in grounded mode.
	RelevanceThreshold float64

	// FallbackThreshold is the lower bound used when the primary threshold
	// yields nothing.
	FallbackThreshold float64

	// RetrievalK is the top-k passed to hybrid search.
	RetrievalK int

	// FallbackK is the max chunks kept from the fallback pass.
	FallbackK int

	// HistoryWindow is how many trailing history messages to include in
	// the prompt.
	HistoryWindow int
}

// DefaultRouterConfig returns the spec's default tunables.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RelevanceThreshold: 0.15,
		FallbackThreshold:  0.10,
		RetrievalK:         8,
		FallbackK:          5,
		HistoryWindow:      6,
	}
}

// docKeywordHints are the terms that force auto -> rag when present in the
// query, matched as a case-insensitive substring.
var docKeywordHints = []string{
	"document", "file", "uploaded", "says", "mentioned", "according to",
	"in the", "from the", "based on", "what does", "find", "search",
	"look for", "locate", "extract", "summarize", "summary",
}

const (
	groundedSystemPrompt = "You are a helpful assistant answering questions using only the " +
		"provided source excerpts. Cite sources by their bracketed number when you use them. " +
		"If the excerpts do not contain the answer, say so plainly rather than making one up. " +
		"Keep answers concise."

	openSystemPrompt = "You are a helpful, knowledgeable assistant. Answer the user directly " +
		"and concisely."

	refusalMessage = "I don't have any documents to search yet. Upload a document first, " +
		"or ask me a general question."

	noRelevantResultsMessage = "I looked through the indexed documents but couldn't find " +
		"anything relevant to that question."

	noLLMConfiguredMessage = "No language model is currently configured, so I can't generate " +
		"an answer to \"%s\". The excerpts above are what I found in the indexed documents."

	degradedGeneralMessage = "No language model is currently configured, so I can't answer " +
		"\"%s\" right now."
)

// RouteResult is the outcome of a single chat turn.
type RouteResult struct {
	Answer           string
	Mode             domain.Mode
	Sources          []domain.Source
	RetrievedCount   int
	NoRelevantResults bool
}

// Router is the C7 Chat Router. It resolves a requested mode to an actual
// one, retrieves and ranks context when grounded, and calls the LLM gateway
// with the assembled prompt.
type Router struct {
	index    driven.DocumentIndex
	embedder *EmbedderGateway
	llm      *LLMGateway
	convos   driven.ConversationStore
	cfg      RouterConfig
}

// NewRouter wires the chat router to its dependencies.
func NewRouter(index driven.DocumentIndex, embedder *EmbedderGateway, llm *LLMGateway, convos driven.ConversationStore, cfg RouterConfig) *Router {
	return &Router{index: index, embedder: embedder, llm: llm, convos: convos, cfg: cfg}
}

// Route resolves mode, retrieves if grounded, and produces an answer. It
// appends both the user and assistant turns to the conversation store under
// conversationID.
func (r *Router) Route(ctx context.Context, conversationID, query string, requested domain.Mode) (RouteResult, error) {
	history, err := r.convos.LastN(ctx, conversationID, r.cfg.HistoryWindow)
	if err != nil {
		return RouteResult{}, fmt.Errorf("load history: %w", err)
	}

	if err := r.convos.Append(ctx, conversationID, domain.Message{Role: domain.RoleUser, Content: query}); err != nil {
		return RouteResult{}, fmt.Errorf("append user message: %w", err)
	}

	result, err := r.route(ctx, query, requested, history)
	if err != nil {
		return RouteResult{}, err
	}

	if appendErr := r.convos.Append(ctx, conversationID, domain.Message{
		Role:    domain.RoleAssistant,
		Content: result.Answer,
		Mode:    result.Mode,
		Sources: result.Sources,
	}); appendErr != nil {
		return RouteResult{}, fmt.Errorf("append assistant message: %w", appendErr)
	}

	return result, nil
}

func (r *Router) route(ctx context.Context, query string, requested domain.Mode, history []domain.Message) (RouteResult, error) {
	hasDocs, err := r.index.HasDocuments(ctx)
	if err != nil {
		return RouteResult{}, fmt.Errorf("check corpus: %w", err)
	}

	if requested == domain.ModeRAG && !hasDocs {
		return RouteResult{
			Answer:  refusalMessage,
			Mode:    domain.ModeError,
			Sources: nil,
		}, nil
	}

	resolved := requested
	if requested == domain.ModeAuto {
		resolved = r.resolveAutoMode(ctx, query, hasDocs)
	}

	if resolved == domain.ModeGeneral {
		return r.answerOpen(ctx, query, history)
	}
	return r.answerGrounded(ctx, query, history)
}

// resolveAutoMode decides rag vs general for requested_mode = auto.
func (r *Router) resolveAutoMode(ctx context.Context, query string, hasDocs bool) domain.Mode {
	if !hasDocs {
		return domain.ModeGeneral
	}
	if containsHintTerm(query) {
		return domain.ModeRAG
	}

	queryEmbedding, err := r.embedder.EmbedOne(ctx, query)
	if err != nil {
		return domain.ModeGeneral
	}
	hits, err := r.index.HybridSearch(ctx, query, queryEmbedding, keywords.Extract(query), 1)
	if err != nil || len(hits) == 0 {
		return domain.ModeGeneral
	}
	if hits[0].Score > r.cfg.RelevanceThreshold {
		return domain.ModeRAG
	}
	return domain.ModeGeneral
}

func containsHintTerm(query string) bool {
	lower := strings.ToLower(query)
	for _, hint := range docKeywordHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func (r *Router) answerGrounded(ctx context.Context, query string, history []domain.Message) (RouteResult, error) {
	queryEmbedding, err := r.embedder.EmbedOne(ctx, query)
	if err != nil {
		return RouteResult{}, fmt.Errorf("embed query: %w", err)
	}

	hits, err := r.index.HybridSearch(ctx, query, queryEmbedding, keywords.Extract(query), r.cfg.RetrievalK)
	if err != nil {
		return RouteResult{}, fmt.Errorf("hybrid search: %w", err)
	}

	relevant := filterByScore(hits, r.cfg.RelevanceThreshold)
	if len(relevant) == 0 {
		fallback := filterByScore(hits, r.cfg.FallbackThreshold)
		if len(fallback) > r.cfg.FallbackK {
			fallback = fallback[:r.cfg.FallbackK]
		}
		if len(fallback) == 0 {
			return RouteResult{
				Answer:            noRelevantResultsMessage,
				Mode:              domain.ModeRAG,
				Sources:           nil,
				RetrievedCount:    0,
				NoRelevantResults: true,
			}, nil
		}
		relevant = fallback
	}

	contextBlock, sources := assembleContext(relevant)

	if r.llm.Degraded() {
		return RouteResult{
			Answer:         contextBlock + "\n\n" + fmt.Sprintf(noLLMConfiguredMessage, query),
			Mode:           domain.ModeRAG,
			Sources:        sources,
			RetrievedCount: len(relevant),
		}, nil
	}

	llmHistory := toChatMessages(history)
	answer, err := r.llm.Complete(ctx, groundedSystemPrompt, llmHistory, contextBlock+"\n\n---\n\nQuestion: "+query, 0.3)
	if err != nil {
		return RouteResult{}, fmt.Errorf("complete grounded: %w", err)
	}

	return RouteResult{
		Answer:         answer,
		Mode:           domain.ModeRAG,
		Sources:        sources,
		RetrievedCount: len(relevant),
	}, nil
}

func (r *Router) answerOpen(ctx context.Context, query string, history []domain.Message) (RouteResult, error) {
	if r.llm.Degraded() {
		return RouteResult{
			Answer: fmt.Sprintf(degradedGeneralMessage, query),
			Mode:   domain.ModeGeneral,
		}, nil
	}

	llmHistory := toChatMessages(history)
	answer, err := r.llm.Complete(ctx, openSystemPrompt, llmHistory, query, 0.7)
	if err != nil {
		return RouteResult{}, fmt.Errorf("complete open: %w", err)
	}

	return RouteResult{
		Answer: answer,
		Mode:   domain.ModeGeneral,
	}, nil
}

// Search runs a direct hybrid search without any LLM call or mode
// resolution, for the /search endpoint. topK <= 0 falls back to RetrievalK.
func (r *Router) Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = r.cfg.RetrievalK
	}
	queryEmbedding, err := r.embedder.EmbedOne(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return r.index.HybridSearch(ctx, query, queryEmbedding, keywords.Extract(query), topK)
}

// filterByScore keeps hits with score >= threshold, preserving rank order.
func filterByScore(hits []domain.SearchResult, threshold float64) []domain.SearchResult {
	out := make([]domain.SearchResult, 0, len(hits))
	for _, h := range hits {
		if h.Score >= threshold {
			out = append(out, h)
		}
	}
	return out
}

// assembleContext builds the "[Source i - name]\ncontent" blocks joined by
// "\n\n---\n\n" and the parallel citation list with a clamped percentage score.
func assembleContext(hits []domain.SearchResult) (string, []domain.Source) {
	blocks := make([]string, len(hits))
	sources := make([]domain.Source, len(hits))
	for i, h := range hits {
		blocks[i] = fmt.Sprintf("[Source %d - %s]\n%s", i+1, h.Chunk.Source, h.Chunk.Content)
		sources[i] = domain.Source{
			ID:         i + 1,
			Content:    h.Chunk.Content,
			SourceName: h.Chunk.Source,
			Score:      formatScorePercent(h.Score),
			ChunkIndex: h.Chunk.ChunkIndex,
		}
	}

	joined := ""
	for i, b := range blocks {
		if i > 0 {
			joined += "\n\n---\n\n"
		}
		joined += b
	}
	return joined, sources
}

// formatScorePercent renders a combined score as a percentage clamped to
// [0, 100] with one decimal place.
func formatScorePercent(score float64) string {
	pct := score * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return fmt.Sprintf("%.1f%%", pct)
}

func toChatMessages(history []domain.Message) []driven.ChatMessage {
	out := make([]driven.ChatMessage, len(history))
	for i, m := range history {
		out[i] = driven.ChatMessage{Role: string(m.Role), Content: m.Content}
	}
	return out
}
