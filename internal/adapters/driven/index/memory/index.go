// Package memory implements the C5+C6 hybrid index and document registry
// as one in-memory, RWMutex-guarded component.
package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/serchad/internal/core/domain"
	"github.com/custodia-labs/serchad/internal/core/ports/driven"
)

// DefaultK is the default number of results returned by a search when the
// caller passes k <= 0.
const DefaultK = 8

// importantWordCount is the number of leading query keywords treated as
// "important" for phrase boosting.
const importantWordCount = 5

const (
	vectorWeight   = 0.60
	keywordWeight  = 0.25
	wordBoost      = 0.05
	phraseBoost    = 0.10
	maxPhraseBoost = 0.15
)

// Ensure Index implements the interface.
var _ driven.DocumentIndex = (*Index)(nil)

// entry pairs a chunk with its position in the index. entries grows by
// appending; removing a document re-compacts it into a new slice that keeps
// the relative order of survivors, so slice position doubles as a stable
// insertion-order tie-break for equal scores.
type entry struct {
	chunk domain.Chunk
}

// Index is an in-memory implementation of driven.DocumentIndex. add and
// remove are writer-exclusive; searches take the read lock and never block
// each other.
type Index struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	docOrder  []string
	entries   []entry
}

// New creates an empty index.
func New() *Index {
	return &Index{
		documents: make(map[string]domain.Document),
	}
}

// AddDocument publishes a document and its chunks atomically under the
// write lock. Chunks must already carry embeddings and keywords.
func (idx *Index) AddDocument(_ context.Context, doc domain.Document, chunks []domain.Chunk) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.documents[doc.ID]; !exists {
		idx.docOrder = append(idx.docOrder, doc.ID)
	}
	doc.ChunkCount = len(chunks)
	idx.documents[doc.ID] = doc

	for _, c := range chunks {
		idx.entries = append(idx.entries, entry{chunk: c})
	}
	return nil
}

// RemoveDocument evicts a document and every chunk it owns.
func (idx *Index) RemoveDocument(_ context.Context, docID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, ok := idx.documents[docID]; !ok {
		return domain.ErrUnknownDocument
	}
	delete(idx.documents, docID)
	for i, id := range idx.docOrder {
		if id == docID {
			idx.docOrder = append(idx.docOrder[:i], idx.docOrder[i+1:]...)
			break
		}
	}

	kept := idx.entries[:0:0]
	for _, e := range idx.entries {
		if e.chunk.DocumentID != docID {
			kept = append(kept, e)
		}
	}
	idx.entries = kept
	return nil
}

// Clear empties the index and the registry.
func (idx *Index) Clear(_ context.Context) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.documents = make(map[string]domain.Document)
	idx.docOrder = nil
	idx.entries = nil
	return nil
}

// VectorSearch ranks all chunks by cosine similarity to queryEmbedding alone.
func (idx *Index) VectorSearch(_ context.Context, queryEmbedding []float32, k int) ([]domain.SearchResult, error) {
	if k <= 0 {
		k = DefaultK
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	results := make([]scored, 0, len(idx.entries))
	for i, e := range idx.entries {
		vs := cosine(queryEmbedding, e.chunk.Embedding)
		results = append(results, scored{
			order: i,
			result: domain.SearchResult{
				Chunk:       e.chunk,
				VectorScore: vs,
				Score:       vs,
			},
		})
	}
	return topK(results, k), nil
}

// HybridSearch ranks all chunks by the combined vector+keyword+phrase score.
func (idx *Index) HybridSearch(_ context.Context, queryText string, queryEmbedding []float32, queryKeywords []string, k int) ([]domain.SearchResult, error) {
	if k <= 0 {
		k = DefaultK
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	important := queryKeywords
	if len(important) > importantWordCount {
		important = important[:importantWordCount]
	}
	var phrase string
	if len(important) >= 2 {
		phrase = important[0] + " " + important[1]
	}

	results := make([]scored, 0, len(idx.entries))
	for i, e := range idx.entries {
		vs := cosine(queryEmbedding, e.chunk.Embedding)
		ks := keywordOverlap(queryKeywords, e.chunk.Keywords)
		pb := computePhraseBoost(strings.ToLower(e.chunk.Content), important, phrase)
		score := vectorWeight*vs + keywordWeight*ks + pb
		results = append(results, scored{
			order: i,
			result: domain.SearchResult{
				Chunk:        e.chunk,
				VectorScore:  vs,
				KeywordScore: ks,
				PhraseBoost:  pb,
				Score:        score,
			},
		})
	}
	return topK(results, k), nil
}

// CountDocuments returns the number of registered documents.
func (idx *Index) CountDocuments(_ context.Context) (int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.documents), nil
}

// CountChunks returns the number of indexed chunks.
func (idx *Index) CountChunks(_ context.Context) (int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries), nil
}

// HasDocuments reports whether the index holds at least one document.
func (idx *Index) HasDocuments(_ context.Context) (bool, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.documents) > 0, nil
}

// ListDocuments returns registered documents in insertion order.
func (idx *Index) ListDocuments(_ context.Context) ([]domain.Document, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]domain.Document, 0, len(idx.docOrder))
	for _, id := range idx.docOrder {
		out = append(out, idx.documents[id])
	}
	return out, nil
}

// GetDocument retrieves a single document by id.
func (idx *Index) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	doc, ok := idx.documents[id]
	if !ok {
		return nil, domain.ErrUnknownDocument
	}
	return &doc, nil
}

// scored carries a result alongside its original slice position, used as a
// stable tie-break for equal scores.
type scored struct {
	order  int
	result domain.SearchResult
}

// topK sorts results descending by score, tie-breaking by original
// insertion order, and returns at most k.
func topK(results []scored, k int) []domain.SearchResult {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].result.Score != results[j].result.Score {
			return results[i].result.Score > results[j].result.Score
		}
		return results[i].order < results[j].order
	})
	if len(results) > k {
		results = results[:k]
	}
	out := make([]domain.SearchResult, len(results))
	for i, r := range results {
		out[i] = r.result
	}
	return out
}

// cosine computes the cosine similarity of two vectors. Both are expected
// to already be L2-normalized, in which case this reduces to a dot product,
// but the full formula is used defensively.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// keywordOverlap is the fraction of query keywords present in the chunk's
// keyword bag.
func keywordOverlap(query, chunkKeywords []string) float64 {
	if len(query) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(chunkKeywords))
	for _, kw := range chunkKeywords {
		set[kw] = struct{}{}
	}
	matches := 0
	for _, q := range query {
		if _, ok := set[q]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(query))
}

// computePhraseBoost rewards literal phrase presence in lowercased chunk
// content: +0.05 per important word present anywhere, +0.10 more if the
// two-word phrase of the first two important words appears, clamped to 0.15.
func computePhraseBoost(lowerContent string, important []string, phrase string) float64 {
	var boost float64
	for _, w := range important {
		if w == "" {
			continue
		}
		if strings.Contains(lowerContent, w) {
			boost += wordBoost
		}
	}
	if phrase != "" && strings.Contains(lowerContent, phrase) {
		boost += phraseBoost
	}
	if boost > maxPhraseBoost {
		boost = maxPhraseBoost
	}
	return boost
}
