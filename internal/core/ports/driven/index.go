package driven

import (
	"context"

	"github.com/custodia-labs/serchad/internal/core/domain"
)

// DocumentIndex combines the hybrid chunk index (C5) and the document
// registry (C6) behind one port. The spec requires that a chunk is never
// visible in the index without its owning document visible in the registry,
// and vice versa; the only way to guarantee that under concurrent readers is
// to guard both with the same lock, so they are one port with one
// implementation rather than two ports wired together by the caller.
type DocumentIndex interface {
	// AddDocument publishes a document and all its chunks atomically.
	// Chunks must already carry embeddings and keywords.
	AddDocument(ctx context.Context, doc domain.Document, chunks []domain.Chunk) error

	// RemoveDocument evicts a document and every chunk it owns.
	// Returns domain.ErrUnknownDocument if the id is not present.
	RemoveDocument(ctx context.Context, docID string) error

	// Clear empties the index and the registry.
	Clear(ctx context.Context) error

	// VectorSearch ranks all chunks by cosine similarity to queryEmbedding alone.
	VectorSearch(ctx context.Context, queryEmbedding []float32, k int) ([]domain.SearchResult, error)

	// HybridSearch ranks all chunks by the combined vector+keyword+phrase score.
	HybridSearch(ctx context.Context, queryText string, queryEmbedding []float32, queryKeywords []string, k int) ([]domain.SearchResult, error)

	// CountDocuments returns the number of registered documents.
	CountDocuments(ctx context.Context) (int, error)

	// CountChunks returns the number of indexed chunks.
	CountChunks(ctx context.Context) (int, error)

	// HasDocuments reports whether the index holds at least one document.
	HasDocuments(ctx context.Context) (bool, error)

	// ListDocuments returns registered documents in insertion order.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// GetDocument retrieves a single document by id.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)
}
