package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/serchad/internal/core/domain"
)

func chunk(id, docID, content string, embedding []float32, keywords []string) domain.Chunk {
	return domain.Chunk{
		ID:         id,
		DocumentID: docID,
		Content:    content,
		Embedding:  embedding,
		Keywords:   keywords,
	}
}

func TestIndex_AddAndGetDocument(t *testing.T) {
	ctx := context.Background()
	idx := New()

	doc := domain.Document{ID: "doc-1", Name: "a.txt"}
	chunks := []domain.Chunk{chunk("doc-1-chunk-0", "doc-1", "hello world", []float32{1, 0}, []string{"hello"})}

	require.NoError(t, idx.AddDocument(ctx, doc, chunks))

	got, err := idx.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", got.Name)
	assert.Equal(t, 1, got.ChunkCount)

	count, err := idx.CountChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIndex_GetDocument_Unknown(t *testing.T) {
	idx := New()
	_, err := idx.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownDocument)
}

func TestIndex_RemoveDocument_Unknown(t *testing.T) {
	idx := New()
	err := idx.RemoveDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownDocument)
}

func TestIndex_RemoveDocument_Isolation(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.AddDocument(ctx, domain.Document{ID: "a"}, []domain.Chunk{
		chunk("a-0", "a", "apples are red", []float32{1, 0}, []string{"apples"}),
	}))
	require.NoError(t, idx.AddDocument(ctx, domain.Document{ID: "b"}, []domain.Chunk{
		chunk("b-0", "b", "bananas are yellow", []float32{0, 1}, []string{"bananas"}),
	}))

	require.NoError(t, idx.RemoveDocument(ctx, "a"))

	resultsA, err := idx.HybridSearch(ctx, "apples", []float32{1, 0}, []string{"apples"}, 8)
	require.NoError(t, err)
	assert.Empty(t, resultsA)

	resultsB, err := idx.HybridSearch(ctx, "bananas", []float32{0, 1}, []string{"bananas"}, 8)
	require.NoError(t, err)
	require.Len(t, resultsB, 1)
	assert.Equal(t, "b-0", resultsB[0].Chunk.ID)
}

func TestIndex_AddThenRemove_RestoresChunkCount(t *testing.T) {
	ctx := context.Background()
	idx := New()

	doc := domain.Document{ID: "doc-1"}
	chunks := []domain.Chunk{chunk("doc-1-chunk-0", "doc-1", "content", []float32{1, 0}, nil)}

	require.NoError(t, idx.AddDocument(ctx, doc, chunks))
	before, _ := idx.CountChunks(ctx)

	require.NoError(t, idx.RemoveDocument(ctx, "doc-1"))
	after, _ := idx.CountChunks(ctx)

	assert.Equal(t, 1, before)
	assert.Equal(t, 0, after)
}

func TestIndex_Clear_Idempotent(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.AddDocument(ctx, domain.Document{ID: "a"}, []domain.Chunk{
		chunk("a-0", "a", "x", []float32{1}, nil),
	}))

	require.NoError(t, idx.Clear(ctx))
	require.NoError(t, idx.Clear(ctx))

	has, err := idx.HasDocuments(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestIndex_VectorSearch_RanksByCosineSimilarity(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.AddDocument(ctx, domain.Document{ID: "doc"}, []domain.Chunk{
		chunk("near", "doc", "near", []float32{1, 0}, nil),
		chunk("far", "doc", "far", []float32{0, 1}, nil),
	}))

	results, err := idx.VectorSearch(ctx, []float32{1, 0}, 8)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "near", results[0].Chunk.ID)
	assert.InDelta(t, 1.0, results[0].VectorScore, 1e-9)
}

func TestIndex_HybridSearch_ScoringMonotonicity(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.AddDocument(ctx, domain.Document{ID: "doc"}, []domain.Chunk{
		chunk("x", "doc", "invoice invoice details here", []float32{0.5, 0.5}, []string{"invoice", "details"}),
		chunk("y", "doc", "unrelated content entirely", []float32{0.5, 0.5}, nil),
	}))

	results, err := idx.HybridSearch(ctx, "invoice", []float32{0.5, 0.5}, []string{"invoice"}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "x", results[0].Chunk.ID)
}

func TestIndex_HybridSearch_ScoreBounds(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.AddDocument(ctx, domain.Document{ID: "doc"}, []domain.Chunk{
		chunk("c", "doc", "alpha beta gamma delta", []float32{1, 0}, []string{"alpha", "beta", "gamma", "delta"}),
	}))

	results, err := idx.HybridSearch(ctx, "alpha beta", []float32{1, 0}, []string{"alpha", "beta"}, 8)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.GreaterOrEqual(t, r.KeywordScore, 0.0)
	assert.LessOrEqual(t, r.KeywordScore, 1.0)
	assert.GreaterOrEqual(t, r.PhraseBoost, 0.0)
	assert.LessOrEqual(t, r.PhraseBoost, 0.15)
	assert.GreaterOrEqual(t, r.Score, -0.45)
	assert.LessOrEqual(t, r.Score, 0.85)
}

func TestIndex_ListDocuments_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.AddDocument(ctx, domain.Document{ID: "first"}, nil))
	require.NoError(t, idx.AddDocument(ctx, domain.Document{ID: "second"}, nil))
	require.NoError(t, idx.AddDocument(ctx, domain.Document{ID: "third"}, nil))

	docs, err := idx.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{docs[0].ID, docs[1].ID, docs[2].ID})
}

func TestIndex_HasDocuments(t *testing.T) {
	ctx := context.Background()
	idx := New()

	has, err := idx.HasDocuments(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, idx.AddDocument(ctx, domain.Document{ID: "a"}, nil))

	has, err = idx.HasDocuments(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestIndex_HybridSearch_RespectsK(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.AddDocument(ctx, domain.Document{ID: "doc"}, []domain.Chunk{
		chunk("a", "doc", "one", []float32{1, 0}, nil),
		chunk("b", "doc", "two", []float32{1, 0}, nil),
		chunk("c", "doc", "three", []float32{1, 0}, nil),
	}))

	results, err := idx.HybridSearch(ctx, "", []float32{1, 0}, nil, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
