package domain

// SearchResult is a scored chunk returned by the hybrid index. It is
// transient: never stored, recomputed per query.
type SearchResult struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// VectorScore is cosine(query_embedding, chunk.Embedding), in [-1, 1].
	VectorScore float64

	// KeywordScore is the fraction of query keywords present in the chunk's
	// keyword bag, in [0, 1].
	KeywordScore float64

	// PhraseBoost rewards literal phrase presence in the chunk content,
	// in [0, 0.15].
	PhraseBoost float64

	// Score is 0.60*VectorScore + 0.25*KeywordScore + PhraseBoost.
	Score float64
}
