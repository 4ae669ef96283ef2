package domain

import "time"

// Document is a registry entry for an ingested file or URL.
type Document struct {
	// ID is the unique identifier generated at ingest time.
	ID string

	// Name is the filename or URL as presented by the client.
	Name string

	// Type is a short label for the source format (e.g. "pdf", "webpage").
	Type string

	// Title, when known, comes from document metadata (HTML <title>, DOCX
	// core properties) or falls back to a filename derived from Name. It is
	// copied onto every chunk produced from this document.
	Title string

	// Content is the normalised plain-text body produced by the format
	// extractor. It is the chunker's input; the index stores the Document as
	// published, Content included.
	Content string

	// ChunkCount is the number of chunks produced from this document.
	ChunkCount int

	// AddedAt is when the document was ingested.
	AddedAt time.Time
}

// Chunk is the unit of retrieval: a bounded excerpt of a Document.
type Chunk struct {
	// ID is unique in the index, derived as "<source-name>-chunk-<index>".
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Content is the trimmed chunk text. It is at most ChunkSize characters,
	// except that a single sentence longer than ChunkSize is kept whole as
	// one oversize chunk.
	Content string

	// Source is the owning document's name (filename or URL).
	Source string

	// Type mirrors the owning document's Type.
	Type string

	// ChunkIndex is the dense, monotonic position within the document, starting at 0.
	ChunkIndex int

	// CharStart and CharEnd are advisory cursor positions into the normalised
	// document text. They approximate true offsets via
	// index*(chunk_size-chunk_overlap) and are not load-bearing for correctness.
	CharStart int
	CharEnd   int

	// Title, when known, is carried from the owning document's metadata.
	Title string

	// Embedding is the L2-normalized dense vector produced by the embedder gateway.
	Embedding []float32

	// Keywords is an ordered set of up to 20 distinct lowercase tokens,
	// highest-frequency first, excluding stop-words and tokens of length <= 2.
	Keywords []string
}
