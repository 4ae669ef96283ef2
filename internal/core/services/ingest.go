package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/serchad/internal/core/domain"
	"github.com/custodia-labs/serchad/internal/core/ports/driven"
)

// Ingestor orchestrates C1-C6: format extraction, chunking, keyword
// extraction, embedding, and publication to the document index. Each
// ingested file or URL is independent; a failure on one document never
// touches documents already published.
type Ingestor struct {
	normalisers driven.NormaliserRegistry
	fetcher     driven.URLFetcher
	pipeline    driven.PostProcessorPipeline
	embedder    *EmbedderGateway
	index       driven.DocumentIndex
}

// NewIngestor wires the ingestion pipeline to its dependencies.
func NewIngestor(normalisers driven.NormaliserRegistry, fetcher driven.URLFetcher, pipeline driven.PostProcessorPipeline, embedder *EmbedderGateway, index driven.DocumentIndex) *Ingestor {
	return &Ingestor{
		normalisers: normalisers,
		fetcher:     fetcher,
		pipeline:    pipeline,
		embedder:    embedder,
		index:       index,
	}
}

// IngestFile normalises, chunks, embeds, and publishes an uploaded file.
// Returns domain.ErrUnsupportedFormat if no normaliser claims the file's
// extension, or a wrapped domain.ErrEmbeddingUnavailable if the embedder
// gateway cannot be reached.
func (in *Ingestor) IngestFile(ctx context.Context, name, mimeType string, content []byte) (*domain.Document, error) {
	result, err := in.normalisers.Normalise(ctx, &domain.RawDocument{
		URI:      name,
		MIMEType: mimeType,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}
	return in.publish(ctx, result.Document)
}

// IngestURL fetches and extracts a webpage, then chunks, embeds, and
// publishes it as a document. Returns domain.ErrFetchFailed if the page
// could not be retrieved.
func (in *Ingestor) IngestURL(ctx context.Context, url string) (*domain.Document, error) {
	result, err := in.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	doc := domain.Document{
		Name:    url,
		Type:    "webpage",
		Title:   result.Title,
		Content: result.Content,
	}
	return in.publish(ctx, doc)
}

// publish runs the postprocessor pipeline, embeds the resulting chunks, and
// atomically adds the document and chunks to the index. Embedding happens
// before any index lock is acquired, per the concurrency model: the write
// lock must never be held across an embedder call.
func (in *Ingestor) publish(ctx context.Context, doc domain.Document) (*domain.Document, error) {
	doc.ID = uuid.New().String()
	doc.AddedAt = time.Now()

	chunks, err := in.pipeline.Process(ctx, &doc)
	if err != nil {
		return nil, fmt.Errorf("postprocess: %w", err)
	}

	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Content
		}

		vectors, err := in.embedder.EmbedMany(ctx, texts)
		if err != nil {
			return nil, err
		}
		for i := range chunks {
			chunks[i].Embedding = vectors[i]
		}
	}

	doc.ChunkCount = len(chunks)

	if err := in.index.AddDocument(ctx, doc, chunks); err != nil {
		return nil, fmt.Errorf("add document: %w", err)
	}
	return &doc, nil
}

// RemoveDocument evicts a document and its chunks from the index.
func (in *Ingestor) RemoveDocument(ctx context.Context, docID string) error {
	return in.index.RemoveDocument(ctx, docID)
}

// Clear empties the index and document registry.
func (in *Ingestor) Clear(ctx context.Context) error {
	return in.index.Clear(ctx)
}

// ListDocuments returns registered documents in insertion order.
func (in *Ingestor) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	return in.index.ListDocuments(ctx)
}

// Stats summarises the index for the /stats endpoint.
type Stats struct {
	DocumentCount int
	ChunkCount    int
}

// Stats reports document and chunk counts.
func (in *Ingestor) Stats(ctx context.Context) (Stats, error) {
	docs, err := in.index.CountDocuments(ctx)
	if err != nil {
		return Stats{}, err
	}
	chunks, err := in.index.CountChunks(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{DocumentCount: docs, ChunkCount: chunks}, nil
}
