package domain

import "errors"

// Domain errors represent business logic failures, distinct from
// infrastructure errors returned by adapters.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file extension or MIME type has no
	// registered extractor.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrFetchFailed indicates a URL could not be retrieved within its
	// timeout or returned a non-success status.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrEmbeddingUnavailable indicates the embedding provider is not
	// configured or not reachable. Ingest fails; already-inserted
	// documents are unaffected.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates no LLM provider is configured or
	// reachable. The chat router degrades rather than failing.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrSearchUnavailable indicates the hybrid index cannot be queried.
	ErrSearchUnavailable = errors.New("search unavailable")

	// ErrRagWithoutCorpus indicates a request for mode=rag when the index
	// holds no documents.
	ErrRagWithoutCorpus = errors.New("rag requested without an indexed corpus")

	// ErrNoRelevantResults indicates a grounded search found nothing above
	// either the relevance or fallback threshold.
	ErrNoRelevantResults = errors.New("no relevant results")

	// ErrUnknownDocument indicates a delete was requested for a document id
	// that is not in the registry.
	ErrUnknownDocument = errors.New("unknown document")

	// ErrUnknownProvider indicates a requested model/provider id is not
	// among the configured providers.
	ErrUnknownProvider = errors.New("unknown provider")
)
