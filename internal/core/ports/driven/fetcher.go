package driven

import "context"

// URLFetcher retrieves a webpage and extracts its main readable text (C1
// URL ingestion path). It is independent of Normaliser/NormaliserRegistry
// because the input is a URL, not an uploaded file, and the result already
// carries extracted content rather than raw bytes to decode.
type URLFetcher interface {
	// Fetch retrieves url and returns its extracted main content, title,
	// and a metadata stamp {source, type: "webpage", title}. Returns
	// domain.ErrFetchFailed if the page could not be retrieved within the
	// fetcher's timeout.
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// FetchResult is the output of a webpage fetch and extraction.
type FetchResult struct {
	Title    string
	Content  string
	Metadata map[string]any
}
