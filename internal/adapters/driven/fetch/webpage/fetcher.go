// Package webpage implements URL ingestion: fetching a page with a
// browser-like user agent and extracting its main readable content.
package webpage

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/serchad/internal/core/domain"
	"github.com/custodia-labs/serchad/internal/core/ports/driven"
	htmlnorm "github.com/custodia-labs/serchad/internal/normalisers/html"
)

// DefaultTimeout is the fixed URL fetch timeout.
const DefaultTimeout = 30 * time.Second

const userAgent = "Mozilla/5.0 (compatible; SerchadBot/1.0; +https://github.com/custodia-labs/serchad)"

const maxBodyBytes = 10 << 20 // 10MB

// Ensure Fetcher implements the interface.
var _ driven.URLFetcher = (*Fetcher)(nil)

// Fetcher retrieves webpages over HTTP and extracts their main content.
type Fetcher struct {
	client *http.Client
}

// New creates a Fetcher with the fixed 30-second timeout.
func New() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: DefaultTimeout}}
}

// Fetch retrieves url and extracts its main readable content.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*driven.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.ErrFetchFailed
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, domain.ErrFetchFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.ErrFetchFailed
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.ErrFetchFailed
	}

	rawHTML := string(body)
	content := htmlnorm.ExtractMainContent(rawHTML)
	title := htmlnorm.ExtractTitle(rawHTML, url)

	return &driven.FetchResult{
		Title:   title,
		Content: content,
		Metadata: map[string]any{
			"source": url,
			"type":   "webpage",
			"title":  title,
		},
	}, nil
}
