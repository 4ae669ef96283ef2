// Package plaintext extracts text, markdown, and CSV files by reading
// their raw bytes as UTF-8 without further transformation (spec §4.1: these
// extensions pass through unmodified).
package plaintext

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/serchad/internal/core/domain"
	"github.com/custodia-labs/serchad/internal/core/ports/driven"
	"github.com/custodia-labs/serchad/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles .txt, .md, .markdown, and .csv files.
type Normaliser struct{}

// New creates a plaintext normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".txt", ".md", ".markdown", ".csv"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise reads raw.Content as UTF-8 without transformation.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	return &driven.NormaliseResult{
		Document: domain.Document{
			Name:    raw.URI,
			Type:    typeOf(raw.URI),
			Title:   titleFromMetadataOrName(raw),
			Content: string(raw.Content),
		},
	}, nil
}

// typeOf derives a short type label from the file extension.
func typeOf(uri string) string {
	switch strings.ToLower(filepath.Ext(uri)) {
	case ".md", ".markdown":
		return "markdown"
	case ".csv":
		return "csv"
	default:
		return "text"
	}
}

// titleFromMetadataOrName prefers a declared title in metadata (e.g. from a
// connector that already knows the real file name), falling back to
// deriving one from the URI.
func titleFromMetadataOrName(raw *domain.RawDocument) string {
	if raw.Metadata != nil {
		if title, ok := raw.Metadata["title"].(string); ok && title != "" {
			return title
		}
	}
	return normalisers.TitleFromName(raw.URI)
}
