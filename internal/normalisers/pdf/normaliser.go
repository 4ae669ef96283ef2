// Package pdf extracts full-page text from PDF documents using a pure-Go
// PDF reader, avoiding a shell-out to an external pdftotext binary.
package pdf

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/serchad/internal/core/domain"
	"github.com/custodia-labs/serchad/internal/core/ports/driven"
	"github.com/custodia-labs/serchad/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles .pdf documents.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise extracts the full text of every page of the PDF.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content, err := extractText(raw.Content)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	return &driven.NormaliseResult{
		Document: domain.Document{
			Name:    raw.URI,
			Type:    "pdf",
			Title:   extractTitle(content, raw.URI),
			Content: content,
		},
	}, nil
}

// extractText reads every page of the PDF and concatenates its plain text.
func extractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	plainReader, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	out, err := io.ReadAll(plainReader)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}

const maxTitleLineLength = 200

// extractTitle uses the first non-empty, non-overlong line of extracted
// text as the title, falling back to the filename.
func extractTitle(content, uri string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > maxTitleLineLength {
			continue
		}
		return line
	}
	return normalisers.TitleFromName(uri)
}
