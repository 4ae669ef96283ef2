// Package normalisers provides implementations of the Normaliser interface
// for each supported document format. Each normaliser knows how to decode
// one extension family into plain text and a title. Normalisers are
// registered with the Registry at startup and dispatched by the extension
// of the document's declared name.
package normalisers

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/serchad/internal/core/domain"
	"github.com/custodia-labs/serchad/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches by the lowercased extension of a raw document's URI,
// preferring the highest-Priority normaliser when more than one claims the
// same extension.
type Registry struct {
	byExt map[string][]driven.Normaliser
}

// NewRegistry creates an empty normaliser registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string][]driven.Normaliser)}
}

// Register adds a normaliser for each of its SupportedExtensions.
func (r *Registry) Register(n driven.Normaliser) {
	for _, ext := range n.SupportedExtensions() {
		r.byExt[ext] = append(r.byExt[ext], n)
	}
}

// Normalise dispatches by the extension of raw.URI.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	ext := extensionOf(raw.URI)
	candidates := r.byExt[ext]
	if len(candidates) == 0 {
		return nil, domain.ErrUnsupportedFormat
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Priority() > best.Priority() {
			best = c
		}
	}
	return best.Normalise(ctx, raw)
}

// SupportedExtensions returns every extension claimed by a registered
// normaliser.
func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}

// extensionOf returns the lowercased, dot-prefixed extension of a declared
// name, or "" if there is none.
func extensionOf(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// TitleFromName derives a human-readable title from a filename by stripping
// its extension and replacing underscores/hyphens with spaces. Used by
// normalisers as the fallback when format-specific title metadata is absent.
func TitleFromName(uri string) string {
	name := filepath.Base(uri)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
