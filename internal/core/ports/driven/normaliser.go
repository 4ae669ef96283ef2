package driven

import (
	"context"

	"github.com/custodia-labs/serchad/internal/core/domain"
)

// Normaliser decodes one supported file format or fetched HTML into plain
// text with a title (C1). Each normaliser handles one or a small family of
// extensions/MIME types.
type Normaliser interface {
	// SupportedExtensions returns the lowercase, dot-prefixed extensions
	// this normaliser handles (e.g. ".pdf").
	SupportedExtensions() []string

	// Priority breaks ties when more than one registered normaliser claims
	// the same extension; higher wins. Fallback/catch-all normalisers
	// should return a low priority.
	Priority() int

	// Normalise transforms a raw document into a document with Content and
	// Title populated. Chunking and keyword extraction happen afterward in
	// the PostProcessor pipeline.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Document is the normalised document with Content and Title populated.
	Document domain.Document
}

// NormaliserRegistry dispatches a raw document to the highest-priority
// registered normaliser matching its declared name's extension.
type NormaliserRegistry interface {
	// Register adds a normaliser for each of its SupportedExtensions.
	Register(n Normaliser)

	// Normalise dispatches by the extension of raw.URI and runs the
	// matching normaliser. Returns domain.ErrUnsupportedFormat if no
	// normaliser claims the extension.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)

	// SupportedExtensions returns every extension claimed by a registered
	// normaliser.
	SupportedExtensions() []string
}
