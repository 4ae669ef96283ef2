package domain

// RawDocument is the uninterpreted input to a normaliser: bytes from an
// upload or a URL fetch, plus the declared name whose extension the
// dispatcher uses to pick an extractor, and the declared content type.
type RawDocument struct {
	// URI is the original location: a filename as presented by the client,
	// or a fetched URL.
	URI string

	// MIMEType is the declared content type (e.g. "application/pdf").
	// May be empty; dispatch does not consult it and uses the URI's extension.
	MIMEType string

	// Content is the raw bytes to decode.
	Content []byte

	// Metadata carries connector-agnostic hints (e.g. a pre-known title).
	Metadata map[string]any
}
