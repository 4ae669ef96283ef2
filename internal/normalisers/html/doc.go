// Package html provides a Normaliser implementation for HTML documents
// plus the main-content extraction helpers used by webpage ingestion. It
// extracts readable text content from HTML, stripping tags, scripts,
// styles, and decoding entities for clean searchable content.
package html
