// Package normalisers provides implementations of the Normaliser interface
// for various document formats. Each normaliser knows how to extract text
// content from a specific family of file extensions.
//
// Normalisers are registered with the NormaliserRegistry at startup.
package normalisers
