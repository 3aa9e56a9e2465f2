// Package normalisers provides text extraction for fetched papers.
// Each normaliser knows how to extract text content from a specific MIME
// type; the Registry picks one per document and implements driven.TextExtractor.
//
// Normalisers are registered with the Registry at startup.
package normalisers
