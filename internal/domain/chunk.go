package domain

import "strings"

// Chunk is a bounded span of source text plus its embedding, the unit of
// retrieval. Chunks are created during ingestion and immutable once stored.
type Chunk struct {
	ID       string // "<doc-name>#<n>", n is 1-based
	Source   string // origin path or identifier
	Text     string
	Vector   []float32
	Metadata map[string]string
}

// Document is a parsed source file before chunking. The Vector is attached
// later by the embedding stage.
type Document struct {
	Source   string
	Text     string
	Metadata map[string]string
}

// BaseID strips the "#<n>" suffix from a chunk ID. Chunks from the same
// source document share a base ID; context selection dedupes on it.
func BaseID(chunkID string) string {
	if i := strings.Index(chunkID, "#"); i >= 0 {
		return chunkID[:i]
	}
	return chunkID
}
