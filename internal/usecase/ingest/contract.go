package ingest

import (
	"context"
	"io"

	"github.com/kailas-cloud/helixrag/internal/domain"
)

// Embedder vectorizes chunk texts in batch, order-preserving.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ChunkStore persists embedded chunks and reports how many were newly
// inserted (overwritten chunks are not counted).
type ChunkStore interface {
	UpsertChunks(ctx context.Context, chunks []domain.Chunk) (int, error)
}

// Parser turns files, uploads and directories into raw documents.
type Parser interface {
	ParseUpload(name string, r io.Reader) (domain.Document, error)
	ParseDirectory(root string, extensions []string) ([]domain.Document, error)
}

// Upload is one file received from the transport layer.
type Upload struct {
	Name   string
	Reader io.Reader
}
