package domain

import (
	"errors"
	"fmt"
)

// ErrProvider is the root of the collaborator failure taxonomy. Every
// transport-level failure (embedding, rerank, generation, ingestion parsing
// aside) unwraps to it.
var ErrProvider = errors.New("provider error")

var (
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = fmt.Errorf("embedding: %w", ErrProvider)
	// ErrChatProviderError signals a chat provider failure.
	ErrChatProviderError = fmt.Errorf("chat: %w", ErrProvider)
	// ErrRerankProviderError signals a rerank provider failure.
	ErrRerankProviderError = fmt.Errorf("rerank: %w", ErrProvider)

	// ErrUnsupportedFileType signals a file extension with no parser.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
