package answer

import (
	"context"

	"github.com/kailas-cloud/helixrag/internal/domain"
)

// Embedder vectorizes query text.
type Embedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
}

// VectorSearcher runs KNN similarity search over the chunk index.
// Results come back best-first; an empty result is not an error.
type VectorSearcher interface {
	VectorSearch(ctx context.Context, vector []float32, k int) ([]domain.SearchResult, error)
}

// Reranker scores documents against a query and returns them best-first,
// at most topN entries.
type Reranker interface {
	Rerank(ctx context.Context, query string, documents []string, topN int) ([]domain.ScoredDocument, error)
}

// ChatProvider generates free text from a system+user prompt pair.
type ChatProvider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
