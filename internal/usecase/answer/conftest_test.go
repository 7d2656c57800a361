package answer

import (
	"context"

	"github.com/kailas-cloud/helixrag/internal/domain"
)

type mockEmbedder struct {
	embedQueryFn func(ctx context.Context, query string) ([]float32, error)
}

func (m *mockEmbedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return m.embedQueryFn(ctx, query)
}

type mockSearcher struct {
	vectorSearchFn func(ctx context.Context, vector []float32, k int) ([]domain.SearchResult, error)
}

func (m *mockSearcher) VectorSearch(ctx context.Context, vector []float32, k int) ([]domain.SearchResult, error) {
	return m.vectorSearchFn(ctx, vector, k)
}

type mockReranker struct {
	rerankFn func(ctx context.Context, query string, documents []string, topN int) ([]domain.ScoredDocument, error)
}

func (m *mockReranker) Rerank(ctx context.Context, query string, documents []string, topN int) ([]domain.ScoredDocument, error) {
	return m.rerankFn(ctx, query, documents, topN)
}

type mockChat struct {
	completeFn func(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

func (m *mockChat) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return m.completeFn(ctx, systemPrompt, userPrompt)
}

// identityReranker returns every document in input order with a flat score.
func identityReranker() *mockReranker {
	return &mockReranker{
		rerankFn: func(_ context.Context, _ string, documents []string, topN int) ([]domain.ScoredDocument, error) {
			n := len(documents)
			if topN < n {
				n = topN
			}
			scored := make([]domain.ScoredDocument, 0, n)
			for i := 0; i < n; i++ {
				scored = append(scored, domain.ScoredDocument{Index: i, Score: 0.5})
			}
			return scored, nil
		},
	}
}

func searchResults(ids ...string) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(ids))
	for _, id := range ids {
		results = append(results, domain.SearchResult{
			ChunkID:    id,
			Source:     id,
			Text:       "text for " + id,
			Similarity: 0.9,
		})
	}
	return results
}
