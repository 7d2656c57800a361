package answer

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/helixrag/internal/domain"
)

func newRerankService(r Reranker) *Service {
	return NewService(nil, nil, r, nil, Options{RerankTopN: 6}, zap.NewNop())
}

func TestRerankReordersAndMarks(t *testing.T) {
	candidates := searchResults("a#1", "b#1", "c#1")
	reranker := &mockReranker{
		rerankFn: func(_ context.Context, _ string, documents []string, topN int) ([]domain.ScoredDocument, error) {
			if len(documents) != 3 {
				t.Fatalf("expected 3 documents, got %d", len(documents))
			}
			return []domain.ScoredDocument{
				{Index: 2, Score: 0.95},
				{Index: 0, Score: 0.40},
			}, nil
		},
	}

	got := newRerankService(reranker).rerank(context.Background(), "q", candidates, 2)

	if got.Degraded {
		t.Fatal("expected a non-degraded outcome")
	}
	if len(got.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got.Results))
	}
	if got.Results[0].ChunkID != "c#1" || got.Results[1].ChunkID != "a#1" {
		t.Errorf("unexpected order: %v", got.Results)
	}
	for _, r := range got.Results {
		if !r.Reranked {
			t.Errorf("result %s not marked as reranked", r.ChunkID)
		}
	}
	if got.Results[0].Similarity != 0.95 {
		t.Errorf("similarity not overwritten with relevance score: %v", got.Results[0].Similarity)
	}
}

func TestRerankDegradesToInputOrderOnFailure(t *testing.T) {
	candidates := searchResults("a#1", "b#1", "c#1", "d#1")
	reranker := &mockReranker{
		rerankFn: func(context.Context, string, []string, int) ([]domain.ScoredDocument, error) {
			return nil, errors.New("connection refused")
		},
	}

	got := newRerankService(reranker).rerank(context.Background(), "q", candidates, 2)

	if !got.Degraded {
		t.Fatal("expected a degraded outcome")
	}
	if len(got.Results) != 2 {
		t.Fatalf("expected first top_n of input order, got %d results", len(got.Results))
	}
	if got.Results[0].ChunkID != "a#1" || got.Results[1].ChunkID != "b#1" {
		t.Errorf("fallback must preserve input order, got %v", got.Results)
	}
	for _, r := range got.Results {
		if r.Reranked {
			t.Errorf("fallback result %s must stay unmarked", r.ChunkID)
		}
	}
}

func TestRerankEmptyInputSkipsProvider(t *testing.T) {
	called := false
	reranker := &mockReranker{
		rerankFn: func(context.Context, string, []string, int) ([]domain.ScoredDocument, error) {
			called = true
			return nil, nil
		},
	}

	got := newRerankService(reranker).rerank(context.Background(), "q", nil, 6)
	if called {
		t.Fatal("provider must not be called for empty input")
	}
	if len(got.Results) != 0 || got.Degraded {
		t.Fatalf("expected empty non-degraded outcome, got %+v", got)
	}
}

func TestRerankTopNLargerThanInput(t *testing.T) {
	candidates := searchResults("a#1", "b#1")
	got := newRerankService(identityReranker()).rerank(context.Background(), "q", candidates, 10)
	if len(got.Results) != 2 {
		t.Fatalf("expected all candidates back, got %d", len(got.Results))
	}
}
