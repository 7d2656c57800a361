package answer

import (
	"context"

	"github.com/kailas-cloud/helixrag/internal/domain"
	"github.com/kailas-cloud/helixrag/internal/metrics"
)

// rerankOutcome carries the reordered candidates plus whether the reranker
// degraded to the original retrieval order.
type rerankOutcome struct {
	Results  []domain.SearchResult
	Degraded bool
	Cause    error
}

// rerank reorders candidates by relevance through the reranker provider.
// Any provider failure degrades to the first topN candidates in their
// original order instead of failing the pipeline.
func (s *Service) rerank(ctx context.Context, query string, candidates []domain.SearchResult, topN int) rerankOutcome {
	if len(candidates) == 0 {
		return rerankOutcome{}
	}
	if topN <= 0 || topN > len(candidates) {
		topN = len(candidates)
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Text
	}

	scored, err := s.reranker.Rerank(ctx, query, texts, topN)
	if err != nil {
		metrics.RerankDegradedTotal.Inc()
		return rerankOutcome{Results: candidates[:topN], Degraded: true, Cause: err}
	}

	reordered := make([]domain.SearchResult, 0, len(scored))
	for _, sd := range scored {
		if sd.Index < 0 || sd.Index >= len(candidates) {
			continue
		}
		r := candidates[sd.Index]
		r.Reranked = true
		r.Similarity = sd.Score
		reordered = append(reordered, r)
	}
	if len(reordered) == 0 {
		metrics.RerankDegradedTotal.Inc()
		return rerankOutcome{Results: candidates[:topN], Degraded: true}
	}
	return rerankOutcome{Results: reordered}
}
