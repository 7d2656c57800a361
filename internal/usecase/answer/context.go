package answer

import (
	"github.com/kailas-cloud/helixrag/internal/domain"
)

// selectContext picks the final context blocks from the ranked candidates.
// Candidates that share a base document id with an already selected block are
// skipped so the prompt covers distinct parts of the corpus. Selection stops
// at maxBlocks.
func selectContext(candidates []domain.SearchResult, maxBlocks int) []domain.SearchResult {
	if maxBlocks <= 0 || len(candidates) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, maxBlocks)
	selected := make([]domain.SearchResult, 0, maxBlocks)
	for _, c := range candidates {
		base := domain.BaseID(c.ChunkID)
		if _, ok := seen[base]; ok {
			continue
		}
		seen[base] = struct{}{}
		selected = append(selected, c)
		if len(selected) == maxBlocks {
			break
		}
	}
	return selected
}
