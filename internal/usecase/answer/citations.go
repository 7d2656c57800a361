package answer

import (
	"regexp"

	"github.com/kailas-cloud/helixrag/internal/domain"
)

var citationPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// extractCitations pulls [chunk_id] references out of the generated answer,
// keeps only ids that belong to the provided context blocks, and dedupes them
// preserving first occurrence order. When the model cited nothing valid, all
// block ids are returned so the caller can still attribute the answer.
func extractCitations(text string, blocks []domain.SearchResult) []string {
	if len(blocks) == 0 {
		return nil
	}

	valid := make(map[string]struct{}, len(blocks))
	for _, b := range blocks {
		valid[b.ChunkID] = struct{}{}
	}

	var citations []string
	seen := make(map[string]struct{})
	for _, m := range citationPattern.FindAllStringSubmatch(text, -1) {
		id := m[1]
		if _, ok := valid[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		citations = append(citations, id)
	}

	if len(citations) > 0 {
		return citations
	}

	all := make([]string, 0, len(blocks))
	for _, b := range blocks {
		all = append(all, b.ChunkID)
	}
	return all
}
