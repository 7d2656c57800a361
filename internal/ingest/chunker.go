package ingest

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kailas-cloud/helixrag/internal/domain"
)

// SplitDocuments chunks every document with the given word budget and overlap.
func SplitDocuments(docs []domain.Document, size, overlap int) []domain.Chunk {
	var chunks []domain.Chunk
	for i := range docs {
		chunks = append(chunks, SplitDocument(&docs[i], size, overlap)...)
	}
	return chunks
}

// SplitDocument splits one document into overlapping word-window chunks.
// Chunk IDs are "<file-name>#<n>" with a 1-based index; the split is
// deterministic for a fixed size/overlap.
func SplitDocument(doc *domain.Document, size, overlap int) []domain.Chunk {
	if size <= 0 {
		return nil
	}
	if overlap >= size {
		overlap = size - 1
	}

	words := strings.Fields(doc.Text)
	if len(words) == 0 {
		return nil
	}

	name := chunkBaseName(doc)

	var chunks []domain.Chunk
	start := 0
	for n := 1; ; n++ {
		end := min(start+size, len(words))

		metadata := make(map[string]string, len(doc.Metadata)+1)
		for k, v := range doc.Metadata {
			metadata[k] = v
		}
		metadata["chunk_index"] = strconv.Itoa(n - 1)

		chunks = append(chunks, domain.Chunk{
			ID:       fmt.Sprintf("%s#%d", name, n),
			Source:   doc.Source,
			Text:     strings.Join(words[start:end], " "),
			Metadata: metadata,
		})

		if end >= len(words) {
			break
		}
		start = end - overlap
	}

	return chunks
}

// chunkBaseName picks the identifier chunks of this document share: the
// parsed file name when present, otherwise the last path element of Source.
func chunkBaseName(doc *domain.Document) string {
	if name := doc.Metadata["file_name"]; name != "" {
		return name
	}
	if doc.Source != "" {
		return filepath.Base(doc.Source)
	}
	return "doc"
}
