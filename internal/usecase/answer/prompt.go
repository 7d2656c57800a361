package answer

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/helixrag/internal/domain"
)

const systemPrompt = "You are a helpful customer support assistant. " +
	"Answer strictly using ONLY the provided context blocks. " +
	"When you use information from a block, append its id in square brackets, e.g., [chunk_id]. " +
	"Always include at least one citation when an answer is given. " +
	"If the context does not contain the answer, reply exactly: I don't know. " +
	"Avoid markdown headings or special formatting; keep answers concise and professional."

const userPromptTemplate = "You will be given context blocks in the form [chunk_id] text. " +
	"Use them to answer and include [chunk_id] citations.\n\nContext:\n%s\n\nQuestion:\n%s"

// formatContext renders the selected blocks as "[chunk_id] text" paragraphs.
// Block text is trimmed so whitespace-padded chunks render cleanly.
func formatContext(blocks []domain.SearchResult) string {
	if len(blocks) == 0 {
		return "N/A"
	}
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, fmt.Sprintf("[%s] %s", b.ChunkID, strings.TrimSpace(b.Text)))
	}
	return strings.Join(parts, "\n\n")
}

func buildUserPrompt(query string, blocks []domain.SearchResult) string {
	return fmt.Sprintf(userPromptTemplate, formatContext(blocks), query)
}
