package domain

// SearchResult is a chunk projection returned by a similarity query.
// It exists only within one pipeline invocation.
type SearchResult struct {
	ChunkID    string
	Source     string
	Text       string
	Similarity float64
	// Reranked marks results whose Similarity was overwritten by the rerank
	// provider's relevance score.
	Reranked bool
}

// ScoredDocument is one rerank provider hit: the index of the input document
// and the provider's relevance score.
type ScoredDocument struct {
	Index int
	Score float64
}

// AnswerResult is the terminal output of one answer-pipeline invocation.
type AnswerResult struct {
	Text      string
	Citations []string
	Debug     AnswerDebug
}

// AnswerDebug carries pipeline diagnostics alongside the answer.
type AnswerDebug struct {
	// TopDocIDs are the context block chunk IDs in selection order.
	TopDocIDs []string
	LatencyMS int64
}
