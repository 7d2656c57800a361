package ingest

import (
	"context"
	"io"

	"github.com/kailas-cloud/helixrag/internal/domain"
)

type mockEmbedder struct {
	embedTextsFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *mockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	return m.embedTextsFn(ctx, texts)
}

type mockStore struct {
	upsertFn func(ctx context.Context, chunks []domain.Chunk) (int, error)
}

func (m *mockStore) UpsertChunks(ctx context.Context, chunks []domain.Chunk) (int, error) {
	return m.upsertFn(ctx, chunks)
}

type mockParser struct {
	parseUploadFn    func(name string, r io.Reader) (domain.Document, error)
	parseDirectoryFn func(root string, extensions []string) ([]domain.Document, error)
}

func (m *mockParser) ParseUpload(name string, r io.Reader) (domain.Document, error) {
	return m.parseUploadFn(name, r)
}

func (m *mockParser) ParseDirectory(root string, extensions []string) ([]domain.Document, error) {
	return m.parseDirectoryFn(root, extensions)
}

// unitEmbedder returns a fixed one-dimensional vector per text.
func unitEmbedder() *mockEmbedder {
	return &mockEmbedder{
		embedTextsFn: func(_ context.Context, texts []string) ([][]float32, error) {
			vectors := make([][]float32, len(texts))
			for i := range texts {
				vectors[i] = []float32{1}
			}
			return vectors, nil
		},
	}
}

// countingStore reports every chunk as inserted and records the batch.
type countingStore struct {
	mockStore
	chunks []domain.Chunk
}

func newCountingStore() *countingStore {
	s := &countingStore{}
	s.upsertFn = func(_ context.Context, chunks []domain.Chunk) (int, error) {
		s.chunks = chunks
		return len(chunks), nil
	}
	return s
}
