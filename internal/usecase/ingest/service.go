package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/helixrag/internal/domain"
	ingestpkg "github.com/kailas-cloud/helixrag/internal/ingest"
	"github.com/kailas-cloud/helixrag/internal/metrics"
)

// Options tune document chunking.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
}

// Service indexes documents: parse, chunk, embed, upsert. Unlike the answer
// pipeline, ingestion errors propagate to the caller.
type Service struct {
	embedder Embedder
	store    ChunkStore
	parser   Parser
	opts     Options
	logger   *zap.Logger
}

func NewService(embedder Embedder, store ChunkStore, parser Parser, opts Options, logger *zap.Logger) *Service {
	return &Service{
		embedder: embedder,
		store:    store,
		parser:   parser,
		opts:     opts,
		logger:   logger,
	}
}

// Seed indexes the given documents, or the built-in default corpus when
// documents is nil. Returns the number of chunks inserted.
func (s *Service) Seed(ctx context.Context, documents []domain.Document) (int, error) {
	if documents == nil {
		documents = DefaultDocuments
		s.logger.Info("seeding with default corpus", zap.Int("documents", len(documents)))
	}
	return s.index(ctx, documents)
}

// ProcessUploads indexes uploaded files. A file that fails to parse is
// skipped and logged; the rest of the batch continues.
func (s *Service) ProcessUploads(ctx context.Context, uploads []Upload) (int, error) {
	documents := make([]domain.Document, 0, len(uploads))
	for _, u := range uploads {
		doc, err := s.parser.ParseUpload(u.Name, u.Reader)
		if err != nil {
			s.logger.Warn("skipping unparsable upload", zap.String("name", u.Name), zap.Error(err))
			continue
		}
		documents = append(documents, doc)
	}
	if len(documents) == 0 {
		return 0, nil
	}
	return s.index(ctx, documents)
}

// ProcessDirectory indexes every supported file under root, optionally
// limited to the given extensions.
func (s *Service) ProcessDirectory(ctx context.Context, root string, extensions []string) (int, error) {
	documents, err := s.parser.ParseDirectory(root, extensions)
	if err != nil {
		return 0, fmt.Errorf("parse directory %s: %w", root, err)
	}
	if len(documents) == 0 {
		return 0, nil
	}
	return s.index(ctx, documents)
}

func (s *Service) index(ctx context.Context, documents []domain.Document) (int, error) {
	chunks := ingestpkg.SplitDocuments(documents, s.opts.ChunkSize, s.opts.ChunkOverlap)
	if len(chunks) == 0 {
		return 0, nil
	}
	s.logger.Info("chunked documents",
		zap.Int("documents", len(documents)),
		zap.Int("chunks", len(chunks)),
	)

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embedding count mismatch: %d vectors for %d chunks: %w",
			len(vectors), len(chunks), domain.ErrEmbeddingProviderError)
	}
	for i := range chunks {
		chunks[i].Vector = vectors[i]
	}

	inserted, err := s.store.UpsertChunks(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("upsert chunks: %w", err)
	}
	metrics.ChunksIngestedTotal.Add(float64(inserted))
	s.logger.Info("indexed chunks", zap.Int("inserted", inserted))
	return inserted, nil
}
