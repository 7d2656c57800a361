package answer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/helixrag/internal/domain"
	"github.com/kailas-cloud/helixrag/internal/metrics"
)

const (
	emptyAnswerText = "I don't have enough information to answer your question. " +
		"Could you please rephrase or provide more context?"
	failedAnswerFormat = "I encountered an error while processing your question: %v"
)

// Options tune the answer pipeline.
type Options struct {
	DefaultTopK      int
	RerankTopN       int
	MaxContextBlocks int
	// UntrustedPrefixes are source path prefixes excluded for policy-intent
	// queries.
	UntrustedPrefixes []string
}

// Service runs the full retrieval-augmented answer pipeline:
// augment, fused retrieval, intent filtering, rerank, context selection,
// generation and citation extraction.
type Service struct {
	embedder Embedder
	store    VectorSearcher
	reranker Reranker
	chat     ChatProvider
	opts     Options
	logger   *zap.Logger
}

func NewService(embedder Embedder, store VectorSearcher, reranker Reranker, chat ChatProvider, opts Options, logger *zap.Logger) *Service {
	return &Service{
		embedder: embedder,
		store:    store,
		reranker: reranker,
		chat:     chat,
		opts:     opts,
		logger:   logger,
	}
}

// Answer runs the pipeline for one query. It always returns a usable result:
// provider and storage failures produce a fallback answer text instead of an
// error, and an empty corpus produces a fixed clarification request.
func (s *Service) Answer(ctx context.Context, query string, topK int) domain.AnswerResult {
	started := time.Now()
	if topK <= 0 {
		topK = s.opts.DefaultTopK
	}

	result, outcome := s.answer(ctx, query, topK)
	elapsed := time.Since(started)
	result.Debug.LatencyMS = elapsed.Milliseconds()
	metrics.PipelineDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())

	s.logger.Info("answer pipeline finished",
		zap.String("outcome", outcome),
		zap.Int("top_k", topK),
		zap.Int("citations", len(result.Citations)),
		zap.Duration("elapsed", elapsed),
	)
	return result
}

func (s *Service) answer(ctx context.Context, query string, topK int) (domain.AnswerResult, string) {
	queries := Augment(query)

	candidates, err := s.retrieveFused(ctx, queries, topK)
	if err != nil {
		s.logger.Warn("fused retrieval failed", zap.Error(err))
		return failedResult(err), "failed"
	}

	candidates = filterUntrusted(query, candidates, s.opts.UntrustedPrefixes)
	if len(candidates) == 0 {
		return domain.AnswerResult{Text: emptyAnswerText}, "empty"
	}

	outcome := s.rerank(ctx, query, candidates, s.opts.RerankTopN)
	if outcome.Degraded {
		s.logger.Warn("rerank degraded to retrieval order", zap.Error(outcome.Cause))
	}

	blocks := selectContext(outcome.Results, s.opts.MaxContextBlocks)
	if len(blocks) == 0 {
		return domain.AnswerResult{Text: emptyAnswerText}, "empty"
	}

	text, err := s.chat.Complete(ctx, systemPrompt, buildUserPrompt(query, blocks))
	if err != nil {
		s.logger.Warn("answer generation failed", zap.Error(err))
		return failedResult(err), "failed"
	}
	text = strings.TrimSpace(text)

	topIDs := make([]string, 0, len(blocks))
	for _, b := range blocks {
		topIDs = append(topIDs, b.ChunkID)
	}

	return domain.AnswerResult{
		Text:      text,
		Citations: extractCitations(text, blocks),
		Debug:     domain.AnswerDebug{TopDocIDs: topIDs},
	}, "done"
}

// retrieveFused embeds every augmented query concurrently, over-fetches each
// similarity search, then merges the per-query result lists first-seen-wins
// in augmented-set order.
func (s *Service) retrieveFused(ctx context.Context, queries []string, topK int) ([]domain.SearchResult, error) {
	perQuery := make([][]domain.SearchResult, len(queries))
	fetchK := topK * 2

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			vector, err := s.embedder.EmbedQuery(gctx, q)
			if err != nil {
				return fmt.Errorf("embed query: %w", err)
			}
			results, err := s.store.VectorSearch(gctx, vector, fetchK)
			if err != nil {
				return fmt.Errorf("vector search: %w", err)
			}
			perQuery[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var merged []domain.SearchResult
	for _, results := range perQuery {
		for _, r := range results {
			if _, ok := seen[r.ChunkID]; ok {
				continue
			}
			seen[r.ChunkID] = struct{}{}
			merged = append(merged, r)
		}
	}
	return merged, nil
}

func failedResult(err error) domain.AnswerResult {
	return domain.AnswerResult{Text: fmt.Sprintf(failedAnswerFormat, err)}
}
