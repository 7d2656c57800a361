// Package helixrag provides an embedded client for the retrieval-augmented
// answering pipeline: same wiring as the HTTP server, without the transport.
package helixrag

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbRedis "github.com/kailas-cloud/helixrag/internal/db/redis"
	"github.com/kailas-cloud/helixrag/internal/domain"
	"github.com/kailas-cloud/helixrag/internal/ingest"
	"github.com/kailas-cloud/helixrag/internal/repository/chunkstore"
	"github.com/kailas-cloud/helixrag/internal/transport/dashscope"
	openaiProv "github.com/kailas-cloud/helixrag/internal/transport/openai"
	answeruc "github.com/kailas-cloud/helixrag/internal/usecase/answer"
	ingestuc "github.com/kailas-cloud/helixrag/internal/usecase/ingest"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the helixrag embedded SDK entry point.
type Client struct {
	store     *dbRedis.Store
	answerSvc *answeruc.Service
	ingestSvc *ingestuc.Service
}

// New creates a Client and connects to the vector store.
func New(opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("helixrag: redis address required (use WithRedis)")
	}
	if cfg.apiKey == "" {
		return nil, errors.New("helixrag: provider api key required (use WithDashScope)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("helixrag: create redis store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("helixrag: vector store not ready: %w", err)
	}

	chunks := chunkstore.New(store, cfg.keyPrefix, cfg.dimensions)
	if err := chunks.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("helixrag: ensure vector index: %w", err)
	}

	embedder := openaiProv.NewEmbedder(&openaiProv.EmbedderConfig{
		APIKey:     cfg.apiKey,
		BaseURL:    cfg.baseURL,
		Model:      cfg.embedModel,
		Dimensions: cfg.dimensions,
		Logger:     cfg.logger,
	})
	chat := openaiProv.NewChatClient(&openaiProv.ChatConfig{
		APIKey:      cfg.apiKey,
		BaseURL:     cfg.baseURL,
		Model:       cfg.chatModel,
		Temperature: cfg.temperature,
		MaxTokens:   cfg.maxTokens,
		Logger:      cfg.logger,
	})
	reranker := dashscope.NewRerankClient(&dashscope.RerankConfig{
		APIKey: cfg.apiKey,
		URL:    cfg.rerankURL,
		Model:  cfg.rerankModel,
		Logger: cfg.logger,
	})

	answerSvc := answeruc.NewService(embedder, chunks, reranker, chat, answeruc.Options{
		DefaultTopK:       cfg.topK,
		RerankTopN:        cfg.rerankTopN,
		MaxContextBlocks:  cfg.maxBlocks,
		UntrustedPrefixes: cfg.untrustedPrefixes,
	}, cfg.logger)

	ingestSvc := ingestuc.NewService(embedder, chunks, ingest.NewParser(cfg.logger), ingestuc.Options{
		ChunkSize:    cfg.chunkSize,
		ChunkOverlap: cfg.chunkOverlap,
	}, cfg.logger)

	return &Client{
		store:     store,
		answerSvc: answerSvc,
		ingestSvc: ingestSvc,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks vector store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Answer runs the full answer pipeline for one query. topK <= 0 uses the
// configured default.
func (c *Client) Answer(ctx context.Context, query string, topK int) domain.AnswerResult {
	return c.answerSvc.Answer(ctx, query, topK)
}

// Seed indexes documents, or the built-in default corpus when documents
// is nil. Returns the number of chunks inserted.
func (c *Client) Seed(ctx context.Context, documents []domain.Document) (int, error) {
	return c.ingestSvc.Seed(ctx, documents)
}

// ProcessDirectory indexes every supported file under root.
func (c *Client) ProcessDirectory(ctx context.Context, root string, extensions []string) (int, error) {
	return c.ingestSvc.ProcessDirectory(ctx, root, extensions)
}
