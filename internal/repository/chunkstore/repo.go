// Package chunkstore persists text chunks with their embeddings in Redis
// and serves KNN similarity queries over them.
package chunkstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/helixrag/internal/db"
	"github.com/kailas-cloud/helixrag/internal/domain"
)

// store is the consumer interface for chunk storage (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements the vector store contract consumed by the answer and
// ingest usecases.
type Repo struct {
	store     store
	keyPrefix string
	dims      int
}

// New creates a chunk repository. keyPrefix namespaces all Redis keys;
// dims is the embedding dimension used when the index is created.
func New(s store, keyPrefix string, dims int) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix, dims: dims}
}

// EnsureIndex creates the chunk KNN index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return fmt.Errorf("probe chunk index: %w", err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:     r.indexName(),
		Prefixes: []string{r.docPrefix()},
		Fields: []db.IndexField{
			{Name: "source", Type: db.IndexFieldTag},
			{Name: "__content", Type: db.IndexFieldText},
			{
				Name:       "__vector",
				Type:       db.IndexFieldVector,
				VectorDim:  r.dims,
				VectorAlgo: db.VectorHNSW,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		// Another instance may have created it between the probe and here.
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create chunk index: %w", err)
	}
	return nil
}

// UpsertChunks stores a batch of embedded chunks in one write round-trip and
// returns the number of chunks newly inserted. Chunks whose key already
// existed are overwritten but not counted.
func (r *Repo) UpsertChunks(ctx context.Context, chunks []domain.Chunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	items := make([]db.HashSetItem, 0, len(chunks))
	for i := range chunks {
		c := &chunks[i]
		if c.ID == "" {
			return 0, fmt.Errorf("chunk %d has empty id", i)
		}
		if len(c.Vector) == 0 {
			return 0, fmt.Errorf("chunk %s has no embedding", c.ID)
		}
		items = append(items, db.HashSetItem{
			Key:    r.docPrefix() + c.ID,
			Fields: buildHashFields(c),
		})
	}

	overwritten := 0
	for _, item := range items {
		exists, err := r.store.Exists(ctx, item.Key)
		if err != nil {
			return 0, fmt.Errorf("probe chunk %s: %w", item.Key, err)
		}
		if exists {
			overwritten++
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return 0, fmt.Errorf("upsert %d chunks: %w", len(items), err)
	}
	return len(items) - overwritten, nil
}

// VectorSearch returns up to k chunks nearest to the query vector,
// best-first by similarity. An empty result is not an error.
func (r *Repo) VectorSearch(ctx context.Context, vector []float32, k int) ([]domain.SearchResult, error) {
	q := &db.KNNQuery{
		IndexName:    r.indexName(),
		Vector:       vector,
		K:            k,
		ReturnFields: []string{"__content", "source", "__vector_score"},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	results := make([]domain.SearchResult, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		results = append(results, domain.SearchResult{
			ChunkID:    strings.TrimPrefix(entry.Key, r.docPrefix()),
			Source:     entry.Fields["source"],
			Text:       entry.Fields["__content"],
			Similarity: entry.Score,
		})
	}
	return results, nil
}

func (r *Repo) docPrefix() string {
	return r.keyPrefix + "chunk:"
}

func (r *Repo) indexName() string {
	return r.keyPrefix + "chunk:idx"
}
