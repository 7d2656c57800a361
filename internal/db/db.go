package db

import (
	"context"
	"time"
)

// Store is the database facade for the chunk index. Consumers depend on the
// narrow sub-interfaces, not on Store itself.
type Store interface {
	Pinger
	HashStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSetMulti(ctx context.Context, items []HashSetItem) error
	Exists(ctx context.Context, key string) (bool, error)
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher provides KNN search over an FT index.
type Searcher interface {
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
}

// KNNQuery describes a vector similarity search.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchEntry is one hit from FT.SEARCH.
type SearchEntry struct {
	Key    string
	Score  float64 // similarity in [0,1], derived from cosine distance
	Fields map[string]string
}

// SearchResult is the parsed FT.SEARCH reply.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// IndexFieldType enumerates supported FT schema field types.
type IndexFieldType string

// Supported index field types.
const (
	IndexFieldTag    IndexFieldType = "TAG"
	IndexFieldText   IndexFieldType = "TEXT"
	IndexFieldVector IndexFieldType = "VECTOR"
)

// VectorAlgo enumerates vector index algorithms.
type VectorAlgo string

// Supported vector algorithms.
const (
	VectorFlat VectorAlgo = "FLAT"
	VectorHNSW VectorAlgo = "HNSW"
)

// IndexField describes one FT schema field.
type IndexField struct {
	Name string
	Type IndexFieldType

	// Vector field attributes (Type == IndexFieldVector).
	VectorDim         int
	VectorAlgo        VectorAlgo
	VectorM           int
	VectorEFConstruct int
}

// IndexDefinition describes an FT index over hash keys.
type IndexDefinition struct {
	Name     string
	Prefixes []string
	Fields   []IndexField
}
