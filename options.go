package helixrag

import "go.uber.org/zap"

// Option configures the embedded client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs     []string
	password  string
	keyPrefix string

	apiKey      string
	baseURL     string
	chatModel   string
	embedModel  string
	rerankModel string
	rerankURL   string
	dimensions  int
	temperature float32
	maxTokens   int

	topK              int
	rerankTopN        int
	maxBlocks         int
	chunkSize         int
	chunkOverlap      int
	untrustedPrefixes []string

	logger *zap.Logger
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		keyPrefix:         "helixrag:",
		baseURL:           "https://dashscope.aliyuncs.com/compatible-mode/v1",
		chatModel:         "qwen-plus",
		embedModel:        "text-embedding-v4",
		rerankModel:       "gte-rerank",
		rerankURL:         "https://dashscope.aliyuncs.com/api/v1/services/rerank/text-rerank/text-rerank",
		dimensions:        1024,
		temperature:       0.1,
		maxTokens:         512,
		topK:              6,
		rerankTopN:        6,
		maxBlocks:         4,
		chunkSize:         400,
		chunkOverlap:      60,
		untrustedPrefixes: []string{"/tmp/"},
		logger:            zap.NewNop(),
	}
}

// WithRedis sets the Redis connection.
func WithRedis(addrs []string, password string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
		c.password = password
	}
}

// WithKeyPrefix overrides the key namespace for stored chunks.
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithDashScope sets the shared provider credential.
func WithDashScope(apiKey string) Option {
	return func(c *clientConfig) {
		c.apiKey = apiKey
	}
}

// WithModels overrides the chat, embedding and rerank models. Empty values
// keep the defaults.
func WithModels(chatModel, embedModel, rerankModel string) Option {
	return func(c *clientConfig) {
		if chatModel != "" {
			c.chatModel = chatModel
		}
		if embedModel != "" {
			c.embedModel = embedModel
		}
		if rerankModel != "" {
			c.rerankModel = rerankModel
		}
	}
}

// WithDimensions overrides the embedding dimensionality.
func WithDimensions(dims int) Option {
	return func(c *clientConfig) {
		c.dimensions = dims
	}
}

// WithChunking overrides the chunk size and overlap (in words).
func WithChunking(size, overlap int) Option {
	return func(c *clientConfig) {
		c.chunkSize = size
		c.chunkOverlap = overlap
	}
}

// WithTopK overrides the default retrieval depth.
func WithTopK(topK int) Option {
	return func(c *clientConfig) {
		c.topK = topK
	}
}

// WithLogger sets a structured logger; the default discards output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
