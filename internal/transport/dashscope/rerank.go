// Package dashscope implements the DashScope text-rerank API, which has no
// OpenAI-compatible equivalent and is called over plain HTTP.
package dashscope

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/helixrag/internal/domain"
	"github.com/kailas-cloud/helixrag/internal/metrics"
)

// RerankClient calls the DashScope text-rerank endpoint.
type RerankClient struct {
	httpClient *http.Client
	apiKey     string
	url        string
	model      string
	logger     *zap.Logger
}

// RerankConfig holds the rerank provider settings.
type RerankConfig struct {
	APIKey string
	URL    string
	Model  string
	Logger *zap.Logger
}

// NewRerankClient creates a DashScope rerank provider.
func NewRerankClient(cfg *RerankConfig) *RerankClient {
	return &RerankClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     cfg.APIKey,
		url:        cfg.URL,
		model:      cfg.Model,
		logger:     cfg.Logger,
	}
}

type rerankRequest struct {
	Model string      `json:"model"`
	Input rerankInput `json:"input"`
	Parameters struct {
		TopN            int  `json:"top_n"`
		ReturnDocuments bool `json:"return_documents"`
	} `json:"parameters"`
}

type rerankInput struct {
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
}

type rerankResponse struct {
	Output struct {
		Results []struct {
			Index          int     `json:"index"`
			RelevanceScore float64 `json:"relevance_score"`
		} `json:"results"`
	} `json:"output"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Rerank scores documents against the query and returns them best-first,
// at most topN entries.
func (c *RerankClient) Rerank(
	ctx context.Context, query string, documents []string, topN int,
) ([]domain.ScoredDocument, error) {
	if len(documents) == 0 {
		return nil, nil
	}

	reqBody := rerankRequest{
		Model: c.model,
		Input: rerankInput{Query: query, Documents: documents},
	}
	reqBody.Parameters.TopN = topN
	reqBody.Parameters.ReturnDocuments = false

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal rerank request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build rerank request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()

	resp, err := c.httpClient.Do(req)

	duration := time.Since(start)

	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("rerank", c.model, "error").Inc()
		return nil, fmt.Errorf("rerank request failed: %v: %w", err, domain.ErrRerankProviderError)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("rerank", c.model, "error").Inc()
		return nil, fmt.Errorf("read rerank response: %v: %w", err, domain.ErrRerankProviderError)
	}

	var parsed rerankResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("rerank", c.model, "error").Inc()
		return nil, fmt.Errorf("parse rerank response: %v: %w", err, domain.ErrRerankProviderError)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequestsTotal.WithLabelValues("rerank", c.model, "error").Inc()
		msg := parsed.Message
		if msg == "" {
			msg = string(body)
		}
		return nil, fmt.Errorf("rerank API error %d: %s: %w",
			resp.StatusCode, msg, domain.ErrRerankProviderError)
	}

	metrics.ProviderRequestsTotal.WithLabelValues("rerank", c.model, "success").Inc()
	metrics.ProviderRequestDuration.WithLabelValues("rerank", c.model).Observe(duration.Seconds())

	scored := make([]domain.ScoredDocument, 0, len(parsed.Output.Results))
	for _, r := range parsed.Output.Results {
		if r.Index < 0 || r.Index >= len(documents) {
			return nil, fmt.Errorf("rerank result index %d out of range: %w",
				r.Index, domain.ErrRerankProviderError)
		}
		scored = append(scored, domain.ScoredDocument{Index: r.Index, Score: r.RelevanceScore})
	}

	c.logger.Debug("Reranked documents",
		zap.Int("input", len(documents)),
		zap.Int("output", len(scored)),
		zap.Duration("duration", duration),
	)

	return scored, nil
}
