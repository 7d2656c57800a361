package metrics

import "github.com/prometheus/client_golang/prometheus"

// Provider-call Prometheus metrics.
var (
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "helixrag",
			Name:      "provider_requests_total",
			Help:      "Total number of external provider requests",
		},
		[]string{"provider", "model", "status"},
	)

	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "helixrag",
			Name:      "provider_request_duration_seconds",
			Help:      "External provider request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "helixrag",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"model", "type"},
	)

	PipelineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "helixrag",
			Name:      "answer_pipeline_duration_seconds",
			Help:      "End-to-end answer pipeline duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"outcome"}, // "done" / "empty" / "failed"
	)

	RerankDegradedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "helixrag",
			Name:      "rerank_degraded_total",
			Help:      "Times the reranker fell back to pre-rerank order",
		},
	)

	ChunksIngestedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "helixrag",
			Name:      "chunks_ingested_total",
			Help:      "Total chunks newly inserted into the vector store",
		},
	)
)

var providerMetricsRegistered bool

// RegisterProviderMetrics registers provider and pipeline metrics.
// Must be called once from main.
func RegisterProviderMetrics() {
	if providerMetricsRegistered {
		return
	}
	prometheus.MustRegister(ProviderRequestsTotal)
	prometheus.MustRegister(ProviderRequestDuration)
	prometheus.MustRegister(EmbeddingTokensTotal)
	prometheus.MustRegister(PipelineDuration)
	prometheus.MustRegister(RerankDegradedTotal)
	prometheus.MustRegister(ChunksIngestedTotal)
	providerMetricsRegistered = true
}
