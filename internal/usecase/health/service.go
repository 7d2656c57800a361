package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the provider check failed but the store is up.
	Degraded Status = "degraded"
	// Unhealthy indicates the vector store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks. Without a reachable vector store the
// service can neither retrieve nor ingest, so a store failure is Unhealthy;
// a provider failure only degrades answering.
type Service struct {
	store    StorePinger
	embedder ProviderChecker
}

// New creates a Service. embedder can be nil.
func New(store StorePinger, embedder ProviderChecker) *Service {
	return &Service{store: store, embedder: embedder}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.store.Ping(ctx); err != nil {
		checks["vector_store"] = CheckError
		status = Unhealthy
	} else {
		checks["vector_store"] = CheckOK
	}

	if s.embedder != nil {
		if err := s.embedder.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["embedding"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
