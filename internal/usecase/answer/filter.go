package answer

import (
	"strings"

	"github.com/kailas-cloud/helixrag/internal/domain"
)

// Intent signals that mark a query as a policy lookup. Signal matching is
// plain substring containment, case-insensitive for English.
var (
	intentSignalsEN = []string{"return", "refund", "exchange", "policy"}
	intentSignalsZH = []string{"退款", "退货", "退换", "政策"}
)

// hasPolicyIntent reports whether the query expresses a
// refund/return/exchange/policy intent in either language.
func hasPolicyIntent(query string) bool {
	return anyContained(strings.ToLower(query), intentSignalsEN) ||
		anyContained(query, intentSignalsZH)
}

// filterUntrusted drops results from low-trust sources when the query has a
// policy intent. The filter never empties a non-empty candidate set: if every
// result would be dropped, the original set passes through unchanged.
func filterUntrusted(query string, results []domain.SearchResult, prefixes []string) []domain.SearchResult {
	if !hasPolicyIntent(query) || len(results) == 0 {
		return results
	}

	filtered := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if hasUntrustedSource(r.Source, prefixes) {
			continue
		}
		filtered = append(filtered, r)
	}

	if len(filtered) == 0 {
		return results
	}
	return filtered
}

func hasUntrustedSource(source string, prefixes []string) bool {
	lower := strings.ToLower(source)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
