package llm

import (
	"strings"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
)

// Queries carrying these markers get the QUALITY tier even when short.
var qualityKeywords = []string{
	"analyze", "compare", "explain", "evaluate", "complex",
	"detailed", "comprehensive", "multiple", "various",
}

// SelectTier picks a cost/quality tier from the query alone: a cheap
// heuristic so no model is spent deciding which model to call. Pure and
// total; ties resolve toward FAST.
func SelectTier(query string, contextLength int) domain.Tier {
	wordCount := len(strings.Fields(query))

	if wordCount < 20 && contextLength < 500 {
		return domain.TierFast
	}

	lower := strings.ToLower(query)
	for _, keyword := range qualityKeywords {
		if strings.Contains(lower, keyword) {
			return domain.TierQuality
		}
	}

	if contextLength > 2000 || wordCount > 50 {
		return domain.TierBalanced
	}
	return domain.TierFast
}
