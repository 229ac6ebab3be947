package router

import (
	"strings"

	"github.com/lawsphere/lexgate/internal/model"
)

// complexKeywords indicate analysis, drafting, or research tasks.
// Checked before simpleKeywords: a query matching both is complex.
var complexKeywords = []string{
	"draft", "analyze", "summarize", "compare", "review",
	"explain in detail", "comprehensive", "thorough",
	"legal opinion", "case analysis", "contract review",
	"due diligence", "legal research", "precedent",
}

// simpleKeywords indicate definitions and short factual answers.
var simpleKeywords = []string{
	"what is", "who is", "when", "where", "define",
	"meaning of", "translate", "short answer",
	"yes or no", "list", "name",
}

// Word-count bounds for the length fallback.
const (
	complexWordThreshold = 100
	simpleWordThreshold  = 20
)

// AnalyzeComplexity estimates the effort tier of a query. Keyword checks
// win over the length heuristic, complex keywords win over simple ones.
func AnalyzeComplexity(content string) model.Complexity {
	lower := strings.ToLower(content)

	for _, kw := range complexKeywords {
		if strings.Contains(lower, kw) {
			return model.Complex
		}
	}
	for _, kw := range simpleKeywords {
		if strings.Contains(lower, kw) {
			return model.Simple
		}
	}

	words := len(strings.Fields(content))
	switch {
	case words > complexWordThreshold:
		return model.Complex
	case words < simpleWordThreshold:
		return model.Simple
	default:
		return model.Moderate
	}
}
