package chat

import (
	"strings"

	"github.com/eagle-health/analytics-backend/internal/knowledge"
)

// Classify maps a question plus its extracted entities to exactly one
// response category. It never fails: when nothing matches, the answer is
// the project overview.
func Classify(question string, e Entities) knowledge.Category {
	q := strings.ToLower(strings.TrimSpace(question))

	// Conversational intent outranks everything else.
	switch e.Intent {
	case IntentGreeting:
		return knowledge.CategoryGreeting
	case IntentFarewell:
		return knowledge.CategoryFarewell
	case IntentThanks:
		return knowledge.CategoryThanks
	case IntentHelp:
		return knowledge.CategoryHelp
	}

	if e.Member != "" {
		return knowledge.CategorySpecificMember
	}
	if e.Condition != nil {
		return knowledge.CategorySpecificCondition
	}
	if e.City != "" {
		return knowledge.CategoryCityAnalysis
	}
	if e.State != "" {
		return knowledge.CategoryStateAnalysis
	}

	norm := normalize(q)
	for _, entry := range knowledge.Entries {
		for _, kw := range entry.Keywords {
			if containsPhrase(norm, kw) {
				return entry.Category
			}
		}
		for _, alias := range entry.Aliases {
			if containsPhrase(norm, alias) {
				return entry.Category
			}
		}
	}

	return fallbackCategory(q)
}

// normalize lower-cases, strips punctuation, and collapses whitespace, with
// a leading and trailing space so phrase matches land on word boundaries.
func normalize(q string) string {
	return " " + strings.Join(strings.Fields(stripPunct(q)), " ") + " "
}

// containsPhrase matches a keyword or multi-word phrase on word boundaries.
// "hi" must not match inside "which".
func containsPhrase(norm, phrase string) bool {
	return strings.Contains(norm, " "+phrase+" ")
}

// fallbackCategory applies loose heuristics when no keyword entry matched.
func fallbackCategory(q string) knowledge.Category {
	switch {
	case containsAny(q, "how many", "metric", "statistic", "number"):
		return knowledge.CategoryMetricsInsights
	case containsAny(q, "team", "who", "person", "people"):
		return knowledge.CategoryTeamMembers
	case containsAny(q, "find", "result", "insight", "discovery"):
		return knowledge.CategoryKeyFindings
	case containsAny(q, "how", "method", "process", "approach"):
		return knowledge.CategoryMethodology
	}
	return knowledge.CategoryProjectOverview
}

func containsAny(q string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}
