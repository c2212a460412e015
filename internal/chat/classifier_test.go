package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eagle-health/analytics-backend/internal/knowledge"
)

func classify(question string) knowledge.Category {
	return Classify(question, Extract(question))
}

func TestClassifyAlwaysReturnsACategory(t *testing.T) {
	questions := []string{
		"",
		"xyzzy",
		"asdf qwerty zxcv",
		"what is the meaning of life",
		"tell me about diabetes",
		"hello",
	}

	valid := make(map[knowledge.Category]bool)
	for _, c := range knowledge.AllCategories {
		valid[c] = true
	}

	for _, q := range questions {
		assert.True(t, valid[classify(q)], "question %q produced an unknown category", q)
	}
}

func TestClassifyDefaultsToProjectOverview(t *testing.T) {
	assert.Equal(t, knowledge.CategoryProjectOverview, classify("xyzzy qwerty"))
}

func TestClassifyIntentOutranksEntities(t *testing.T) {
	// Thanks wins even when a condition is present.
	assert.Equal(t, knowledge.CategoryThanks, classify("thanks for the diabetes info"))
	assert.Equal(t, knowledge.CategoryGreeting, classify("hello, cancer data please"))
	assert.Equal(t, knowledge.CategoryFarewell, classify("goodbye and thanks"))
}

func TestClassifyEntityPrecedence(t *testing.T) {
	// Member beats condition.
	assert.Equal(t, knowledge.CategorySpecificMember, classify("did ermias work on the diabetes analysis"))
	// Condition beats state.
	assert.Equal(t, knowledge.CategorySpecificCondition, classify("diabetes searches in california"))
	// City beats state (new york city vs new york).
	assert.Equal(t, knowledge.CategoryCityAnalysis, classify("what about new york city"))
	// State alone.
	assert.Equal(t, knowledge.CategoryStateAnalysis, classify("what about texas"))
}

func TestClassifyKnowledgeBaseCategories(t *testing.T) {
	tests := []struct {
		question string
		want     knowledge.Category
	}{
		{"what data sources were used", knowledge.CategoryDataSources},
		{"which conditions are analyzed", knowledge.CategoryHealthConditions},
		{"is there a correlation between searches", knowledge.CategoryCorrelationAnalysis},
		{"show me the trend over time", knowledge.CategoryTimeSeries},
		{"what were the key findings", knowledge.CategoryKeyFindings},
		{"explain the methodology", knowledge.CategoryMethodology},
		{"who is on the team", knowledge.CategoryTeamMembers},
		{"what is this project about", knowledge.CategoryProjectOverview},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.question))
		})
	}
}

func TestClassifyHeuristicFallbacks(t *testing.T) {
	assert.Equal(t, knowledge.CategoryMetricsInsights, classify("how many searches were recorded"))
	assert.Equal(t, knowledge.CategoryTeamMembers, classify("which people built it"))
}
