package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eagle-health/analytics-backend/internal/trends"
)

func TestExtractConditions(t *testing.T) {
	for _, c := range trends.AllConditions {
		t.Run(string(c), func(t *testing.T) {
			e := Extract("tell me about " + string(c) + " trends")
			require.NotNil(t, e.Condition)
			assert.Equal(t, c, *e.Condition)
		})
	}
}

func TestExtractConditionAliases(t *testing.T) {
	tests := []struct {
		question string
		want     trends.Condition
	}{
		{"what about tumor searches", trends.Cancer},
		{"show me heart disease data", trends.Cardiovascular},
		{"mental health trends please", trends.Depression},
		{"immunization interest by state", trends.Vaccine},
		{"overweight search volume", trends.Obesity},
		{"blood sugar searches", trends.Diabetes},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			e := Extract(tt.question)
			require.NotNil(t, e.Condition)
			assert.Equal(t, tt.want, *e.Condition)
		})
	}
}

func TestExtractGreetingRequiresStandaloneToken(t *testing.T) {
	assert.Equal(t, IntentGreeting, Extract("Hi there!").Intent)
	assert.Equal(t, IntentGreeting, Extract("hello, what is this").Intent)

	// "hi" inside a word must not trigger a greeting.
	e := Extract("which states have high search volume")
	assert.NotEqual(t, IntentGreeting, e.Intent)
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"diabetes searches in 2004", "2004"},
		{"what happened in 2017", "2017"},
		{"data from 2010 please", "2010"},
		{"anything from 2003", ""},
		{"data for 2018", ""},
		{"room 20175 please", ""},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.question).Year)
		})
	}
}

func TestExtractState(t *testing.T) {
	e := Extract("how does california compare")
	assert.Equal(t, "california", e.State)
	assert.Empty(t, e.City)
}

func TestExtractNewYorkCityNotState(t *testing.T) {
	e := Extract("trends in new york city")
	assert.Equal(t, "new york city", e.City)
	assert.Empty(t, e.State)

	e = Extract("trends in new york")
	assert.Equal(t, "new york", e.State)
	assert.Empty(t, e.City)
}

func TestExtractMember(t *testing.T) {
	e := Extract("tell me about Ermias")
	assert.Equal(t, "Ermias Gaga", e.Member)

	e = Extract("who is amanda?")
	assert.Equal(t, "Amanda Qianyue Ma", e.Member)
}

func TestExtractIsPure(t *testing.T) {
	q := "diabetes in california during 2010"
	first := Extract(q)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Extract(q))
	}
}
