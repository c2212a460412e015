package trends

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCondition(t *testing.T) {
	for _, c := range AllConditions {
		parsed, err := ParseCondition(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	parsed, err := ParseCondition("  Diabetes ")
	require.NoError(t, err)
	assert.Equal(t, Diabetes, parsed)

	_, err = ParseCondition("flu")
	assert.Error(t, err)

	_, err = ParseCondition("")
	assert.Error(t, err)
}

func TestConditionValid(t *testing.T) {
	assert.True(t, Cancer.Valid())
	assert.False(t, Condition("cancer; DROP TABLE location").Valid())
}

func TestConditionTitle(t *testing.T) {
	assert.Equal(t, "Cancer", Cancer.Title())
	assert.Equal(t, "Cardiovascular", Cardiovascular.Title())
}

func TestConditionNames(t *testing.T) {
	names := ConditionNames()
	require.Len(t, names, 9)
	assert.Equal(t, "Cancer", names[0])
	assert.Equal(t, "Diabetes", names[8])
}
