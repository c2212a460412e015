package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLogKeepsOrder(t *testing.T) {
	log := NewSessionLog(10, 100)

	for i := 0; i < 3; i++ {
		log.Record("s1", Turn{Question: fmt.Sprintf("q%d", i)})
	}

	history := log.History("s1")
	require.Len(t, history, 3)
	assert.Equal(t, "q0", history[0].Question)
	assert.Equal(t, "q2", history[2].Question)
}

func TestSessionLogDropsOldestBeyondCap(t *testing.T) {
	log := NewSessionLog(10, 100)

	for i := 0; i < 15; i++ {
		log.Record("s1", Turn{Question: fmt.Sprintf("q%d", i)})
	}

	history := log.History("s1")
	require.Len(t, history, 10)
	assert.Equal(t, "q5", history[0].Question)
	assert.Equal(t, "q14", history[9].Question)
}

func TestSessionLogIsolatesSessions(t *testing.T) {
	log := NewSessionLog(10, 100)

	log.Record("s1", Turn{Question: "first"})
	log.Record("s2", Turn{Question: "second"})

	require.Len(t, log.History("s1"), 1)
	require.Len(t, log.History("s2"), 1)
	assert.Equal(t, "first", log.History("s1")[0].Question)
}

func TestSessionLogUnknownSessionIsEmpty(t *testing.T) {
	log := NewSessionLog(10, 100)
	assert.Empty(t, log.History("nope"))
}

func TestSessionLogEvictsLeastRecentlyUsed(t *testing.T) {
	log := NewSessionLog(10, 2)

	log.Record("s1", Turn{Question: "a"})
	log.Record("s2", Turn{Question: "b"})

	// Touch s1 so s2 becomes the eviction candidate.
	log.History("s1")

	log.Record("s3", Turn{Question: "c"})

	assert.Equal(t, 2, log.Len())
	assert.NotEmpty(t, log.History("s1"))
	assert.Empty(t, log.History("s2"))
	assert.NotEmpty(t, log.History("s3"))
}

func TestSessionLogDefaultsOnBadConfig(t *testing.T) {
	log := NewSessionLog(0, -1)
	for i := 0; i < 12; i++ {
		log.Record("s1", Turn{Question: fmt.Sprintf("q%d", i)})
	}
	assert.Len(t, log.History("s1"), 10)
}
