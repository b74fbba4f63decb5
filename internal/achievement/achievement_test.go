package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findByID(t *testing.T, achievements []Achievement, id string) Achievement {
	t.Helper()
	for _, a := range achievements {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %q not in result", id)
	return Achievement{}
}

func TestEvaluateThresholdBoundary(t *testing.T) {
	// Every definition must flip exactly at its threshold.
	for _, def := range Definitions() {
		counters := Counters{}
		below := def.Threshold - 1
		switch def.Counter {
		case CounterWorkouts:
			counters.TotalWorkouts = below
		case CounterPrograms:
			counters.TotalActivePrograms = below
		default:
			t.Fatalf("unknown counter %q", def.Counter)
		}
		assert.False(t, findByID(t, Evaluate(counters), def.ID).Unlocked,
			"%s should be locked at %d", def.ID, below)

		switch def.Counter {
		case CounterWorkouts:
			counters.TotalWorkouts = def.Threshold
		case CounterPrograms:
			counters.TotalActivePrograms = def.Threshold
		}
		assert.True(t, findByID(t, Evaluate(counters), def.ID).Unlocked,
			"%s should unlock at %d", def.ID, def.Threshold)
	}
}

func TestEvaluateIndependence(t *testing.T) {
	// A high workout counter must not unlock program achievements.
	result := Evaluate(Counters{TotalWorkouts: 1000})

	assert.True(t, findByID(t, result, "hundred-workouts").Unlocked)
	assert.False(t, findByID(t, result, "first-program").Unlocked)
	assert.False(t, findByID(t, result, "three-programs").Unlocked)
}

func TestEvaluateCoversAllDefinitions(t *testing.T) {
	result := Evaluate(Counters{})
	require.Len(t, result, len(Definitions()))
	for _, a := range result {
		assert.False(t, a.Unlocked)
		assert.Equal(t, 0, a.Progress)
	}
}
