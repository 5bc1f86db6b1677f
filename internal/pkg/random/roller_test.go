package random_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/random"
)

func TestRoller_RollStaysInRange(t *testing.T) {
	roller := random.NewSeeded(42)

	for i := 0; i < 500; i++ {
		v, err := roller.Roll(6)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 6)
	}

	_, err := roller.Roll(0)
	assert.Error(t, err)
}

func TestRoller_SeededIsDeterministic(t *testing.T) {
	a, err := random.NewSeeded(7).RollN(20, 100)
	require.NoError(t, err)
	b, err := random.NewSeeded(7).RollN(20, 100)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestForState(t *testing.T) {
	roll := func(key string, version int64) []int {
		out, err := random.ForState(key, version).RollN(20, 1000)
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, roll("run_1", 3), roll("run_1", 3))
	assert.NotEqual(t, roll("run_1", 3), roll("run_1", 4))
	assert.NotEqual(t, roll("run_1", 3), roll("run_2", 3))
}

func TestScripted_CyclesAndClamps(t *testing.T) {
	roller := random.NewScripted(3, 9)

	v, _ := roller.Roll(6)
	assert.Equal(t, 3, v)
	v, _ = roller.Roll(6)
	assert.Equal(t, 6, v, "clamped to die size")
	v, _ = roller.Roll(6)
	assert.Equal(t, 3, v, "cycles back to the start")
}

func TestIndex(t *testing.T) {
	idx, err := random.Index(random.NewScripted(4), 5)
	require.NoError(t, err)
	assert.Equal(t, 3, idx)

	_, err = random.Index(random.NewScripted(1), 0)
	assert.Error(t, err)
}

func TestPickWeighted(t *testing.T) {
	options := []random.Weighted[string]{
		{Value: "a", Weight: 2},
		{Value: "zero", Weight: 0},
		{Value: "b", Weight: 3},
	}

	testCases := []struct {
		roll     int
		expected string
	}{
		{1, "a"},
		{2, "a"},
		{3, "b"},
		{5, "b"},
	}

	for _, tc := range testCases {
		got, err := random.PickWeighted(random.NewScripted(tc.roll), options)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, got, "roll %d", tc.roll)
	}

	_, err := random.PickWeighted(random.NewScripted(1), []random.Weighted[string]{{Value: "x"}})
	assert.Error(t, err)
}
