package idgen_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID("run")

	first := gen.Generate()
	second := gen.Generate()

	require.True(t, strings.HasPrefix(first, "run_"))
	_, err := uuid.Parse(strings.TrimPrefix(first, "run_"))
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestUUIDGenerator_NoPrefix(t *testing.T) {
	_, err := uuid.Parse(idgen.NewUUID("").Generate())
	assert.NoError(t, err)
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("run")

	assert.Equal(t, "run_1", gen.Generate())
	assert.Equal(t, "run_2", gen.Generate())
	assert.Equal(t, "1", idgen.NewSequential("").Generate())
}

func TestSequentialGenerator_Concurrent(t *testing.T) {
	gen := idgen.NewSequential("run")

	var wg sync.WaitGroup
	ids := make(chan string, 100)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- gen.Generate()
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, 100)
}
