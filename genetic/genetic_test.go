package genetic

import "testing"

import (
	"math/rand"
	"sort"
)

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type candidate struct {
	value   float64
	bred    bool
	mutated bool
}

func config() Config[*candidate] {
	return Config[*candidate]{
		Selection: 0.5,
		Crossover: 0.9,
		Mutation:  0.1,
		Fitness:   func(c *candidate) float64 { return c.value },
		CrossCandidates: func(child, a, b *candidate, rate float64) {
			child.value = (a.value + b.value) / 2
			child.bred = true
		},
		Mutate: func(c *candidate, rate float64) { c.mutated = true },
		Rand:   rand.New(rand.NewSource(1)),
	}
}

func population(values ...float64) []*candidate {
	pop := make([]*candidate, len(values))
	for i, v := range values {
		pop[i] = &candidate{value: v}
	}
	return pop
}

func TestRateValidation(t *testing.T) {
	pop := population(1, 2)
	for _, set := range []func(*Config[*candidate]){
		func(c *Config[*candidate]) { c.Selection = 0 },
		func(c *Config[*candidate]) { c.Selection = 1.5 },
		func(c *Config[*candidate]) { c.Crossover = -0.1 },
		func(c *Config[*candidate]) { c.Mutation = 0 },
		func(c *Config[*candidate]) { c.Fitness = nil },
		func(c *Config[*candidate]) { c.CrossCandidates = nil },
		func(c *Config[*candidate]) { c.Mutate = nil },
		func(c *Config[*candidate]) { c.Rand = nil },
	} {
		cfg := config()
		set(&cfg)
		assert.Error(t, Generation(pop, cfg))
	}
}

func TestRanking(t *testing.T) {
	pop := population(3, 9, 1, 7, 5, 8, 2, 6)
	require.NoError(t, Generation(pop, config()))

	// top half must be the best candidates, best first
	want := []float64{9, 8, 7, 6}
	for i, w := range want {
		assert.Equal(t, w, pop[i].value, "rank %d", i)
		assert.False(t, pop[i].bred, "parents are kept as-is")
		assert.False(t, pop[i].mutated)
	}
}

func TestTailIsRebred(t *testing.T) {
	pop := population(3, 9, 1, 7, 5, 8, 2, 6)
	require.NoError(t, Generation(pop, config()))

	for i := 4; i < len(pop); i++ {
		c := pop[i]
		assert.True(t, c.bred, "slot %d crossed", i)
		assert.True(t, c.mutated, "slot %d mutated", i)
		// averaged from two of {9, 8, 7, 6}
		assert.GreaterOrEqual(t, c.value, 6.0)
		assert.LessOrEqual(t, c.value, 9.0)
	}
}

func TestTinySelectionKeepsOneParent(t *testing.T) {
	pop := population(1, 2, 3)
	cfg := config()
	cfg.Selection = 0.01
	require.NoError(t, Generation(pop, cfg))
	assert.Equal(t, 3.0, pop[0].value)
	assert.False(t, pop[0].bred)
	for _, c := range pop[1:] {
		assert.True(t, c.bred)
		assert.Equal(t, 3.0, c.value, "both parents are the sole elite")
	}
}

func TestEmptyAndTrivialPopulations(t *testing.T) {
	assert.NoError(t, Generation(nil, config()))
	pop := population(5)
	assert.NoError(t, Generation(pop, config()))
	assert.Equal(t, 5.0, pop[0].value)
}

func TestRepeatedGenerationsImprove(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pop := make([]*candidate, 32)
	for i := range pop {
		pop[i] = &candidate{value: rng.Float64()}
	}
	cfg := config()
	cfg.Rand = rng
	cfg.Mutate = func(c *candidate, rate float64) {
		c.value += (rng.Float64() - 0.5) * rate
	}

	best := func() float64 {
		vals := make([]float64, len(pop))
		for i, c := range pop {
			vals[i] = c.value
		}
		sort.Float64s(vals)
		return vals[len(vals)-1]
	}
	before := best()
	for g := 0; g < 50; g++ {
		require.NoError(t, Generation(pop, cfg))
	}
	assert.GreaterOrEqual(t, best(), before, "the best candidate is never lost")
}
