/*
Package genetic drives one population of candidate solutions through
generational evolution: rank by fitness, keep the best as parents, and
rebuild the rest of the population by crossover and mutation. The
package knows nothing about the candidates themselves; fitness,
crossover, and mutation are supplied by the caller.
*/
package genetic

import (
	"math/rand"
)

import (
	"github.com/mwehr/binfile/errors"
)

// Config parameterises a generational step over candidates of type T.
// T is typically a pointer type so Crossover and Mutate can edit
// candidates in place.
type Config[T any] struct {
	// Selection is the fraction of the population, ranked best
	// first, that survives as the parent set.
	Selection float64
	// Crossover is the rate handed to the Crossover callback.
	Crossover float64
	// Mutation is the rate handed to the Mutate callback.
	Mutation float64

	// Fitness scores a candidate; higher is better.
	Fitness func(T) float64
	// CrossCandidates rebuilds child from parents a and b.
	CrossCandidates func(child, a, b T, rate float64)
	// Mutate perturbs a candidate.
	Mutate func(T, float64)

	// Rand drives parent picks. Seed it for reproducible runs.
	Rand *rand.Rand
}

func (cfg *Config[T]) check() error {
	if err := checkRate("selection", cfg.Selection); err != nil {
		return err
	}
	if err := checkRate("crossover", cfg.Crossover); err != nil {
		return err
	}
	if err := checkRate("mutation", cfg.Mutation); err != nil {
		return err
	}
	if cfg.Fitness == nil || cfg.CrossCandidates == nil || cfg.Mutate == nil {
		return errors.Errorf("config is missing a callback")
	}
	if cfg.Rand == nil {
		return errors.Errorf("config is missing a rand source")
	}
	return nil
}

func checkRate(name string, rate float64) error {
	if rate <= 0 || rate > 1 {
		return errors.Errorf("%v rate %v is outside (0, 1]", name, rate)
	}
	return nil
}

// Generation runs one generational step in place: pop is sorted best
// first, the top Selection fraction is kept, and every slot below it
// is rebuilt from two randomly picked parents and then mutated. At
// least one parent always survives, however small the selection rate.
func Generation[T any](pop []T, cfg Config[T]) error {
	if err := cfg.check(); err != nil {
		return err
	}
	if len(pop) == 0 {
		return nil
	}
	fitnessSort(pop, cfg.Fitness)
	parents := int(cfg.Selection * float64(len(pop)))
	if parents < 1 {
		parents = 1
	}
	for i := parents; i < len(pop); i++ {
		a := pop[cfg.Rand.Intn(parents)]
		b := pop[cfg.Rand.Intn(parents)]
		cfg.CrossCandidates(pop[i], a, b, cfg.Crossover)
		cfg.Mutate(pop[i], cfg.Mutation)
	}
	return nil
}

// fitnessSort insertion sorts pop descending by fitness, evaluating
// each candidate exactly once.
func fitnessSort[T any](pop []T, fitness func(T) float64) {
	scores := make([]float64, len(pop))
	for i := range pop {
		f := fitness(pop[i])
		cur := pop[i]

		j := i
		for ; j > 0 && f > scores[j-1]; j-- {
		}
		for k := i; k > j; k-- {
			pop[k] = pop[k-1]
			scores[k] = scores[k-1]
		}
		pop[j] = cur
		scores[j] = f
	}
}
