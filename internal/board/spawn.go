package board

import (
	"fmt"
	"math/rand"
)

// WeightedValue is one outcome of a spawn draw.
type WeightedValue struct {
	Value  int
	Weight float64
}

// SpawnPolicy is the distribution new tile values are drawn from.
// Weights are relative and need not sum to 1.
type SpawnPolicy struct {
	Weights []WeightedValue
}

// DefaultSpawnPolicy spawns 2 with probability 0.9 and 4 with probability 0.1.
func DefaultSpawnPolicy() SpawnPolicy {
	return NewSpawnPolicy(0.10)
}

// ClassicSpawnPolicy always spawns a 2.
func ClassicSpawnPolicy() SpawnPolicy {
	return SpawnPolicy{Weights: []WeightedValue{{Value: 2, Weight: 1}}}
}

// NewSpawnPolicy returns a 2/4 policy where prob4 is the chance of a 4.
func NewSpawnPolicy(prob4 float64) SpawnPolicy {
	switch {
	case prob4 <= 0:
		return ClassicSpawnPolicy()
	case prob4 >= 1:
		return SpawnPolicy{Weights: []WeightedValue{{Value: 4, Weight: 1}}}
	}
	return SpawnPolicy{Weights: []WeightedValue{
		{Value: 2, Weight: 1 - prob4},
		{Value: 4, Weight: prob4},
	}}
}

// Validate checks that the policy can produce legal tiles.
func (p SpawnPolicy) Validate() error {
	if len(p.Weights) == 0 {
		return fmt.Errorf("board: spawn policy has no values")
	}
	for _, w := range p.Weights {
		if !isPowerOfTwo(w.Value) {
			return fmt.Errorf("board: spawn value %d is not a power of two", w.Value)
		}
		if w.Weight <= 0 {
			return fmt.Errorf("board: spawn value %d has non-positive weight %v", w.Value, w.Weight)
		}
	}
	return nil
}

// Probabilities returns each value's normalized probability.
func (p SpawnPolicy) Probabilities() []WeightedValue {
	total := 0.0
	for _, w := range p.Weights {
		total += w.Weight
	}
	out := make([]WeightedValue, len(p.Weights))
	for i, w := range p.Weights {
		out[i] = WeightedValue{Value: w.Value, Weight: w.Weight / total}
	}
	return out
}

// Sample draws one tile value. Every call consumes a fresh draw from rng.
func (p SpawnPolicy) Sample(rng *rand.Rand) int {
	total := 0.0
	for _, w := range p.Weights {
		total += w.Weight
	}

	x := rng.Float64() * total
	for _, w := range p.Weights {
		if x < w.Weight {
			return w.Value
		}
		x -= w.Weight
	}
	return p.Weights[len(p.Weights)-1].Value
}
