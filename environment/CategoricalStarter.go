package environment

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// CategoricalStarter returns starting states sampled uniformly from a
// fixed set of candidate states
type CategoricalStarter struct {
	states []int
	seed   uint64
	rand   distuv.Categorical
}

// NewCategoricalStarter returns a new CategoricalStarter which samples
// uniformly from states
func NewCategoricalStarter(states []int, seed uint64) (*CategoricalStarter,
	error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("newCategoricalStarter: no starting states")
	}
	source := rand.NewSource(seed)

	// Create the weights for the uniform categorical distribution
	weights := make([]float64, len(states))
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}
	states = append([]int(nil), states...)

	return &CategoricalStarter{states, seed,
		distuv.NewCategorical(weights, source)}, nil
}

// Start returns a starting state
func (c *CategoricalStarter) Start() int {
	return c.states[int(c.rand.Rand())]
}

// SingleStart always starts in the same state
type SingleStart int

// Start returns the starting state
func (s SingleStart) Start() int {
	return int(s)
}
