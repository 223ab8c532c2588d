// Package egreedy implements a sample-average ε-greedy agent for
// k-armed bandits.
//
// The agent keeps an incremental sample average of the rewards seen
// for each arm. On timestep t it selects an arm uniformly at random with
// probability ε_t and otherwise selects the arm with the highest
// estimate, breaking ties in favour of the lowest index.
package egreedy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/rlbasics/environment"
	"github.com/samuelfneumann/rlbasics/timestep"
	"github.com/samuelfneumann/rlbasics/utils/matutils"
)

// EGreedy implements a sample-average ε-greedy agent
type EGreedy struct {
	estimates *mat.VecDense
	counts    *mat.VecDense
	schedule  Schedule
	t         int         // timesteps learned from so far
	seed      rand.Source // Seed for random number generation

	// Transition observed but not yet learned from
	action   int
	reward   float64
	observed bool
}

// New creates a new EGreedy agent for environment env. The environment
// must have a single state and discrete actions.
func New(env environment.Environment, c Config, seed uint64) (*EGreedy,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	actionSpec := env.ActionSpec()
	if actionSpec.Cardinality != environment.Discrete {
		return nil, fmt.Errorf("new: EGreedy can only be used with " +
			"discrete actions")
	}
	if obs := env.ObservationSpec().Size; obs != 1 {
		return nil, fmt.Errorf("new: EGreedy can only be used with "+
			"single-state environments, got %d states", obs)
	}

	arms := actionSpec.Size
	estimates := mat.NewVecDense(arms, nil)
	for i := 0; i < arms; i++ {
		estimates.SetVec(i, c.InitialEstimate)
	}

	return &EGreedy{
		estimates: estimates,
		counts:    mat.NewVecDense(arms, nil),
		schedule:  c.Schedule(),
		seed:      rand.NewSource(seed),
	}, nil
}

// Epsilon returns the exploration rate used on the current timestep
func (e *EGreedy) Epsilon() float64 {
	return e.schedule.At(e.t)
}

// Probabilities returns the probability with which each arm is selected
// on the current timestep. Exploration selects every arm, including
// the greedy arm, with equal probability.
func (e *EGreedy) Probabilities() []float64 {
	numActions := e.estimates.Len()
	epsilon := e.Epsilon()

	// Calculate the ε probability of choosing any action at random
	prob := epsilon / float64(numActions)
	actionProbabilites := make([]float64, numActions)
	for i := range actionProbabilites {
		actionProbabilites[i] = prob
	}

	// Adjust the probability of choosing the greedy action
	actionProbabilites[e.Greedy()] += 1.0 - epsilon

	return actionProbabilites
}

// Greedy returns the arm with the highest estimated value. Ties are
// broken in favour of the lowest index.
func (e *EGreedy) Greedy() int {
	return matutils.MaxVec(e.estimates)
}

// SelectAction selects an arm using the ε-greedy policy
func (e *EGreedy) SelectAction(t timestep.TimeStep) int {
	if e.Epsilon() == 0 {
		return e.Greedy()
	}

	// Construct a categorical distribution over actions using action
	// probabilities, then sample an action
	dist := distuv.NewCategorical(e.Probabilities(), e.seed)
	return int(dist.Rand())
}

// ObserveFirst observes the first timestep of an episode
func (e *EGreedy) ObserveFirst(t timestep.TimeStep) error {
	if !t.First() {
		return fmt.Errorf("observeFirst: timestep called on observeFirst() " +
			"should be of type timestep.First")
	}
	e.observed = false
	return nil
}

// Observe records that action led to the reward of nextObs
func (e *EGreedy) Observe(action int, nextObs timestep.TimeStep) error {
	if action < 0 || action >= e.estimates.Len() {
		return fmt.Errorf("observe: illegal action %d for %d arms", action,
			e.estimates.Len())
	}
	e.action = action
	e.reward = nextObs.Reward
	e.observed = true
	return nil
}

// Step updates the sample-average estimate of the last observed arm:
// Q(a) <- Q(a) + (r - Q(a)) / N(a)
func (e *EGreedy) Step() error {
	if !e.observed {
		return fmt.Errorf("step: no transition observed since last step")
	}

	a := e.action
	n := e.counts.AtVec(a) + 1
	q := e.estimates.AtVec(a)
	e.counts.SetVec(a, n)
	e.estimates.SetVec(a, q+(e.reward-q)/n)

	e.observed = false
	e.t++
	return nil
}

// EndEpisode performs cleanup at the end of an episode. Bandit
// estimates persist across episodes.
func (e *EGreedy) EndEpisode() {}

// Estimates returns a copy of the current action value estimates
func (e *EGreedy) Estimates() []float64 {
	return append([]float64(nil), e.estimates.RawVector().Data...)
}

// Counts returns a copy of the number of times each arm was learned from
func (e *EGreedy) Counts() []float64 {
	return append([]float64(nil), e.counts.RawVector().Data...)
}
