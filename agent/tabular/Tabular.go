// Package tabular implements an agent which follows a fixed tabular
// policy, such as one computed by dynamic programming
package tabular

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/rlbasics/agent"
	"github.com/samuelfneumann/rlbasics/environment"
	"github.com/samuelfneumann/rlbasics/timestep"
)

// Tabular selects actions by sampling from the row of a fixed
// States x Actions policy matrix which corresponds to the current
// observation. It does not learn.
type Tabular struct {
	policy *mat.Dense
	dists  []*distuv.Categorical // lazily constructed, one per state
	seed   rand.Source
}

// New creates a new Tabular agent for env which follows policy
func New(env environment.Environment, policy mat.Matrix,
	seed uint64) (*Tabular, error) {
	obs, actions := env.ObservationSpec(), env.ActionSpec()
	if obs.Cardinality != environment.Discrete ||
		actions.Cardinality != environment.Discrete {
		return nil, fmt.Errorf("new: Tabular can only be used with " +
			"discrete states and actions")
	}

	r, c := policy.Dims()
	if r != obs.Size || c != actions.Size {
		return nil, fmt.Errorf("new: policy has shape (%d, %d), want "+
			"(%d, %d)", r, c, obs.Size, actions.Size)
	}

	return &Tabular{
		policy: mat.DenseCopyOf(policy),
		dists:  make([]*distuv.Categorical, r),
		seed:   rand.NewSource(seed),
	}, nil
}

// SelectAction samples an action from the policy in the state observed
// by t. SelectAction panics if the policy takes no action in that
// state, as is the case for terminal states.
func (t *Tabular) SelectAction(step timestep.TimeStep) int {
	state := step.Observation
	if t.dists[state] == nil {
		weights := t.policy.RawRowView(state)
		if floats.Sum(weights) <= 0 {
			panic(fmt.Sprintf("selectAction: policy takes no action in "+
				"state %d", state))
		}
		dist := distuv.NewCategorical(weights, t.seed)
		t.dists[state] = &dist
	}
	return int(t.dists[state].Rand())
}

// ObserveFirst observes the first timestep of an episode
func (t *Tabular) ObserveFirst(step timestep.TimeStep) error {
	if !step.First() {
		return fmt.Errorf("observeFirst: timestep called on observeFirst() " +
			"should be of type timestep.First")
	}
	return nil
}

// Observe is a no-op since the policy is fixed
func (t *Tabular) Observe(int, timestep.TimeStep) error { return nil }

// Step is a no-op since the policy is fixed
func (t *Tabular) Step() error { return nil }

// EndEpisode is a no-op
func (t *Tabular) EndEpisode() {}

// Config describes a Tabular agent
type Config struct {
	Policy mat.Matrix
}

// CreateAgent creates the agent from the Config
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	return New(env, c.Policy, seed)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*Tabular)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Policy == nil {
		return fmt.Errorf("no policy given")
	}
	return nil
}

func (c Config) String() string {
	return "Tabular"
}
