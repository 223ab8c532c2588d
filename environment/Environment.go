// Package environment outlines the interfaces and sturcts needed to implement
// concrete environments with discrete states and actions
package environment

import (
	"fmt"

	"github.com/samuelfneumann/rlbasics/timestep"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() int
}

// Ender determines when episodes should end. If an Ender ends an
// episode, it modifies the argument TimeStep so that its StepType is
// timestep.Last.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Cardinality determines the cardinality of a number (discrete or continuous)
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an acion or an observation
type SpecType int

const (
	Action SpecType = iota
	Observation
)

// Spec implements an environment specification, which tells the type
// and number of values of an action or an observation. Values
// described by a Spec lie in [0, Size).
type Spec struct {
	Size int
	Type SpecType
	Cardinality
}

// NewSpec constructs a new discrete environment specification of size
// values
func NewSpec(size int, t SpecType) Spec {
	if size <= 0 {
		panic(fmt.Sprintf("newSpec: size must be positive, got %v", size))
	}
	return Spec{size, t, Discrete}
}

// Task implements the reward scheme for taking actions in some environment
type Task interface {
	GetReward(state, action, nextState int) float64
	AtGoal(state int) bool
}

// Environment implements a simualted environment that an agent interacts
// with one TimeStep at a time
type Environment interface {
	Reset() timestep.TimeStep // Resets between episodes
	Step(action int) (timestep.TimeStep, bool, error)
	CurrentTimeStep() timestep.TimeStep
	ObservationSpec() Spec
	ActionSpec() Spec
}

// Model is a fully known environment with deterministic dynamics which
// planning algorithms can query directly, without interacting with it
// one TimeStep at a time
type Model interface {
	States() int
	Actions() int
	IsTerminal(state int) bool

	// Transition returns the next state and reward of taking action in
	// state. Terminal states transition to themselves with zero reward.
	Transition(state, action int) (int, float64)
}
