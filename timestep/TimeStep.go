// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why an episode ended
type EndType int

const (
	// Ongoing is the EndType of every TimeStep that is not the last
	Ongoing EndType = iota

	// TerminalStateReached means the environment entered an absorbing state
	TerminalStateReached

	// Timeout means the episode was cut off by a step limit
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Ongoing"
	}
}

// TimeStep packages together a single timestep in an environment.
//
// Observations are indices of discrete states. Environments with a
// single state, such as bandits, always observe state 0.
type TimeStep struct {
	StepType
	Reward      float64
	Discount    float64
	Observation int
	Number      int
	endType     EndType
}

// New returns a new TimeStep
func New(t StepType, r, d float64, o int, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, Discount: d, Observation: o,
		Number: n}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd sets the reason the episode ended at this TimeStep
func (t *TimeStep) SetEnd(e EndType) {
	t.endType = e
}

// EndType returns why the episode ended at this TimeStep. TimeSteps
// which are not the last in an episode return Ongoing.
func (t *TimeStep) EndType() EndType {
	if !t.Last() {
		return Ongoing
	}
	return t.endType
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"State: %v  |  Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Observation,
		t.Number)
}
