// Package gridworld implements 2D gridworld environments
package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/rlbasics/environment"
	"github.com/samuelfneumann/rlbasics/timestep"
)

// Actions available in a GridWorld, in the order in which they are
// indexed
const (
	Up int = iota
	Down
	Left
	Right
)

// NumActions is the number of actions available in every state
const NumActions int = 4

// ActionNames holds the single-letter name of each action
var ActionNames = [NumActions]string{"U", "D", "L", "R"}

// deltas holds the (row, col) displacement of each action
var deltas = [NumActions][2]int{
	Up:    {-1, 0},
	Down:  {1, 0},
	Left:  {0, -1},
	Right: {0, 1},
}

// GridWorld represents a gridworld environment
//
// States are cells of an r x c lattice, indexed row-major so that cell
// (row, col) is state row*c + col. Moves that would leave the grid
// leave the agent in place. The GridWorld's Task decides which states
// are absorbing and what each move is rewarded.
//
// A GridWorld is both an environment.Environment, which can be stepped
// through one TimeStep at a time, and an environment.Model, whose
// dynamics can be queried directly by planning algorithms.
type GridWorld struct {
	environment.Task
	environment.Starter
	ender       environment.Ender
	r, c        int
	position    int // current state
	discount    float64
	currentStep timestep.TimeStep
}

// New creates a new gridworld with r rows and c columns, task t,
// discount factor d, and starting states sampled from s. Episodes end
// when a goal state is reached or, if cutoff > 0, after cutoff steps.
func New(r, c int, t environment.Task, d float64, s environment.Starter,
	cutoff int) (*GridWorld, timestep.TimeStep, error) {
	if r <= 0 || c <= 0 {
		return nil, timestep.TimeStep{}, fmt.Errorf("new: grid must have "+
			"positive dimensions, got (%d, %d)", r, c)
	}
	if d < 0 || d > 1 {
		return nil, timestep.TimeStep{}, fmt.Errorf("new: discount %v "+
			"outside [0, 1]", d)
	}
	if goal, ok := t.(*Goal); ok && (goal.r != r || goal.c != c) {
		return nil, timestep.TimeStep{}, fmt.Errorf("new: goal defined on "+
			"(%d, %d) grid, want (%d, %d)", goal.r, goal.c, r, c)
	}

	g := &GridWorld{
		Task:     t,
		Starter:  s,
		r:        r,
		c:        c,
		discount: d,
	}
	g.ender = environment.Enders{
		environment.NewFunctionEnder(g.IsTerminal,
			timestep.TerminalStateReached),
		environment.NewStepLimit(cutoff),
	}

	start := s.Start()
	if !g.valid(start) {
		return nil, timestep.TimeStep{}, fmt.Errorf("new: starting state "+
			"%d outside grid of %d states", start, r*c)
	}
	g.position = start
	g.currentStep = timestep.New(timestep.First, 0, d, start, 0)

	return g, g.currentStep, nil
}

// NewCorners creates the r x c gridworld whose top-left and bottom-right
// corners are absorbing and where every other move costs -1. Episodes
// start in a non-terminal state sampled uniformly using seed.
func NewCorners(r, c int, d float64, seed uint64) (*GridWorld,
	timestep.TimeStep, error) {
	return NewCornersWithCutoff(r, c, d, seed, 0)
}

// NewCornersWithCutoff is like NewCorners but ends episodes after
// cutoff steps if cutoff is positive
func NewCornersWithCutoff(r, c int, d float64, seed uint64,
	cutoff int) (*GridWorld, timestep.TimeStep, error) {
	task, err := NewCornerGoal(r, c, -1.0)
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newCorners: %w", err)
	}

	var starts []int
	for s := 0; s < r*c; s++ {
		if !task.AtGoal(s) {
			starts = append(starts, s)
		}
	}
	starter, err := environment.NewCategoricalStarter(starts, seed)
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newCorners: %w", err)
	}

	return New(r, c, task, d, starter, cutoff)
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.r, g.c
}

// States returns the number of states in the GridWorld
func (g *GridWorld) States() int {
	return g.r * g.c
}

// Actions returns the number of actions available in each state
func (g *GridWorld) Actions() int {
	return NumActions
}

// Discount returns the discount factor of the GridWorld
func (g *GridWorld) Discount() float64 {
	return g.discount
}

// IsTerminal returns whether state is absorbing
func (g *GridWorld) IsTerminal(state int) bool {
	g.mustValid(state)
	return g.AtGoal(state)
}

// Transition returns the next state and reward of taking action in
// state. Terminal states transition to themselves with zero reward.
func (g *GridWorld) Transition(state, action int) (int, float64) {
	if g.IsTerminal(state) {
		return state, 0.0
	}
	next := g.shift(state, action)
	return next, g.GetReward(state, action, next)
}

// shift moves from state in the direction of action, staying in place
// if the move would leave the grid
func (g *GridWorld) shift(state, action int) int {
	if action < 0 || action >= NumActions {
		panic(fmt.Sprintf("shift: unhandled action %v", action))
	}
	row, col := g.Coordinates(state)
	delta := deltas[action]

	newRow, newCol := row+delta[0], col+delta[1]
	if newRow < 0 || newRow >= g.r || newCol < 0 || newCol >= g.c {
		return state
	}
	return g.State(newRow, newCol)
}

// State converts (row, col) coordinates into a state index
func (g *GridWorld) State(row, col int) int {
	if row < 0 || col < 0 || row >= g.r || col >= g.c {
		panic(fmt.Sprintf("state: (%d, %d) off board", row, col))
	}
	return row*g.c + col
}

// Coordinates converts a state index into (row, col) coordinates
func (g *GridWorld) Coordinates(state int) (row, col int) {
	g.mustValid(state)
	return state / g.c, state % g.c
}

// Position returns the (row, col) coordinates of the agent
func (g *GridWorld) Position() (row, col int) {
	return g.Coordinates(g.position)
}

// Reset resets the environment to a starting state
func (g *GridWorld) Reset() timestep.TimeStep {
	g.position = g.Start()
	g.mustValid(g.position)

	g.currentStep = timestep.New(timestep.First, 0, g.discount, g.position, 0)
	return g.currentStep
}

// Step takes one environmental step given action and returns the next
// TimeStep and whether the episode has ended
func (g *GridWorld) Step(action int) (timestep.TimeStep, bool, error) {
	if action < 0 || action >= NumActions {
		return timestep.TimeStep{}, false, fmt.Errorf("step: illegal "+
			"action %v", action)
	}
	if g.currentStep.Last() {
		return timestep.TimeStep{}, false, fmt.Errorf("step: episode has " +
			"ended, call Reset first")
	}

	next, reward := g.Transition(g.position, action)
	g.position = next

	step := timestep.New(timestep.Mid, reward, g.discount, next,
		g.currentStep.Number+1)
	last := g.ender.End(&step)

	g.currentStep = step
	return step, last, nil
}

// CurrentTimeStep returns the most recent TimeStep of the environment
func (g *GridWorld) CurrentTimeStep() timestep.TimeStep {
	return g.currentStep
}

// ActionSpec returns the action specification of the environment
func (g *GridWorld) ActionSpec() environment.Spec {
	return environment.NewSpec(NumActions, environment.Action)
}

// ObservationSpec returns the observation specification of the
// environment
func (g *GridWorld) ObservationSpec() environment.Spec {
	return environment.NewSpec(g.States(), environment.Observation)
}

func (g *GridWorld) String() string {
	str := "GridWorld | At: (%d, %d)  |  Goal:\n%v\n  |  Bounds: (%d, %d)"
	row, col := g.Position()

	return fmt.Sprintf(str, row, col, g.Task, g.r, g.c)
}

func (g *GridWorld) valid(state int) bool {
	return state >= 0 && state < g.r*g.c
}

func (g *GridWorld) mustValid(state int) {
	if !g.valid(state) {
		panic(fmt.Sprintf("state %d outside grid of %d states", state,
			g.r*g.c))
	}
}
