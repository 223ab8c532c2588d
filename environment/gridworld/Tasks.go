package gridworld

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/rlbasics/utils/matutils"
)

// Goal represents the task of reaching one of a set of absorbing goal
// states in a GridWorld. Every move made outside a goal state receives
// the same timestep reward; goal states transition to themselves with
// zero reward.
type Goal struct {
	goals          *mat.VecDense // one-hot encoding of goal states
	r, c           int           // total rows and columns in environment
	timeStepReward float64
}

// NewGoal creates and returns a new goal at positions (rows[i], cols[i]),
// given that the gridworld has r rows and c columns
func NewGoal(rows, cols []int, r, c int, timeStepReward float64) (*Goal,
	error) {
	if len(rows) != len(cols) {
		return nil, fmt.Errorf("newGoal: rows length (%d) != cols length "+
			"(%d)", len(rows), len(cols))
	}
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("newGoal: grid must have positive dimensions, "+
			"got (%d, %d)", r, c)
	}

	goals := mat.NewVecDense(r*c, nil)
	for i := range rows {
		// Ensure that the goal is within the proper bounds
		if rows[i] < 0 || rows[i] >= r {
			return nil, fmt.Errorf("newGoal: rows[%d] = %d outside [0, %d)",
				i, rows[i], r)
		} else if cols[i] < 0 || cols[i] >= c {
			return nil, fmt.Errorf("newGoal: cols[%d] = %d outside [0, %d)",
				i, cols[i], c)
		}

		goals.SetVec(rows[i]*c+cols[i], 1.0)
	}

	return &Goal{goals, r, c, timeStepReward}, nil
}

// NewCornerGoal returns the task of reaching either the top-left or the
// bottom-right corner of an r x c gridworld
func NewCornerGoal(r, c int, timeStepReward float64) (*Goal, error) {
	return NewGoal([]int{0, r - 1}, []int{0, c - 1}, r, c, timeStepReward)
}

// GetReward returns the reward for transitioning from state to
// nextState by taking action
func (g *Goal) GetReward(state, action, nextState int) float64 {
	if g.AtGoal(state) {
		return 0.0
	}
	return g.timeStepReward
}

// AtGoal returns whether state is a goal state
func (g *Goal) AtGoal(state int) bool {
	return g.goals.AtVec(state) != 0.0
}

// String returns the goal states as an r x c matrix of indicators
func (g *Goal) String() string {
	grid := mat.NewDense(g.r, g.c, g.goals.RawVector().Data)
	return matutils.Format(grid)
}
