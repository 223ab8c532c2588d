// Package dp implements dynamic programming algorithms for planning in
// fully known environment.Models: iterative policy evaluation, greedy
// policy improvement, and policy iteration.
//
// Policies are stochastic and stored as matrices with one row per state
// and one column per action, so that row s holds the probability of
// each action in state s. Rows of non-terminal states sum to 1 and rows
// of terminal states are all zero. Value functions are vectors with one
// entry per state.
package dp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/rlbasics/environment"
	"github.com/samuelfneumann/rlbasics/utils/matutils"
)

// tolerance is the allowed rounding error when checking that policy
// rows sum to 1
const tolerance = 1e-9

// RandomPolicy returns the equiprobable random policy of m
func RandomPolicy(m environment.Model) *mat.Dense {
	policy := mat.NewDense(m.States(), m.Actions(), nil)
	prob := 1.0 / float64(m.Actions())

	for s := 0; s < m.States(); s++ {
		if m.IsTerminal(s) {
			continue
		}
		for a := 0; a < m.Actions(); a++ {
			policy.Set(s, a, prob)
		}
	}
	return policy
}

// ZeroValues returns a value function that is zero in every state of m
func ZeroValues(m environment.Model) *mat.VecDense {
	return mat.NewVecDense(m.States(), nil)
}

// ValidatePolicy returns an error if policy does not have one row per
// state and one column per action of m, if any probability is negative,
// or if any row fails to sum to 1 for non-terminal states and 0 for
// terminal states.
func ValidatePolicy(m environment.Model, policy mat.Matrix) error {
	r, c := policy.Dims()
	if r != m.States() || c != m.Actions() {
		return fmt.Errorf("policy has shape (%d, %d), want (%d, %d)", r, c,
			m.States(), m.Actions())
	}

	sums := matutils.RowSums(policy)
	for s := 0; s < r; s++ {
		for a := 0; a < c; a++ {
			if p := policy.At(s, a); p < 0 {
				return fmt.Errorf("state %d: negative probability %v for "+
					"action %d", s, p, a)
			}
		}

		want := 1.0
		if m.IsTerminal(s) {
			want = 0.0
		}
		if sum := sums.AtVec(s); math.Abs(sum-want) > tolerance {
			return fmt.Errorf("state %d: probabilities sum to %v, want %v",
				s, sum, want)
		}
	}
	return nil
}

func checkValues(m environment.Model, values mat.Vector) error {
	if values.Len() != m.States() {
		return fmt.Errorf("got %d values for %d states", values.Len(),
			m.States())
	}
	return nil
}
