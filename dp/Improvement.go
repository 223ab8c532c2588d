package dp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/rlbasics/environment"
	"github.com/samuelfneumann/rlbasics/utils/floatutils"
)

// ActionValues computes the one-step lookahead value of every action in
// every state, q(s, a) = r(s, a) + γ v(s'(s, a)). Rows of terminal
// states are zero.
func ActionValues(m environment.Model, values mat.Vector,
	discount float64) (*mat.Dense, error) {
	if err := checkValues(m, values); err != nil {
		return nil, fmt.Errorf("actionValues: %w", err)
	}

	q := mat.NewDense(m.States(), m.Actions(), nil)
	for s := 0; s < m.States(); s++ {
		if m.IsTerminal(s) {
			continue
		}
		for a := 0; a < m.Actions(); a++ {
			nextState, reward := m.Transition(s, a)
			q.Set(s, a, reward+discount*values.AtVec(nextState))
		}
	}
	return q, nil
}

// PolicyImprovement returns the policy that is greedy with respect to
// values. In each non-terminal state, every action whose one-step
// lookahead value equals the maximum exactly is taken with equal
// probability. Rows of terminal states are zero.
func PolicyImprovement(m environment.Model, values mat.Vector,
	discount float64) (*mat.Dense, error) {
	q, err := ActionValues(m, values, discount)
	if err != nil {
		return nil, fmt.Errorf("policyImprovement: %w", err)
	}

	policy := mat.NewDense(m.States(), m.Actions(), nil)
	for s := 0; s < m.States(); s++ {
		if m.IsTerminal(s) {
			continue
		}

		_, best := floatutils.MaxSlice(q.RawRowView(s))
		prob := 1.0 / float64(len(best))
		for _, a := range best {
			policy.Set(s, a, prob)
		}
	}
	return policy, nil
}
