package dp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/rlbasics/environment"
)

const (
	// DefaultThreshold is the largest change in any state's value
	// during a sweep at which policy evaluation is considered converged
	DefaultThreshold float64 = 1e-4

	// DefaultMaxSweeps bounds uncapped policy evaluation, which never
	// converges for policies that do not reach a terminal state when
	// the discount is 1
	DefaultMaxSweeps int = 100_000

	// DefaultMaxIterations bounds the number of policy improvement
	// steps in policy iteration
	DefaultMaxIterations int = 1000
)

// Config configures policy evaluation and policy iteration
type Config struct {
	// K caps the number of evaluation sweeps if positive. Evaluation
	// stops after K sweeps or at convergence, whichever comes first.
	K int

	// Threshold is the convergence threshold on the largest change in
	// any state's value during one sweep
	Threshold float64

	// Discount is the discount factor γ
	Discount float64

	// MaxSweeps is the number of sweeps after which evaluation without
	// a cap K gives up. Zero means no limit.
	MaxSweeps int

	// MaxIterations is the number of improvement steps after which
	// policy iteration gives up. Zero means no limit.
	MaxIterations int
}

// DefaultConfig returns the undiscounted configuration with the default
// threshold and limits
func DefaultConfig() Config {
	return Config{
		Threshold:     DefaultThreshold,
		Discount:      1.0,
		MaxSweeps:     DefaultMaxSweeps,
		MaxIterations: DefaultMaxIterations,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.K < 0 {
		return fmt.Errorf("k cannot be negative, got %v", c.K)
	}
	if c.Threshold <= 0 {
		return fmt.Errorf("threshold must be positive, got %v", c.Threshold)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("discount %v outside [0, 1]", c.Discount)
	}
	if c.MaxSweeps < 0 || c.MaxIterations < 0 {
		return fmt.Errorf("limits cannot be negative")
	}
	return nil
}

// PolicyEvaluation computes the value function of policy in m, starting
// from values, and returns it along with the number of sweeps performed.
//
// Each sweep is synchronous: every non-terminal state is backed up with
// the Bellman expectation equation using the values of the previous
// sweep only,
//
//	v'(s) = Σ_a π(a|s) [r(s, a) + γ v(s'(s, a))].
//
// Terminal states keep the value they had in values. The argument
// values is not modified.
func PolicyEvaluation(m environment.Model, policy mat.Matrix,
	values mat.Vector, c Config) (*mat.VecDense, int, error) {
	if err := c.Validate(); err != nil {
		return nil, 0, fmt.Errorf("policyEvaluation: %w", err)
	}
	if err := ValidatePolicy(m, policy); err != nil {
		return nil, 0, fmt.Errorf("policyEvaluation: %w", err)
	}
	if err := checkValues(m, values); err != nil {
		return nil, 0, fmt.Errorf("policyEvaluation: %w", err)
	}

	V := mat.VecDenseCopyOf(values)
	next := mat.NewVecDense(V.Len(), nil)
	sweeps := 0
	for {
		delta := sweep(m, policy, V, next, c.Discount)
		V, next = next, V
		sweeps++

		if c.K > 0 && sweeps >= c.K {
			break
		}
		if delta < c.Threshold {
			break
		}
		if c.K == 0 && c.MaxSweeps > 0 && sweeps >= c.MaxSweeps {
			return nil, sweeps, fmt.Errorf("policyEvaluation: no "+
				"convergence after %d sweeps, last change %v", sweeps, delta)
		}
	}

	return V, sweeps, nil
}

// sweep performs one synchronous backup of every state, reading from
// old and writing to next, and returns the largest change in value
func sweep(m environment.Model, policy mat.Matrix, old,
	next *mat.VecDense, discount float64) float64 {
	next.CopyVec(old)

	delta := 0.0
	for s := 0; s < m.States(); s++ {
		if m.IsTerminal(s) {
			continue
		}

		v := 0.0
		for a := 0; a < m.Actions(); a++ {
			prob := policy.At(s, a)
			if prob == 0 {
				continue
			}
			nextState, reward := m.Transition(s, a)
			v += prob * (reward + discount*old.AtVec(nextState))
		}

		delta = math.Max(delta, math.Abs(v-old.AtVec(s)))
		next.SetVec(s, v)
	}
	return delta
}
