package dp

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/rlbasics/environment"
	"github.com/samuelfneumann/rlbasics/utils/matutils"
)

// Result is the outcome of policy iteration
type Result struct {
	Policy *mat.Dense
	Values *mat.VecDense

	// Iterations is the number of improvement steps taken, including the
	// final step which left the policy unchanged
	Iterations int

	// Sweeps is the total number of evaluation sweeps performed
	Sweeps int
}

// PolicyIteration alternates policy evaluation and greedy policy
// improvement, starting from policy and values, until improvement
// leaves the policy exactly unchanged. Each evaluation runs to
// convergence from the previous evaluation's values; the cap c.K is
// ignored.
func PolicyIteration(m environment.Model, policy mat.Matrix,
	values mat.Vector, c Config) (Result, error) {
	if err := ValidatePolicy(m, policy); err != nil {
		return Result{}, fmt.Errorf("policyIteration: %w", err)
	}

	evalConfig := c
	evalConfig.K = 0

	current := mat.DenseCopyOf(policy)
	V := mat.VecDenseCopyOf(values)
	totalSweeps := 0
	for i := 1; ; i++ {
		if c.MaxIterations > 0 && i > c.MaxIterations {
			return Result{}, fmt.Errorf("policyIteration: policy not stable "+
				"after %d iterations", c.MaxIterations)
		}

		previous := V
		var sweeps int
		var err error
		V, sweeps, err = PolicyEvaluation(m, current, previous, evalConfig)
		if err != nil {
			return Result{}, fmt.Errorf("policyIteration: iteration %d: %w",
				i, err)
		}
		totalSweeps += sweeps

		improved, err := PolicyImprovement(m, V, c.Discount)
		if err != nil {
			return Result{}, fmt.Errorf("policyIteration: iteration %d: %w",
				i, err)
		}

		stable := mat.Equal(improved, current)
		log.Debug().
			Int("iteration", i).
			Int("sweeps", sweeps).
			Float64("valueChange", matutils.MaxAbsDiff(V, previous)).
			Bool("stable", stable).
			Msg("policy iteration step")

		if stable {
			return Result{current, V, i, totalSweeps}, nil
		}
		current = improved
	}
}
