package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/rlbasics/agent/tabular"
	"github.com/samuelfneumann/rlbasics/config"
	"github.com/samuelfneumann/rlbasics/dp"
	"github.com/samuelfneumann/rlbasics/environment/gridworld"
	"github.com/samuelfneumann/rlbasics/experiment"
	"github.com/samuelfneumann/rlbasics/render"
)

// gridWorldFlags override the gridworld settings of the configuration
type gridWorldFlags struct {
	rollouts int
}

func newGridWorldCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gridworld",
		Short: "Evaluate the random policy and find the optimal policy " +
			"of the gridworld",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGridWorld(cmd)
		},
	}

	cmd.Flags().IntVar(&a.gridworld.rollouts, "rollouts", 0, "Number of "+
		"episodes to run the random and optimal policies for")
	return cmd
}

// runGridWorld evaluates the equiprobable random policy for K sweeps,
// runs policy iteration, and writes the resulting grids
func (a *app) runGridWorld(cmd *cobra.Command) error {
	c := a.cfg.GridWorld
	out := a.cfg.Output
	if cmd.Flags().Changed("rollouts") {
		c.Rollouts = a.gridworld.rollouts
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("gridworld: %w", err)
	}

	envSeed, agentSeed := c.Seeds()
	g, _, err := gridworld.NewCornersWithCutoff(c.Rows, c.Cols, c.Discount,
		envSeed, c.Cutoff)
	if err != nil {
		return fmt.Errorf("gridworld: %w", err)
	}
	rows, cols := g.Dims()
	random := dp.RandomPolicy(g)

	// Random policy values after K sweeps
	V, sweeps, err := dp.PolicyEvaluation(g, random, dp.ZeroValues(g), c.DP())
	if err != nil {
		return fmt.Errorf("gridworld: %w", err)
	}
	log.Info().Int("sweeps", sweeps).Msg("evaluated random policy")

	fmt.Printf("State values of the random policy after %d sweeps:\n",
		sweeps)
	if err := g.PrintValues(os.Stdout, V); err != nil {
		return fmt.Errorf("gridworld: %w", err)
	}
	if err := writeFile(out.Path(out.ValuesFile), func(w io.Writer) error {
		return g.WriteValues(w, V)
	}); err != nil {
		return fmt.Errorf("gridworld: %w", err)
	}

	if path := out.Path(out.HeatMapFile); path != "" {
		title := fmt.Sprintf("State Value at k=%d (Random Policy)", c.K)
		if err := render.ValueHeatMap(path, title, V, rows,
			cols); err != nil {
			return fmt.Errorf("gridworld: %w", err)
		}
		log.Info().Str("path", path).Msg("saved state value heat map")
	}

	// Optimal policy
	result, err := dp.PolicyIteration(g, random, dp.ZeroValues(g), c.DP())
	if err != nil {
		return fmt.Errorf("gridworld: %w", err)
	}
	log.Info().
		Int("iterations", result.Iterations).
		Int("sweeps", result.Sweeps).
		Msg("policy iteration converged")

	fmt.Println()
	fmt.Println("Optimal policy:")
	if err := g.PrintPolicy(os.Stdout, result.Policy); err != nil {
		return fmt.Errorf("gridworld: %w", err)
	}
	fmt.Println("Optimal state values:")
	if err := g.PrintValues(os.Stdout, result.Values); err != nil {
		return fmt.Errorf("gridworld: %w", err)
	}
	if err := writeFile(out.Path(out.PolicyFile), func(w io.Writer) error {
		return g.WritePolicy(w, result.Policy)
	}); err != nil {
		return fmt.Errorf("gridworld: %w", err)
	}
	fmt.Println("Optimal policy reached at iteration:", result.Iterations)

	if c.Rollouts > 0 {
		if err := rollouts(g, out, random, result.Policy, c.Rollouts,
			agentSeed); err != nil {
			return fmt.Errorf("gridworld: %w", err)
		}
	}
	return nil
}

// rollouts runs the random and optimal policies on g and logs their
// mean return and episode length
func rollouts(g *gridworld.GridWorld, out config.Output, random,
	optimal mat.Matrix, episodes int, seed uint64) error {
	policies := []struct {
		name   string
		policy mat.Matrix
	}{
		{"random", random},
		{"optimal", optimal},
	}

	for _, p := range policies {
		a, err := tabular.Config{Policy: p.policy}.CreateAgent(g, seed)
		if err != nil {
			return fmt.Errorf("rollouts: %w", err)
		}

		returnsFile, lengthsFile := out.RolloutPaths(p.name)
		returns, lengths, err := experiment.Rollouts(g, a, episodes,
			returnsFile, lengthsFile)
		if err != nil {
			return fmt.Errorf("rollouts: %w", err)
		}
		log.Info().
			Str("policy", p.name).
			Int("episodes", len(returns)).
			Float64("meanReturn", stat.Mean(returns, nil)).
			Float64("meanLength", stat.Mean(lengths, nil)).
			Msg("rolled out policy")
	}
	return nil
}

// writeFile creates path and writes to it with write. Nothing is
// written if path is empty.
func writeFile(path string, write func(io.Writer) error) error {
	if path == "" {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writeFile: %w", err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("writeFile: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writeFile: %w", err)
	}
	log.Info().Str("path", path).Msg("saved grid")
	return nil
}
