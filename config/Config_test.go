package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/rlbasics/agent"
	"github.com/samuelfneumann/rlbasics/agent/egreedy"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	require.Equal(t, 10, c.Bandit.Arms)
	require.Equal(t, 1000, c.Bandit.Steps)
	require.Equal(t, 100, c.Bandit.Runs)
	require.Equal(t, []agent.Config{
		egreedy.Config{Epsilon: 0},
		egreedy.Config{Epsilon: 0.01},
		egreedy.Config{Epsilon: 0.1},
		egreedy.Config{Epsilon: 1, Decay: true},
	}, c.Bandit.Agents())

	d := c.GridWorld.DP()
	require.Equal(t, 100, d.K)
	require.Equal(t, 1e-4, d.Threshold)
	require.Equal(t, 1.0, d.Discount)

	require.Equal(t, filepath.Join(".", "optimal_policy.txt"),
		c.Output.Path(c.Output.PolicyFile))
	require.Equal(t, "", c.Output.Path(c.Output.HTMLFile))

	returns, lengths := c.Output.RolloutPaths("optimal")
	require.Equal(t, "", returns)
	require.Equal(t, "", lengths)
}

func TestSeeds(t *testing.T) {
	for _, seed := range []uint64{0, 1, 42} {
		g := Default().GridWorld
		g.Seed = seed
		envSeed, agentSeed := g.Seeds()
		require.NotEqual(t, envSeed, agentSeed, "seed %d", seed)
	}
}

func TestRolloutPaths(t *testing.T) {
	o := Default().Output
	o.Dir = "results"
	o.RolloutsPrefix = "gridworld"

	returns, lengths := o.RolloutPaths("random")
	require.Equal(t, filepath.Join("results", "gridworld_random_returns.bin"),
		returns)
	require.Equal(t, filepath.Join("results", "gridworld_random_lengths.bin"),
		lengths)
}

func TestParse(t *testing.T) {
	t.Run("overlays the defaults", func(t *testing.T) {
		c, err := Parse([]byte(`
bandit:
  runs: 5
  epsilons: [0.2]
gridworld:
  rows: 5
output:
  dir: results
  html: rewards.html
`))
		require.NoError(t, err)

		require.Equal(t, 5, c.Bandit.Runs)
		require.Equal(t, 1000, c.Bandit.Steps)
		require.Equal(t, []float64{0.2}, c.Bandit.Epsilons)
		require.Equal(t, []float64{1.0}, c.Bandit.DecayingEpsilons)
		require.Equal(t, 5, c.GridWorld.Rows)
		require.Equal(t, 4, c.GridWorld.Cols)
		require.Equal(t, filepath.Join("results", "rewards.html"),
			c.Output.Path(c.Output.HTMLFile))
	})

	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "bandit: [1, 2"},
		{"negative runs", "bandit: {runs: -1}"},
		{"epsilon above one", "bandit: {epsilons: [1.5]}"},
		{"no epsilons", "bandit: {epsilons: [], decaying_epsilons: []}"},
		{"no rows", "gridworld: {rows: 0}"},
		{"discount above one", "gridworld: {discount: 1.1}"},
		{"non-positive threshold", "gridworld: {threshold: 0}"},
		{"negative k", "gridworld: {k: -1}"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bandit: {arms: 3}\n"),
		0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, c.Bandit.Arms)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
