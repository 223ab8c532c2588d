package experiment

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/rlbasics/agent"
	"github.com/samuelfneumann/rlbasics/agent/egreedy"
	"github.com/samuelfneumann/rlbasics/agent/tabular"
	"github.com/samuelfneumann/rlbasics/dp"
	"github.com/samuelfneumann/rlbasics/environment/bandit"
	"github.com/samuelfneumann/rlbasics/environment/gridworld"
	"github.com/samuelfneumann/rlbasics/experiment/trackers"
)

func TestOnline(t *testing.T) {
	env, _, err := bandit.New(10, 0, 1)
	require.NoError(t, err)
	a, err := egreedy.Config{Epsilon: 0.1}.CreateAgent(env, 2)
	require.NoError(t, err)

	dir := t.TempDir()
	reward := trackers.NewReward(filepath.Join(dir, "reward.bin"))
	optimal := trackers.NewOptimal(env.OptimalAction(),
		filepath.Join(dir, "optimal.bin"))

	exp := NewOnline(env, a, 250, reward)
	exp.Register(optimal)
	require.NoError(t, exp.Run())

	require.Equal(t, 250, exp.Steps())
	require.Len(t, reward.Data(), 250)
	require.Len(t, optimal.Data(), 250)

	require.NoError(t, exp.Save())
	data, err := trackers.LoadData(filepath.Join(dir, "optimal.bin"))
	require.NoError(t, err)
	require.Equal(t, optimal.Data(), data)

	t.Run("no step limit", func(t *testing.T) {
		require.Error(t, NewOnline(env, a, 0).Run())
	})
}

func TestAverage(t *testing.T) {
	tb := Testbed{Arms: 10, Runs: 50, Steps: 500, Seed: 7}

	t.Run("shapes and label", func(t *testing.T) {
		result, err := Average(egreedy.Config{Epsilon: 0.1}, tb)
		require.NoError(t, err)
		require.Equal(t, "ε = 0.1", result.Label)
		require.False(t, result.Decay)
		require.Len(t, result.Rewards, tb.Steps)
		require.Len(t, result.Optimal, tb.Steps)

		for _, frac := range result.Optimal {
			require.GreaterOrEqual(t, frac, 0.0)
			require.LessOrEqual(t, frac, 1.0)
		}
	})

	t.Run("deterministic given a seed", func(t *testing.T) {
		c := egreedy.Config{Epsilon: 1, Decay: true}
		first, err := Average(c, tb)
		require.NoError(t, err)
		second, err := Average(c, tb)
		require.NoError(t, err)
		require.Equal(t, first, second)
		require.True(t, first.Decay)
	})

	t.Run("exploration finds better arms", func(t *testing.T) {
		greedy, err := Average(egreedy.Config{Epsilon: 0}, tb)
		require.NoError(t, err)
		explore, err := Average(egreedy.Config{Epsilon: 0.1}, tb)
		require.NoError(t, err)

		tail := tb.Steps - 100
		require.Greater(t, stat.Mean(explore.Optimal[tail:], nil),
			stat.Mean(greedy.Optimal[tail:], nil))
	})

	t.Run("invalid testbeds", func(t *testing.T) {
		_, err := Average(egreedy.Config{}, Testbed{Arms: 10, Runs: 0,
			Steps: 10})
		require.Error(t, err)
		_, err = Average(egreedy.Config{Epsilon: 2}, tb)
		require.Error(t, err)
	})
}

// invalidConfig creates ε-greedy agents but never accepts them as its
// own
type invalidConfig struct {
	egreedy.Config
}

func (invalidConfig) ValidAgent(agent.Agent) bool { return false }

func TestAverageRejectsInvalidAgents(t *testing.T) {
	tb := Testbed{Arms: 3, Runs: 1, Steps: 10}
	_, err := Average(invalidConfig{egreedy.Config{Epsilon: 0.1}}, tb)
	require.Error(t, err)
}

func TestAverageAll(t *testing.T) {
	tb := Testbed{Arms: 5, Runs: 3, Steps: 50, Seed: 1}
	list := egreedy.NewConfigList([]float64{0, 0.1}, []bool{false})

	results, err := AverageAll(agent.Configs(list), tb)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "ε = 0", results[0].Label)
	require.Equal(t, "ε = 0.1", results[1].Label)

	filename := filepath.Join(t.TempDir(), "results.bin")
	require.NoError(t, Save(filename, results))
	loaded, err := Load(filename)
	require.NoError(t, err)
	require.Equal(t, results, loaded)
}

func BenchmarkRun(b *testing.B) {
	env, _, err := bandit.New(10, 0, 1)
	if err != nil {
		b.Fatal(err)
	}
	a, err := egreedy.New(env, egreedy.Config{Epsilon: 0.1}, 1)
	if err != nil {
		b.Fatal(err)
	}

	for i := 0; i < b.N; i++ {
		if err := NewOnline(env, a, 1000).Run(); err != nil {
			b.Fatal(err)
		}
	}
}

func TestRollouts(t *testing.T) {
	g, _, err := gridworld.NewCornersWithCutoff(4, 4, 1.0, 3, 200)
	require.NoError(t, err)

	t.Run("optimal policy", func(t *testing.T) {
		result, err := dp.PolicyIteration(g, dp.RandomPolicy(g),
			dp.ZeroValues(g), dp.DefaultConfig())
		require.NoError(t, err)
		a, err := tabular.New(g, result.Policy, 4)
		require.NoError(t, err)

		returns, lengths, err := Rollouts(g, a, 100, "", "")
		require.NoError(t, err)
		require.Len(t, returns, 100)
		require.Len(t, lengths, 100)

		// The optimal policy reaches a corner in at most three moves
		for i := range returns {
			require.Equal(t, -lengths[i], returns[i])
			require.LessOrEqual(t, lengths[i], 3.0)
		}
	})

	t.Run("random policy is worse", func(t *testing.T) {
		a, err := tabular.New(g, dp.RandomPolicy(g), 4)
		require.NoError(t, err)

		returns, _, err := Rollouts(g, a, 200, "", "")
		require.NoError(t, err)
		require.Less(t, stat.Mean(returns, nil), -3.0)
	})

	t.Run("saved to disk", func(t *testing.T) {
		a, err := tabular.Config{Policy: dp.RandomPolicy(g)}.CreateAgent(g, 5)
		require.NoError(t, err)

		dir := t.TempDir()
		returnsFile := filepath.Join(dir, "returns.bin")
		lengthsFile := filepath.Join(dir, "lengths.bin")
		returns, lengths, err := Rollouts(g, a, 10, returnsFile, lengthsFile)
		require.NoError(t, err)

		saved, err := trackers.LoadData(returnsFile)
		require.NoError(t, err)
		require.Equal(t, returns, saved)
		saved, err = trackers.LoadData(lengthsFile)
		require.NoError(t, err)
		require.Equal(t, lengths, saved)
	})

	t.Run("episodes must be positive", func(t *testing.T) {
		a, err := tabular.New(g, dp.RandomPolicy(g), 4)
		require.NoError(t, err)
		_, _, err = Rollouts(g, a, 0, "", "")
		require.Error(t, err)
	})
}
