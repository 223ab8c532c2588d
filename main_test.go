package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/rlbasics/experiment"
	"github.com/samuelfneumann/rlbasics/experiment/trackers"
)

func execute(t *testing.T, args ...string) {
	t.Helper()
	cmd := newRootCommand()
	cmd.SetArgs(append(args, "--log-level", "error"))
	require.NoError(t, cmd.Execute())
}

func TestGridWorldCommand(t *testing.T) {
	dir := t.TempDir()
	execute(t, "gridworld", "--out", dir, "--rollouts", "5")

	policy, err := os.ReadFile(filepath.Join(dir, "optimal_policy.txt"))
	require.NoError(t, err)
	require.Equal(t,
		" T   L   L  DL \n"+
			" U  UL  UDLR  D \n"+
			" U  UDLR DR   D \n"+
			"UR   R   R   T \n",
		string(policy))

	values, err := os.ReadFile(filepath.Join(dir, "state_value_k100.txt"))
	require.NoError(t, err)
	require.Contains(t, string(values), "-13.94")

	_, err = os.Stat(filepath.Join(dir, "state_value_k100.png"))
	require.NoError(t, err)
}

func TestBanditCommand(t *testing.T) {
	dir := t.TempDir()
	execute(t, "bandit", "--out", dir, "--runs", "2", "--steps", "30",
		"--progress=false", "--html", "rewards.html", "--data", "rewards.bin")

	_, err := os.Stat(filepath.Join(dir, "average_reward_plot.png"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "rewards.html"))
	require.NoError(t, err)

	results, err := experiment.Load(filepath.Join(dir, "rewards.bin"))
	require.NoError(t, err)
	require.Len(t, results, 4)
	require.Len(t, results[0].Rewards, 30)
	require.Equal(t, "ε decaying", results[3].Label)
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gridworld: {rows: 0}\n"),
		0o644))

	cmd := newRootCommand()
	cmd.SetArgs([]string{"gridworld", "--config", path, "--out", dir})
	require.Error(t, cmd.Execute())
}

func TestGridWorldRolloutFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path,
		[]byte("gridworld: {seed: 3}\noutput: {rollouts: grid}\n"), 0o644))
	execute(t, "gridworld", "--config", path, "--out", dir, "--rollouts", "4")

	for _, policy := range []string{"random", "optimal"} {
		lengths, err := trackers.LoadData(filepath.Join(dir,
			"grid_"+policy+"_lengths.bin"))
		require.NoError(t, err)
		require.Len(t, lengths, 4)

		returns, err := trackers.LoadData(filepath.Join(dir,
			"grid_"+policy+"_returns.bin"))
		require.NoError(t, err)
		require.Len(t, returns, 4)
	}
}
