package environment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/rlbasics/timestep"
)

func TestCategoricalStarter(t *testing.T) {
	_, err := NewCategoricalStarter(nil, 1)
	require.Error(t, err)

	states := []int{1, 2, 4}
	s, err := NewCategoricalStarter(states, 1)
	require.NoError(t, err)

	seen := make(map[int]int)
	for i := 0; i < 3000; i++ {
		seen[s.Start()]++
	}
	require.Len(t, seen, len(states))
	for _, state := range states {
		require.InDelta(t, 1000, seen[state], 150, "state %d", state)
	}

	require.Equal(t, 7, SingleStart(7).Start())
}

func TestEnders(t *testing.T) {
	atFive := NewFunctionEnder(func(s int) bool { return s == 5 },
		timestep.TerminalStateReached)
	ender := Enders{atFive, NewStepLimit(3)}

	tests := []struct {
		name    string
		step    timestep.TimeStep
		last    bool
		endType timestep.EndType
	}{
		{"ongoing", timestep.New(timestep.Mid, -1, 1, 2, 1), false,
			timestep.Ongoing},
		{"terminal state", timestep.New(timestep.Mid, -1, 1, 5, 1), true,
			timestep.TerminalStateReached},
		{"step limit", timestep.New(timestep.Mid, -1, 1, 2, 3), true,
			timestep.Timeout},
		{"terminal state first", timestep.New(timestep.Mid, -1, 1, 5, 3),
			true, timestep.TerminalStateReached},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			step := test.step
			require.Equal(t, test.last, ender.End(&step))
			require.Equal(t, test.last, step.Last())
			require.Equal(t, test.endType, step.EndType())
		})
	}

	t.Run("no step limit", func(t *testing.T) {
		step := timestep.New(timestep.Mid, 0, 1, 0, 1_000_000)
		require.False(t, NewStepLimit(0).End(&step))
	})
}

func TestNewSpec(t *testing.T) {
	spec := NewSpec(4, Action)
	require.Equal(t, 4, spec.Size)
	require.Equal(t, Discrete, spec.Cardinality)
	require.Panics(t, func() { NewSpec(0, Observation) })
}
