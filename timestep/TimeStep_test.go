package timestep

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimeStep(t *testing.T) {
	step := New(First, 0, 1, 3, 0)
	require.True(t, step.First())
	require.False(t, step.Last())
	require.Equal(t, Ongoing, step.EndType())

	// The end type only applies to the last step of an episode
	step.SetEnd(Timeout)
	require.Equal(t, Ongoing, step.EndType())
	step.StepType = Last
	require.Equal(t, Timeout, step.EndType())

	require.Equal(t, "TimeStep | Type: Last  |  Reward:  0.00  |  "+
		"Discount: 1.00  |  State: 3  |  Step Number:  0", step.String())
}
