package intutils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinMax(t *testing.T) {
	require.Equal(t, -2, Min(3, -2, 7))
	require.Equal(t, 7, Max(3, -2, 7))
	require.Equal(t, 4, Max(4))
	require.Equal(t, 0, Max(0, -1))
}
