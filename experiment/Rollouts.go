package experiment

import (
	"fmt"

	"github.com/samuelfneumann/rlbasics/agent"
	env "github.com/samuelfneumann/rlbasics/environment"
	"github.com/samuelfneumann/rlbasics/experiment/trackers"
)

// Rollouts runs a episodes episodes on e and returns the return and
// length of every episode that finished. Episodes are ended only by
// the environment, so e should end episodes after some step limit
// unless a is known to reach a terminal state.
//
// If returnsFile or lengthsFile are not empty, the returns or lengths
// are also saved there.
func Rollouts(e env.Environment, a agent.Agent, episodes int, returnsFile,
	lengthsFile string) (returns, lengths []float64, err error) {
	if episodes <= 0 {
		return nil, nil, fmt.Errorf("rollouts: episodes must be positive, "+
			"got %d", episodes)
	}

	ret := trackers.NewReturn(returnsFile)
	length := trackers.NewEpisodeLength(lengthsFile)
	exp := NewOnline(e, a, 0)
	exp.Register(ret)
	exp.Register(length)

	for i := 0; i < episodes; i++ {
		if _, err := exp.RunEpisode(); err != nil {
			return nil, nil, fmt.Errorf("rollouts: episode %d: %w", i, err)
		}
	}
	if err := exp.Save(); err != nil {
		return nil, nil, fmt.Errorf("rollouts: %w", err)
	}
	return ret.Data(), length.Data(), nil
}
