// Command rlbasics runs the k-armed bandit and gridworld dynamic
// programming experiments
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("rlbasics failed")
		os.Exit(1)
	}
}
