package agent

import (
	"fmt"

	"github.com/samuelfneumann/rlbasics/environment"
)

// Config represents a configuration for creating an agent
type Config interface {
	fmt.Stringer

	// CreateAgent creates the agent that the config describes
	CreateAgent(env environment.Environment, seed uint64) (Agent, error)

	// ValidAgent returns whether the argument agent is valid for the
	// Config
	ValidAgent(Agent) bool

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error
}

// ConfigList stores a number of Configs compactly. Instead of storing
// a slice of Configs, a ConfigList stores each field's values and
// constructs the list from every combination of field values.
type ConfigList interface {
	// Len returns the number of Configs stored by the list
	Len() int

	// At returns the Config at index i of the list
	At(i int) Config
}

// Configs expands a ConfigList into a slice of Configs
func Configs(list ConfigList) []Config {
	configs := make([]Config, list.Len())
	for i := range configs {
		configs[i] = list.At(i)
	}
	return configs
}
