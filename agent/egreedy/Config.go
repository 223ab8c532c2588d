package egreedy

import (
	"fmt"

	"github.com/samuelfneumann/rlbasics/agent"
	"github.com/samuelfneumann/rlbasics/environment"
)

// ConfigList implements functionality for storing a number of Config's
// in a simple manner. Instead of storing a slice of Configs, the
// ConfigList stores each field's values and constructs the list by
// every combination of field values.
type ConfigList struct {
	Epsilon         []float64
	Decay           []bool
	InitialEstimate []float64
}

// NewConfigList returns a new ConfigList. If no initial estimates are
// given, all estimates start at 0.
func NewConfigList(ɛ []float64, decay []bool,
	initialEstimate ...float64) ConfigList {
	if len(initialEstimate) == 0 {
		initialEstimate = []float64{0}
	}
	return ConfigList{Epsilon: ɛ, Decay: decay,
		InitialEstimate: initialEstimate}
}

// Len returns the number of Configs stored by the list
func (c ConfigList) Len() int {
	return len(c.Epsilon) * len(c.Decay) * len(c.InitialEstimate)
}

// At returns the Config at index i. Epsilon varies fastest, followed by
// Decay and then InitialEstimate.
func (c ConfigList) At(i int) agent.Config {
	if i < 0 || i >= c.Len() {
		panic(fmt.Sprintf("at: index %d out of range [0, %d)", i, c.Len()))
	}

	e := i % len(c.Epsilon)
	i /= len(c.Epsilon)
	d := i % len(c.Decay)
	i /= len(c.Decay)

	return Config{
		Epsilon:         c.Epsilon[e],
		Decay:           c.Decay[d],
		InitialEstimate: c.InitialEstimate[i],
	}
}

// Config represents a configuration for the EGreedy agent
type Config struct {
	Epsilon         float64 // ε, or the initial ε if Decay is set
	Decay           bool
	InitialEstimate float64 // initial action value estimate of every arm
}

// Schedule returns the exploration schedule described by the Config
func (c Config) Schedule() Schedule {
	if c.Decay {
		return NewDecay(c.Epsilon)
	}
	return Constant(c.Epsilon)
}

// CreateAgent creates the agent from the Config
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	return New(env, c, seed)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*EGreedy)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon %v outside [0, 1]", c.Epsilon)
	}
	return nil
}

// String returns the label of the Config, as used in plot legends
func (c Config) String() string {
	return fmt.Sprint(c.Schedule())
}

// Decaying returns whether ε decays over time
func (c Config) Decaying() bool {
	return c.Decay
}
