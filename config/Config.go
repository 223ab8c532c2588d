// Package config loads the settings of the bandit and gridworld
// experiments from YAML
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/samuelfneumann/rlbasics/agent"
	"github.com/samuelfneumann/rlbasics/agent/egreedy"
	"github.com/samuelfneumann/rlbasics/dp"
	"github.com/samuelfneumann/rlbasics/experiment"
)

// Config holds the settings of every experiment. Fields missing from a
// configuration file keep their default values.
type Config struct {
	Bandit    Bandit    `yaml:"bandit"`
	GridWorld GridWorld `yaml:"gridworld"`
	Output    Output    `yaml:"output"`
}

// Bandit configures the k-armed bandit testbed
type Bandit struct {
	Arms  int    `yaml:"arms"`
	Steps int    `yaml:"steps"`
	Runs  int    `yaml:"runs"`
	Seed  uint64 `yaml:"seed"`

	// Epsilons are the constant exploration rates compared
	Epsilons []float64 `yaml:"epsilons"`

	// DecayingEpsilons are the initial exploration rates of decaying
	// schedules compared
	DecayingEpsilons []float64 `yaml:"decaying_epsilons"`
}

// GridWorld configures the gridworld dynamic programming experiment
type GridWorld struct {
	Rows      int     `yaml:"rows"`
	Cols      int     `yaml:"cols"`
	K         int     `yaml:"k"`
	Threshold float64 `yaml:"threshold"`
	Discount  float64 `yaml:"discount"`
	Seed      uint64  `yaml:"seed"`

	// Rollouts is the number of episodes the optimal and random
	// policies are run for. Zero disables rollouts.
	Rollouts int `yaml:"rollouts"`

	// Cutoff ends rollout episodes after this many steps
	Cutoff int `yaml:"cutoff"`
}

// Output names the files experiments write, relative to Dir. Empty
// optional file names disable that output.
type Output struct {
	Dir            string `yaml:"dir"`
	RewardPlotFile string `yaml:"reward_plot"`
	ValuesFile     string `yaml:"values"`
	PolicyFile     string `yaml:"policy"`
	HeatMapFile    string `yaml:"heat_map"`
	HTMLFile       string `yaml:"html,omitempty"`
	DataFile       string `yaml:"data,omitempty"`

	// RolloutsPrefix starts the names of the files that rollout returns
	// and episode lengths are saved to
	RolloutsPrefix string `yaml:"rollouts,omitempty"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Bandit: Bandit{
			Arms:             10,
			Steps:            1000,
			Runs:             100,
			Seed:             0,
			Epsilons:         []float64{0, 0.01, 0.1},
			DecayingEpsilons: []float64{1.0},
		},
		GridWorld: GridWorld{
			Rows:      4,
			Cols:      4,
			K:         100,
			Threshold: dp.DefaultThreshold,
			Discount:  1.0,
			Rollouts:  0,
			Cutoff:    1000,
		},
		Output: Output{
			Dir:            ".",
			RewardPlotFile: "average_reward_plot.png",
			ValuesFile:     "state_value_k100.txt",
			PolicyFile:     "optimal_policy.txt",
			HeatMapFile:    "state_value_k100.png",
		},
	}
}

// Load reads a YAML configuration from path over the defaults
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}
	return Parse(data)
}

// Parse parses a YAML configuration over the defaults
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	return c, nil
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if err := c.Bandit.Validate(); err != nil {
		return fmt.Errorf("bandit: %w", err)
	}
	if err := c.GridWorld.Validate(); err != nil {
		return fmt.Errorf("gridworld: %w", err)
	}
	return nil
}

// Validate ensures that the bandit settings are valid
func (b Bandit) Validate() error {
	if err := b.Testbed().Validate(); err != nil {
		return err
	}
	if len(b.Epsilons)+len(b.DecayingEpsilons) == 0 {
		return fmt.Errorf("no exploration rates given")
	}
	for _, c := range b.Agents() {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Testbed returns the testbed described by the settings
func (b Bandit) Testbed() experiment.Testbed {
	return experiment.Testbed{
		Arms:  b.Arms,
		Runs:  b.Runs,
		Steps: b.Steps,
		Seed:  b.Seed,
	}
}

// Agents returns one ε-greedy configuration per constant exploration
// rate followed by one per decaying schedule
func (b Bandit) Agents() []agent.Config {
	var configs []agent.Config
	if len(b.Epsilons) > 0 {
		constant := egreedy.NewConfigList(b.Epsilons, []bool{false})
		configs = append(configs, agent.Configs(constant)...)
	}
	if len(b.DecayingEpsilons) > 0 {
		decaying := egreedy.NewConfigList(b.DecayingEpsilons, []bool{true})
		configs = append(configs, agent.Configs(decaying)...)
	}
	return configs
}

// Validate ensures that the gridworld settings are valid
func (g GridWorld) Validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("invalid dimensions (%d, %d)", g.Rows, g.Cols)
	}
	if g.Rows*g.Cols < 3 {
		return fmt.Errorf("grid (%d, %d) has no non-terminal states",
			g.Rows, g.Cols)
	}
	if g.Rollouts < 0 || g.Cutoff < 0 {
		return fmt.Errorf("rollouts and cutoff cannot be negative")
	}
	return g.DP().Validate()
}

// Seeds returns the seeds of the gridworld's start state sampler and of
// the rollout agents, which never share a seed
func (g GridWorld) Seeds() (envSeed, agentSeed uint64) {
	return 2 * g.Seed, 2*g.Seed + 1
}

// DP returns the dynamic programming configuration described by the
// settings
func (g GridWorld) DP() dp.Config {
	c := dp.DefaultConfig()
	c.K = g.K
	c.Threshold = g.Threshold
	c.Discount = g.Discount
	return c
}

// RolloutPaths returns the paths that the returns and episode lengths
// of rolling out policy are saved to, or empty strings if rollouts are
// not saved
func (o Output) RolloutPaths(policy string) (returns, lengths string) {
	if o.RolloutsPrefix == "" {
		return "", ""
	}
	return o.Path(o.RolloutsPrefix + "_" + policy + "_returns.bin"),
		o.Path(o.RolloutsPrefix + "_" + policy + "_lengths.bin")
}

// Path returns the path of an output file, or the empty string if name
// is empty
func (o Output) Path(name string) string {
	if name == "" {
		return ""
	}
	return filepath.Join(o.Dir, name)
}
