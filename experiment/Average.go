package experiment

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/rlbasics/agent"
	"github.com/samuelfneumann/rlbasics/environment/bandit"
	"github.com/samuelfneumann/rlbasics/experiment/trackers"
	"github.com/samuelfneumann/rlbasics/utils/intutils"
	"github.com/samuelfneumann/rlbasics/utils/progressbar"
)

// summaryWindow is the number of final timesteps whose mean reward is
// logged after averaging a configuration
const summaryWindow = 100

// Testbed describes a k-armed bandit testbed: a number of independent
// runs, each on a freshly drawn bandit with Arms arms, each lasting
// Steps timesteps
type Testbed struct {
	Arms  int
	Runs  int
	Steps int
	Seed  uint64
}

// Validate returns an error if the Testbed cannot be run
func (tb Testbed) Validate() error {
	if tb.Arms <= 0 {
		return fmt.Errorf("arms must be positive, got %d", tb.Arms)
	}
	if tb.Runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", tb.Runs)
	}
	if tb.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", tb.Steps)
	}
	return nil
}

// seeds returns the seeds of the bandit and the agent of run. Every
// run of a testbed uses different seeds, and the bandit and agent of a
// run never share a seed.
func (tb Testbed) seeds(run int) (envSeed, agentSeed uint64) {
	base := 2 * (tb.Seed + uint64(run))
	return base, base + 1
}

// Result is the average performance of a single agent configuration
// over all runs of a Testbed. Rewards[t] is the mean reward received on
// timestep t+1 and Optimal[t] the fraction of runs that selected the
// optimal arm on that timestep.
type Result struct {
	Label   string
	Decay   bool
	Rewards []float64
	Optimal []float64
}

// Save gob-encodes a set of results to filename
func Save(filename string, results []Result) error {
	if err := trackers.SaveData(filename, results); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Load loads results previously written by Save
func Load(filename string) ([]Result, error) {
	var results []Result
	if err := trackers.LoadInto(filename, &results); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return results, nil
}

type options struct {
	progress io.Writer
}

// Option configures Average and AverageAll
type Option func(*options)

// WithProgress displays a progress bar on w while runs are performed
func WithProgress(w io.Writer) Option {
	return func(o *options) {
		o.progress = w
	}
}

// decayer is implemented by configurations whose exploration decays
// over time
type decayer interface {
	Decaying() bool
}

// Average runs the agent described by c on every run of the testbed and
// returns the per-timestep rewards and optimal action fractions averaged
// over all runs. Runs are performed sequentially.
func Average(c agent.Config, tb Testbed, opts ...Option) (Result, error) {
	if err := tb.Validate(); err != nil {
		return Result{}, fmt.Errorf("average: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Result{}, fmt.Errorf("average: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var bar *progressbar.ManualProgressBar
	if o.progress != nil {
		bar = progressbar.NewManualProgressBar(o.progress, c.String(), 40,
			tb.Runs)
		defer bar.Close()
	}

	result := Result{
		Label:   c.String(),
		Rewards: make([]float64, tb.Steps),
		Optimal: make([]float64, tb.Steps),
	}
	if d, ok := c.(decayer); ok {
		result.Decay = d.Decaying()
	}

	for run := 0; run < tb.Runs; run++ {
		rewards, optimal, err := runOnce(c, tb, run)
		if err != nil {
			return Result{}, fmt.Errorf("average: run %d: %w", run, err)
		}
		floats.Add(result.Rewards, rewards)
		floats.Add(result.Optimal, optimal)

		if bar != nil {
			bar.Increment()
			bar.Display()
		}
	}

	floats.Scale(1/float64(tb.Runs), result.Rewards)
	floats.Scale(1/float64(tb.Runs), result.Optimal)
	return result, nil
}

// runOnce performs a single run of the testbed and returns the reward
// and optimal action indicator of every timestep
func runOnce(c agent.Config, tb Testbed, run int) ([]float64, []float64,
	error) {
	envSeed, agentSeed := tb.seeds(run)

	env, _, err := bandit.New(tb.Arms, 0, envSeed)
	if err != nil {
		return nil, nil, err
	}
	a, err := c.CreateAgent(env, agentSeed)
	if err != nil {
		return nil, nil, err
	}
	if !c.ValidAgent(a) {
		return nil, nil, fmt.Errorf("runOnce: %v created an invalid agent "+
			"%T", c, a)
	}

	reward := trackers.NewReward("")
	optimal := trackers.NewOptimal(env.OptimalAction(), "")
	if err := NewOnline(env, a, tb.Steps, reward, optimal).Run(); err != nil {
		return nil, nil, err
	}

	return reward.Data(), optimal.Data(), nil
}

// AverageAll averages each configuration in turn, logging the mean
// reward over the final timesteps of each
func AverageAll(configs []agent.Config, tb Testbed,
	opts ...Option) ([]Result, error) {
	results := make([]Result, 0, len(configs))
	for _, c := range configs {
		log.Info().
			Str("agent", c.String()).
			Int("runs", tb.Runs).
			Int("steps", tb.Steps).
			Msg("running bandit testbed")

		result, err := Average(c, tb, opts...)
		if err != nil {
			return nil, fmt.Errorf("averageAll: %w", err)
		}

		tail := len(result.Rewards) - intutils.Min(summaryWindow,
			len(result.Rewards))
		log.Info().
			Str("agent", result.Label).
			Float64("finalReward", stat.Mean(result.Rewards[tail:], nil)).
			Float64("finalOptimal", stat.Mean(result.Optimal[tail:], nil)).
			Msg("finished bandit testbed")

		results = append(results, result)
	}
	return results, nil
}
