// Package bandit implements the k-armed bandit testbed environment
package bandit

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/rlbasics/environment"
	"github.com/samuelfneumann/rlbasics/timestep"
)

const (
	// MeanStdDev is the standard deviation of the normal distribution
	// that the true action values are drawn from
	MeanStdDev float64 = 1.0

	// RewardStdDev is the standard deviation of the reward noise around
	// the true value of each arm
	RewardStdDev float64 = 1.0
)

// Bandit implements a stationary k-armed bandit. The true value q*(a)
// of each arm is drawn once from N(0, 1) when the bandit is created
// and stays fixed for the bandit's lifetime. Pulling arm a produces a
// reward drawn from N(q*(a), 1).
//
// A Bandit has a single state, so all TimeSteps observe state 0.
// Episodes end only when the step limit is reached; a step limit of 0
// means the episode never ends.
type Bandit struct {
	qStar   []float64
	optimal int
	noise   distuv.Normal

	ender       environment.Ender
	discount    float64
	currentStep timestep.TimeStep
}

// New creates a new Bandit with arms arms whose true values are drawn
// from N(0, 1) using seed. Episodes are cut off after steps timesteps.
func New(arms, steps int, seed uint64) (*Bandit, timestep.TimeStep, error) {
	if arms <= 0 {
		return nil, timestep.TimeStep{}, fmt.Errorf("new: arms must be "+
			"positive, got %v", arms)
	}
	source := rand.NewSource(seed)

	// Draw the true action values
	means := distuv.Normal{Mu: 0, Sigma: MeanStdDev, Src: source}
	qStar := make([]float64, arms)
	for i := range qStar {
		qStar[i] = means.Rand()
	}

	return newBandit(qStar, steps, source)
}

// NewFromMeans creates a new Bandit with the given true action values.
// Rewards are sampled using seed.
func NewFromMeans(qStar []float64, steps int,
	seed uint64) (*Bandit, timestep.TimeStep, error) {
	if len(qStar) == 0 {
		return nil, timestep.TimeStep{}, fmt.Errorf("newFromMeans: no " +
			"action values given")
	}
	qStar = append([]float64(nil), qStar...)

	return newBandit(qStar, steps, rand.NewSource(seed))
}

func newBandit(qStar []float64, steps int,
	source rand.Source) (*Bandit, timestep.TimeStep, error) {
	if steps < 0 {
		return nil, timestep.TimeStep{}, fmt.Errorf("new: steps cannot be "+
			"negative, got %v", steps)
	}

	b := &Bandit{
		qStar:    qStar,
		optimal:  floats.MaxIdx(qStar),
		noise:    distuv.Normal{Mu: 0, Sigma: RewardStdDev, Src: source},
		ender:    environment.NewStepLimit(steps),
		discount: 1.0,
	}

	return b, b.Reset(), nil
}

// Reset resets the bandit to the start of a new episode. The true
// action values are not redrawn.
func (b *Bandit) Reset() timestep.TimeStep {
	b.currentStep = timestep.New(timestep.First, 0, b.discount, 0, 0)
	return b.currentStep
}

// Step pulls arm action and returns the resulting TimeStep and whether
// the episode has ended
func (b *Bandit) Step(action int) (timestep.TimeStep, bool, error) {
	if action < 0 || action >= len(b.qStar) {
		return timestep.TimeStep{}, false, fmt.Errorf("step: illegal "+
			"action %v for %v-armed bandit", action, len(b.qStar))
	}

	reward := b.qStar[action] + b.noise.Rand()
	step := timestep.New(timestep.Mid, reward, b.discount, 0,
		b.currentStep.Number+1)
	last := b.ender.End(&step)

	b.currentStep = step
	return step, last, nil
}

// CurrentTimeStep returns the last TimeStep generated by the bandit
func (b *Bandit) CurrentTimeStep() timestep.TimeStep {
	return b.currentStep
}

// Arms returns the number of arms of the bandit
func (b *Bandit) Arms() int {
	return len(b.qStar)
}

// Means returns a copy of the true action values
func (b *Bandit) Means() []float64 {
	return append([]float64(nil), b.qStar...)
}

// OptimalAction returns the arm with the highest true value. Ties are
// broken in favour of the lowest index.
func (b *Bandit) OptimalAction() int {
	return b.optimal
}

// ActionSpec returns the action specification of the bandit
func (b *Bandit) ActionSpec() environment.Spec {
	return environment.NewSpec(len(b.qStar), environment.Action)
}

// ObservationSpec returns the observation specification of the bandit
func (b *Bandit) ObservationSpec() environment.Spec {
	return environment.NewSpec(1, environment.Observation)
}

func (b *Bandit) String() string {
	return fmt.Sprintf("Bandit | Arms: %d  |  Optimal: %d  |  q*: %.2f",
		len(b.qStar), b.optimal, b.qStar)
}
