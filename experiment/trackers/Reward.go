package trackers

import (
	ts "github.com/samuelfneumann/rlbasics/timestep"
)

// Reward tracks and saves the reward of every timestep in an
// experiment. The first TimeStep of each episode carries no reward and
// is not tracked.
type Reward struct {
	rewards  []float64
	filename string
}

// NewReward creates and returns a new *Reward Tracker which will save
// its data at filename
func NewReward(filename string) *Reward {
	return &Reward{filename: filename}
}

// Track caches the reward of step
func (r *Reward) Track(step ts.TimeStep) {
	if step.First() {
		return
	}
	r.rewards = append(r.rewards, step.Reward)
}

// Data returns the rewards tracked so far. The returned slice must not
// be modified.
func (r *Reward) Data() []float64 {
	return r.rewards
}

// Save saves the data tracked by the Reward Tracker to disk.
func (r *Reward) Save() error {
	return save(r.filename, r.rewards)
}
