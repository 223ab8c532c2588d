package trackers

import (
	ts "github.com/samuelfneumann/rlbasics/timestep"
)

// Optimal tracks whether the optimal action was taken on each timestep,
// recording 1 if it was and 0 otherwise
type Optimal struct {
	optimal  int
	taken    []float64
	filename string
}

// NewOptimal creates and returns a new *Optimal Tracker for an
// environment whose optimal action is optimal
func NewOptimal(optimal int, filename string) *Optimal {
	return &Optimal{optimal: optimal, filename: filename}
}

// Track panics since Optimal needs to know which action was taken. Use
// TrackAction instead.
func (o *Optimal) Track(ts.TimeStep) {
	panic("track: optimal action tracker requires actions, use " +
		"TrackAction")
}

// TrackAction records whether action was the optimal action
func (o *Optimal) TrackAction(action int, step ts.TimeStep) {
	if step.First() {
		return
	}

	taken := 0.0
	if action == o.optimal {
		taken = 1.0
	}
	o.taken = append(o.taken, taken)
}

// Data returns the indicators tracked so far. The returned slice must
// not be modified.
func (o *Optimal) Data() []float64 {
	return o.taken
}

// Save saves the data tracked by the Optimal Tracker to disk.
func (o *Optimal) Save() error {
	return save(o.filename, o.taken)
}
