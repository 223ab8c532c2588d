package experiment

import (
	"fmt"

	"github.com/samuelfneumann/rlbasics/agent"
	env "github.com/samuelfneumann/rlbasics/environment"
	"github.com/samuelfneumann/rlbasics/experiment/trackers"
	ts "github.com/samuelfneumann/rlbasics/timestep"
)

// noAction is passed to ActionTrackers along with the first TimeStep of
// an episode, which no action led to
const noAction = -1

var _ Experiment = (*Online)(nil)

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
type Online struct {
	env.Environment
	agent.Agent
	maxSteps     int
	currentSteps int
	trackers     []trackers.Tracker
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines how
// many timesteps the experiment is run for, and the t parameter
// is a slice of trackers.Tracker which determine what data is saved.
// If steps is 0, episodes are only ended by the environment.
func NewOnline(e env.Environment, a agent.Agent, steps int,
	t ...trackers.Tracker) *Online {
	return &Online{e, a, steps, 0, t}
}

// Register registers a trackers.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// Steps returns the number of timesteps run so far
func (o *Online) Steps() int {
	return o.currentSteps
}

// RunEpisode runs a single episode of the experiment
func (o *Online) RunEpisode() (bool, error) {
	step := o.Environment.Reset()
	if err := o.Agent.ObserveFirst(step); err != nil {
		return false, fmt.Errorf("runEpisode: %w", err)
	}
	o.track(noAction, step)

	// Run the next timestep
	for !step.Last() && !o.limitReached() {
		o.currentSteps++

		// Select action, step in environment
		action := o.Agent.SelectAction(step)
		var err error
		step, _, err = o.Environment.Step(action)
		if err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}

		// Cache the environment step in each Tracker
		o.track(action, step)

		// Observe the timestep and step the agent
		if err := o.Agent.Observe(action, step); err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}
		if err := o.Agent.Step(); err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}
	}
	o.Agent.EndEpisode()

	// Return whether or not the max timestep limit has been reached
	return o.limitReached(), nil
}

// Run runs the entire experiment for all timesteps
func (o *Online) Run() error {
	if o.maxSteps <= 0 {
		return fmt.Errorf("run: experiment has no step limit")
	}

	for ended := false; !ended; {
		var err error
		if ended, err = o.RunEpisode(); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, tracker := range o.trackers {
		if err := tracker.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}

func (o *Online) limitReached() bool {
	return o.maxSteps > 0 && o.currentSteps >= o.maxSteps
}

// track tracks the current timestep by caching its data in each Tracker
func (o *Online) track(action int, t ts.TimeStep) {
	for _, tracker := range o.trackers {
		if at, ok := tracker.(trackers.ActionTracker); ok {
			at.TrackAction(action, t)
		} else {
			tracker.Track(t)
		}
	}
}
