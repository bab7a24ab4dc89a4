// Package trackers implements Trackers, which record data generated by
// the TimeSteps of an experiment
package trackers

import (
	ts "github.com/johnjim0816/mpe/timestep"
)

// Tracker keeps track of experiment data. Data is held in memory until
// it is requested.
type Tracker interface {
	Track(t ts.TimeStep)

	// Data returns one value per finished episode, in the order the
	// episodes finished
	Data() []float64
}

var (
	_ Tracker = (*Return)(nil)
	_ Tracker = (*EpisodeLength)(nil)
)
