// Package environment outlines the interfaces and structs needed to implement
// concrete turn-based environments
package environment

import (
	"gonum.org/v1/gonum/mat"

	"github.com/johnjim0816/mpe/timestep"
)

// Environment implements a turn-based (agent-environment cycle)
// environment. Exactly one agent acts per call to Step. The agent that
// acts next is given by AgentSelection, and agents take turns in the
// order given by Agents.
//
// An Environment never ends episodes on its own: the TimeSteps returned
// by Step are never Last. Deciding when an episode is over is left to the
// caller, usually by using an Ender.
type Environment interface {
	// Reset starts a new episode and returns the first TimeStep of the
	// agent selected to act first
	Reset() (timestep.TimeStep, error)

	// Step applies action for the currently selected agent, advances
	// the world by a single step, and returns that agent's TimeStep
	Step(action mat.Vector) (timestep.TimeStep, error)

	// Observe returns the current observation of the named agent
	Observe(agent string) (*mat.VecDense, error)

	Agents() []string
	AgentSelection() string

	// Seed reseeds the random source used for all episodes that follow
	Seed(seed uint64)
	Render(mode string) error
	Close() error

	ObservationSpec() Spec
	ActionSpec() Spec
}

// Ender determines when episodes should be ended. If an episode should
// be ended, End marks the TimeStep as the last in the episode and
// returns true.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Starter implements a distribution of starting states
type Starter interface {
	Start(src Source) *mat.VecDense
}
