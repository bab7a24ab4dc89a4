// Package agent defines an agent interface along with simple agents
// which drive particle worlds without learning
package agent

import (
	"gonum.org/v1/gonum/mat"

	"github.com/johnjim0816/mpe/timestep"
)

// Agent determines how actions are chosen in an environment and what
// is done with the TimeSteps that the chosen actions lead to.
//
// An Agent is composed of a Learner, which is given every transition
// in an episode, and a Policy which chooses actions in each state.
type Agent interface {
	Learner
	Policy
}

// Learner implements what an agent does with the TimeSteps it sees
type Learner interface {
	// Step performs a single update to the learner
	Step() error

	// Observe records that an action lead to some timestep
	Observe(action mat.Vector, nextObs timestep.TimeStep) error

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep) error

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// Policy represents a policy that an agent can have. Policies
// determine how agents select actions.
type Policy interface {
	SelectAction(t timestep.TimeStep) *mat.VecDense
}

// nonlearner implements the Learner interface for agents which never
// learn
type nonlearner struct{}

func (nonlearner) Step() error                                 { return nil }
func (nonlearner) Observe(mat.Vector, timestep.TimeStep) error { return nil }
func (nonlearner) ObserveFirst(timestep.TimeStep) error        { return nil }
func (nonlearner) EndEpisode()                                 {}
