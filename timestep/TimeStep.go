// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either the first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType denotes why an episode ended. Environments never end episodes
// themselves, so the EndType is set by whoever decides that a TimeStep
// is the last one in its episode.
type EndType int

const (
	Unended EndType = iota
	Timeout
	TerminalStateReached
)

func (e EndType) String() string {
	switch e {
	case Timeout:
		return "Timeout"
	case TerminalStateReached:
		return "TerminalStateReached"
	default:
		return "Unended"
	}
}

// TimeStep packages together the result of a single turn of one agent in
// an environment
type TimeStep struct {
	StepType
	Agent       string
	Reward      float64
	Observation *mat.VecDense
	Number      int

	endType EndType
}

// New returns a new TimeStep for the agent named agent
func New(t StepType, agent string, r float64, o *mat.VecDense, n int) TimeStep {
	return TimeStep{StepType: t, Agent: agent, Reward: r, Observation: o,
		Number: n}
}

// First returns whether a TimeStep is the first in an episode
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an episode
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an episode
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd marks the TimeStep as the last in its episode, ending for the
// reason e
func (t *TimeStep) SetEnd(e EndType) {
	t.StepType = Last
	t.endType = e
}

// EndType returns why the episode ended on this TimeStep. If the TimeStep
// is not the last in its episode, Unended is returned.
func (t *TimeStep) EndType() EndType {
	return t.endType
}

func (t TimeStep) String() string {
	str := "TimeStep | Agent: %v  |  Type: %v  |  Reward:  %.2f  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.Agent, t.StepType, t.Reward, t.Number)
}
