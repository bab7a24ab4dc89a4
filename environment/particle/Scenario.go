package particle

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
)

// Scenario implements the rules of a particle world: how a World is
// reset between episodes, how agents are rewarded, and what agents
// observe.
//
// All randomness used by a Scenario must be drawn from the random
// source it is given, so that episodes are reproducible.
type Scenario interface {
	// ResetWorld reinitializes w for a new episode
	ResetWorld(w *World, rng *rand.Rand)

	// Reward returns the reward for agent on the current step. Reward
	// may change the per-episode state of w.
	Reward(agent *Agent, w *World, rng *rand.Rand) float64

	// Observation returns the observation of agent
	Observation(agent *Agent, w *World) *mat.VecDense

	// InputStructure describes how the observation of agent is grouped.
	// The sizes of all groups sum to the length of the observation.
	InputStructure(agent *Agent, w *World) []InputGroup
}

// InputGroup names a contiguous group of features in an observation
type InputGroup struct {
	Name string
	Size int
}

// Informer is a Scenario which reports extra per-agent diagnostics
type Informer interface {
	Info(agent *Agent, w *World) []float64
}
