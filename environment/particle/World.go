// Package particle implements worlds of moving point particles which
// agents navigate by taking turns.
//
// A World is a passive container of agents, landmarks and global
// parameters. A Scenario decides how a World is populated, reset, scored
// and observed, and a Physics advances a World by a single step. Env
// ties these together into a turn-based environment.
package particle

import (
	"gonum.org/v1/gonum/mat"
)

// Untouched is the value of World.Touched before any landmark has been
// claimed in the current episode
const Untouched int = -1

// Default physical parameters of a World
const (
	DefaultDimP          int     = 2
	DefaultDimColor      int     = 3
	DefaultDt            float64 = 0.1
	DefaultDamping       float64 = 0.25
	DefaultContactForce  float64 = 1e2
	DefaultContactMargin float64 = 1e-3
)

// World holds all entities of a simulation along with the parameters of
// the scenario being simulated.
//
// Agents and landmarks keep the order in which they were added. The
// order determines entity names and the layout of observations, so it
// must never change after a World is built.
type World struct {
	Agents    []*Agent
	Landmarks []*Landmark

	DimP     int // spatial dimensionality
	DimC     int // communication channel width
	DimColor int

	Dt            float64
	Damping       float64
	ContactForce  float64
	ContactMargin float64

	NumTargets        int
	RewardScales      []float64
	SizeScales        []float64
	MaxFrames         int
	TimePenalty       float64
	GameEndAfterTouch bool
	EasyMode          bool

	// Steps counts the steps taken in the current episode
	Steps int

	// Touched is the index of the landmark claimed in the current
	// episode, or Untouched
	Touched int

	// TurnTouched is true only on the step which first claimed a
	// landmark
	TurnTouched bool
}

// NewWorld returns a new World with default physical parameters and no
// entities
func NewWorld() *World {
	return &World{
		DimP:          DefaultDimP,
		DimColor:      DefaultDimColor,
		Dt:            DefaultDt,
		Damping:       DefaultDamping,
		ContactForce:  DefaultContactForce,
		ContactMargin: DefaultContactMargin,
		Touched:       Untouched,
	}
}

// Entities returns all bodies in the World, agents first, each in the
// order they were added
func (w *World) Entities() []Body {
	bodies := make([]Body, 0, len(w.Agents)+len(w.Landmarks))
	for _, a := range w.Agents {
		bodies = append(bodies, a)
	}
	for _, l := range w.Landmarks {
		bodies = append(bodies, l)
	}
	return bodies
}

// Agent returns the agent with the given name
func (w *World) Agent(name string) (*Agent, bool) {
	for _, a := range w.Agents {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// IsTouched returns whether a landmark has been claimed this episode
func (w *World) IsTouched() bool {
	return w.Touched != Untouched
}

// Placed returns whether every entity in the World has been given a
// position and velocity
func (w *World) Placed() bool {
	for _, b := range w.Entities() {
		s := State(b)
		if s.PPos == nil || s.PVel == nil {
			return false
		}
	}
	return true
}

// Frozen returns whether no agent in the World can move
func (w *World) Frozen() bool {
	for _, a := range w.Agents {
		if a.Movable {
			return false
		}
	}
	return true
}

// Place sets the position of a body and zeroes its velocity. The
// position is copied.
func (w *World) Place(b Body, pos mat.Vector) {
	s := State(b)
	if s.PPos == nil {
		s.PPos = mat.NewVecDense(w.DimP, nil)
	}
	s.PPos.CopyVec(pos)

	if s.PVel == nil {
		s.PVel = mat.NewVecDense(w.DimP, nil)
	} else {
		s.PVel.Zero()
	}
}

// Silence zeroes the communication state of an agent
func (w *World) Silence(a *Agent) {
	if w.DimC == 0 {
		a.State.C = nil
		return
	}
	if a.State.C == nil {
		a.State.C = mat.NewVecDense(w.DimC, nil)
	} else {
		a.State.C.Zero()
	}
}
