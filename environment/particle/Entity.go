package particle

import (
	"gonum.org/v1/gonum/mat"
)

// Default physical properties of entities
const (
	DefaultSize    float64 = 0.05
	DefaultDensity float64 = 25.0
	DefaultMass    float64 = 1.0
)

// Color is an RGB colour with each channel in [0, 1]
type Color [3]float64

// EntityState is the physical state of an entity
type EntityState struct {
	PPos *mat.VecDense // position
	PVel *mat.VecDense // velocity
}

// AgentState is the physical and communication state of an agent
type AgentState struct {
	EntityState

	// C is the communication utterance. It is nil when the world has no
	// communication channel.
	C *mat.VecDense
}

// Action is the action an agent applies on its turn
type Action struct {
	U *mat.VecDense // physical action
	C *mat.VecDense // communication action, nil if DimC == 0
}

// Entity holds the properties shared by all physical objects in a World
type Entity struct {
	Name    string
	Size    float64
	Color   Color
	Movable bool
	Collide bool
	Density float64

	// MaxSpeed bounds the entity's speed. Zero means unbounded.
	MaxSpeed float64

	// Accel scales the physical action of an agent. Zero means the
	// environment default is used.
	Accel float64

	// Mass of the entity. Zero means DefaultMass.
	Mass float64
}

// mass returns the mass used for integration
func (e *Entity) mass() float64 {
	if e.Mass == 0 {
		return DefaultMass
	}
	return e.Mass
}

// Landmark is a physical object in the world that takes no actions
type Landmark struct {
	Entity
	State EntityState
}

// NewLandmark returns a new, unplaced landmark
func NewLandmark() *Landmark {
	return &Landmark{
		Entity: Entity{
			Size:    DefaultSize,
			Collide: true,
			Density: DefaultDensity,
			Mass:    DefaultMass,
		},
	}
}

// Agent is a physical object in the world which acts on its turn
type Agent struct {
	Entity
	State  AgentState
	Action Action

	// Silent agents emit no communication
	Silent bool

	// Standard deviations of the physical and communication action
	// noise. Zero disables the noise.
	UNoise float64
	CNoise float64
}

// NewAgent returns a new, unplaced agent
func NewAgent() *Agent {
	return &Agent{
		Entity: Entity{
			Size:    DefaultSize,
			Movable: true,
			Collide: true,
			Density: DefaultDensity,
			Mass:    DefaultMass,
		},
	}
}

// body returns the entity and state views shared by the physics
func (a *Agent) body() (*Entity, *EntityState) {
	return &a.Entity, &a.State.EntityState
}

func (l *Landmark) body() (*Entity, *EntityState) {
	return &l.Entity, &l.State
}

// Body is any entity in the world that can be integrated by a Physics
type Body interface {
	body() (*Entity, *EntityState)
}

// Props returns the physical properties of a body
func Props(b Body) *Entity {
	e, _ := b.body()
	return e
}

// State returns the physical state of a body
func State(b Body) *EntityState {
	_, s := b.body()
	return s
}
