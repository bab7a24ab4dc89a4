// Package envconfig provides configuration structs for configuring
// environments with default physical parameters and tasks. Environment
// configurations in this package are JSON serializable.
package envconfig

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/johnjim0816/mpe/environment"
	"github.com/johnjim0816/mpe/environment/particle"
	"github.com/johnjim0816/mpe/environment/particle/touch"
	ts "github.com/johnjim0816/mpe/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Touch EnvName = "Touch"
)

// PhysicsName stores the names of the physics backends that particle
// worlds can be simulated with
type PhysicsName string

// Physics backends available for configuration
const (
	Euler PhysicsName = "Euler"
	Box2D PhysicsName = "Box2D"
)

// Config implements a specific configuration of a specific environment
type Config struct {
	Environment       EnvName
	Physics           PhysicsName
	ContinuousActions bool
	Touch             touch.Config
}

// NewConfig returns a new environment Config for the touch world with
// default settings
func NewConfig() Config {
	return Config{
		Environment: Touch,
		Physics:     Euler,
		Touch:       touch.DefaultConfig(),
	}
}

// Parse returns the Config encoded as JSON in data. Fields missing from
// data keep the values given by NewConfig.
func Parse(data []byte) (Config, error) {
	c := NewConfig()
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrap(err, "parse")
	}
	return c, nil
}

// Create returns the environment described by the Config. The
// environment must be reset before use.
func (c Config) Create(seed uint64,
	opts ...particle.Option) (environment.Environment, error) {
	switch c.Environment {
	case Touch:
		return c.CreateTouch(seed, opts...)
	}

	return nil, errors.Errorf("create: cannot create environment %v, no "+
		"such environment", c.Environment)
}

// CreateTouch returns the touch world described by the Config, with
// discrete or continuous actions depending on the Config.
func (c Config) CreateTouch(seed uint64,
	opts ...particle.Option) (environment.Environment, error) {
	physics, err := c.physics()
	if err != nil {
		return nil, errors.Wrap(err, "createTouch")
	}

	w, err := touch.MakeWorld(c.Touch)
	if err != nil {
		return nil, errors.Wrap(err, "createTouch")
	}

	// Physics from the Config comes first, so that callers may override
	// it
	opts = append([]particle.Option{particle.WithPhysics(physics)}, opts...)

	var env environment.Environment
	if c.ContinuousActions {
		env, err = particle.NewContinuous(touch.New(), w, seed, opts...)
	} else {
		env, err = particle.NewDiscrete(touch.New(), w, seed, opts...)
	}
	if err != nil {
		return nil, errors.Wrap(err, "createTouch")
	}
	return env, nil
}

// freezer is an environment which can tell when no agent is able to
// move for the rest of the episode
type freezer interface {
	Frozen() bool
}

// Ender returns the Ender which ends the episodes of env, an
// environment created by the Config. Episodes end with
// timestep.TerminalStateReached once every agent of env is frozen, or
// with timestep.Timeout once the episode reaches the maximum number of
// frames.
func (c Config) Ender(env environment.Environment) environment.Ender {
	limit := environment.NewStepLimit(c.Touch.MaxFrames)

	f, ok := env.(freezer)
	if !ok {
		return limit
	}
	frozen := environment.NewFunctionEnder(func(*ts.TimeStep) bool {
		return f.Frozen()
	}, ts.TerminalStateReached)

	return environment.Any(frozen, limit)
}

// physics returns the physics backend named by the Config
func (c Config) physics() (particle.Physics, error) {
	switch c.Physics {
	case Euler, "":
		return particle.NewEuler(), nil

	case Box2D:
		return particle.NewBox2D(), nil
	}

	return nil, errors.Errorf("physics: no such physics backend %v",
		c.Physics)
}
