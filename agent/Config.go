package agent

import (
	"github.com/pkg/errors"

	"github.com/johnjim0816/mpe/environment"
)

// Type represents a type of agent that a Config can create
type Type string

const (
	ConstantAgent Type = "Constant"
	RandomAgent   Type = "Random"
)

// Config represents a configuration for creating an agent. Configs are
// JSON serializable.
type Config struct {
	Type

	// Action is the action taken by Constant agents
	Action []float64
}

// CreateAgent creates the agent that the config describes
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (Agent, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "createAgent")
	}

	switch c.Type {
	case ConstantAgent:
		a, err := NewConstant(env, c.Action)
		if err != nil {
			return nil, errors.Wrap(err, "createAgent")
		}
		return a, nil

	case RandomAgent:
		return NewRandom(env, seed), nil
	}

	return nil, errors.Errorf("createAgent: no such agent type %v", c.Type)
}

// Validate returns an error describing whether or not the
// configuration is valid
func (c Config) Validate() error {
	switch c.Type {
	case ConstantAgent:
		if len(c.Action) == 0 {
			return errors.New("validate: constant agents need an action")
		}
	case RandomAgent:
	default:
		return errors.Errorf("validate: no such agent type %v", c.Type)
	}
	return nil
}
