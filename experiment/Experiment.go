// Package experiment implements functionality for running an experiment
package experiment

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/johnjim0816/mpe/agent"
	"github.com/johnjim0816/mpe/environment/envconfig"
	"github.com/johnjim0816/mpe/environment/particle"
	"github.com/johnjim0816/mpe/experiment/trackers"
)

// Experiment outlines structs that can run experiments. Experiments
// send every environment TimeStep to their Trackers, which record the
// data they need in memory. The Run() method runs all episodes until
// the maximum timestep limit is reached. The RunEpisode() method runs
// a single episode.
type Experiment interface {
	Run() error

	// RunEpisode returns whether the step limit of the experiment has
	// been reached
	RunEpisode() (bool, error)

	// Register adds a new Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t trackers.Tracker)
}

type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment. Configs are JSON
// serializable.
type Config struct {
	Type
	MaxSteps  uint
	EnvConf   envconfig.Config
	AgentConf agent.Config
}

// NewConfig returns a Config for an online experiment of a random agent
// in the default environment
func NewConfig(maxSteps uint) Config {
	return Config{
		Type:      OnlineExp,
		MaxSteps:  maxSteps,
		EnvConf:   envconfig.NewConfig(),
		AgentConf: agent.Config{Type: agent.RandomAgent},
	}
}

// CreateExp creates the experiment described by the Config. The
// environment and agent are both seeded with seed, and the logger is
// given to both the environment and the experiment. A nil logger
// discards all records.
func (c Config) CreateExp(seed uint64, logger *slog.Logger,
	t []trackers.Tracker, opts ...particle.Option) (*Online, error) {
	if logger != nil {
		opts = append(opts, particle.WithLogger(logger))
	}
	env, err := c.EnvConf.Create(seed, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "createExp")
	}

	a, err := c.AgentConf.CreateAgent(env, seed)
	if err != nil {
		return nil, errors.Wrap(err, "createExp")
	}

	switch c.Type {
	case OnlineExp:
		o := NewOnline(env, a, c.EnvConf.Ender(env), c.MaxSteps, t...)
		if logger != nil {
			o.SetLogger(logger)
		}
		return o, nil
	}

	return nil, errors.Errorf("createExp: no such experiment type %v",
		c.Type)
}
