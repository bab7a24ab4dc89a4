package experiment

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/johnjim0816/mpe/agent"
	env "github.com/johnjim0816/mpe/environment"
	"github.com/johnjim0816/mpe/experiment/trackers"
	ts "github.com/johnjim0816/mpe/timestep"
	"github.com/johnjim0816/mpe/utils/progressbar"
)

// progressUpdates is the number of times the progress bar is redrawn
// over an experiment
const progressUpdates uint = 100

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
//
// Environments never end episodes on their own, so every TimeStep
// returned by the environment is first given to the Ender of the
// experiment, which decides whether the episode is over.
type Online struct {
	env.Environment
	agent.Agent
	ender        env.Ender
	maxSteps     uint
	currentSteps uint
	episodes     int
	trackers     []trackers.Tracker
	logger       *slog.Logger
	renderMode   string
	progress     *progressbar.ProgressBar
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines how
// many timesteps the experiment is run for, the ender determines when
// episodes end, and the t parameter is a slice of trackers.Tracker
// which determine what data is tracked.
func NewOnline(e env.Environment, a agent.Agent, ender env.Ender,
	steps uint, t ...trackers.Tracker) *Online {
	return &Online{
		Environment: e,
		Agent:       a,
		ender:       ender,
		maxSteps:    steps,
		trackers:    t,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger that episode summaries are written to
func (o *Online) SetLogger(logger *slog.Logger) {
	o.logger = logger
}

// SetRenderMode sets the mode that the environment is rendered in after
// every step. An empty mode disables rendering.
func (o *Online) SetRenderMode(mode string) {
	o.renderMode = mode
}

// SetProgressBar sets a progress bar which is advanced on every step of
// the experiment. The bar should reach 100% after the maximum number of
// steps of the experiment.
func (o *Online) SetProgressBar(p *progressbar.ProgressBar) {
	o.progress = p
}

// Register registers a trackers.Tracker with an Experiment so that
// data generated during the experiment can be tracked
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment
func (o *Online) RunEpisode() (bool, error) {
	step, err := o.Environment.Reset()
	if err != nil {
		return true, errors.Wrap(err, "runEpisode")
	}
	o.ender.End(&step)
	if err := o.Agent.ObserveFirst(step); err != nil {
		return true, errors.Wrap(err, "runEpisode")
	}
	o.track(step)
	if err := o.render(); err != nil {
		return true, errors.Wrap(err, "runEpisode")
	}

	var episodeReturn float64
	for !step.Last() && o.currentSteps < o.maxSteps {
		o.currentSteps++
		o.advance()

		// Select action, step in environment
		action := o.Agent.SelectAction(step)
		step, err = o.Environment.Step(action)
		if err != nil {
			return true, errors.Wrap(err, "runEpisode")
		}
		o.ender.End(&step)
		episodeReturn += step.Reward

		o.track(step)
		if err := o.render(); err != nil {
			return true, errors.Wrap(err, "runEpisode")
		}

		// Observe the timestep and step the agent
		if err := o.Agent.Observe(action, step); err != nil {
			return true, errors.Wrap(err, "runEpisode")
		}
		if err := o.Agent.Step(); err != nil {
			return true, errors.Wrap(err, "runEpisode")
		}
	}
	o.Agent.EndEpisode()

	if step.Last() {
		o.episodes++
		o.logger.Info("episode",
			"number", o.episodes,
			"return", episodeReturn,
			"length", step.Number,
			"end", step.EndType(),
		)
	}

	// Return whether or not the max timestep limit has been reached
	return o.currentSteps >= o.maxSteps, nil
}

// Run runs the entire experiment for all timesteps
func (o *Online) Run() error {
	for {
		ended, err := o.RunEpisode()
		if err != nil {
			return errors.Wrap(err, "run")
		}
		if ended {
			return nil
		}
	}
}

// Episodes returns the number of episodes finished so far
func (o *Online) Episodes() int {
	return o.episodes
}

// advance advances the progress bar if one is set
func (o *Online) advance() {
	if o.progress == nil {
		return
	}
	o.progress.Increment()

	every := o.maxSteps / progressUpdates
	if every == 0 || o.currentSteps%every == 0 ||
		o.currentSteps == o.maxSteps {
		o.progress.Display()
	}
}

// render renders the environment if a render mode is set
func (o *Online) render() error {
	if o.renderMode == "" {
		return nil
	}
	return o.Environment.Render(o.renderMode)
}

// track tracks the current timestep by sending it to each tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}
