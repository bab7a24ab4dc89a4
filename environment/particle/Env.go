package particle

import (
	"io"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/johnjim0816/mpe/environment"
	ts "github.com/johnjim0816/mpe/timestep"
)

// DefaultSensitivity scales the physical action of agents which do not
// set their own acceleration
const DefaultSensitivity float64 = 5.0

var (
	// ErrNotReset is returned when an environment is used before its
	// first call to Reset, or after it has been closed
	ErrNotReset = errors.New("environment must be reset before use")

	// ErrUnknownAgent is returned when an agent name does not belong to
	// the environment
	ErrUnknownAgent = errors.New("unknown agent")

	// ErrUnsupportedRenderMode is returned by Render when no renderer
	// can handle the requested mode
	ErrUnsupportedRenderMode = errors.New("unsupported render mode")
)

// Renderer displays the state of a World
type Renderer interface {
	Render(w *World, mode string) error
}

// Option configures an Env
type Option func(*Env)

// WithLogger sets the logger that an Env reports episode events to
func WithLogger(logger *slog.Logger) Option {
	return func(e *Env) {
		e.logger = logger
	}
}

// WithPhysics sets the Physics used to advance the World. By default,
// Euler integration is used.
func WithPhysics(p Physics) Option {
	return func(e *Env) {
		e.physics = p
	}
}

// WithRenderer sets the Renderer used by Render
func WithRenderer(r Renderer) Option {
	return func(e *Env) {
		e.renderer = r
	}
}

// Env implements the turn-based cycle of a particle world shared by
// the Discrete and Continuous environments. Env does not implement the
// environment.Environment interface itself since it has no notion of
// how actions map to forces. Instead, it is embedded in Discrete and
// Continuous which do implement this interface.
//
// Agents act in the order they appear in the World. On each step,
// only the currently selected agent's action is applied, the World is
// advanced by one physics step, and the selected agent's reward and
// observation are computed.
//
// An Env exclusively owns its World and random source and must not be
// used from multiple goroutines at once.
type Env struct {
	scenario Scenario
	world    *World
	physics  Physics
	renderer Renderer
	logger   *slog.Logger

	seed     uint64
	rng      *rand.Rand
	episode  uuid.UUID
	selected int
	ready    bool
}

// newEnv returns a new Env which plays scenario s on world w with
// randomness seeded by seed
func newEnv(s Scenario, w *World, seed uint64, opts ...Option) (*Env, error) {
	if len(w.Agents) == 0 {
		return nil, errors.New("new: world must contain at least one agent")
	}
	seen := make(map[string]bool, len(w.Agents))
	for _, a := range w.Agents {
		if seen[a.Name] {
			return nil, errors.Errorf("new: duplicate agent name %q", a.Name)
		}
		seen[a.Name] = true
	}

	e := &Env{
		scenario: s,
		world:    w,
		physics:  NewEuler(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		seed:     seed,
		rng:      rand.New(rand.NewSource(seed)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Reset starts a new episode and returns the first TimeStep of the
// first agent
func (e *Env) Reset() (ts.TimeStep, error) {
	e.scenario.ResetWorld(e.world, e.rng)
	for _, a := range e.world.Agents {
		a.Action = Action{}
	}
	if !e.world.Placed() {
		return ts.TimeStep{}, errors.New("reset: scenario left entities " +
			"without a position")
	}

	e.selected = 0
	e.episode = uuid.New()
	e.ready = true

	e.logger.Debug("reset",
		"episode", e.episode,
		"seed", e.seed,
		"agents", len(e.world.Agents),
		"landmarks", len(e.world.Landmarks),
	)

	agent := e.world.Agents[e.selected]
	obs := e.scenario.Observation(agent, e.world)
	return ts.New(ts.First, agent.Name, 0.0, obs, e.world.Steps), nil
}

// step applies the physical action u for the currently selected agent,
// advances the World, and returns the agent's TimeStep. The action is
// scaled by the agent's sensitivity. It is ignored if the agent cannot
// move.
func (e *Env) step(u *mat.VecDense) (ts.TimeStep, error) {
	if !e.ready {
		return ts.TimeStep{}, errors.Wrap(ErrNotReset, "step")
	}
	agent := e.world.Agents[e.selected]

	// Only the acting agent applies an action on its turn
	for _, a := range e.world.Agents {
		a.Action = Action{}
	}
	agent.Action.U = mat.NewVecDense(e.world.DimP, nil)
	if agent.Movable {
		sensitivity := DefaultSensitivity
		if agent.Accel != 0 {
			sensitivity = agent.Accel
		}
		agent.Action.U.ScaleVec(sensitivity, u)
	}
	if e.world.DimC > 0 {
		agent.Action.C = mat.NewVecDense(e.world.DimC, nil)
	}

	e.physics.Step(e.world, e.rng)
	e.world.Steps++

	reward := e.scenario.Reward(agent, e.world, e.rng)
	if e.world.TurnTouched {
		e.logger.Debug("touch",
			"episode", e.episode,
			"agent", agent.Name,
			"landmark", e.world.Touched,
			"step", e.world.Steps,
		)
	}
	obs := e.scenario.Observation(agent, e.world)

	e.selected = (e.selected + 1) % len(e.world.Agents)

	return ts.New(ts.Mid, agent.Name, reward, obs, e.world.Steps), nil
}

// Observe returns the current observation of the named agent
func (e *Env) Observe(name string) (*mat.VecDense, error) {
	if !e.ready {
		return nil, errors.Wrap(ErrNotReset, "observe")
	}
	agent, ok := e.world.Agent(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAgent, "observe: %q", name)
	}
	return e.scenario.Observation(agent, e.world), nil
}

// Info returns the scenario diagnostics of the named agent. If the
// scenario reports no diagnostics, Info returns nil.
func (e *Env) Info(name string) ([]float64, error) {
	if !e.ready {
		return nil, errors.Wrap(ErrNotReset, "info")
	}
	agent, ok := e.world.Agent(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAgent, "info: %q", name)
	}
	informer, ok := e.scenario.(Informer)
	if !ok {
		return nil, nil
	}
	return informer.Info(agent, e.world), nil
}

// InputStructure returns the grouping of the named agent's observation
// features
func (e *Env) InputStructure(name string) ([]InputGroup, error) {
	agent, ok := e.world.Agent(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAgent, "inputStructure: %q", name)
	}
	return e.scenario.InputStructure(agent, e.world), nil
}

// Agents returns the names of all agents in the order they take turns
func (e *Env) Agents() []string {
	names := make([]string, len(e.world.Agents))
	for i, a := range e.world.Agents {
		names[i] = a.Name
	}
	return names
}

// AgentSelection returns the name of the agent which acts next
func (e *Env) AgentSelection() string {
	return e.world.Agents[e.selected].Name
}

// Frozen returns whether no agent can move for the rest of the episode
func (e *Env) Frozen() bool {
	return e.ready && e.world.Frozen()
}

// World returns the World simulated by the environment
func (e *Env) World() *World {
	return e.world
}

// Episode returns the identifier of the current episode
func (e *Env) Episode() uuid.UUID {
	return e.episode
}

// Seed reseeds the random source of the environment. The new seed
// takes effect from the next call to Reset or Step.
func (e *Env) Seed(seed uint64) {
	e.seed = seed
	e.rng.Seed(seed)
}

// Render renders the World with the environment's Renderer
func (e *Env) Render(mode string) error {
	if !e.ready {
		return errors.Wrap(ErrNotReset, "render")
	}
	if e.renderer == nil {
		return errors.Wrapf(ErrUnsupportedRenderMode, "render: %q", mode)
	}
	return e.renderer.Render(e.world, mode)
}

// Close releases the resources held by the environment. The
// environment must be reset before it is used again.
func (e *Env) Close() error {
	e.ready = false
	if c, ok := e.physics.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ObservationSpec returns the observation specification of the
// environment. Observations are unbounded.
func (e *Env) ObservationSpec() environment.Spec {
	var dims int
	for _, group := range e.scenario.InputStructure(e.world.Agents[0], e.world) {
		dims += group.Size
	}
	return environment.NewBoxSpec(dims, environment.Observation,
		math.Inf(-1), math.Inf(1), environment.Continuous)
}
