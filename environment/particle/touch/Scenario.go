// Package touch implements the touch particle world, in which a single
// agent must touch one of several stationary targets.
//
// The agent starts each episode at the origin and targets are placed
// either uniformly at random in [-1, 1]² or, in easy mode, on a fixed
// cross. Touching a target yields that target's reward. The first
// target touched in an episode is claimed: for the rest of the episode,
// only touching the claimed target is rewarded. Every step on which no
// target is touched costs a fixed time penalty. If the game ends after
// a touch, the agent is frozen in place by its first touch and earns no
// further reward for the rest of the episode.
package touch

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/johnjim0816/mpe/environment"
	"github.com/johnjim0816/mpe/environment/particle"
	"github.com/johnjim0816/mpe/utils/floatutils"
)

// Physical constants of the touch world
const (
	AgentSize    float64 = 0.02
	LandmarkSize float64 = 0.04

	// TouchMargin is added to the sum of sizes of an agent and a
	// landmark to get the distance at which the agent touches it
	TouchMargin float64 = 0.01

	// EasyModeRadius is the distance of easy mode targets from the
	// origin
	EasyModeRadius float64 = 0.5
)

var (
	AgentColor    = particle.Color{0.6, 0.6, 0.6}
	LandmarkColor = particle.Color{0.15, 0.15, 0.85}

	// LandmarkBounds bounds the random placement of targets along each
	// axis
	LandmarkBounds = r1.Interval{Min: -1.0, Max: 1.0}

	// easyModePositions are the directions of the easy mode targets,
	// indexed by target
	easyModePositions = [EasyModeTargets][2]float64{
		{0, 1},
		{1, 0},
		{0, -1},
		{-1, 0},
	}
)

// Scenario implements the touch particle world. Scenario implements
// the particle.Scenario and particle.Informer interfaces.
type Scenario struct{}

// New returns a new touch Scenario
func New() *Scenario {
	return &Scenario{}
}

// MakeWorld builds a world from c. All entities are allocated and named,
// but none are placed: entities are placed by ResetWorld.
func (s *Scenario) MakeWorld(c Config) (*particle.World, error) {
	return MakeWorld(c)
}

// MakeWorld builds a world from c. All entities are allocated and named,
// but none are placed: entities are placed by ResetWorld.
func MakeWorld(c Config) (*particle.World, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "makeWorld")
	}
	numTargets := c.Targets()

	w := particle.NewWorld()
	w.EasyMode = c.EasyMode
	w.NumTargets = numTargets
	w.MaxFrames = c.MaxFrames
	w.TimePenalty = c.TimePenalty
	w.GameEndAfterTouch = c.GameEndAfterTouch

	// Validate has already checked that both scales expand
	w.RewardScales, _ = c.RewardScales.Expand(numTargets)
	w.SizeScales, _ = c.SizeScales.Expand(numTargets)

	w.Agents = []*particle.Agent{particle.NewAgent()}
	for i, a := range w.Agents {
		a.Name = fmt.Sprintf("agent_%d", i)
		a.Collide = false
		a.Silent = true
		a.Size = AgentSize
	}

	w.Landmarks = make([]*particle.Landmark, numTargets)
	for i := range w.Landmarks {
		l := particle.NewLandmark()
		l.Name = fmt.Sprintf("landmark %d", i)
		l.Collide = false
		l.Movable = false
		l.Size = LandmarkSize * w.SizeScales[i]
		w.Landmarks[i] = l
	}

	return w, nil
}

// ResetWorld places all entities for a new episode. The agent is placed
// at the origin and targets are placed either on the easy mode cross or
// uniformly at random using rng.
func (s *Scenario) ResetWorld(w *particle.World, rng *rand.Rand) {
	for _, a := range w.Agents {
		a.Movable = true
		a.Color = AgentColor
		a.Size = AgentSize

		w.Place(a, mat.NewVecDense(w.DimP, nil))
		w.Silence(a)
	}

	starter := environment.NewUniformBoxStarter(w.DimP, LandmarkBounds)
	for i, l := range w.Landmarks {
		l.Color = LandmarkColor

		if w.EasyMode {
			w.Place(l, easyModePosition(w.DimP, i))
		} else {
			w.Place(l, starter.Start(rng))
		}
	}

	w.Steps = 0
	w.Touched = particle.Untouched
	w.TurnTouched = false
}

// easyModePosition returns the position of easy mode target i
func easyModePosition(dims, i int) *mat.VecDense {
	pos := mat.NewVecDense(dims, nil)
	dir := easyModePositions[i%EasyModeTargets]
	for j := 0; j < len(dir) && j < dims; j++ {
		pos.SetVec(j, dir[j]*EasyModeRadius)
	}
	return pos
}

// Reward returns the reward for agent on the current step.
//
// Targets are checked in an order shuffled with rng, so that ties
// between targets touched at once are broken at random. The first
// touched target which is unclaimed or already claimed by this episode
// is rewarded and claimed. If no target is rewarded, the time penalty
// is paid instead. Agents which cannot move receive no reward.
func (s *Scenario) Reward(agent *particle.Agent, w *particle.World,
	rng *rand.Rand) float64 {
	var r float64
	w.TurnTouched = false

	if !agent.Movable {
		return r
	}

	// Scales are read on every step so changes take effect immediately
	rewards := make([]float64, w.NumTargets)
	floats.ScaleTo(rewards, 1.0, w.RewardScales)

	order := make([]int, w.NumTargets)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	touched := false
	for _, i := range order {
		landmark := w.Landmarks[i]
		if !touches(agent, landmark, w.DimP) {
			continue
		}
		if w.Touched == particle.Untouched || w.Touched == i {
			r += rewards[i]
			touched = true
			w.TurnTouched = w.Touched == particle.Untouched
			w.Touched = i
			break
		}
	}

	if touched && w.GameEndAfterTouch {
		agent.Movable = false
	}
	if !touched {
		r -= w.TimePenalty
	}

	return r
}

// touches returns whether the agent is touching the landmark
func touches(agent *particle.Agent, landmark *particle.Landmark,
	dims int) bool {
	delta := mat.NewVecDense(dims, nil)
	delta.SubVec(agent.State.PPos, landmark.State.PPos)
	return mat.Norm(delta, 2) <= agent.Size+landmark.Size+TouchMargin
}

// Observation returns the observation of agent. Observations are
// vectors consisting of the following features in the following order:
//
//  1. The normalized time, Steps / MaxFrames. This feature is not
//     clipped and exceeds 1 once an episode runs past MaxFrames.
//  2. A one-hot encoding of the claimed target, of length NumTargets.
//     All zeroes if no target has been claimed.
//  3. The velocity of the agent.
//  4. The position of each target relative to the agent, in target
//     order.
func (s *Scenario) Observation(agent *particle.Agent,
	w *particle.World) *mat.VecDense {
	dims := 1 + w.NumTargets + w.DimP + len(w.Landmarks)*w.DimP
	obs := make([]float64, 0, dims)

	obs = append(obs, float64(w.Steps)/float64(w.MaxFrames))
	obs = append(obs, floatutils.Hot(w.NumTargets, w.Touched)...)
	obs = append(obs, agent.State.PVel.RawVector().Data...)

	rel := mat.NewVecDense(w.DimP, nil)
	for _, l := range w.Landmarks {
		rel.SubVec(l.State.PPos, agent.State.PPos)
		obs = append(obs, rel.RawVector().Data...)
	}

	return mat.NewVecDense(dims, obs)
}

// Info returns the squared distance from agent to each target, in
// target order
func (s *Scenario) Info(agent *particle.Agent, w *particle.World) []float64 {
	info := make([]float64, len(w.Landmarks))
	delta := mat.NewVecDense(w.DimP, nil)
	for i, l := range w.Landmarks {
		delta.SubVec(agent.State.PPos, l.State.PPos)
		info[i] = mat.Dot(delta, delta)
	}
	return info
}

// InputStructure returns the grouping of the features in an
// observation: one "self" group holding the normalized time, the
// claimed target, and the agent's velocity, followed by one "landmarks"
// group per target
func (s *Scenario) InputStructure(agent *particle.Agent,
	w *particle.World) []particle.InputGroup {
	groups := []particle.InputGroup{
		{Name: "self", Size: 1 + w.NumTargets + w.DimP},
	}
	for range w.Landmarks {
		groups = append(groups, particle.InputGroup{
			Name: "landmarks",
			Size: w.DimP,
		})
	}
	return groups
}
