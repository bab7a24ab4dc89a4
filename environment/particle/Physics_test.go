package particle_test

import (
	"fmt"
	"testing"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"

	"github.com/johnjim0816/mpe/environment/particle"
)

const tolerance = 1e-9

// newTestWorld returns a world holding one unplaced agent per position,
// each placed at the given position
func newTestWorld(positions ...[]float64) *particle.World {
	w := particle.NewWorld()
	for i, pos := range positions {
		a := particle.NewAgent()
		a.Name = fmt.Sprintf("agent_%d", i)
		a.Collide = false
		w.Agents = append(w.Agents, a)
		w.Place(a, mat.NewVecDense(len(pos), pos))
	}
	return w
}

func checkVec(t *testing.T, op string, want []float64, have mat.Vector) {
	t.Helper()
	if have.Len() != len(want) {
		t.Fatalf("%v: illegal dimension \n\twant(%v) \n\thave(%v)", op,
			len(want), have.Len())
	}
	for i := range want {
		if !scalar.EqualWithinAbs(want[i], have.AtVec(i), tolerance) {
			t.Errorf("%v: \n\twant(%v) \n\thave(%v)", op, want,
				mat.Formatted(have.T()))
			return
		}
	}
}

func TestEulerForce(t *testing.T) {
	w := newTestWorld([]float64{0, 0})
	a := w.Agents[0]
	a.Action.U = mat.NewVecDense(2, []float64{1, -2})

	particle.NewEuler().Step(w, rand.NewSource(1))

	// v = v(1 - damping) + F/m dt, p = p + v dt
	checkVec(t, "velocity", []float64{0.1, -0.2}, a.State.PVel)
	checkVec(t, "position", []float64{0.01, -0.02}, a.State.PPos)
}

func TestEulerDamping(t *testing.T) {
	w := newTestWorld([]float64{0, 0})
	a := w.Agents[0]
	a.State.PVel.SetVec(0, 1.0)

	physics := particle.NewEuler()
	physics.Step(w, rand.NewSource(1))
	checkVec(t, "velocity", []float64{0.75, 0}, a.State.PVel)
	checkVec(t, "position", []float64{0.075, 0}, a.State.PPos)

	physics.Step(w, rand.NewSource(1))
	checkVec(t, "velocity", []float64{0.5625, 0}, a.State.PVel)
	checkVec(t, "position", []float64{0.13125, 0}, a.State.PPos)
}

func TestEulerMaxSpeed(t *testing.T) {
	w := newTestWorld([]float64{0, 0})
	a := w.Agents[0]
	a.MaxSpeed = 0.05
	a.Action.U = mat.NewVecDense(2, []float64{3, 4})

	particle.NewEuler().Step(w, rand.NewSource(1))

	if speed := mat.Norm(a.State.PVel, 2); !scalar.EqualWithinAbs(speed,
		a.MaxSpeed, tolerance) {
		t.Errorf("speed: \n\twant(%v) \n\thave(%v)", a.MaxSpeed, speed)
	}
	checkVec(t, "velocity", []float64{0.03, 0.04}, a.State.PVel)
}

func TestEulerImmovable(t *testing.T) {
	w := newTestWorld([]float64{0.3, 0.4})
	a := w.Agents[0]
	a.Movable = false
	a.Action.U = mat.NewVecDense(2, []float64{1, 1})

	l := particle.NewLandmark()
	l.Name = "landmark 0"
	w.Landmarks = append(w.Landmarks, l)
	w.Place(l, mat.NewVecDense(2, []float64{-1, 1}))

	particle.NewEuler().Step(w, rand.NewSource(1))

	checkVec(t, "agent position", []float64{0.3, 0.4}, a.State.PPos)
	checkVec(t, "agent velocity", []float64{0, 0}, a.State.PVel)
	checkVec(t, "landmark position", []float64{-1, 1}, l.State.PPos)
}

func TestEulerContact(t *testing.T) {
	tests := []struct {
		name    string
		collide bool
	}{
		{"Colliding", true},
		{"Passing", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := newTestWorld([]float64{0, 0}, []float64{0.05, 0})
			for _, a := range w.Agents {
				a.Collide = test.collide
			}

			particle.NewEuler().Step(w, rand.NewSource(1))

			a, b := w.Agents[0].State.PPos, w.Agents[1].State.PPos
			if !test.collide {
				checkVec(t, "position", []float64{0, 0}, a)
				checkVec(t, "position", []float64{0.05, 0}, b)
				return
			}

			if a.AtVec(0) >= 0 || b.AtVec(0) <= 0.05 {
				t.Errorf("contact: overlapping agents should be pushed "+
					"apart, have %v and %v", a.AtVec(0), b.AtVec(0))
			}

			// Equal masses receive equal and opposite pushes
			if centre := a.AtVec(0) + b.AtVec(0); !scalar.EqualWithinAbs(
				centre, 0.05, tolerance) {
				t.Errorf("contact: centre of mass moved \n\twant(%v) "+
					"\n\thave(%v)", 0.05, centre)
			}
			if a.AtVec(1) != 0 || b.AtVec(1) != 0 {
				t.Error("contact: agents should only be pushed along x")
			}
		})
	}
}

func TestEulerActionNoise(t *testing.T) {
	positions := func(seed uint64) *mat.VecDense {
		w := newTestWorld([]float64{0, 0})
		a := w.Agents[0]
		a.UNoise = 0.5
		a.Action.U = mat.NewVecDense(2, nil)
		particle.NewEuler().Step(w, rand.NewSource(seed))
		return a.State.PPos
	}

	first, second := positions(3), positions(3)
	if !mat.Equal(first, second) {
		t.Errorf("step: equal seeds should give equal noise \n\twant(%v) "+
			"\n\thave(%v)", mat.Formatted(first.T()),
			mat.Formatted(second.T()))
	}
	if mat.Norm(first, 2) == 0 {
		t.Error("step: noisy action should move the agent")
	}
}

func TestCommunication(t *testing.T) {
	w := newTestWorld([]float64{0, 0}, []float64{1, 1})
	w.DimC = 2
	speaker, silent := w.Agents[0], w.Agents[1]
	silent.Silent = true

	speaker.Action.C = mat.NewVecDense(2, []float64{1, 2})
	silent.Action.C = mat.NewVecDense(2, []float64{3, 4})

	particle.NewEuler().Step(w, rand.NewSource(1))

	checkVec(t, "speaker", []float64{1, 2}, speaker.State.C)
	checkVec(t, "silent", []float64{0, 0}, silent.State.C)
}

func TestNoCommunicationChannel(t *testing.T) {
	w := newTestWorld([]float64{0, 0})
	particle.NewEuler().Step(w, rand.NewSource(1))

	if w.Agents[0].State.C != nil {
		t.Error("step: agents should not communicate without a channel")
	}
}
