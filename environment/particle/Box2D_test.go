package particle

import (
	"testing"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// bodyPosition returns the Box2D position of the body mirroring e
func (b *Box2D) bodyPosition(e *Entity) (*mat.VecDense, bool) {
	body, ok := b.bodies[e]
	if !ok {
		return nil, false
	}
	pos := body.GetPosition()
	return mat.NewVecDense(2, []float64{pos.X, pos.Y}), true
}

func newBox2DWorld() (*World, *Agent, *Landmark) {
	w := NewWorld()

	a := NewAgent()
	a.Name = "agent_0"
	a.Size = 0.02
	a.Collide = false
	w.Agents = []*Agent{a}
	w.Place(a, mat.NewVecDense(2, nil))

	l := NewLandmark()
	l.Name = "landmark 0"
	l.Collide = false
	l.Movable = false
	w.Landmarks = []*Landmark{l}
	w.Place(l, mat.NewVecDense(2, []float64{0.5, 0.5}))

	return w, a, l
}

func TestBox2DStep(t *testing.T) {
	w, a, l := newBox2DWorld()
	physics := NewBox2D()
	defer physics.Close()

	a.Action.U = mat.NewVecDense(2, []float64{1, 0})
	physics.Step(w, rand.NewSource(1))

	// Box2D damps after applying forces: v = (F/m dt) / (1 + dt c)
	want := 0.1 * (1 - w.Damping)
	if have := a.State.PVel.AtVec(0); !scalar.EqualWithinAbs(want, have,
		1e-6) {
		t.Errorf("step: illegal velocity \n\twant(%v) \n\thave(%v)", want,
			have)
	}
	if a.State.PVel.AtVec(1) != 0 {
		t.Errorf("step: illegal velocity \n\twant(0) \n\thave(%v)",
			a.State.PVel.AtVec(1))
	}
	if have := a.State.PPos.AtVec(0); !scalar.EqualWithinAbs(want*w.Dt,
		have, 1e-6) {
		t.Errorf("step: illegal position \n\twant(%v) \n\thave(%v)",
			want*w.Dt, have)
	}

	// The world and Box2D agree on every position after a step
	for _, b := range w.Entities() {
		e, s := b.body()
		pos, ok := physics.bodyPosition(e)
		if !ok {
			t.Fatalf("step: no body created for %v", e.Name)
		}
		if !mat.EqualApprox(pos, s.PPos, 1e-9) {
			t.Errorf("step: %v out of sync \n\twant(%v) \n\thave(%v)",
				e.Name, mat.Formatted(s.PPos.T()), mat.Formatted(pos.T()))
		}
	}

	if !mat.Equal(l.State.PPos, mat.NewVecDense(2, []float64{0.5, 0.5})) {
		t.Errorf("step: landmark should not move, have %v",
			mat.Formatted(l.State.PPos.T()))
	}
}

func TestBox2DFrozen(t *testing.T) {
	w, a, _ := newBox2DWorld()
	physics := NewBox2D()
	defer physics.Close()

	a.Action.U = mat.NewVecDense(2, []float64{1, 1})
	physics.Step(w, rand.NewSource(1))

	// Frozen agents become static bodies and stay put
	a.Movable = false
	before := mat.VecDenseCopyOf(a.State.PPos)
	for i := 0; i < 5; i++ {
		physics.Step(w, rand.NewSource(1))
	}
	if !mat.Equal(before, a.State.PPos) {
		t.Errorf("step: frozen agent moved \n\twant(%v) \n\thave(%v)",
			mat.Formatted(before.T()), mat.Formatted(a.State.PPos.T()))
	}
}

func TestBox2DPlace(t *testing.T) {
	w, a, _ := newBox2DWorld()
	physics := NewBox2D()
	defer physics.Close()

	a.Action.U = mat.NewVecDense(2, []float64{1, 0})
	physics.Step(w, rand.NewSource(1))

	// Entities placed in the world between steps are moved in Box2D
	a.Action.U = nil
	w.Place(a, mat.NewVecDense(2, []float64{-0.3, 0.2}))
	physics.Step(w, rand.NewSource(1))

	if !mat.EqualApprox(a.State.PPos, mat.NewVecDense(2,
		[]float64{-0.3, 0.2}), 1e-9) {
		t.Errorf("step: placed agent should not drift, have %v",
			mat.Formatted(a.State.PPos.T()))
	}
}

func TestBox2DClose(t *testing.T) {
	w, _, _ := newBox2DWorld()
	physics := NewBox2D()
	physics.Step(w, rand.NewSource(1))

	if err := physics.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if len(physics.bodies) != 0 {
		t.Errorf("close: bodies left \n\twant(0) \n\thave(%v)",
			len(physics.bodies))
	}
}

func TestBox2DDimensions(t *testing.T) {
	w := NewWorld()
	w.DimP = 3

	defer func() {
		if recover() == nil {
			t.Error("step: Box2D should panic on non-2D worlds")
		}
	}()
	NewBox2D().Step(w, rand.NewSource(1))
}

func TestLinearDamping(t *testing.T) {
	const dt = 0.1
	for _, damping := range []float64{0, 0.1, 0.25, 0.5, 0.9} {
		c := linearDamping(damping, dt)
		if have := 1 / (1 + dt*c); !scalar.EqualWithinAbs(1-damping, have,
			1e-12) {
			t.Errorf("linearDamping: illegal speed retention "+
				"\n\twant(%v) \n\thave(%v)", 1-damping, have)
		}
	}
}
