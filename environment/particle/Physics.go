package particle

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Physics advances a World by a single step. All randomness used by a
// Physics is drawn from src.
type Physics interface {
	Step(w *World, src rand.Source)
}

// Euler integrates a World with damped, semi-implicit Euler steps.
//
// On each step, the force on every movable entity is the sum of its
// (possibly noisy) physical action and the soft contact forces with all
// colliding entities it overlaps. Velocities are damped, accelerated,
// clipped to the entity's maximum speed, and then used to move the
// entity. Entities which are not movable are never integrated.
type Euler struct{}

// NewEuler returns a new Euler Physics
func NewEuler() Physics {
	return Euler{}
}

// Step advances w by a single step
func (Euler) Step(w *World, src rand.Source) {
	bodies := w.Entities()
	forces := actionForces(w, bodies, src)
	contactForces(w, bodies, forces)

	for i, b := range bodies {
		e, s := b.body()
		if !e.Movable {
			continue
		}

		s.PVel.ScaleVec(1-w.Damping, s.PVel)
		if forces[i] != nil {
			s.PVel.AddScaledVec(s.PVel, w.Dt/e.mass(), forces[i])
		}
		clipSpeed(e, s)
		s.PPos.AddScaledVec(s.PPos, w.Dt, s.PVel)
	}

	updateCommunication(w, src)
}

// actionForces returns the force that each body applies through its
// action. Entries are nil for bodies which apply no force.
func actionForces(w *World, bodies []Body, src rand.Source) []*mat.VecDense {
	forces := make([]*mat.VecDense, len(bodies))
	for i, a := range w.Agents {
		if !a.Movable || a.Action.U == nil {
			continue
		}
		if a.Action.U.Len() != w.DimP {
			panic(fmt.Sprintf("actionForces: illegal action dimension "+
				"\n\twant(%v) \n\thave(%v)", w.DimP, a.Action.U.Len()))
		}

		f := mat.VecDenseCopyOf(a.Action.U)
		if a.UNoise > 0 {
			noise := distuv.Normal{Mu: 0, Sigma: a.UNoise, Src: src}
			for j := 0; j < f.Len(); j++ {
				f.SetVec(j, f.AtVec(j)+noise.Rand())
			}
		}

		// Agents come first in World.Entities
		forces[i] = f
	}
	return forces
}

// contactForces adds the soft contact forces between every pair of
// colliding bodies to forces
func contactForces(w *World, bodies []Body, forces []*mat.VecDense) {
	for a := range bodies {
		for b := a + 1; b < len(bodies); b++ {
			fa, fb := collisionForce(w, bodies[a], bodies[b])
			forces[a] = addForce(forces[a], fa)
			forces[b] = addForce(forces[b], fb)
		}
	}
}

func addForce(total, f *mat.VecDense) *mat.VecDense {
	if f == nil {
		return total
	}
	if total == nil {
		return f
	}
	total.AddVec(total, f)
	return total
}

// collisionForce returns the contact force on a and on b. A force is nil
// if the body cannot be moved or the bodies do not collide.
func collisionForce(w *World, a, b Body) (*mat.VecDense, *mat.VecDense) {
	ea, sa := a.body()
	eb, sb := b.body()
	if !ea.Collide || !eb.Collide {
		return nil, nil
	}
	if !ea.Movable && !eb.Movable {
		return nil, nil
	}

	delta := mat.NewVecDense(w.DimP, nil)
	delta.SubVec(sa.PPos, sb.PPos)
	dist := mat.Norm(delta, 2)
	if dist == 0 {
		// Coincident centres have no contact direction
		return nil, nil
	}
	minDist := ea.Size + eb.Size

	k := w.ContactMargin
	penetration := softplus(-(dist-minDist)/k) * k

	force := mat.NewVecDense(w.DimP, nil)
	force.ScaleVec(w.ContactForce*penetration/dist, delta)

	var fa, fb *mat.VecDense
	if ea.Movable {
		fa = mat.VecDenseCopyOf(force)
	}
	if eb.Movable {
		fb = mat.NewVecDense(w.DimP, nil)
		fb.ScaleVec(-1, force)
	}
	return fa, fb
}

// softplus returns log(1 + e^x) without overflowing for large x
func softplus(x float64) float64 {
	if x > 30 {
		return x
	}
	return math.Log1p(math.Exp(x))
}

// clipSpeed rescales the velocity of e so its speed does not exceed
// the entity's maximum speed
func clipSpeed(e *Entity, s *EntityState) {
	if e.MaxSpeed <= 0 {
		return
	}
	if speed := mat.Norm(s.PVel, 2); speed > e.MaxSpeed {
		s.PVel.ScaleVec(e.MaxSpeed/speed, s.PVel)
	}
}

// updateCommunication sets the communication state of all agents from
// their communication actions
func updateCommunication(w *World, src rand.Source) {
	for _, a := range w.Agents {
		if a.Silent || w.DimC == 0 || a.Action.C == nil {
			w.Silence(a)
			continue
		}

		if a.State.C == nil {
			a.State.C = mat.NewVecDense(w.DimC, nil)
		}
		a.State.C.CopyVec(a.Action.C)
		if a.CNoise > 0 {
			noise := distuv.Normal{Mu: 0, Sigma: a.CNoise, Src: src}
			for j := 0; j < a.State.C.Len(); j++ {
				a.State.C.SetVec(j, a.State.C.AtVec(j)+noise.Rand())
			}
		}
	}
}
