package particle

import (
	"github.com/pkg/errors"

	"gonum.org/v1/gonum/mat"

	"github.com/johnjim0816/mpe/environment"
	ts "github.com/johnjim0816/mpe/timestep"
	"github.com/johnjim0816/mpe/utils/floatutils"
)

// Continuous implements a particle world with continuous actions.
// Actions are (2*DimP + 1)-dimensional with every coordinate in [0, 1].
// The first coordinate is unused. Each following pair of coordinates
// (a[2i+1], a[2i+2]) pushes the agent along axis i with force
// a[2i+1] - a[2i+2]. Coordinates outside of [0, 1] are clipped.
//
// Continuous implements the environment.Environment interface.
type Continuous struct {
	*Env
}

// NewContinuous returns a new particle world with continuous actions.
// The environment must be reset before it is stepped.
func NewContinuous(s Scenario, w *World, seed uint64,
	opts ...Option) (*Continuous, error) {
	e, err := newEnv(s, w, seed, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "newContinuous")
	}
	return &Continuous{e}, nil
}

// Step takes one step in the environment for the currently selected
// agent
func (c *Continuous) Step(action mat.Vector) (ts.TimeStep, error) {
	dims := c.world.DimP
	if action.Len() != 2*dims+1 {
		return ts.TimeStep{}, errors.Errorf("step: illegal action "+
			"dimension \n\twant(%v) \n\thave(%v)", 2*dims+1, action.Len())
	}

	u := mat.NewVecDense(dims, nil)
	for i := 0; i < dims; i++ {
		pos := floatutils.Clip(action.AtVec(2*i+1), 0, 1)
		neg := floatutils.Clip(action.AtVec(2*i+2), 0, 1)
		u.SetVec(i, pos-neg)
	}

	return c.step(u)
}

// ActionSpec returns the action specification of the environment
func (c *Continuous) ActionSpec() environment.Spec {
	return environment.NewBoxSpec(2*c.world.DimP+1, environment.Action,
		0, 1, environment.Continuous)
}
