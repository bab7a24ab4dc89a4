package particle

import (
	"github.com/pkg/errors"

	"gonum.org/v1/gonum/mat"

	"github.com/johnjim0816/mpe/environment"
	ts "github.com/johnjim0816/mpe/timestep"
)

// Discrete implements a particle world with discrete actions. Actions
// are 1-dimensional and select one of 2*DimP + 1 movements:
//
//	0: No movement
//	1: Push in the negative direction of the x axis
//	2: Push in the positive direction of the x axis
//	3: Push in the negative direction of the y axis
//	4: Push in the positive direction of the y axis
//
// with the pattern continuing for worlds of more than two dimensions.
//
// Discrete implements the environment.Environment interface.
type Discrete struct {
	*Env
}

// NewDiscrete returns a new particle world with discrete actions. The
// environment must be reset before it is stepped.
func NewDiscrete(s Scenario, w *World, seed uint64,
	opts ...Option) (*Discrete, error) {
	e, err := newEnv(s, w, seed, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "newDiscrete")
	}
	return &Discrete{e}, nil
}

// Step takes one step in the environment for the currently selected
// agent
func (d *Discrete) Step(action mat.Vector) (ts.TimeStep, error) {
	if action.Len() != 1 {
		return ts.TimeStep{}, errors.Errorf("step: illegal action "+
			"dimension \n\twant(1) \n\thave(%v)", action.Len())
	}

	dims := d.world.DimP
	a := action.AtVec(0)
	if a != float64(int(a)) || a < 0 || int(a) > 2*dims {
		return ts.TimeStep{}, errors.Errorf("step: illegal action %v, "+
			"actions must be integers in [0, %v]", a, 2*dims)
	}

	u := mat.NewVecDense(dims, nil)
	if move := int(a); move > 0 {
		dim := (move - 1) / 2
		direction := -1.0
		if (move-1)%2 == 1 {
			direction = 1.0
		}
		u.SetVec(dim, direction)
	}

	return d.step(u)
}

// ActionSpec returns the action specification of the environment
func (d *Discrete) ActionSpec() environment.Spec {
	return environment.NewBoxSpec(1, environment.Action, 0,
		float64(2*d.world.DimP), environment.Discrete)
}
