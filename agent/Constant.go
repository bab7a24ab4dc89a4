package agent

import (
	"github.com/pkg/errors"

	"gonum.org/v1/gonum/mat"

	"github.com/johnjim0816/mpe/environment"
	"github.com/johnjim0816/mpe/timestep"
)

// Constant is an Agent which takes the same action on every step
type Constant struct {
	nonlearner
	action *mat.VecDense
}

// NewConstant returns a new Constant agent which always takes action
// in env. The action is copied.
func NewConstant(env environment.Environment,
	action []float64) (*Constant, error) {
	spec := env.ActionSpec()
	if len(action) != spec.Shape.Len() {
		return nil, errors.Errorf("newConstant: illegal action dimension "+
			"\n\twant(%v) \n\thave(%v)", spec.Shape.Len(), len(action))
	}
	for i, a := range action {
		if a < spec.LowerBound.AtVec(i) || a > spec.UpperBound.AtVec(i) {
			return nil, errors.Errorf("newConstant: action %v out of "+
				"bounds [%v, %v] at index %v", a, spec.LowerBound.AtVec(i),
				spec.UpperBound.AtVec(i), i)
		}
	}

	data := make([]float64, len(action))
	copy(data, action)
	return &Constant{action: mat.NewVecDense(len(data), data)}, nil
}

// SelectAction returns the agent's action. The returned vector is a
// copy and may be modified freely.
func (c *Constant) SelectAction(timestep.TimeStep) *mat.VecDense {
	return mat.VecDenseCopyOf(c.action)
}
