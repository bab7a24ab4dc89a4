package agent

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/johnjim0816/mpe/environment"
	"github.com/johnjim0816/mpe/timestep"
)

// Random is an Agent which selects actions uniformly at random.
//
// In environments with discrete actions, each of the integer actions
// in the action bounds is equally likely. In environments with
// continuous actions, actions are drawn uniformly from the box given
// by the action bounds.
type Random struct {
	nonlearner
	discrete   bool
	categories []distuv.Categorical
	offsets    []float64
	uniform    *distmv.Uniform
}

// NewRandom returns a new Random agent for env
func NewRandom(env environment.Environment, seed uint64) *Random {
	spec := env.ActionSpec()
	src := rand.NewSource(seed)

	if spec.Cardinality == environment.Discrete {
		categories := make([]distuv.Categorical, spec.Shape.Len())
		offsets := make([]float64, spec.Shape.Len())
		for i := range categories {
			offsets[i] = spec.LowerBound.AtVec(i)
			n := int(spec.UpperBound.AtVec(i)-spec.LowerBound.AtVec(i)) + 1
			weights := make([]float64, n)
			for j := range weights {
				weights[j] = 1.0
			}
			categories[i] = distuv.NewCategorical(weights, src)
		}
		return &Random{discrete: true, categories: categories, offsets: offsets}
	}

	bounds := make([]r1.Interval, spec.Shape.Len())
	for i := range bounds {
		bounds[i] = r1.Interval{
			Min: spec.LowerBound.AtVec(i),
			Max: spec.UpperBound.AtVec(i),
		}
	}
	return &Random{uniform: distmv.NewUniform(bounds, src)}
}

// SelectAction returns a random action
func (r *Random) SelectAction(timestep.TimeStep) *mat.VecDense {
	if !r.discrete {
		return mat.NewVecDense(r.uniform.Dim(), r.uniform.Rand(nil))
	}

	action := make([]float64, len(r.categories))
	for i := range r.categories {
		action[i] = r.offsets[i] + r.categories[i].Rand()
	}
	return mat.NewVecDense(len(action), action)
}
