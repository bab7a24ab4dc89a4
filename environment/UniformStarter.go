package environment

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// Source is the source of randomness that Starters sample from
type Source = rand.Source

// UniformStarter samples starting vectors uniformly from a box. Dimension
// i of each sample is drawn from bounds[i].
//
// UniformStarter keeps no random state of its own: all samples are drawn
// from the source given to Start, so that episodes seeded with the same
// source start identically.
type UniformStarter struct {
	bounds []r1.Interval
}

// NewUniformStarter returns a new UniformStarter sampling from bounds
func NewUniformStarter(bounds []r1.Interval) UniformStarter {
	b := make([]r1.Interval, len(bounds))
	copy(b, bounds)
	return UniformStarter{b}
}

// NewUniformBoxStarter returns a new UniformStarter sampling dims
// features, each from the same interval
func NewUniformBoxStarter(dims int, bound r1.Interval) UniformStarter {
	bounds := make([]r1.Interval, dims)
	for i := range bounds {
		bounds[i] = bound
	}
	return UniformStarter{bounds}
}

// Start returns a starting vector sampled with src
func (u UniformStarter) Start(src Source) *mat.VecDense {
	dist := distmv.NewUniform(u.bounds, src)
	return mat.NewVecDense(len(u.bounds), dist.Rand(nil))
}

// Bounds returns the interval of each sampled feature
func (u UniformStarter) Bounds() []r1.Interval {
	b := make([]r1.Interval, len(u.bounds))
	copy(b, u.bounds)
	return b
}
