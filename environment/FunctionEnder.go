package environment

import "github.com/johnjim0816/mpe/timestep"

// FunctionEnder ends an episode whenever a predicate over the current
// timestep returns true.
type FunctionEnder struct {
	end     func(*timestep.TimeStep) bool
	endType timestep.EndType
}

// NewFunctionEnder returns a new FunctionEnder which ends episodes with
// end type endType when f returns true.
func NewFunctionEnder(f func(*timestep.TimeStep) bool,
	endType timestep.EndType) Ender {
	return &FunctionEnder{f, endType}
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended, End() will mark the timestep as the last in the
// episode with the appropriate ending type.
func (f *FunctionEnder) End(t *timestep.TimeStep) bool {
	if f.end(t) {
		t.SetEnd(f.endType)
		return true
	}
	return false
}

// Any combines enders so that an episode ends as soon as one of them
// ends it. Enders are checked in order, so the first ender to fire sets
// the end type.
func Any(enders ...Ender) Ender {
	return anyEnder(enders)
}

type anyEnder []Ender

func (a anyEnder) End(t *timestep.TimeStep) bool {
	for _, e := range a {
		if e.End(t) {
			return true
		}
	}
	return false
}
