package timestep_test

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	ts "github.com/johnjim0816/mpe/timestep"
)

func TestSetEnd(t *testing.T) {
	obs := mat.NewVecDense(2, []float64{1, 2})
	step := ts.New(ts.Mid, "agent_0", -0.02, obs, 3)

	if !step.Mid() || step.First() || step.Last() {
		t.Errorf("new: illegal step type \n\twant(%v) \n\thave(%v)", ts.Mid,
			step.StepType)
	}
	if step.EndType() != ts.Unended {
		t.Errorf("new: illegal end type \n\twant(%v) \n\thave(%v)",
			ts.Unended, step.EndType())
	}

	step.SetEnd(ts.TerminalStateReached)
	if !step.Last() {
		t.Errorf("setEnd: illegal step type \n\twant(%v) \n\thave(%v)",
			ts.Last, step.StepType)
	}
	if step.EndType() != ts.TerminalStateReached {
		t.Errorf("setEnd: illegal end type \n\twant(%v) \n\thave(%v)",
			ts.TerminalStateReached, step.EndType())
	}
	if step.Number != 3 || step.Agent != "agent_0" {
		t.Errorf("setEnd: timestep fields should not change, have %v", step)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		in   interface{ String() string }
		want string
	}{
		{ts.First, "First"},
		{ts.Mid, "Mid"},
		{ts.Last, "Last"},
		{ts.Unended, "Unended"},
		{ts.Timeout, "Timeout"},
		{ts.TerminalStateReached, "TerminalStateReached"},
	}

	for _, test := range tests {
		if have := test.in.String(); have != test.want {
			t.Errorf("string: \n\twant(%v) \n\thave(%v)", test.want, have)
		}
	}
}
