package agent_test

import (
	"testing"

	"github.com/johnjim0816/mpe/agent"
	"github.com/johnjim0816/mpe/environment"
	"github.com/johnjim0816/mpe/environment/envconfig"
	ts "github.com/johnjim0816/mpe/timestep"
)

func newEnv(t *testing.T, continuous bool) environment.Environment {
	t.Helper()
	c := envconfig.NewConfig()
	c.ContinuousActions = continuous
	env, err := c.Create(1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return env
}

func TestConstant(t *testing.T) {
	env := newEnv(t, false)
	a, err := agent.NewConstant(env, []float64{3})
	if err != nil {
		t.Fatalf("newConstant: %v", err)
	}

	action := a.SelectAction(ts.TimeStep{})
	if action.Len() != 1 || action.AtVec(0) != 3 {
		t.Errorf("selectAction: \n\twant([3]) \n\thave(%v)",
			action.RawVector().Data)
	}

	// Changing a selected action does not change the agent
	action.SetVec(0, 1)
	if have := a.SelectAction(ts.TimeStep{}).AtVec(0); have != 3 {
		t.Errorf("selectAction: \n\twant(3) \n\thave(%v)", have)
	}

	for _, bad := range [][]float64{{5}, {-1}, {0, 0}} {
		if _, err := agent.NewConstant(env, bad); err == nil {
			t.Errorf("newConstant: action %v should be rejected", bad)
		}
	}
}

func TestRandomDiscrete(t *testing.T) {
	env := newEnv(t, false)
	a := agent.NewRandom(env, 7)

	seen := make(map[float64]bool)
	for i := 0; i < 500; i++ {
		action := a.SelectAction(ts.TimeStep{})
		if action.Len() != 1 {
			t.Fatalf("selectAction: illegal dimension \n\twant(1) "+
				"\n\thave(%v)", action.Len())
		}
		v := action.AtVec(0)
		if v != float64(int(v)) || v < 0 || v > 4 {
			t.Fatalf("selectAction: illegal action %v", v)
		}
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Errorf("selectAction: every action should be taken \n\twant(5) "+
			"\n\thave(%v)", len(seen))
	}
}

func TestRandomContinuous(t *testing.T) {
	env := newEnv(t, true)
	a := agent.NewRandom(env, 7)

	for i := 0; i < 100; i++ {
		action := a.SelectAction(ts.TimeStep{})
		if action.Len() != 5 {
			t.Fatalf("selectAction: illegal dimension \n\twant(5) "+
				"\n\thave(%v)", action.Len())
		}
		for j := 0; j < action.Len(); j++ {
			if v := action.AtVec(j); v < 0 || v > 1 {
				t.Errorf("selectAction: action %v out of bounds", v)
			}
		}
	}
}

func TestConfig(t *testing.T) {
	env := newEnv(t, false)

	tests := []struct {
		name string
		c    agent.Config
		err  bool
	}{
		{"Random", agent.Config{Type: agent.RandomAgent}, false},
		{"Constant", agent.Config{Type: agent.ConstantAgent,
			Action: []float64{2}}, false},
		{"ConstantNoAction", agent.Config{Type: agent.ConstantAgent}, true},
		{"ConstantBadAction", agent.Config{Type: agent.ConstantAgent,
			Action: []float64{9}}, true},
		{"Unknown", agent.Config{Type: "DQN"}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a, err := test.c.CreateAgent(env, 1)
			if test.err {
				if err == nil {
					t.Error("createAgent: config should be rejected")
				}
				return
			}
			if err != nil {
				t.Fatalf("createAgent: %v", err)
			}
			if err := a.ObserveFirst(ts.TimeStep{}); err != nil {
				t.Errorf("observeFirst: %v", err)
			}
			if err := a.Step(); err != nil {
				t.Errorf("step: %v", err)
			}
		})
	}
}
