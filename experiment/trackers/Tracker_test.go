package trackers_test

import (
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/johnjim0816/mpe/experiment/trackers"
	ts "github.com/johnjim0816/mpe/timestep"
)

// episode returns the timesteps of an episode with the given rewards,
// the first timestep having no reward
func episode(rewards ...float64) []ts.TimeStep {
	steps := []ts.TimeStep{ts.New(ts.First, "agent_0", 0, nil, 0)}
	for i, r := range rewards {
		steps = append(steps, ts.New(ts.Mid, "agent_0", r, nil, i+1))
	}
	steps[len(steps)-1].SetEnd(ts.Timeout)
	return steps
}

func TestTrackers(t *testing.T) {
	returns := trackers.NewReturn()
	lengths := trackers.NewEpisodeLength()

	var steps []ts.TimeStep
	steps = append(steps, episode(1, -0.5, 2)...)
	steps = append(steps, episode(-0.02)...)

	// An unfinished episode is not recorded
	unfinished := episode(5, 5)
	steps = append(steps, unfinished[:len(unfinished)-1]...)

	for _, step := range steps {
		returns.Track(step)
		lengths.Track(step)
	}

	if want := []float64{2.5, -0.02}; !floats.Equal(returns.Data(), want) {
		t.Errorf("return: \n\twant(%v) \n\thave(%v)", want, returns.Data())
	}
	if want := []float64{3, 1}; !floats.Equal(lengths.Data(), want) {
		t.Errorf("episodeLength: \n\twant(%v) \n\thave(%v)", want,
			lengths.Data())
	}
}

func TestReturnInterruptedEpisode(t *testing.T) {
	returns := trackers.NewReturn()
	lengths := trackers.NewEpisodeLength()

	// An episode cut short before its last timestep, followed by a
	// complete episode
	interrupted := episode(7, 7, 7)
	steps := interrupted[:3]
	steps = append(steps, episode(1, 2)...)

	for _, step := range steps {
		returns.Track(step)
		lengths.Track(step)
	}

	if want := []float64{3}; !floats.Equal(returns.Data(), want) {
		t.Errorf("return: \n\twant(%v) \n\thave(%v)", want, returns.Data())
	}
	if want := []float64{2}; !floats.Equal(lengths.Data(), want) {
		t.Errorf("episodeLength: \n\twant(%v) \n\thave(%v)", want,
			lengths.Data())
	}
}

func TestReturnNonSequential(t *testing.T) {
	returns := trackers.NewReturn()
	steps := episode(1, 2, 3)

	defer func() {
		if recover() == nil {
			t.Error("track: non-sequential timesteps should panic")
		}
	}()
	returns.Track(steps[0])
	returns.Track(steps[2])
}
