package environment_test

import (
	"testing"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/johnjim0816/mpe/environment"
)

func TestUniformStarter(t *testing.T) {
	bounds := []r1.Interval{{Min: -1, Max: 1}, {Min: 2, Max: 3}}
	starter := environment.NewUniformStarter(bounds)

	src := rand.NewSource(42)
	for i := 0; i < 100; i++ {
		start := starter.Start(src)
		if start.Len() != len(bounds) {
			t.Fatalf("start: illegal dimension \n\twant(%v) \n\thave(%v)",
				len(bounds), start.Len())
		}
		for j, b := range bounds {
			if v := start.AtVec(j); v < b.Min || v > b.Max {
				t.Errorf("start: feature %v = %v out of bounds %v", j, v, b)
			}
		}
	}

	// Starters hold no random state, so equal sources give equal starts
	first := starter.Start(rand.NewSource(7))
	second := starter.Start(rand.NewSource(7))
	if !mat.Equal(first, second) {
		t.Errorf("start: equal seeds should give equal starts "+
			"\n\twant(%v) \n\thave(%v)", mat.Formatted(first.T()),
			mat.Formatted(second.T()))
	}

	// Bounds are copied on construction
	bounds[0].Min = 10
	if starter.Bounds()[0].Min != -1 {
		t.Error("newUniformStarter: bounds should be copied")
	}
}

func TestUniformBoxStarter(t *testing.T) {
	bound := r1.Interval{Min: -1, Max: 1}
	starter := environment.NewUniformBoxStarter(3, bound)

	bounds := starter.Bounds()
	if len(bounds) != 3 {
		t.Fatalf("bounds: illegal length \n\twant(3) \n\thave(%v)",
			len(bounds))
	}
	for _, b := range bounds {
		if b != bound {
			t.Errorf("bounds: \n\twant(%v) \n\thave(%v)", bound, b)
		}
	}
}
