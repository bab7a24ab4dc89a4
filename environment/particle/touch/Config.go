package touch

import (
	"math"

	"github.com/pkg/errors"
)

// Default configuration values
const (
	DefaultNumTargets        int     = 3
	DefaultMaxFrames         int     = 1
	DefaultTimePenalty       float64 = 0.02
	DefaultGameEndAfterTouch bool    = true

	// EasyModeTargets is the number of targets used in easy mode
	EasyModeTargets int = 4
)

// Config configures a touch world. Configs are JSON serializable.
type Config struct {
	NumTargets        int
	MaxFrames         int
	RewardScales      Scale
	SizeScales        Scale
	TimePenalty       float64
	GameEndAfterTouch bool

	// EasyMode places exactly EasyModeTargets targets on a fixed cross
	// instead of at random. NumTargets is ignored in easy mode.
	EasyMode bool
}

// DefaultConfig returns the default configuration of a touch world
func DefaultConfig() Config {
	return Config{
		NumTargets:        DefaultNumTargets,
		MaxFrames:         DefaultMaxFrames,
		RewardScales:      NewScalar(1.0),
		SizeScales:        NewScalar(1.0),
		TimePenalty:       DefaultTimePenalty,
		GameEndAfterTouch: DefaultGameEndAfterTouch,
	}
}

// Targets returns the number of targets the Config places in the world
func (c Config) Targets() int {
	if c.EasyMode {
		return EasyModeTargets
	}
	return c.NumTargets
}

// Validate returns an error if the Config cannot be used to build a
// world
func (c Config) Validate() error {
	if n := c.Targets(); n <= 0 {
		return errors.Errorf("validate: number of targets must be "+
			"positive, have %v", n)
	}
	if c.MaxFrames <= 0 {
		return errors.Errorf("validate: max frames must be positive, "+
			"have %v", c.MaxFrames)
	}
	if c.TimePenalty < 0 {
		return errors.Errorf("validate: time penalty must be "+
			"non-negative, have %v", c.TimePenalty)
	}
	rewards, err := c.RewardScales.Expand(c.Targets())
	if err != nil {
		return errors.Wrap(err, "validate: reward scales")
	}
	if err := checkScales(rewards, false); err != nil {
		return errors.Wrap(err, "validate: reward scales")
	}

	sizes, err := c.SizeScales.Expand(c.Targets())
	if err != nil {
		return errors.Wrap(err, "validate: size scales")
	}
	if err := checkScales(sizes, true); err != nil {
		return errors.Wrap(err, "validate: size scales")
	}
	return nil
}

// checkScales returns an error if any expanded scale is not finite, or
// is negative when nonNegative is set
func checkScales(scales []float64, nonNegative bool) error {
	for i, v := range scales {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrBadScale, "checkScales: scale %v is "+
				"not finite, have %v", i, v)
		}
		if nonNegative && v < 0 {
			return errors.Wrapf(ErrBadScale, "checkScales: scale %v is "+
				"negative, have %v", i, v)
		}
	}
	return nil
}
