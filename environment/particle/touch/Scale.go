package touch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ScaleKind determines how a Scale is expanded into a vector
type ScaleKind int

const (
	Scalar ScaleKind = iota
	Sequence
	Linear
	Exponential
)

func (k ScaleKind) String() string {
	switch k {
	case Scalar:
		return "Scalar"
	case Sequence:
		return "Sequence"
	case Linear:
		return "Linear"
	case Exponential:
		return "Exponential"
	default:
		return fmt.Sprintf("ScaleKind(%d)", int(k))
	}
}

// Names of the progressions that Scales can be parsed from
const (
	LinearName      string = "linear"
	ExponentialName string = "exp-"
)

// ErrBadScale is returned when a scale specifier cannot be parsed
var ErrBadScale = errors.New("bad scale specifier")

// Scale specifies a per-landmark vector of scales. A Scale is expanded
// into a vector of length n as follows:
//
//	Scalar(s)      -> [s, s, ..., s]
//	Sequence(xs)   -> xs, which must already have length n
//	Linear         -> [n, n-1, ..., 1]
//	Exponential(b) -> [b^(n-1), b^(n-2), ..., b^0]
//
// The zero Scale is Scalar(0). In JSON, a Scale is a number, an array
// of numbers, "linear", or "exp-<base>".
type Scale struct {
	kind  ScaleKind
	value float64
	seq   []float64
}

// NewScalar returns a Scale which repeats s
func NewScalar(s float64) Scale {
	return Scale{kind: Scalar, value: s}
}

// NewSequence returns a Scale made of an explicit sequence of values.
// The values are copied.
func NewSequence(xs []float64) Scale {
	seq := make([]float64, len(xs))
	copy(seq, xs)
	return Scale{kind: Sequence, seq: seq}
}

// NewLinear returns a Scale which counts down linearly to 1
func NewLinear() Scale {
	return Scale{kind: Linear}
}

// NewExponential returns a Scale which decays as powers of base down
// to base^0
func NewExponential(base float64) Scale {
	return Scale{kind: Exponential, value: base}
}

// ParseScale parses a named progression, either "linear" or
// "exp-<base>" where <base> is a float. Any other string results in an
// error wrapping ErrBadScale.
func ParseScale(s string) (Scale, error) {
	switch {
	case s == LinearName:
		return NewLinear(), nil

	case strings.HasPrefix(s, ExponentialName):
		base, err := strconv.ParseFloat(strings.TrimPrefix(s,
			ExponentialName), 64)
		if err != nil {
			return Scale{}, errors.Wrapf(ErrBadScale, "parseScale: %q: %v",
				s, err)
		}
		if math.IsNaN(base) || math.IsInf(base, 0) {
			return Scale{}, errors.Wrapf(ErrBadScale, "parseScale: %q: "+
				"base must be finite", s)
		}
		return NewExponential(base), nil
	}

	return Scale{}, errors.Wrapf(ErrBadScale, "parseScale: %q", s)
}

// Kind returns how the Scale is expanded
func (s Scale) Kind() ScaleKind {
	return s.kind
}

// Expand resolves the Scale into a vector of n scales
func (s Scale) Expand(n int) ([]float64, error) {
	if n <= 0 {
		return nil, errors.Errorf("expand: length must be positive, have %v",
			n)
	}

	out := make([]float64, n)
	switch s.kind {
	case Scalar:
		for i := range out {
			out[i] = s.value
		}

	case Sequence:
		if len(s.seq) != n {
			return nil, errors.Errorf("expand: sequence length mismatch "+
				"\n\twant(%v) \n\thave(%v)", n, len(s.seq))
		}
		copy(out, s.seq)

	case Linear:
		for i := range out {
			out[i] = float64(n - i)
		}

	case Exponential:
		for i := range out {
			out[i] = math.Pow(s.value, float64(n-i-1))
		}

	default:
		return nil, errors.Wrapf(ErrBadScale, "expand: unknown kind %v",
			s.kind)
	}

	return out, nil
}

// String returns the Scale in the form it is parsed from
func (s Scale) String() string {
	switch s.kind {
	case Sequence:
		return fmt.Sprint(s.seq)
	case Linear:
		return LinearName
	case Exponential:
		return ExponentialName + strconv.FormatFloat(s.value, 'g', -1, 64)
	default:
		return strconv.FormatFloat(s.value, 'g', -1, 64)
	}
}

// MarshalJSON implements the json.Marshaler interface
func (s Scale) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case Sequence:
		return json.Marshal(s.seq)
	case Linear, Exponential:
		return json.Marshal(s.String())
	default:
		return json.Marshal(s.value)
	}
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (s *Scale) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errors.Wrap(ErrBadScale, "unmarshalJSON: null")
	}

	var value float64
	if err := json.Unmarshal(data, &value); err == nil {
		*s = NewScalar(value)
		return nil
	}

	var seq []float64
	if err := json.Unmarshal(data, &seq); err == nil {
		*s = NewSequence(seq)
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return errors.Wrapf(ErrBadScale, "unmarshalJSON: %s", data)
	}
	scale, err := ParseScale(name)
	if err != nil {
		return err
	}
	*s = scale
	return nil
}

// Set parses a Scale from the command line. A Scale may be given as a
// number, a comma separated list of numbers, or a named progression.
func (s *Scale) Set(value string) error {
	if v, err := strconv.ParseFloat(value, 64); err == nil {
		*s = NewScalar(v)
		return nil
	}

	if strings.Contains(value, ",") {
		fields := strings.Split(value, ",")
		seq := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return errors.Wrapf(ErrBadScale, "set: %q", value)
			}
			seq[i] = v
		}
		*s = NewSequence(seq)
		return nil
	}

	scale, err := ParseScale(value)
	if err != nil {
		return err
	}
	*s = scale
	return nil
}

// Type returns the name of the flag value type
func (s *Scale) Type() string {
	return "scale"
}
