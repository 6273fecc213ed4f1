package wfst

import (
	"math"
	"strconv"
)

// Weight is a tropical-semiring value: a non-negative cost where extending
// a path adds weights and choosing between alternative paths takes the
// minimum. One() (cost 0) is the multiplicative identity, Zero() (+Inf)
// the additive identity, meaning "unreachable".
type Weight float64

// One returns the multiplicative identity (cost 0).
func One() Weight { return 0 }

// Zero returns the additive identity (+Inf, no path).
func Zero() Weight { return Weight(math.Inf(1)) }

// Times extends a path: tropical multiplication is addition of costs.
func (w Weight) Times(v Weight) Weight { return w + v }

// Plus combines alternative paths: tropical addition is the minimum cost.
func (w Weight) Plus(v Weight) Weight {
	if v < w {
		return v
	}
	return w
}

// IsZero reports whether the weight is the unreachable identity.
func (w Weight) IsZero() bool { return math.IsInf(float64(w), 1) }

// Less reports whether w ranks strictly better (cheaper) than v.
func (w Weight) Less(v Weight) bool { return w < v }

// ApproxEqual reports whether two weights are within delta of each other.
// Two Zero() weights are approximately equal regardless of delta.
func (w Weight) ApproxEqual(v Weight, delta float64) bool {
	if w.IsZero() || v.IsZero() {
		return w.IsZero() && v.IsZero()
	}
	return math.Abs(float64(w)-float64(v)) <= delta
}

// Value returns the raw cost.
func (w Weight) Value() float64 { return float64(w) }

func (w Weight) String() string {
	if w.IsZero() {
		return "inf"
	}
	return strconv.FormatFloat(float64(w), 'g', -1, 64)
}
