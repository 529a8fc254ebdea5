package indicators

import (
	"math"
	"strconv"
)

// Value is a nullable indicator reading. The zero Value is undefined.
type Value struct {
	v       float64
	defined bool
}

// Defined wraps f. NaN and infinities are treated as undefined.
func Defined(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{v: f, defined: true}
}

// Undefined returns the sentinel used for readings without enough history.
func Undefined() Value {
	return Value{}
}

// IsDefined reports whether the value carries a number.
func (v Value) IsDefined() bool {
	return v.defined
}

// Float64 returns the number and whether it is defined.
func (v Value) Float64() (float64, bool) {
	return v.v, v.defined
}

// OrNaN returns the number, or NaN when undefined.
func (v Value) OrNaN() float64 {
	if !v.defined {
		return math.NaN()
	}
	return v.v
}

// String renders the value; undefined prints as NaN.
func (v Value) String() string {
	if !v.defined {
		return "NaN"
	}
	return strconv.FormatFloat(v.v, 'f', -1, 64)
}
