package tuple

import "math"

// Epsilon is the absolute tolerance for approximate float comparison.
// Chained arithmetic accumulates rounding error well past what == tolerates;
// 1e-5 absorbs it at the scales a renderer works in.
const Epsilon = 1e-5

// ApproxEq reports whether a and b differ by less than Epsilon.
// Every approximate comparison in this module and the packages built on it
// goes through here, so equality semantics stay consistent everywhere.
func ApproxEq(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Equals reports whether two tuples are equal: X, Y, Z within Epsilon and W
// exactly identical. W is a discrete tag and compares exactly, so a vector
// never passes for a nearby point.
func (a Tuple) Equals(b Tuple) bool {
	return ApproxEq(a.X, b.X) &&
		ApproxEq(a.Y, b.Y) &&
		ApproxEq(a.Z, b.Z) &&
		a.W == b.W
}
