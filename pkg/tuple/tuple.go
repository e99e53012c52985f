// Package tuple provides the homogeneous coordinate primitive for raybase.
//
// A Tuple is four float64 components. W carries the semantic tag: W == 1 is a
// point in space, W == 0 is a direction vector. Every operation returns a new
// value; nothing here mutates or blocks, so tuples are safe to share between
// any number of goroutines.
package tuple

import (
	"fmt"
	"math"
)

// Tuple is a point or vector in homogeneous coordinates.
type Tuple struct {
	X, Y, Z, W float64
}

// New creates a tuple with explicit components. No constraint is placed on w;
// values other than 0 and 1 are legal intermediates of arithmetic.
func New(x, y, z, w float64) Tuple {
	return Tuple{x, y, z, w}
}

// Point creates a point: a tuple with W = 1.
func Point(x, y, z float64) Tuple {
	return Tuple{x, y, z, 1}
}

// Vector creates a vector: a tuple with W = 0.
func Vector(x, y, z float64) Tuple {
	return Tuple{x, y, z, 0}
}

// IsPoint reports whether the tuple is a point (W exactly 1).
func (a Tuple) IsPoint() bool {
	return a.W == 1.0
}

// IsVector reports whether the tuple is a vector (W exactly 0).
func (a Tuple) IsVector() bool {
	return a.W == 0.0
}

// Add returns the component-wise sum a + b.
// Point + vector is a point; vector + vector is a vector. Adding two points
// yields W = 2, which no operation rejects; keeping the sum meaningful is the
// caller's job.
func (a Tuple) Add(b Tuple) Tuple {
	return Tuple{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns the component-wise difference a - b.
// Point - point is the vector between them; point - vector is a point.
func (a Tuple) Sub(b Tuple) Tuple {
	return Tuple{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Negate returns the tuple with every component negated, W included.
func (a Tuple) Negate() Tuple {
	return Tuple{-a.X, -a.Y, -a.Z, -a.W}
}

// Scale returns the scalar product a * s over all four components.
// Scaling a point by anything but 1 leaves a non-canonical W behind.
func (a Tuple) Scale(s float64) Tuple {
	return Tuple{a.X * s, a.Y * s, a.Z * s, a.W * s}
}

// Div returns the scalar division a / s over all four components.
// Dividing by zero propagates IEEE-754 Inf/NaN; there is no zero check.
func (a Tuple) Div(s float64) Tuple {
	return Tuple{a.X / s, a.Y / s, a.Z / s, a.W / s}
}

// Len returns the length (magnitude) of the full four-component tuple.
// For a vector (W = 0) this is the familiar 3D length.
func (a Tuple) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z + a.W*a.W)
}

// LenSq returns the squared length (faster, no sqrt).
func (a Tuple) LenSq() float64 {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z + a.W*a.W
}

// Normalize returns the unit tuple in the same direction.
// A zero tuple divides by zero and comes back with non-finite components;
// callers that need finite results must not normalize zero vectors.
func (a Tuple) Normalize() Tuple {
	l := a.Len()
	return Tuple{a.X / l, a.Y / l, a.Z / l, a.W / l}
}

// Dot returns the dot product a · b over all four components.
// For two vectors this reduces to the standard 3D dot product.
func (a Tuple) Dot(b Tuple) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// Cross returns the cross product a × b of the X, Y, Z components.
// The result is always a vector (W = 0) no matter what the operands carry.
func (a Tuple) Cross(b Tuple) Tuple {
	return Vector(
		a.Y*b.Z-a.Z*b.Y,
		a.Z*b.X-a.X*b.Z,
		a.X*b.Y-a.Y*b.X,
	)
}

// Reflect returns the reflection of a around normal n.
func (a Tuple) Reflect(n Tuple) Tuple {
	return a.Sub(n.Scale(2 * a.Dot(n)))
}

// Lerp returns the linear interpolation between a and b by t.
// W interpolates too, so lerping two points stays a point.
func (a Tuple) Lerp(b Tuple, t float64) Tuple {
	return Tuple{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
		a.W + (b.W-a.W)*t,
	}
}

// Distance returns the distance between two points.
func (a Tuple) Distance(b Tuple) float64 {
	return a.Sub(b).Len()
}

// Min returns the component-wise minimum.
func (a Tuple) Min(b Tuple) Tuple {
	return Tuple{
		math.Min(a.X, b.X),
		math.Min(a.Y, b.Y),
		math.Min(a.Z, b.Z),
		math.Min(a.W, b.W),
	}
}

// Max returns the component-wise maximum.
func (a Tuple) Max(b Tuple) Tuple {
	return Tuple{
		math.Max(a.X, b.X),
		math.Max(a.Y, b.Y),
		math.Max(a.Z, b.Z),
		math.Max(a.W, b.W),
	}
}

// String formats the tuple by its classification.
func (a Tuple) String() string {
	switch {
	case a.IsPoint():
		return fmt.Sprintf("point(%g, %g, %g)", a.X, a.Y, a.Z)
	case a.IsVector():
		return fmt.Sprintf("vector(%g, %g, %g)", a.X, a.Y, a.Z)
	default:
		return fmt.Sprintf("tuple(%g, %g, %g, %g)", a.X, a.Y, a.Z, a.W)
	}
}
