package meshcheck

import "github.com/eatspaint/raybase/pkg/tuple"

// Triangle is one mesh face as three points.
type Triangle struct {
	A, B, C tuple.Tuple
}

// Edges returns the two edge vectors spanning the triangle from A.
func (t Triangle) Edges() (tuple.Tuple, tuple.Tuple) {
	return t.B.Sub(t.A), t.C.Sub(t.A)
}

// Normal returns the unit face normal by the right-hand rule over the
// triangle's winding. Degenerate triangles have a zero cross product, so
// their normal comes back non-finite; call Degenerate first when finite
// results are required.
func (t Triangle) Normal() tuple.Tuple {
	e1, e2 := t.Edges()
	return e1.Cross(e2).Normalize()
}

// Area returns the triangle's surface area: half the cross product length.
func (t Triangle) Area() float64 {
	e1, e2 := t.Edges()
	return e1.Cross(e2).Len() / 2
}

// Degenerate reports whether the triangle has effectively zero area under
// the shared tolerance, i.e. its vertices are collinear or coincident.
func (t Triangle) Degenerate() bool {
	return tuple.ApproxEq(t.Area(), 0)
}
