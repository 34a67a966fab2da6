// Package geometry contains the pure triangle-construction math used
// throughout trisketch. Coordinates live in a Y-up model plane; screen
// rendering inverts Y, but nothing in this package knows about screens.
package geometry

import "math"

// Tolerance for coordinate comparisons. Side lengths are user-entered
// measurements in the low hundreds at most, so an absolute epsilon is fine.
const Tolerance = 1e-9

// Point is a location in the model plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Centroid returns the centroid of the triangle a-b-c.
func Centroid(a, b, c Point) Point {
	return Point{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
}

// ApproxEqual reports whether two points coincide within Tolerance.
func ApproxEqual(a, b Point) bool {
	return math.Abs(a.X-b.X) < Tolerance && math.Abs(a.Y-b.Y) < Tolerance
}

// LeftOfEdge reports whether p lies strictly on the left side of the
// directed edge p1->p2 (counterclockwise in Y-up space). Points on the
// edge itself count as not-left.
func LeftOfEdge(p1, p2, p Point) bool {
	return (p2.X-p1.X)*(p.Y-p1.Y)-(p2.Y-p1.Y)*(p.X-p1.X) > 0
}

// PointSegmentDist returns the distance from p to the closed segment a-b.
func PointSegmentDist(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 < Tolerance {
		return Dist(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Dist(p, Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

// TriangleInequality reports whether side lengths a, b, c can form a
// non-degenerate triangle: all positive and each strictly less than the
// sum of the other two.
func TriangleInequality(a, b, c float64) bool {
	if a <= 0 || b <= 0 || c <= 0 {
		return false
	}
	return a < b+c && b < a+c && c < a+b
}

// HeronArea returns the area of a triangle with side lengths a, b, c.
// The radicand is clamped to zero so near-degenerate triangles produced
// by floating-point noise yield 0 rather than NaN.
func HeronArea(a, b, c float64) float64 {
	s := (a + b + c) / 2
	r := s * (s - a) * (s - b) * (s - c)
	if r < 0 {
		r = 0
	}
	return math.Sqrt(r)
}

// ThirdVertex places the apex of a triangle built on the directed base
// edge p1->p2, where distLeft is the target distance p1->apex and
// distRight the target distance p2->apex. The two circles intersect in
// two mirror-image points; placeOnLeftSide selects the one on the left
// of the directed base (the other lies on the right).
//
// Returns ok=false when the base points coincide or the triangle
// inequality is violated; callers must treat that as "no valid
// construction" and not build a definition from it.
func ThirdVertex(p1, p2 Point, distLeft, distRight float64, placeOnLeftSide bool) (Point, bool) {
	d := Dist(p1, p2)
	if d < Tolerance {
		return Point{}, false
	}
	if !TriangleInequality(d, distLeft, distRight) {
		return Point{}, false
	}

	// Signed distance from p1 to the foot of the apex altitude, then the
	// altitude height. The sqrt argument is clamped: at the degenerate
	// limit floating-point noise can push it slightly negative.
	a := (distLeft*distLeft - distRight*distRight + d*d) / (2 * d)
	h2 := distLeft*distLeft - a*a
	if h2 < 0 {
		h2 = 0
	}
	h := math.Sqrt(h2)

	ux := (p2.X - p1.X) / d
	uy := (p2.Y - p1.Y) / d
	foot := Point{X: p1.X + a*ux, Y: p1.Y + a*uy}

	// Left-hand normal of the base direction is (-uy, ux) in Y-up space.
	if placeOnLeftSide {
		return Point{X: foot.X - h*uy, Y: foot.Y + h*ux}, true
	}
	return Point{X: foot.X + h*uy, Y: foot.Y - h*ux}, true
}
