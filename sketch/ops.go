package sketch

import (
	"math"

	"trisketch/geometry"
)

// Mutation operations invoked by the interaction layer once a gesture is
// confirmed. Every operation replaces whole fields on the definitions;
// callers re-run Recompute afterwards.

// AddEdge appends a standalone edge and returns its id.
func (s *Sketch) AddEdge(p1, p2 geometry.Point) string {
	e := StandaloneEdge{ID: NewID(), P1: p1, P2: p2}
	s.Edges = append(s.Edges, e)
	return e.ID
}

// AddRoot appends a root triangle at the canonical origin with base a,
// left side b and right side c. Returns the new id.
func (s *Sketch) AddRoot(a, b, c float64) string {
	d := TriangleDef{ID: NewID(), SideA: a, SideB: b, SideC: c}
	s.Triangles = append(s.Triangles, d)
	return d.ID
}

// PlaceRoot appends a root triangle whose base starts at origin and runs
// at the given angle (radians, Y-up counterclockwise). Returns the new id.
func (s *Sketch) PlaceRoot(a, b, c float64, origin geometry.Point, angle float64) string {
	end := geometry.Point{
		X: origin.X + a*math.Cos(angle),
		Y: origin.Y + a*math.Sin(angle),
	}
	d := TriangleDef{
		ID:     NewID(),
		SideA:  a,
		SideB:  b,
		SideC:  c,
		Origin: &[2]geometry.Point{origin, end},
	}
	s.Triangles = append(s.Triangles, d)
	return d.ID
}

// PromoteEdge turns a standalone edge into the base of a new root triangle
// and removes the edge from the document. sideLeft and sideRight are
// measured from the edge's P1 and P2 to the new apex. Returns the new
// triangle id, or "" if the edge does not exist.
func (s *Sketch) PromoteEdge(edgeID string, sideLeft, sideRight float64, flip bool) string {
	e := s.EdgeByID(edgeID)
	if e == nil {
		return ""
	}
	d := TriangleDef{
		ID:     NewID(),
		SideA:  e.Length(),
		SideB:  sideLeft,
		SideC:  sideRight,
		Origin: &[2]geometry.Point{e.P1, e.P2},
		Flip:   flip,
	}
	s.RemoveEdge(edgeID)
	s.Triangles = append(s.Triangles, d)
	return d.ID
}

// AttachTriangle appends a triangle attached to an edge of an existing
// parent. Returns the new id, or "" when the parent is missing or the
// edge already carries a child.
func (s *Sketch) AttachTriangle(parentID string, edgeIndex int, sideLeft, sideRight float64, flip bool) string {
	if s.TriangleByID(parentID) == nil {
		return ""
	}
	if s.EdgeOccupied(parentID, edgeIndex) {
		return ""
	}
	d := TriangleDef{
		ID:        NewID(),
		ParentID:  parentID,
		EdgeIndex: edgeIndex,
		SideLeft:  sideLeft,
		SideRight: sideRight,
		Flip:      flip,
	}
	s.Triangles = append(s.Triangles, d)
	return d.ID
}

// Reshape replaces a triangle's apex placement, keeping its base edge
// fixed: the two free side lengths and the flip flag are overwritten.
func (s *Sketch) Reshape(id string, sideLeft, sideRight float64, flip bool) bool {
	d := s.TriangleByID(id)
	if d == nil {
		return false
	}
	if d.IsRoot() {
		d.SideB = sideLeft
		d.SideC = sideRight
	} else {
		d.SideLeft = sideLeft
		d.SideRight = sideRight
	}
	d.Flip = flip
	return true
}

// UpdateEdgeLength rescales a standalone edge to the new length, keeping
// P1 and the direction fixed. Non-positive lengths are ignored.
func (s *Sketch) UpdateEdgeLength(id string, newLength float64) bool {
	e := s.EdgeByID(id)
	if e == nil || newLength <= 0 {
		return false
	}
	cur := e.Length()
	if cur < geometry.Tolerance {
		return false
	}
	e.P2 = geometry.Point{
		X: e.P1.X + (e.P2.X-e.P1.X)*newLength/cur,
		Y: e.P1.Y + (e.P2.Y-e.P1.Y)*newLength/cur,
	}
	return true
}

// MoveTriangles translates the listed triangles rigidly by (dx, dy).
// Only root triangles carry positions of their own; attached triangles
// follow their parents, so ids naming attached definitions are no-ops.
// A canonical-origin root acquires an explicit origin when first moved.
func (s *Sketch) MoveTriangles(ids []string, dx, dy float64) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for i := range s.Triangles {
		d := &s.Triangles[i]
		if !want[d.ID] || !d.IsRoot() {
			continue
		}
		p1 := geometry.Point{}
		p2 := geometry.Point{X: d.SideA}
		if d.Origin != nil {
			p1, p2 = d.Origin[0], d.Origin[1]
		}
		d.Origin = &[2]geometry.Point{
			{X: p1.X + dx, Y: p1.Y + dy},
			{X: p2.X + dx, Y: p2.Y + dy},
		}
	}
}

// MoveEdges translates the listed standalone edges rigidly by (dx, dy).
func (s *Sketch) MoveEdges(ids []string, dx, dy float64) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for i := range s.Edges {
		e := &s.Edges[i]
		if !want[e.ID] {
			continue
		}
		e.P1 = geometry.Point{X: e.P1.X + dx, Y: e.P1.Y + dy}
		e.P2 = geometry.Point{X: e.P2.X + dx, Y: e.P2.Y + dy}
	}
}

// RemoveTriangle deletes a single definition. Attached children are left
// in place deliberately (orphan-and-skip): Recompute already omits
// definitions with an unresolvable parent, and an undo that restores the
// parent brings the whole subtree back intact.
func (s *Sketch) RemoveTriangle(id string) bool {
	for i := range s.Triangles {
		if s.Triangles[i].ID == id {
			s.Triangles = append(s.Triangles[:i], s.Triangles[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveEdge deletes a standalone edge.
func (s *Sketch) RemoveEdge(id string) bool {
	for i := range s.Edges {
		if s.Edges[i].ID == id {
			s.Edges = append(s.Edges[:i], s.Edges[i+1:]...)
			return true
		}
	}
	return false
}

// TrianglesInRect returns the ids of rendered triangles whose centroid
// lies within the rectangle spanned by min and max (inclusive bounds).
func TrianglesInRect(rendered []Rendered, min, max geometry.Point) []string {
	var ids []string
	for i := range rendered {
		c := rendered[i].Centroid()
		if c.X >= min.X && c.X <= max.X && c.Y >= min.Y && c.Y <= max.Y {
			ids = append(ids, rendered[i].ID)
		}
	}
	return ids
}

// EdgesInRect returns the ids of standalone edges whose midpoint lies
// within the rectangle spanned by min and max (inclusive bounds).
func (s *Sketch) EdgesInRect(min, max geometry.Point) []string {
	var ids []string
	for i := range s.Edges {
		c := geometry.Midpoint(s.Edges[i].P1, s.Edges[i].P2)
		if c.X >= min.X && c.X <= max.X && c.Y >= min.Y && c.Y <= max.Y {
			ids = append(ids, s.Edges[i].ID)
		}
	}
	return ids
}
