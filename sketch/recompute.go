package sketch

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"trisketch/geometry"
)

// Recompute resolves every triangle definition into concrete vertices,
// walking the definition list once in order. Attached definitions look
// their parent up in the map of already-resolved triangles; if the parent
// is absent (deleted, unresolvable, or defined later) the definition is
// skipped silently and contributes nothing to the output.
//
// Recompute is a pure function of the list: the same input always yields
// the same output, which is what makes full recomputation after every
// edit acceptable in place of incremental patching.
func Recompute(s *Sketch) []Rendered {
	resolved := make(map[string]*Rendered, len(s.Triangles))
	out := make([]Rendered, 0, len(s.Triangles))

	for i := range s.Triangles {
		def := &s.Triangles[i]
		var r Rendered
		var ok bool
		if def.IsRoot() {
			r, ok = resolveRoot(def)
		} else {
			parent, found := resolved[def.ParentID]
			if !found {
				continue
			}
			r, ok = resolveAttached(def, parent)
		}
		if !ok {
			continue
		}
		r.Name = def.Name
		if r.Name == "" {
			r.Name = fmt.Sprintf("T%d", len(out)+1)
		}
		r.Color = triangleColor(len(out))
		out = append(out, r)
		resolved[def.ID] = &out[len(out)-1]
	}
	return out
}

func resolveRoot(def *TriangleDef) (Rendered, bool) {
	p1 := geometry.Point{}
	p2 := geometry.Point{X: def.SideA}
	if def.Origin != nil {
		p1, p2 = def.Origin[0], def.Origin[1]
	}
	apex, ok := geometry.ThirdVertex(p1, p2, def.SideB, def.SideC, !def.Flip)
	if !ok {
		return Rendered{}, false
	}
	return Rendered{
		ID:       def.ID,
		Vertices: [3]geometry.Point{p1, p2, apex},
		Labels:   [3]string{"A", "C", "B"}, // edge order base, right, left
		Area:     geometry.HeronArea(def.SideA, def.SideB, def.SideC),
	}, true
}

func resolveAttached(def *TriangleDef, parent *Rendered) (Rendered, bool) {
	if def.EdgeIndex < 0 || def.EdgeIndex > 2 {
		return Rendered{}, false
	}
	p1, p2 := parent.EdgePoints(def.EdgeIndex)
	apex, ok := geometry.ThirdVertex(p1, p2, def.SideLeft, def.SideRight, !def.Flip)
	if !ok {
		return Rendered{}, false
	}
	base := geometry.Dist(p1, p2)
	return Rendered{
		ID:        def.ID,
		Vertices:  [3]geometry.Point{p1, p2, apex},
		Labels:    [3]string{RefLabel, "R", "L"},
		Area:      geometry.HeronArea(base, def.SideLeft, def.SideRight),
		ParentID:  def.ParentID,
		EdgeIndex: def.EdgeIndex,
	}, true
}

// EdgeOccupied reports whether the given edge of a resolved triangle
// already carries an attached child. At most one child per edge; a
// definition that failed to resolve does not occupy its edge.
func (s *Sketch) EdgeOccupied(triangleID string, edgeIndex int) bool {
	for _, r := range Recompute(s) {
		if r.ParentID == triangleID && r.EdgeIndex == edgeIndex {
			return true
		}
	}
	return false
}

// SnapPoints returns every snappable point in the document: all resolved
// triangle vertices and all standalone-edge endpoints.
func (s *Sketch) SnapPoints() []geometry.Point {
	var pts []geometry.Point
	for _, r := range Recompute(s) {
		pts = append(pts, r.Vertices[0], r.Vertices[1], r.Vertices[2])
	}
	for i := range s.Edges {
		pts = append(pts, s.Edges[i].P1, s.Edges[i].P2)
	}
	return pts
}

// triangleColor picks a display color for the nth rendered triangle.
// Stepping the hue by a large coprime angle keeps neighbours visually
// distinct while staying deterministic across recomputes.
func triangleColor(n int) string {
	h := float64((n * 137) % 360)
	return colorful.Hsv(h, 0.55, 0.92).Hex()
}
