package terminal

import (
	"trisketch/editor"
	"trisketch/geometry"
	"trisketch/sketch"
)

// hitTest resolves what lies under a world position. tol is the pick
// radius in world units (derived from the camera scale so the pick area
// stays a constant couple of cells on screen).
//
// Priority runs small-to-large: vertices and endpoints beat centroid
// labels, labels beat edge bodies, and anything else is background.
func hitTest(rendered []sketch.Rendered, edges []sketch.StandaloneEdge, world geometry.Point, tol float64) editor.HitTarget {
	for i := range rendered {
		r := &rendered[i]
		for v := 0; v < 3; v++ {
			if geometry.Dist(world, r.Vertices[v]) <= tol {
				return editor.HitTriangleVertex{TriangleID: r.ID, Index: v, Pos: r.Vertices[v]}
			}
		}
	}
	for i := range edges {
		e := &edges[i]
		if geometry.Dist(world, e.P1) <= tol {
			return editor.HitEdgeEndpoint{EdgeID: e.ID, Pos: e.P1}
		}
		if geometry.Dist(world, e.P2) <= tol {
			return editor.HitEdgeEndpoint{EdgeID: e.ID, Pos: e.P2}
		}
	}
	for i := range rendered {
		r := &rendered[i]
		if geometry.Dist(world, r.Centroid()) <= tol {
			return editor.HitTriangleLabel{TriangleID: r.ID, Base1: r.Vertices[0], Base2: r.Vertices[1]}
		}
	}
	for i := range rendered {
		r := &rendered[i]
		for e := 0; e < 3; e++ {
			p1, p2 := r.EdgePoints(e)
			if geometry.PointSegmentDist(world, p1, p2) <= tol {
				return editor.HitTriangleEdge{TriangleID: r.ID, EdgeIndex: e, P1: p1, P2: p2}
			}
		}
	}
	for i := range edges {
		e := &edges[i]
		if geometry.PointSegmentDist(world, e.P1, e.P2) <= tol {
			return editor.HitStandaloneEdge{EdgeID: e.ID, P1: e.P1, P2: e.P2}
		}
	}
	return editor.HitBackground{}
}
