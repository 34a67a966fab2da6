package terminal

import (
	"testing"

	"trisketch/editor"
	"trisketch/geometry"
	"trisketch/sketch"
)

// hitScene builds one equilateral root (base 6 along the X axis) and one
// standalone edge well away from it.
func hitScene(t *testing.T) ([]sketch.Rendered, *sketch.Sketch) {
	t.Helper()
	s := &sketch.Sketch{}
	s.AddRoot(6, 6, 6)
	s.AddEdge(geometry.Point{X: 20, Y: 0}, geometry.Point{X: 24, Y: 0})
	rendered := sketch.Recompute(s)
	if len(rendered) != 1 {
		t.Fatalf("expected 1 rendered triangle, got %d", len(rendered))
	}
	return rendered, s
}

func TestHitTestVertex(t *testing.T) {
	rendered, s := hitScene(t)

	got := hitTest(rendered, s.Edges, geometry.Point{X: 0.1, Y: -0.1}, 0.5)
	v, ok := got.(editor.HitTriangleVertex)
	if !ok {
		t.Fatalf("expected vertex hit, got %T", got)
	}
	if v.Index != 0 || v.TriangleID != rendered[0].ID {
		t.Errorf("hit vertex %d of %q", v.Index, v.TriangleID)
	}
}

func TestHitTestEdgeBody(t *testing.T) {
	rendered, s := hitScene(t)

	// Middle of the base, clear of both vertices and the centroid.
	got := hitTest(rendered, s.Edges, geometry.Point{X: 3, Y: 0.1}, 0.5)
	e, ok := got.(editor.HitTriangleEdge)
	if !ok {
		t.Fatalf("expected edge hit, got %T", got)
	}
	if e.EdgeIndex != sketch.EdgeBase {
		t.Errorf("edge index = %d, want base", e.EdgeIndex)
	}
	if e.P1 != rendered[0].Vertices[0] || e.P2 != rendered[0].Vertices[1] {
		t.Error("edge endpoints should come back in directed order")
	}
}

func TestHitTestVertexBeatsEdge(t *testing.T) {
	rendered, s := hitScene(t)

	// Exactly on the shared corner of base and left edge.
	got := hitTest(rendered, s.Edges, geometry.Point{X: 0, Y: 0}, 0.5)
	if _, ok := got.(editor.HitTriangleVertex); !ok {
		t.Fatalf("vertex should win over the edges through it, got %T", got)
	}
}

func TestHitTestCentroidLabel(t *testing.T) {
	rendered, s := hitScene(t)

	got := hitTest(rendered, s.Edges, rendered[0].Centroid(), 0.5)
	l, ok := got.(editor.HitTriangleLabel)
	if !ok {
		t.Fatalf("expected label hit, got %T", got)
	}
	if l.Base1 != rendered[0].Vertices[0] || l.Base2 != rendered[0].Vertices[1] {
		t.Error("label hit should carry the base edge endpoints")
	}
}

func TestHitTestStandaloneEdgeAndEndpoints(t *testing.T) {
	rendered, s := hitScene(t)
	id := s.Edges[0].ID

	got := hitTest(rendered, s.Edges, geometry.Point{X: 20, Y: 0.2}, 0.5)
	ep, ok := got.(editor.HitEdgeEndpoint)
	if !ok {
		t.Fatalf("expected endpoint hit, got %T", got)
	}
	if ep.EdgeID != id || ep.Pos != s.Edges[0].P1 {
		t.Errorf("endpoint hit = %+v", ep)
	}

	got = hitTest(rendered, s.Edges, geometry.Point{X: 22, Y: 0.2}, 0.5)
	body, ok := got.(editor.HitStandaloneEdge)
	if !ok {
		t.Fatalf("expected edge body hit, got %T", got)
	}
	if body.EdgeID != id {
		t.Errorf("edge body id = %q", body.EdgeID)
	}
}

func TestHitTestBackground(t *testing.T) {
	rendered, s := hitScene(t)

	got := hitTest(rendered, s.Edges, geometry.Point{X: -50, Y: 40}, 0.5)
	if _, ok := got.(editor.HitBackground); !ok {
		t.Fatalf("expected background, got %T", got)
	}
}
