package sketch

import (
	"testing"

	"trisketch/geometry"
)

func TestSnapWithinRadius(t *testing.T) {
	s := &Sketch{}
	s.AddRoot(5, 5, 5) // vertices (0,0), (5,0), (2.5, ~4.33)

	got := s.Snap(geometry.Point{X: 4.8, Y: 0.1}, nil, DefaultSnapRadius)
	if got != (geometry.Point{X: 5}) {
		t.Errorf("cursor near a vertex should snap to that exact vertex, got %v", got)
	}
}

func TestSnapOutsideRadiusUnchanged(t *testing.T) {
	s := &Sketch{}
	s.AddRoot(5, 5, 5)

	raw := geometry.Point{X: 3.2, Y: 2.0}
	if got := s.Snap(raw, nil, DefaultSnapRadius); got != raw {
		t.Errorf("cursor outside the radius must pass through unchanged, got %v", got)
	}
}

func TestSnapExcludesAnchors(t *testing.T) {
	s := &Sketch{}
	s.AddEdge(geometry.Point{}, geometry.Point{X: 3})

	// Cursor hovers right next to the excluded endpoint; snapping must not
	// collapse the construction onto its own anchor.
	raw := geometry.Point{X: 0.1, Y: 0.1}
	got := s.Snap(raw, []geometry.Point{{X: 0, Y: 0}}, DefaultSnapRadius)
	if got != raw {
		t.Errorf("excluded point must not be a snap target, got %v", got)
	}
}

func TestSnapPicksNearest(t *testing.T) {
	candidates := []geometry.Point{{X: 1}, {X: 2}, {X: 1.4}}
	got, ok := NearestSnapPoint(candidates, geometry.Point{X: 1.3}, nil, 1)
	if !ok {
		t.Fatal("expected a snap hit")
	}
	if got != (geometry.Point{X: 1.4}) {
		t.Errorf("nearest candidate should win, got %v", got)
	}
}

func TestSnapEdgeEndpoints(t *testing.T) {
	s := &Sketch{}
	s.AddEdge(geometry.Point{X: 10, Y: 10}, geometry.Point{X: 14, Y: 10})

	got := s.Snap(geometry.Point{X: 13.9, Y: 10.2}, nil, DefaultSnapRadius)
	if got != (geometry.Point{X: 14, Y: 10}) {
		t.Errorf("standalone edge endpoints are snap targets, got %v", got)
	}
}
