package editor

import "trisketch/geometry"

// Effect is a confirmed outcome of a gesture, returned by Reduce for the
// caller to apply to the document or viewport. The machine itself never
// mutates anything.
type Effect interface{ isEffect() }

// AddStandaloneEdge adds a free edge between two world points.
type AddStandaloneEdge struct {
	P1, P2 geometry.Point
}

// AttachTriangle attaches a new triangle to an edge of an existing one.
type AttachTriangle struct {
	TriangleID          string
	EdgeIndex           int
	SideLeft, SideRight float64
	Flip                bool
}

// PromoteEdge turns a standalone edge into a new root triangle's base.
type PromoteEdge struct {
	EdgeID              string
	SideLeft, SideRight float64
	Flip                bool
}

// ReshapeTriangle replaces a triangle's apex placement against its
// existing base edge.
type ReshapeTriangle struct {
	TriangleID          string
	SideLeft, SideRight float64
	Flip                bool
}

// PlaceRoot places a new root triangle at an arbitrary origin and base
// direction.
type PlaceRoot struct {
	SideA, SideB, SideC float64
	Origin              geometry.Point
	Angle               float64
}

// MoveSelection translates the listed triangles and edges rigidly.
type MoveSelection struct {
	TriangleIDs []string
	EdgeIDs     []string
	DX, DY      float64
}

// Pan shifts the viewport by a screen-space delta.
type Pan struct {
	DX, DY float64
}

// Zoom scales the viewport around a screen-space center.
type Zoom struct {
	Center geometry.Point
	Scale  float64
}

// SelectInRect replaces the selection with everything whose centroid lies
// in the world-space rectangle (inclusive bounds).
type SelectInRect struct {
	Min, Max geometry.Point
}

// ClickBackground is a background tap that never became a pan; consumers
// typically clear the selection.
type ClickBackground struct {
	World geometry.Point
}

func (AddStandaloneEdge) isEffect() {}
func (AttachTriangle) isEffect()    {}
func (PromoteEdge) isEffect()       {}
func (ReshapeTriangle) isEffect()   {}
func (PlaceRoot) isEffect()         {}
func (MoveSelection) isEffect()     {}
func (Pan) isEffect()               {}
func (Zoom) isEffect()              {}
func (SelectInRect) isEffect()      {}
func (ClickBackground) isEffect()   {}
