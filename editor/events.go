package editor

import "trisketch/geometry"

// Event is one input to the state machine. Pointer events carry both the
// raw screen position (for pan deltas and pixel thresholds) and the
// world position under the screen-to-world transform owned by the
// rendering layer.
type Event interface{ isEvent() }

// PointerDown is a press or tap. Target is the typed hit-test result for
// the press position, supplied by the rendering layer.
type PointerDown struct {
	Screen geometry.Point
	World  geometry.Point
	Target HitTarget
}

// PointerMove is pointer motion, pressed or hovering.
type PointerMove struct {
	Screen geometry.Point
	World  geometry.Point
}

// PointerUp is a release.
type PointerUp struct {
	Screen geometry.Point
	World  geometry.Point
}

// LongPress fires when a pointer has been held in place past the
// long-press duration.
type LongPress struct {
	World geometry.Point
}

// DoubleTap is two taps in quick succession at nearly the same spot.
type DoubleTap struct {
	Screen geometry.Point
	World  geometry.Point
	Target HitTarget
}

// Pinch is a two-pointer scale gesture. Scale is the ratio of the current
// pointer distance to the distance at pinch start.
type Pinch struct {
	Center geometry.Point // screen coordinates of the two-pointer centroid
	Scale  float64
}

// Escape cancels any in-progress construction unconditionally.
type Escape struct{}

// SetEdgeEditMode toggles edge-edit mode. Turning it off forcibly resets
// any edge-edit construction state.
type SetEdgeEditMode struct{ On bool }

// SetTriangleEditMode toggles triangle-edit mode. Turning it off forcibly
// resets any triangle-edit construction state.
type SetTriangleEditMode struct{ On bool }

// BeginMoveSelection starts a rigid move of the listed triangles and
// edges, anchored at the given world position.
type BeginMoveSelection struct {
	World       geometry.Point
	TriangleIDs []string
	EdgeIDs     []string
}

// BeginRootPlacement starts the two-step origin+angle placement of a new
// root triangle with the given side lengths.
type BeginRootPlacement struct {
	SideA, SideB, SideC float64
}

func (PointerDown) isEvent()         {}
func (PointerMove) isEvent()         {}
func (PointerUp) isEvent()           {}
func (LongPress) isEvent()           {}
func (DoubleTap) isEvent()           {}
func (Pinch) isEvent()               {}
func (Escape) isEvent()              {}
func (SetEdgeEditMode) isEvent()     {}
func (SetTriangleEditMode) isEvent() {}
func (BeginMoveSelection) isEvent()  {}
func (BeginRootPlacement) isEvent()  {}

// HitTarget identifies what lies under a press position. The rendering
// layer's hit-test returns these directly; nothing is encoded in strings.
type HitTarget interface{ isHitTarget() }

// HitBackground - empty canvas.
type HitBackground struct{}

// HitTriangleEdge - one edge of a rendered triangle, with its resolved
// endpoints in directed order.
type HitTriangleEdge struct {
	TriangleID string
	EdgeIndex  int
	P1, P2     geometry.Point
}

// HitTriangleVertex - a vertex of a rendered triangle.
type HitTriangleVertex struct {
	TriangleID string
	Index      int
	Pos        geometry.Point
}

// HitTriangleLabel - the centroid label of a rendered triangle. Base1 and
// Base2 are the triangle's first two resolved vertices, the fixed base
// used for reshaping.
type HitTriangleLabel struct {
	TriangleID   string
	Base1, Base2 geometry.Point
}

// HitStandaloneEdge - the body of a standalone edge.
type HitStandaloneEdge struct {
	EdgeID string
	P1, P2 geometry.Point
}

// HitEdgeEndpoint - an endpoint of a standalone edge.
type HitEdgeEndpoint struct {
	EdgeID string
	Pos    geometry.Point
}

func (HitBackground) isHitTarget()     {}
func (HitTriangleEdge) isHitTarget()   {}
func (HitTriangleVertex) isHitTarget() {}
func (HitTriangleLabel) isHitTarget()  {}
func (HitStandaloneEdge) isHitTarget() {}
func (HitEdgeEndpoint) isHitTarget()   {}
