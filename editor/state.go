// Package editor implements the interaction state machine that turns
// pointer gestures into construction and edit operations on a sketch.
// The machine is a pure reducer: state evolution is separated from side
// effects, which are returned as values for the caller to apply.
package editor

import "trisketch/geometry"

// State is the current gesture/construction mode. Exactly one variant is
// active at a time; states are transient and never persisted.
type State interface {
	isState()
	// Name returns the state name for the status line.
	Name() string
}

// Idle - nothing in progress.
type Idle struct{}

// PanReady - pointer is down on the background; becomes Panning once
// movement exceeds the pan threshold, or a background click on release.
type PanReady struct {
	Start geometry.Point // screen coordinates
	World geometry.Point // world position of the press, for click reporting
}

// Panning - viewport pan in progress, driven by screen-space deltas.
type Panning struct {
	Last geometry.Point // screen coordinates
}

// SelectRect - rectangle selection after a long-press on the background.
type SelectRect struct {
	Start   geometry.Point // world
	Current geometry.Point // world
}

// DrawingEdge - drawing a free standalone edge from a background tap.
// Only live while edge-edit mode is active.
type DrawingEdge struct {
	Start   geometry.Point
	Current geometry.Point
}

// ExtendingEdge - drawing a free edge anchored on an existing endpoint or
// triangle vertex. Only live while edge-edit mode is active.
type ExtendingEdge struct {
	AnchorID string // edge or triangle id the anchor belongs to
	Start    geometry.Point
	Current  geometry.Point
}

// PhantomPlacing - placing a new triangle against an unoccupied edge of an
// existing triangle. Only live while triangle-edit mode is active.
type PhantomPlacing struct {
	TriangleID string
	EdgeIndex  int
	P1, P2     geometry.Point // directed base edge endpoints
	Current    geometry.Point
}

// VertexReshaping - dragging a new apex for an existing triangle; the
// triangle's first two vertices stay fixed as the base.
type VertexReshaping struct {
	TriangleID string
	P1, P2     geometry.Point
	Current    geometry.Point
}

// StandaloneEdgePlacing - promoting a standalone edge into the base of a
// new root triangle.
type StandaloneEdgePlacing struct {
	EdgeID  string
	P1, P2  geometry.Point
	Current geometry.Point
}

// RootPlacingOrigin - first step of free root placement: waiting for the
// tap that fixes the origin.
type RootPlacingOrigin struct {
	SideA, SideB, SideC float64
	Current             geometry.Point
}

// RootPlacingAngle - second step: origin fixed, waiting for the tap that
// fixes the base direction.
type RootPlacingAngle struct {
	SideA, SideB, SideC float64
	Origin              geometry.Point
	Current             geometry.Point
}

// MovingSelection - rigid translation of a multi-selection in progress.
type MovingSelection struct {
	Start       geometry.Point // world
	Current     geometry.Point
	TriangleIDs []string
	EdgeIDs     []string
}

func (Idle) isState()                  {}
func (PanReady) isState()              {}
func (Panning) isState()               {}
func (SelectRect) isState()            {}
func (DrawingEdge) isState()           {}
func (ExtendingEdge) isState()         {}
func (PhantomPlacing) isState()        {}
func (VertexReshaping) isState()       {}
func (StandaloneEdgePlacing) isState() {}
func (RootPlacingOrigin) isState()     {}
func (RootPlacingAngle) isState()      {}
func (MovingSelection) isState()       {}

func (Idle) Name() string                  { return "IDLE" }
func (PanReady) Name() string              { return "PAN?" }
func (Panning) Name() string               { return "PAN" }
func (SelectRect) Name() string            { return "SELECT" }
func (DrawingEdge) Name() string           { return "DRAW EDGE" }
func (ExtendingEdge) Name() string         { return "EXTEND EDGE" }
func (PhantomPlacing) Name() string        { return "ATTACH" }
func (VertexReshaping) Name() string       { return "RESHAPE" }
func (StandaloneEdgePlacing) Name() string { return "PROMOTE" }
func (RootPlacingOrigin) Name() string     { return "PLACE ORIGIN" }
func (RootPlacingAngle) Name() string      { return "PLACE ANGLE" }
func (MovingSelection) Name() string       { return "MOVE" }

// edgeEditState reports whether the state is only legal in edge-edit mode.
func edgeEditState(s State) bool {
	switch s.(type) {
	case DrawingEdge, ExtendingEdge:
		return true
	}
	return false
}

// triangleEditState reports whether the state is only legal in
// triangle-edit mode.
func triangleEditState(s State) bool {
	switch s.(type) {
	case PhantomPlacing, VertexReshaping, StandaloneEdgePlacing:
		return true
	}
	return false
}
