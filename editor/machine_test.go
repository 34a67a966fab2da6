package editor

import (
	"math"
	"testing"

	"trisketch/geometry"
	"trisketch/sketch"
)

// testDoc builds a document with one canonical equilateral root triangle.
func testDoc(t *testing.T) (*sketch.Sketch, string) {
	t.Helper()
	s := &sketch.Sketch{}
	id := s.AddRoot(5, 5, 5)
	return s, id
}

func down(world geometry.Point, target HitTarget) PointerDown {
	return PointerDown{Screen: world, World: world, Target: target}
}

func TestPanBelowThresholdIsClick(t *testing.T) {
	s, _ := testDoc(t)
	m := NewMachine(s)

	m.Handle(down(geometry.Point{X: 100, Y: 100}, HitBackground{}))
	if _, ok := m.State().(PanReady); !ok {
		t.Fatalf("expected PanReady, got %T", m.State())
	}

	effects := m.Handle(PointerMove{Screen: geometry.Point{X: 101, Y: 101}, World: geometry.Point{X: 101, Y: 101}})
	if len(effects) != 0 {
		t.Errorf("movement below threshold must not pan, got %v", effects)
	}

	effects = m.Handle(PointerUp{Screen: geometry.Point{X: 101, Y: 101}})
	if len(effects) != 1 {
		t.Fatalf("expected a single effect, got %v", effects)
	}
	if _, ok := effects[0].(ClickBackground); !ok {
		t.Errorf("sub-threshold release should be a background click, got %T", effects[0])
	}
	if _, ok := m.State().(Idle); !ok {
		t.Errorf("expected Idle after release, got %T", m.State())
	}
}

func TestPanAboveThreshold(t *testing.T) {
	s, _ := testDoc(t)
	m := NewMachine(s)

	m.Handle(down(geometry.Point{X: 100, Y: 100}, HitBackground{}))
	effects := m.Handle(PointerMove{Screen: geometry.Point{X: 110, Y: 100}})
	if _, ok := m.State().(Panning); !ok {
		t.Fatalf("expected Panning, got %T", m.State())
	}
	if len(effects) != 1 {
		t.Fatalf("expected one pan effect, got %v", effects)
	}
	if p := effects[0].(Pan); p.DX != 10 || p.DY != 0 {
		t.Errorf("pan delta = (%v,%v), want (10,0)", p.DX, p.DY)
	}

	// Further movement pans by the incremental delta.
	effects = m.Handle(PointerMove{Screen: geometry.Point{X: 113, Y: 102}})
	if p := effects[0].(Pan); p.DX != 3 || p.DY != 2 {
		t.Errorf("incremental pan delta = (%v,%v), want (3,2)", p.DX, p.DY)
	}

	effects = m.Handle(PointerUp{Screen: geometry.Point{X: 113, Y: 102}})
	if len(effects) != 0 {
		t.Errorf("releasing a pan must not click, got %v", effects)
	}
}

func TestLongPressStartsSelectRect(t *testing.T) {
	s, _ := testDoc(t)
	m := NewMachine(s)

	m.Handle(down(geometry.Point{X: 1, Y: 1}, HitBackground{}))
	m.Handle(LongPress{World: geometry.Point{X: 1, Y: 1}})
	if _, ok := m.State().(SelectRect); !ok {
		t.Fatalf("long-press on background should open SelectRect, got %T", m.State())
	}

	m.Handle(PointerMove{World: geometry.Point{X: 6, Y: 6}})
	effects := m.Handle(PointerUp{World: geometry.Point{X: 6, Y: 6}})
	if len(effects) != 1 {
		t.Fatalf("expected a selection effect, got %v", effects)
	}
	sel, ok := effects[0].(SelectInRect)
	if !ok {
		t.Fatalf("expected SelectInRect, got %T", effects[0])
	}
	if sel.Min != (geometry.Point{X: 1, Y: 1}) || sel.Max != (geometry.Point{X: 6, Y: 6}) {
		t.Errorf("selection bounds = %v..%v", sel.Min, sel.Max)
	}
}

func TestSelectRectNormalizesBounds(t *testing.T) {
	s, _ := testDoc(t)
	m := NewMachine(s)

	m.Handle(down(geometry.Point{X: 6, Y: 6}, HitBackground{}))
	m.Handle(LongPress{World: geometry.Point{X: 6, Y: 6}})
	m.Handle(PointerMove{World: geometry.Point{X: 1, Y: 2}})
	effects := m.Handle(PointerUp{})
	sel := effects[0].(SelectInRect)
	if sel.Min != (geometry.Point{X: 1, Y: 2}) || sel.Max != (geometry.Point{X: 6, Y: 6}) {
		t.Errorf("dragging up-left must still yield min<=max, got %v..%v", sel.Min, sel.Max)
	}
}

func TestDrawingEdgeFlow(t *testing.T) {
	s, _ := testDoc(t)
	m := NewMachine(s)
	m.Handle(SetEdgeEditMode{On: true})

	m.Handle(down(geometry.Point{X: 10, Y: 10}, HitBackground{}))
	st, ok := m.State().(DrawingEdge)
	if !ok {
		t.Fatalf("expected DrawingEdge, got %T", m.State())
	}
	if st.Start != (geometry.Point{X: 10, Y: 10}) {
		t.Errorf("start = %v", st.Start)
	}

	// The opening tap's release passes through without confirming.
	m.Handle(PointerUp{World: geometry.Point{X: 10, Y: 10}})
	if _, ok := m.State().(DrawingEdge); !ok {
		t.Fatalf("release of the opening tap must not confirm, got %T", m.State())
	}

	m.Handle(PointerMove{World: geometry.Point{X: 14, Y: 10}})
	effects := m.Handle(down(geometry.Point{X: 14, Y: 10}, HitBackground{}))
	if len(effects) != 1 {
		t.Fatalf("expected AddStandaloneEdge, got %v", effects)
	}
	add := effects[0].(AddStandaloneEdge)
	if add.P1 != (geometry.Point{X: 10, Y: 10}) || add.P2 != (geometry.Point{X: 14, Y: 10}) {
		t.Errorf("edge = %v -> %v", add.P1, add.P2)
	}
	if _, ok := m.State().(Idle); !ok {
		t.Errorf("expected Idle after confirmation, got %T", m.State())
	}
}

func TestDrawingEdgeConfirmSnapsToVertex(t *testing.T) {
	s, _ := testDoc(t)
	m := NewMachine(s)
	m.Handle(SetEdgeEditMode{On: true})

	m.Handle(down(geometry.Point{X: 10, Y: 10}, HitBackground{}))
	// Confirm near the root's (5,0) vertex: within the snap radius, the
	// endpoint quantizes onto it exactly.
	effects := m.Handle(down(geometry.Point{X: 5.2, Y: 0.2}, HitBackground{}))
	add := effects[0].(AddStandaloneEdge)
	if add.P2 != (geometry.Point{X: 5}) {
		t.Errorf("endpoint should snap to the vertex, got %v", add.P2)
	}
}

func TestDrawingEdgeMinimumLength(t *testing.T) {
	s, _ := testDoc(t)
	m := NewMachine(s)
	m.Handle(SetEdgeEditMode{On: true})

	m.Handle(down(geometry.Point{X: 10, Y: 10}, HitBackground{}))
	effects := m.Handle(down(geometry.Point{X: 10.1, Y: 10}, HitBackground{}))
	if len(effects) != 0 {
		t.Errorf("sub-minimum edge must be discarded silently, got %v", effects)
	}
	if _, ok := m.State().(Idle); !ok {
		t.Errorf("expected Idle, got %T", m.State())
	}
}

func TestEdgeEditOffResetsDrawing(t *testing.T) {
	s, _ := testDoc(t)
	m := NewMachine(s)
	m.Handle(SetEdgeEditMode{On: true})
	m.Handle(down(geometry.Point{X: 10, Y: 10}, HitBackground{}))

	effects := m.Handle(SetEdgeEditMode{On: false})
	if len(effects) != 0 {
		t.Errorf("mode toggle must not emit effects, got %v", effects)
	}
	if _, ok := m.State().(Idle); !ok {
		t.Errorf("toggling edge-edit off must reset DrawingEdge to Idle, got %T", m.State())
	}
}

func TestExtendingEdgeFromVertex(t *testing.T) {
	s, rootID := testDoc(t)
	m := NewMachine(s)
	m.Handle(SetEdgeEditMode{On: true})

	anchor := geometry.Point{X: 5}
	m.Handle(down(anchor, HitTriangleVertex{TriangleID: rootID, Index: 1, Pos: anchor}))
	if _, ok := m.State().(ExtendingEdge); !ok {
		t.Fatalf("expected ExtendingEdge, got %T", m.State())
	}

	effects := m.Handle(down(geometry.Point{X: 9, Y: 0}, HitBackground{}))
	add := effects[0].(AddStandaloneEdge)
	if add.P1 != anchor {
		t.Errorf("extended edge must originate at the anchor, got %v", add.P1)
	}
}

func TestExtendingEdgeDoesNotSnapToAnchor(t *testing.T) {
	s := &sketch.Sketch{}
	edgeID := s.AddEdge(geometry.Point{}, geometry.Point{X: 3})
	m := NewMachine(s)
	m.Handle(SetEdgeEditMode{On: true})

	anchor := geometry.Point{X: 3}
	m.Handle(down(anchor, HitEdgeEndpoint{EdgeID: edgeID, Pos: anchor}))
	// Cursor hovers a hair from the anchor: the anchor is excluded from
	// snapping, the raw position stands, and the edge is below minimum
	// length so nothing is created.
	effects := m.Handle(down(geometry.Point{X: 3.05, Y: 0}, HitBackground{}))
	if len(effects) != 0 {
		t.Errorf("should discard, got %v", effects)
	}
}

func TestPhantomPlacingFlow(t *testing.T) {
	s, rootID := testDoc(t)
	m := NewMachine(s)
	m.Handle(SetTriangleEditMode{On: true})

	rendered := sketch.Recompute(s)
	p1, p2 := rendered[0].EdgePoints(sketch.EdgeRight)
	hit := HitTriangleEdge{TriangleID: rootID, EdgeIndex: sketch.EdgeRight, P1: p1, P2: p2}

	m.Handle(down(geometry.Point{X: 4, Y: 2}, hit))
	if _, ok := m.State().(PhantomPlacing); !ok {
		t.Fatalf("expected PhantomPlacing, got %T", m.State())
	}

	// Confirm to the right of the base edge (away from the parent).
	cursor := geometry.Point{X: 7, Y: 3}
	effects := m.Handle(down(cursor, HitBackground{}))
	if len(effects) != 1 {
		t.Fatalf("expected AttachTriangle, got %v", effects)
	}
	at := effects[0].(AttachTriangle)
	if at.TriangleID != rootID || at.EdgeIndex != sketch.EdgeRight {
		t.Errorf("attach target = %v/%v", at.TriangleID, at.EdgeIndex)
	}
	wantL := geometry.Dist(p1, cursor)
	wantR := geometry.Dist(p2, cursor)
	if math.Abs(at.SideLeft-wantL) > 1e-9 || math.Abs(at.SideRight-wantR) > 1e-9 {
		t.Errorf("sides = (%v,%v), want (%v,%v)", at.SideLeft, at.SideRight, wantL, wantR)
	}
	if at.Flip != !geometry.LeftOfEdge(p1, p2, cursor) {
		t.Error("flip must encode which side of the edge the cursor fell on")
	}
}

func TestPhantomPlacingOccupiedEdge(t *testing.T) {
	s, rootID := testDoc(t)
	s.AttachTriangle(rootID, sketch.EdgeRight, 4, 4, false)
	m := NewMachine(s)
	m.Handle(SetTriangleEditMode{On: true})

	rendered := sketch.Recompute(s)
	p1, p2 := rendered[0].EdgePoints(sketch.EdgeRight)
	m.Handle(down(geometry.Point{X: 4, Y: 2}, HitTriangleEdge{
		TriangleID: rootID, EdgeIndex: sketch.EdgeRight, P1: p1, P2: p2,
	}))
	if _, ok := m.State().(Idle); !ok {
		t.Errorf("occupied edge must refuse PhantomPlacing, got %T", m.State())
	}
}

func TestPhantomPlacingDegenerateCursor(t *testing.T) {
	s, rootID := testDoc(t)
	m := NewMachine(s)
	m.Handle(SetTriangleEditMode{On: true})

	p1 := geometry.Point{}
	p2 := geometry.Point{X: 5}
	m.Handle(down(geometry.Point{X: 2, Y: -1}, HitTriangleEdge{
		TriangleID: rootID, EdgeIndex: sketch.EdgeBase, P1: p1, P2: p2,
	}))
	// Confirming on the base line itself gives collinear side lengths;
	// the construction is invalid and the gesture goes inert.
	effects := m.Handle(down(geometry.Point{X: 2, Y: 0}, HitBackground{}))
	if len(effects) != 0 {
		t.Errorf("degenerate apex must produce no effect, got %v", effects)
	}
	if _, ok := m.State().(Idle); !ok {
		t.Errorf("expected Idle, got %T", m.State())
	}
}

func TestTriangleEditOffResetsPlacing(t *testing.T) {
	s, rootID := testDoc(t)
	m := NewMachine(s)
	m.Handle(SetTriangleEditMode{On: true})

	m.Handle(down(geometry.Point{X: 2, Y: -1}, HitTriangleEdge{
		TriangleID: rootID, EdgeIndex: sketch.EdgeBase,
		P1: geometry.Point{}, P2: geometry.Point{X: 5},
	}))
	m.Handle(SetTriangleEditMode{On: false})
	if _, ok := m.State().(Idle); !ok {
		t.Errorf("toggling triangle-edit off must reset PhantomPlacing, got %T", m.State())
	}
}

func TestVertexReshaping(t *testing.T) {
	s, rootID := testDoc(t)
	m := NewMachine(s)
	m.Handle(SetTriangleEditMode{On: true})

	p1 := geometry.Point{}
	p2 := geometry.Point{X: 5}
	m.Handle(down(geometry.Point{X: 2.5, Y: 1.4}, HitTriangleLabel{TriangleID: rootID, Base1: p1, Base2: p2}))
	if _, ok := m.State().(VertexReshaping); !ok {
		t.Fatalf("expected VertexReshaping, got %T", m.State())
	}

	cursor := geometry.Point{X: 2, Y: 3}
	effects := m.Handle(down(cursor, HitBackground{}))
	rs := effects[0].(ReshapeTriangle)
	if rs.TriangleID != rootID {
		t.Errorf("reshape target = %v", rs.TriangleID)
	}
	if rs.Flip {
		t.Error("cursor above the base should keep the apex on the left (flip=false)")
	}
}

func TestStandaloneEdgePlacing(t *testing.T) {
	s := &sketch.Sketch{}
	edgeID := s.AddEdge(geometry.Point{X: 10}, geometry.Point{X: 14})
	m := NewMachine(s)
	m.Handle(SetTriangleEditMode{On: true})

	e := s.EdgeByID(edgeID)
	m.Handle(down(geometry.Point{X: 12, Y: 0}, HitStandaloneEdge{EdgeID: edgeID, P1: e.P1, P2: e.P2}))
	if _, ok := m.State().(StandaloneEdgePlacing); !ok {
		t.Fatalf("expected StandaloneEdgePlacing, got %T", m.State())
	}

	effects := m.Handle(down(geometry.Point{X: 12, Y: 3}, HitBackground{}))
	pe := effects[0].(PromoteEdge)
	if pe.EdgeID != edgeID {
		t.Errorf("promote target = %v", pe.EdgeID)
	}
}

func TestRootPlacementTwoStep(t *testing.T) {
	s, _ := testDoc(t)
	m := NewMachine(s)

	m.Handle(BeginRootPlacement{SideA: 4, SideB: 3, SideC: 3})
	if _, ok := m.State().(RootPlacingOrigin); !ok {
		t.Fatalf("expected RootPlacingOrigin, got %T", m.State())
	}

	m.Handle(down(geometry.Point{X: 20, Y: 20}, HitBackground{}))
	if _, ok := m.State().(RootPlacingAngle); !ok {
		t.Fatalf("expected RootPlacingAngle, got %T", m.State())
	}

	effects := m.Handle(down(geometry.Point{X: 20, Y: 25}, HitBackground{}))
	pr := effects[0].(PlaceRoot)
	if pr.Origin != (geometry.Point{X: 20, Y: 20}) {
		t.Errorf("origin = %v", pr.Origin)
	}
	if math.Abs(pr.Angle-math.Pi/2) > 1e-9 {
		t.Errorf("angle = %v, want pi/2", pr.Angle)
	}
}

func TestRootPlacementRejectsInvalidSides(t *testing.T) {
	s, _ := testDoc(t)
	m := NewMachine(s)
	m.Handle(BeginRootPlacement{SideA: 10, SideB: 1, SideC: 1})
	if _, ok := m.State().(Idle); !ok {
		t.Errorf("invalid side lengths must not start placement, got %T", m.State())
	}
}

func TestRootPlacementOriginSnaps(t *testing.T) {
	s, _ := testDoc(t)
	m := NewMachine(s)
	m.Handle(BeginRootPlacement{SideA: 4, SideB: 3, SideC: 3})

	// Origin tap lands near the root's (0,0) vertex.
	m.Handle(down(geometry.Point{X: 0.2, Y: 0.1}, HitBackground{}))
	st := m.State().(RootPlacingAngle)
	if st.Origin != (geometry.Point{}) {
		t.Errorf("origin should snap to the existing vertex, got %v", st.Origin)
	}
}

func TestMovingSelectionEpsilon(t *testing.T) {
	s, rootID := testDoc(t)
	m := NewMachine(s)

	m.Handle(BeginMoveSelection{World: geometry.Point{X: 1, Y: 1}, TriangleIDs: []string{rootID}})
	if _, ok := m.State().(MovingSelection); !ok {
		t.Fatalf("expected MovingSelection, got %T", m.State())
	}

	// An accidental tap: the cursor barely moved, so nothing happens.
	effects := m.Handle(down(geometry.Point{X: 1, Y: 1}, HitBackground{}))
	if len(effects) != 0 {
		t.Errorf("sub-epsilon move must be dropped, got %v", effects)
	}
	if _, ok := m.State().(Idle); !ok {
		t.Errorf("expected Idle, got %T", m.State())
	}
}

func TestMovingSelectionConfirm(t *testing.T) {
	s, rootID := testDoc(t)
	m := NewMachine(s)

	m.Handle(BeginMoveSelection{World: geometry.Point{X: 1, Y: 1}, TriangleIDs: []string{rootID}})
	m.Handle(PointerMove{World: geometry.Point{X: 4, Y: 2}})
	effects := m.Handle(down(geometry.Point{X: 4, Y: 2}, HitBackground{}))
	mv := effects[0].(MoveSelection)
	if mv.DX != 3 || mv.DY != 1 {
		t.Errorf("delta = (%v,%v), want (3,1)", mv.DX, mv.DY)
	}
	if len(mv.TriangleIDs) != 1 || mv.TriangleIDs[0] != rootID {
		t.Errorf("ids = %v", mv.TriangleIDs)
	}
}

func TestEscapeCancelsAnyState(t *testing.T) {
	s, rootID := testDoc(t)
	m := NewMachine(s)
	m.Handle(SetTriangleEditMode{On: true})

	m.Handle(down(geometry.Point{X: 2, Y: -1}, HitTriangleEdge{
		TriangleID: rootID, EdgeIndex: sketch.EdgeBase,
		P1: geometry.Point{}, P2: geometry.Point{X: 5},
	}))
	effects := m.Handle(Escape{})
	if len(effects) != 0 {
		t.Errorf("escape must not emit effects, got %v", effects)
	}
	if _, ok := m.State().(Idle); !ok {
		t.Errorf("escape must reset to Idle, got %T", m.State())
	}
}

func TestDoubleTapConfirmsConstruction(t *testing.T) {
	s, _ := testDoc(t)
	m := NewMachine(s)
	m.Handle(SetEdgeEditMode{On: true})

	m.Handle(down(geometry.Point{X: 10, Y: 10}, HitBackground{}))
	effects := m.Handle(DoubleTap{World: geometry.Point{X: 16, Y: 10}, Target: HitBackground{}})
	if len(effects) != 1 {
		t.Fatalf("double-tap should confirm the edge, got %v", effects)
	}
	if _, ok := effects[0].(AddStandaloneEdge); !ok {
		t.Errorf("expected AddStandaloneEdge, got %T", effects[0])
	}
}

func TestDoubleTapStartsEdgeWhenIdle(t *testing.T) {
	s, _ := testDoc(t)
	m := NewMachine(s)
	m.Handle(SetEdgeEditMode{On: true})

	m.Handle(DoubleTap{World: geometry.Point{X: 10, Y: 10}, Target: HitBackground{}})
	if _, ok := m.State().(DrawingEdge); !ok {
		t.Errorf("idle double-tap in edge-edit mode should start a draw, got %T", m.State())
	}
}

func TestPinchZooms(t *testing.T) {
	s, _ := testDoc(t)
	m := NewMachine(s)

	m.Handle(down(geometry.Point{X: 10, Y: 10}, HitBackground{}))
	effects := m.Handle(Pinch{Center: geometry.Point{X: 12, Y: 10}, Scale: 1.5})
	if len(effects) != 1 {
		t.Fatalf("expected a zoom effect, got %v", effects)
	}
	z := effects[0].(Zoom)
	if z.Scale != 1.5 {
		t.Errorf("scale = %v", z.Scale)
	}
	if _, ok := m.State().(Idle); !ok {
		t.Errorf("pinch must cancel a pending pan, got %T", m.State())
	}
}

func TestConstructionOnlyInMatchingMode(t *testing.T) {
	s, rootID := testDoc(t)
	m := NewMachine(s)

	// No modes active: every special target arms a pan instead.
	m.Handle(down(geometry.Point{X: 2, Y: 0}, HitTriangleEdge{
		TriangleID: rootID, EdgeIndex: sketch.EdgeBase,
		P1: geometry.Point{}, P2: geometry.Point{X: 5},
	}))
	if _, ok := m.State().(PanReady); !ok {
		t.Errorf("triangle-edit target without the mode should arm a pan, got %T", m.State())
	}
}
