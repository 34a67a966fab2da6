package editor

import (
	"math"

	"trisketch/geometry"
	"trisketch/sketch"
)

const (
	// PanThresholdPx is how far (in screen pixels/cells) a pressed pointer
	// must travel before a press on the background becomes a pan. Below
	// the threshold the release is reinterpreted as a background click.
	PanThresholdPx = 4.0

	// MinEdgeLength is the shortest standalone edge a confirming tap may
	// create; shorter constructions are discarded silently.
	MinEdgeLength = 0.25

	// MoveEpsilon is the smallest world-space delta that counts as an
	// intended move of a selection rather than an accidental tap.
	MoveEpsilon = 0.01
)

// Doc is the read-only view of the document the machine needs: snap
// candidates and edge occupancy. *sketch.Sketch satisfies it.
type Doc interface {
	SnapPoints() []geometry.Point
	EdgeOccupied(triangleID string, edgeIndex int) bool
}

// Machine consumes events and evolves the interaction state. Confirmed
// gestures come back as effects; the machine never touches the document.
type Machine struct {
	state State
	doc   Doc

	// Application edit modes. Edge-edit states are only legal while
	// EdgeEdit is on, triangle-edit states while TriangleEdit is on.
	EdgeEdit     bool
	TriangleEdit bool

	// SnapRadius is the world-space quantization radius applied to every
	// confirming position.
	SnapRadius float64
}

// NewMachine creates a machine in the Idle state over the given document.
func NewMachine(doc Doc) *Machine {
	return &Machine{
		state:      Idle{},
		doc:        doc,
		SnapRadius: sketch.DefaultSnapRadius,
	}
}

// State returns the current interaction state.
func (m *Machine) State() State {
	return m.state
}

// Handle feeds one event through the reducer and stores the new state.
// Mode toggles are applied here; everything else goes through Reduce.
func (m *Machine) Handle(ev Event) []Effect {
	switch e := ev.(type) {
	case SetEdgeEditMode:
		m.EdgeEdit = e.On
		if !e.On && edgeEditState(m.state) {
			m.state = Idle{}
		}
		return nil
	case SetTriangleEditMode:
		m.TriangleEdit = e.On
		if !e.On && triangleEditState(m.state) {
			m.state = Idle{}
		}
		return nil
	}
	next, effects := m.Reduce(m.state, ev)
	m.state = next
	return effects
}

// Reduce computes the successor state and any effects for one event.
// It is a pure function of (state, event) plus the machine's mode flags
// and the read-only document queries.
func (m *Machine) Reduce(state State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case Escape:
		return Idle{}, nil
	case PointerDown:
		return m.reduceDown(state, e)
	case PointerMove:
		return m.reduceMove(state, e)
	case PointerUp:
		return m.reduceUp(state, e)
	case LongPress:
		if st, ok := state.(PanReady); ok {
			// The press never moved past the dead zone (the dispatcher
			// cancels the timer otherwise), so this is a stationary hold
			// on the background.
			_ = st
			return SelectRect{Start: e.World, Current: e.World}, nil
		}
		return state, nil
	case DoubleTap:
		return m.reduceDoubleTap(state, e)
	case Pinch:
		switch state.(type) {
		case PanReady, Panning:
			return Idle{}, []Effect{Zoom{Center: e.Center, Scale: e.Scale}}
		}
		return state, []Effect{Zoom{Center: e.Center, Scale: e.Scale}}
	case BeginMoveSelection:
		if len(e.TriangleIDs) == 0 && len(e.EdgeIDs) == 0 {
			return state, nil
		}
		return MovingSelection{
			Start:       e.World,
			Current:     e.World,
			TriangleIDs: e.TriangleIDs,
			EdgeIDs:     e.EdgeIDs,
		}, nil
	case BeginRootPlacement:
		if !geometry.TriangleInequality(e.SideA, e.SideB, e.SideC) {
			return state, nil
		}
		return RootPlacingOrigin{SideA: e.SideA, SideB: e.SideB, SideC: e.SideC}, nil
	}
	return state, nil
}

func (m *Machine) reduceDown(state State, e PointerDown) (State, []Effect) {
	switch st := state.(type) {
	case Idle, PanReady, Panning:
		return m.beginFromTarget(e)

	case DrawingEdge:
		return m.confirmEdge(st.Start, e.World)
	case ExtendingEdge:
		return m.confirmEdge(st.Start, e.World)

	case PhantomPlacing:
		if m.doc.EdgeOccupied(st.TriangleID, st.EdgeIndex) {
			return Idle{}, nil
		}
		l, r, flip, ok := m.apexFromCursor(st.P1, st.P2, e.World)
		if !ok {
			return Idle{}, nil
		}
		return Idle{}, []Effect{AttachTriangle{
			TriangleID: st.TriangleID,
			EdgeIndex:  st.EdgeIndex,
			SideLeft:   l,
			SideRight:  r,
			Flip:       flip,
		}}

	case VertexReshaping:
		l, r, flip, ok := m.apexFromCursor(st.P1, st.P2, e.World)
		if !ok {
			return Idle{}, nil
		}
		return Idle{}, []Effect{ReshapeTriangle{
			TriangleID: st.TriangleID,
			SideLeft:   l,
			SideRight:  r,
			Flip:       flip,
		}}

	case StandaloneEdgePlacing:
		l, r, flip, ok := m.apexFromCursor(st.P1, st.P2, e.World)
		if !ok {
			return Idle{}, nil
		}
		return Idle{}, []Effect{PromoteEdge{
			EdgeID:    st.EdgeID,
			SideLeft:  l,
			SideRight: r,
			Flip:      flip,
		}}

	case RootPlacingOrigin:
		origin := m.snap(e.World)
		return RootPlacingAngle{
			SideA: st.SideA, SideB: st.SideB, SideC: st.SideC,
			Origin:  origin,
			Current: e.World,
		}, nil

	case RootPlacingAngle:
		cur := m.snap(e.World, st.Origin)
		dx, dy := cur.X-st.Origin.X, cur.Y-st.Origin.Y
		if math.Hypot(dx, dy) < geometry.Tolerance {
			return st, nil
		}
		return Idle{}, []Effect{PlaceRoot{
			SideA: st.SideA, SideB: st.SideB, SideC: st.SideC,
			Origin: st.Origin,
			Angle:  math.Atan2(dy, dx),
		}}

	case MovingSelection:
		dx, dy := st.Current.X-st.Start.X, st.Current.Y-st.Start.Y
		if math.Hypot(dx, dy) <= MoveEpsilon {
			return Idle{}, nil
		}
		return Idle{}, []Effect{MoveSelection{
			TriangleIDs: st.TriangleIDs,
			EdgeIDs:     st.EdgeIDs,
			DX:          dx,
			DY:          dy,
		}}
	}
	return state, nil
}

// beginFromTarget opens the construction state matching the hit target
// and the active edit modes; anything else arms a pan.
func (m *Machine) beginFromTarget(e PointerDown) (State, []Effect) {
	switch t := e.Target.(type) {
	case HitTriangleEdge:
		if m.TriangleEdit {
			if m.doc.EdgeOccupied(t.TriangleID, t.EdgeIndex) {
				return Idle{}, nil
			}
			return PhantomPlacing{
				TriangleID: t.TriangleID,
				EdgeIndex:  t.EdgeIndex,
				P1:         t.P1,
				P2:         t.P2,
				Current:    e.World,
			}, nil
		}
	case HitTriangleLabel:
		if m.TriangleEdit {
			return VertexReshaping{
				TriangleID: t.TriangleID,
				P1:         t.Base1,
				P2:         t.Base2,
				Current:    e.World,
			}, nil
		}
	case HitStandaloneEdge:
		if m.TriangleEdit {
			return StandaloneEdgePlacing{
				EdgeID:  t.EdgeID,
				P1:      t.P1,
				P2:      t.P2,
				Current: e.World,
			}, nil
		}
	case HitTriangleVertex:
		if m.EdgeEdit {
			return ExtendingEdge{AnchorID: t.TriangleID, Start: t.Pos, Current: e.World}, nil
		}
	case HitEdgeEndpoint:
		if m.EdgeEdit {
			return ExtendingEdge{AnchorID: t.EdgeID, Start: t.Pos, Current: e.World}, nil
		}
	case HitBackground:
		if m.EdgeEdit {
			return DrawingEdge{Start: m.snap(e.World), Current: e.World}, nil
		}
	}
	return PanReady{Start: e.Screen, World: e.World}, nil
}

func (m *Machine) reduceMove(state State, e PointerMove) (State, []Effect) {
	switch st := state.(type) {
	case PanReady:
		if geometry.Dist(e.Screen, st.Start) > PanThresholdPx {
			return Panning{Last: e.Screen}, []Effect{Pan{
				DX: e.Screen.X - st.Start.X,
				DY: e.Screen.Y - st.Start.Y,
			}}
		}
		return st, nil
	case Panning:
		eff := []Effect{Pan{DX: e.Screen.X - st.Last.X, DY: e.Screen.Y - st.Last.Y}}
		return Panning{Last: e.Screen}, eff
	case SelectRect:
		st.Current = e.World
		return st, nil
	case DrawingEdge:
		st.Current = e.World
		return st, nil
	case ExtendingEdge:
		st.Current = e.World
		return st, nil
	case PhantomPlacing:
		st.Current = e.World
		return st, nil
	case VertexReshaping:
		st.Current = e.World
		return st, nil
	case StandaloneEdgePlacing:
		st.Current = e.World
		return st, nil
	case RootPlacingOrigin:
		st.Current = e.World
		return st, nil
	case RootPlacingAngle:
		st.Current = e.World
		return st, nil
	case MovingSelection:
		st.Current = e.World
		return st, nil
	}
	return state, nil
}

func (m *Machine) reduceUp(state State, e PointerUp) (State, []Effect) {
	switch st := state.(type) {
	case PanReady:
		// Never moved past the threshold: a plain background click.
		return Idle{}, []Effect{ClickBackground{World: st.World}}
	case Panning:
		return Idle{}, nil
	case SelectRect:
		min := geometry.Point{X: math.Min(st.Start.X, st.Current.X), Y: math.Min(st.Start.Y, st.Current.Y)}
		max := geometry.Point{X: math.Max(st.Start.X, st.Current.X), Y: math.Max(st.Start.Y, st.Current.Y)}
		return Idle{}, []Effect{SelectInRect{Min: min, Max: max}}
	}
	// Tap-driven construction states confirm on the next pointer down;
	// the release of the opening tap passes through.
	return state, nil
}

func (m *Machine) reduceDoubleTap(state State, e DoubleTap) (State, []Effect) {
	switch state.(type) {
	case Idle:
		// No construction active: a double-tap starts a fresh edge draw
		// when edge-edit mode permits it.
		if m.EdgeEdit {
			return DrawingEdge{Start: m.snap(e.World), Current: e.World}, nil
		}
		return state, nil
	case PanReady, Panning, SelectRect:
		return state, nil
	}
	// Construction in progress: a double-tap confirms, same as a tap.
	return m.reduceDown(state, PointerDown{Screen: e.Screen, World: e.World, Target: e.Target})
}

// confirmEdge finishes a DrawingEdge/ExtendingEdge construction: snap the
// cursor (never onto the start anchor), then keep the edge only if it
// clears the minimum length.
func (m *Machine) confirmEdge(start, raw geometry.Point) (State, []Effect) {
	cur := m.snap(raw, start)
	if geometry.Dist(start, cur) <= MinEdgeLength {
		return Idle{}, nil
	}
	return Idle{}, []Effect{AddStandaloneEdge{P1: start, P2: cur}}
}

// apexFromCursor turns a confirming cursor position into the two side
// lengths and flip flag for a base edge p1->p2. ok=false means the
// construction is degenerate and the gesture goes inert.
func (m *Machine) apexFromCursor(p1, p2, raw geometry.Point) (sideLeft, sideRight float64, flip bool, ok bool) {
	cur := m.snap(raw, p1, p2)
	sideLeft = geometry.Dist(p1, cur)
	sideRight = geometry.Dist(p2, cur)
	if sideLeft <= 0 || sideRight <= 0 {
		return 0, 0, false, false
	}
	// Which side of the directed base the cursor fell on decides the
	// mirror solution. Flip=false means the left side.
	flip = !geometry.LeftOfEdge(p1, p2, cur)
	if _, valid := geometry.ThirdVertex(p1, p2, sideLeft, sideRight, !flip); !valid {
		return 0, 0, false, false
	}
	return sideLeft, sideRight, flip, true
}

// snap quantizes a cursor position onto nearby document geometry,
// excluding the anchors of the construction in progress.
func (m *Machine) snap(cursor geometry.Point, excluded ...geometry.Point) geometry.Point {
	if p, ok := sketch.NearestSnapPoint(m.doc.SnapPoints(), cursor, excluded, m.SnapRadius); ok {
		return p
	}
	return cursor
}
