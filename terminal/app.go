package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"trisketch/editor"
	"trisketch/export"
	"trisketch/geometry"
	"trisketch/gesture"
	"trisketch/sketch"
)

// pickRadiusCells is the hit-test radius in screen cells; it is divided
// by the camera scale so picking feels the same at every zoom level.
const pickRadiusCells = 2.0

// longPressEvent carries a fired long-press from the timer goroutine
// back onto the tcell event loop, so the machine only ever runs on one
// goroutine.
type longPressEvent struct {
	tcell.EventTime
	x, y float64
}

// prompt is a one-line text input shown in the status bar. Enter commits
// the buffer to the callback, Escape abandons it.
type prompt struct {
	label  string
	buffer []rune
	commit func(string)
}

// App wires the document, interaction machine, gesture dispatcher and
// camera to a tcell screen.
type App struct {
	screen  tcell.Screen
	doc     *sketch.Sketch
	machine *editor.Machine
	disp    *gesture.Dispatcher
	history *editor.History
	camera  *Camera

	rendered     []sketch.Rendered
	selTriangles []string
	selEdges     []string

	filename string
	message  string
	dirty    bool

	mouseX, mouseY float64
	pressed        bool
	pinchScale     float64

	prompt *prompt
	quit   bool
}

// NewApp builds an app over the given document. filename may be empty
// for an unsaved sketch.
func NewApp(screen tcell.Screen, doc *sketch.Sketch, filename string) *App {
	a := &App{
		screen:     screen,
		doc:        doc,
		machine:    editor.NewMachine(doc),
		history:    editor.NewHistory(100),
		camera:     NewCamera(),
		filename:   filename,
		pinchScale: 1,
	}
	a.disp = gesture.NewDispatcher(gesture.SystemClock(), gesture.Callbacks{
		Down: func(id int, dev gesture.Device, x, y float64) {
			a.pinchScale = 1
			a.handleEffects(a.machine.Handle(editor.PointerDown{
				Screen: geometry.Point{X: x, Y: y},
				World:  a.worldAt(x, y),
				Target: a.hitAt(x, y),
			}))
		},
		Up: func(id int, dev gesture.Device, x, y float64) {
			a.handleEffects(a.machine.Handle(editor.PointerUp{
				Screen: geometry.Point{X: x, Y: y},
				World:  a.worldAt(x, y),
			}))
		},
		LongPress: func(x, y float64) {
			// Timer goroutine: post back onto the event loop.
			ev := &longPressEvent{x: x, y: y}
			ev.SetEventNow()
			a.screen.PostEvent(ev)
		},
		Pinch: func(cx, cy, scale float64) {
			a.handleEffects(a.machine.Handle(editor.Pinch{
				Center: geometry.Point{X: cx, Y: cy},
				Scale:  scale,
			}))
		},
		DoubleTap: func(x, y float64) {
			a.handleEffects(a.machine.Handle(editor.DoubleTap{
				Screen: geometry.Point{X: x, Y: y},
				World:  a.worldAt(x, y),
				Target: a.hitAt(x, y),
			}))
		},
	})
	a.rendered = sketch.Recompute(doc)
	a.history.SaveState(doc)
	return a
}

// Run opens a screen, loads the optional sketch file and runs the
// editor until the user quits.
func Run(doc *sketch.Sketch, filename string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault)

	app := NewApp(screen, doc, filename)
	app.loop()
	return nil
}

func (a *App) loop() {
	a.draw()
	for !a.quit {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		switch e := ev.(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			a.handleKey(e)
		case *tcell.EventMouse:
			a.handleMouse(e)
		case *longPressEvent:
			a.handleEffects(a.machine.Handle(editor.LongPress{World: a.worldAt(e.x, e.y)}))
		}
		a.draw()
	}
}

func (a *App) worldAt(sx, sy float64) geometry.Point {
	w, h := a.screen.Size()
	return a.camera.Unproject(sx, sy, w, h)
}

func (a *App) hitAt(sx, sy float64) editor.HitTarget {
	return hitTest(a.rendered, a.doc.Edges, a.worldAt(sx, sy), pickRadiusCells/a.camera.Scale)
}

// commit re-resolves the document and snapshots it for undo.
func (a *App) commit() {
	a.rendered = sketch.Recompute(a.doc)
	a.history.SaveState(a.doc)
	a.dirty = true
}

// handleEffects applies confirmed gesture outcomes to the document and
// viewport.
func (a *App) handleEffects(effects []editor.Effect) {
	w, h := a.screen.Size()
	for _, eff := range effects {
		switch e := eff.(type) {
		case editor.AddStandaloneEdge:
			a.doc.AddEdge(e.P1, e.P2)
			a.commit()
		case editor.AttachTriangle:
			if a.doc.AttachTriangle(e.TriangleID, e.EdgeIndex, e.SideLeft, e.SideRight, e.Flip) != "" {
				a.commit()
			}
		case editor.PromoteEdge:
			if a.doc.PromoteEdge(e.EdgeID, e.SideLeft, e.SideRight, e.Flip) != "" {
				a.commit()
			}
		case editor.ReshapeTriangle:
			if a.doc.Reshape(e.TriangleID, e.SideLeft, e.SideRight, e.Flip) {
				a.commit()
			}
		case editor.PlaceRoot:
			a.doc.PlaceRoot(e.SideA, e.SideB, e.SideC, e.Origin, e.Angle)
			a.commit()
		case editor.MoveSelection:
			a.doc.MoveTriangles(e.TriangleIDs, e.DX, e.DY)
			a.doc.MoveEdges(e.EdgeIDs, e.DX, e.DY)
			a.commit()
		case editor.Pan:
			a.camera.Pan(e.DX, e.DY)
		case editor.Zoom:
			// Pinch scale is cumulative from gesture start; apply the
			// increment since the previous report.
			if a.pinchScale > 0 {
				a.camera.ZoomAt(e.Center.X, e.Center.Y, e.Scale/a.pinchScale, w, h)
			}
			a.pinchScale = e.Scale
		case editor.SelectInRect:
			a.selTriangles = sketch.TrianglesInRect(a.rendered, e.Min, e.Max)
			a.selEdges = a.doc.EdgesInRect(e.Min, e.Max)
		case editor.ClickBackground:
			a.selTriangles = nil
			a.selEdges = nil
		}
	}
}

func (a *App) handleMouse(e *tcell.EventMouse) {
	ix, iy := e.Position()
	x, y := float64(ix), float64(iy)
	a.mouseX, a.mouseY = x, y
	w, h := a.screen.Size()

	switch {
	case e.Buttons()&tcell.WheelUp != 0:
		a.camera.ZoomAt(x, y, 1.15, w, h)
		return
	case e.Buttons()&tcell.WheelDown != 0:
		a.camera.ZoomAt(x, y, 1/1.15, w, h)
		return
	}

	down := e.Buttons()&tcell.Button1 != 0
	switch {
	case down && !a.pressed:
		a.pressed = true
		a.disp.PointerDown(0, gesture.Mouse, x, y)
	case !down && a.pressed:
		a.pressed = false
		a.disp.PointerUp(0, x, y)
	default:
		// The dispatcher only tracks pressed pointers; hover motion still
		// has to reach the machine so construction previews follow the
		// cursor between taps.
		a.disp.PointerMove(0, x, y)
		a.handleEffects(a.machine.Handle(editor.PointerMove{
			Screen: geometry.Point{X: x, Y: y},
			World:  a.worldAt(x, y),
		}))
	}
}

func (a *App) handleKey(e *tcell.EventKey) {
	if a.prompt != nil {
		a.handlePromptKey(e)
		return
	}

	a.message = ""
	w, h := a.screen.Size()

	switch e.Key() {
	case tcell.KeyEscape:
		a.machine.Handle(editor.Escape{})
		a.disp.Reset()
		a.pressed = false
		return
	case tcell.KeyCtrlC:
		a.quit = true
		return
	case tcell.KeyDelete, tcell.KeyBackspace2:
		a.deleteSelection()
		return
	case tcell.KeyUp:
		a.camera.Pan(0, float64(h)/8)
		return
	case tcell.KeyDown:
		a.camera.Pan(0, -float64(h)/8)
		return
	case tcell.KeyLeft:
		a.camera.Pan(float64(w)/8, 0)
		return
	case tcell.KeyRight:
		a.camera.Pan(-float64(w)/8, 0)
		return
	}

	switch e.Rune() {
	case 'q':
		a.quit = true
	case 'e':
		on := !a.machine.EdgeEdit
		a.machine.Handle(editor.SetTriangleEditMode{On: false})
		a.machine.Handle(editor.SetEdgeEditMode{On: on})
	case 't':
		on := !a.machine.TriangleEdit
		a.machine.Handle(editor.SetEdgeEditMode{On: false})
		a.machine.Handle(editor.SetTriangleEditMode{On: on})
	case 'u':
		a.undo()
	case 'U':
		a.redo()
	case 'n':
		a.promptSides("new triangle a,b,c", func(sa, sb, sc float64) {
			a.doc.AddRoot(sa, sb, sc)
			a.commit()
		})
	case 'r':
		a.promptSides("place triangle a,b,c", func(sa, sb, sc float64) {
			a.machine.Handle(editor.BeginRootPlacement{SideA: sa, SideB: sb, SideC: sc})
		})
	case 'm':
		a.handleEffects(a.machine.Handle(editor.BeginMoveSelection{
			World:       a.worldAt(a.mouseX, a.mouseY),
			TriangleIDs: a.selTriangles,
			EdgeIDs:     a.selEdges,
		}))
	case 'x':
		a.deleteSelection()
	case 'l':
		a.promptEdgeLength()
	case 's':
		a.save()
	case 'd':
		a.exportDXF()
	case '+', '=':
		a.camera.ZoomAt(float64(w)/2, float64(h)/2, 1.25, w, h)
	case '-':
		a.camera.ZoomAt(float64(w)/2, float64(h)/2, 1/1.25, w, h)
	}
}

func (a *App) handlePromptKey(e *tcell.EventKey) {
	p := a.prompt
	switch e.Key() {
	case tcell.KeyEscape:
		a.prompt = nil
	case tcell.KeyEnter:
		a.prompt = nil
		p.commit(string(p.buffer))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.buffer) > 0 {
			p.buffer = p.buffer[:len(p.buffer)-1]
		}
	default:
		if r := e.Rune(); r != 0 {
			p.buffer = append(p.buffer, r)
		}
	}
}

// promptSides asks for three comma-separated side lengths and validates
// the triangle inequality before invoking the callback.
func (a *App) promptSides(label string, fn func(sa, sb, sc float64)) {
	a.prompt = &prompt{label: label, commit: func(input string) {
		parts := strings.Split(input, ",")
		if len(parts) != 3 {
			a.message = "expected three lengths: a,b,c"
			return
		}
		var sides [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				a.message = "bad length: " + strings.TrimSpace(p)
				return
			}
			sides[i] = v
		}
		if !geometry.TriangleInequality(sides[0], sides[1], sides[2]) {
			a.message = "sides violate the triangle inequality"
			return
		}
		fn(sides[0], sides[1], sides[2])
	}}
}

// promptEdgeLength rescales the single selected standalone edge.
func (a *App) promptEdgeLength() {
	if len(a.selEdges) != 1 {
		a.message = "select exactly one edge to set its length"
		return
	}
	id := a.selEdges[0]
	a.prompt = &prompt{label: "edge length", commit: func(input string) {
		v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
		if err != nil || v <= 0 {
			a.message = "bad length"
			return
		}
		if a.doc.UpdateEdgeLength(id, v) {
			a.commit()
		}
	}}
}

func (a *App) deleteSelection() {
	removed := false
	for _, id := range a.selTriangles {
		if a.doc.RemoveTriangle(id) {
			removed = true
		}
	}
	for _, id := range a.selEdges {
		if a.doc.RemoveEdge(id) {
			removed = true
		}
	}
	a.selTriangles = nil
	a.selEdges = nil
	if removed {
		a.commit()
	}
}

func (a *App) undo() {
	s, err := a.history.Undo()
	if err != nil {
		a.message = "undo failed: " + err.Error()
		return
	}
	if s == nil {
		a.message = "nothing to undo"
		return
	}
	a.replaceDoc(s)
}

func (a *App) redo() {
	s, err := a.history.Redo()
	if err != nil {
		a.message = "redo failed: " + err.Error()
		return
	}
	if s == nil {
		a.message = "nothing to redo"
		return
	}
	a.replaceDoc(s)
}

// replaceDoc swaps the restored snapshot in place so the machine's Doc
// reference stays valid, then drops any selection ids that no longer
// resolve.
func (a *App) replaceDoc(s *sketch.Sketch) {
	*a.doc = *s
	a.rendered = sketch.Recompute(a.doc)
	a.dirty = true

	var keepT []string
	for _, id := range a.selTriangles {
		if a.doc.TriangleByID(id) != nil {
			keepT = append(keepT, id)
		}
	}
	var keepE []string
	for _, id := range a.selEdges {
		if a.doc.EdgeByID(id) != nil {
			keepE = append(keepE, id)
		}
	}
	a.selTriangles, a.selEdges = keepT, keepE
}

func (a *App) save() {
	if a.filename == "" {
		a.prompt = &prompt{label: "save as", commit: func(input string) {
			input = strings.TrimSpace(input)
			if input == "" {
				return
			}
			a.filename = input
			a.save()
		}}
		return
	}
	if err := export.NewJSONExporter().Export(a.doc, a.filename); err != nil {
		a.message = "save failed: " + err.Error()
		return
	}
	a.dirty = false
	a.message = "saved " + a.filename
}

func (a *App) exportDXF() {
	name := strings.TrimSuffix(a.filename, ".json")
	if name == "" {
		name = "sketch"
	}
	name += ".dxf"
	if err := export.NewDXFExporter().Export(a.doc, name); err != nil {
		a.message = "export failed: " + err.Error()
		return
	}
	a.message = "exported " + name
}
