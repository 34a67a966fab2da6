package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"trisketch/editor"
	"trisketch/geometry"
	"trisketch/sketch"
)

var (
	styleDefault   = tcell.StyleDefault
	styleDim       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSelected  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePreview   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleStatusBar = tcell.StyleDefault.Reverse(true)
	stylePrompt    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
)

// styleFromHex builds a foreground style from a "#rrggbb" string,
// falling back to the default style on malformed input.
func styleFromHex(hex string) tcell.Style {
	c, err := colorful.Hex(hex)
	if err != nil {
		return styleDefault
	}
	r, g, b := c.RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

// lineRune picks a box-drawing glyph for a line step. Screen Y grows
// downward, so right-and-down slopes render as '╲'.
func lineRune(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// drawLine rasterizes a segment between two fractional screen positions
// with Bresenham stepping over whole cells.
func drawLine(s tcell.Screen, x1, y1, x2, y2 float64, style tcell.Style) {
	ix1, iy1 := int(math.Round(x1)), int(math.Round(y1))
	ix2, iy2 := int(math.Round(x2)), int(math.Round(y2))

	glyph := lineRune(ix2-ix1, iy2-iy1)

	dx := abs(ix2 - ix1)
	dy := -abs(iy2 - iy1)
	sx, sy := 1, 1
	if ix1 > ix2 {
		sx = -1
	}
	if iy1 > iy2 {
		sy = -1
	}
	err := dx + dy

	x, y := ix1, iy1
	for {
		s.SetContent(x, y, glyph, nil, style)
		if x == ix2 && y == iy2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// drawText writes a string starting at (x, y), honoring wide runes.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// drawMarker puts a single glyph at a fractional screen position.
func drawMarker(s tcell.Screen, x, y float64, glyph rune, style tcell.Style) {
	s.SetContent(int(math.Round(x)), int(math.Round(y)), glyph, nil, style)
}

func formatLength(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// drawTriangle renders one resolved triangle: outline, vertex markers,
// per-edge labels with lengths, and the name/area label at the centroid.
func (a *App) drawTriangle(r *sketch.Rendered, selected bool) {
	w, h := a.screen.Size()
	style := styleFromHex(r.Color)
	if selected {
		style = styleSelected
	}

	for e := 0; e < 3; e++ {
		p1, p2 := r.EdgePoints(e)
		x1, y1 := a.camera.Project(p1, w, h)
		x2, y2 := a.camera.Project(p2, w, h)
		drawLine(a.screen, x1, y1, x2, y2, style)

		label := fmt.Sprintf("%s %s", r.Labels[e], formatLength(geometry.Dist(p1, p2)))
		mx, my := a.camera.Project(geometry.Midpoint(p1, p2), w, h)
		drawText(a.screen, int(math.Round(mx))-len(label)/2, int(math.Round(my)), styleDim, label)
	}

	for v := 0; v < 3; v++ {
		x, y := a.camera.Project(r.Vertices[v], w, h)
		drawMarker(a.screen, x, y, '•', style)
	}

	name := fmt.Sprintf("%s %.2f", r.Name, r.Area)
	cx, cy := a.camera.Project(r.Centroid(), w, h)
	drawText(a.screen, int(math.Round(cx))-len(name)/2, int(math.Round(cy)), style.Bold(true), name)
}

// drawEdge renders one standalone edge with endpoint markers and its
// length at the midpoint.
func (a *App) drawEdge(e *sketch.StandaloneEdge, selected bool) {
	w, h := a.screen.Size()
	style := styleDefault
	if selected {
		style = styleSelected
	}

	x1, y1 := a.camera.Project(e.P1, w, h)
	x2, y2 := a.camera.Project(e.P2, w, h)
	drawLine(a.screen, x1, y1, x2, y2, style)
	drawMarker(a.screen, x1, y1, 'o', style)
	drawMarker(a.screen, x2, y2, 'o', style)

	label := formatLength(e.Length())
	mx, my := a.camera.Project(geometry.Midpoint(e.P1, e.P2), w, h)
	drawText(a.screen, int(math.Round(mx))-len(label)/2, int(math.Round(my)), styleDim, label)
}

// drawOverlay renders the in-progress construction for the current
// machine state: rubber-band lines, phantom apexes, the selection
// rectangle.
func (a *App) drawOverlay() {
	w, h := a.screen.Size()

	rubber := func(from, to geometry.Point) {
		x1, y1 := a.camera.Project(from, w, h)
		x2, y2 := a.camera.Project(to, w, h)
		drawLine(a.screen, x1, y1, x2, y2, stylePreview)
		label := formatLength(geometry.Dist(from, to))
		drawText(a.screen, int(math.Round(x2))+2, int(math.Round(y2)), stylePreview, label)
	}

	apexPreview := func(p1, p2, cur geometry.Point) {
		rubber(p1, cur)
		rubber(p2, cur)
		x, y := a.camera.Project(cur, w, h)
		drawMarker(a.screen, x, y, '◆', stylePreview)
	}

	switch st := a.machine.State().(type) {
	case editor.DrawingEdge:
		rubber(st.Start, st.Current)
	case editor.ExtendingEdge:
		rubber(st.Start, st.Current)
	case editor.PhantomPlacing:
		apexPreview(st.P1, st.P2, st.Current)
	case editor.VertexReshaping:
		apexPreview(st.P1, st.P2, st.Current)
	case editor.StandaloneEdgePlacing:
		apexPreview(st.P1, st.P2, st.Current)
	case editor.RootPlacingOrigin:
		x, y := a.camera.Project(st.Current, w, h)
		drawMarker(a.screen, x, y, '+', stylePreview)
	case editor.RootPlacingAngle:
		rubber(st.Origin, st.Current)
	case editor.SelectRect:
		a.drawSelectRect(st.Start, st.Current)
	case editor.MovingSelection:
		rubber(st.Start, st.Current)
	}
}

func (a *App) drawSelectRect(p1, p2 geometry.Point) {
	w, h := a.screen.Size()
	x1, y1 := a.camera.Project(p1, w, h)
	x2, y2 := a.camera.Project(p2, w, h)
	minX, maxX := int(math.Round(math.Min(x1, x2))), int(math.Round(math.Max(x1, x2)))
	minY, maxY := int(math.Round(math.Min(y1, y2))), int(math.Round(math.Max(y1, y2)))
	for x := minX; x <= maxX; x++ {
		a.screen.SetContent(x, minY, '·', nil, stylePreview)
		a.screen.SetContent(x, maxY, '·', nil, stylePreview)
	}
	for y := minY; y <= maxY; y++ {
		a.screen.SetContent(minX, y, '·', nil, stylePreview)
		a.screen.SetContent(maxX, y, '·', nil, stylePreview)
	}
}

// drawStatusBar renders the bottom line: machine state, edit modes,
// selection and history counters, then the transient message. A live
// prompt replaces all of it.
func (a *App) drawStatusBar() {
	w, h := a.screen.Size()
	y := h - 1
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, y, ' ', nil, styleStatusBar)
	}

	if a.prompt != nil {
		drawText(a.screen, 0, y, stylePrompt, a.prompt.label+": "+string(a.prompt.buffer)+"_")
		return
	}

	mode := "view"
	if a.machine.EdgeEdit {
		mode = "edge"
	} else if a.machine.TriangleEdit {
		mode = "triangle"
	}
	cur, total := a.history.Stats()
	name := a.filename
	if name == "" {
		name = "(unsaved)"
	}
	dirty := ""
	if a.dirty {
		dirty = "*"
	}
	left := fmt.Sprintf(" %s%s | %s | %s | sel %d | undo %d/%d",
		name, dirty, a.machine.State().Name(), mode,
		len(a.selTriangles)+len(a.selEdges), cur, total)
	drawText(a.screen, 0, y, styleStatusBar, left)

	if a.message != "" {
		drawText(a.screen, w-len(a.message)-1, y, styleStatusBar, a.message)
	}
}

// draw repaints the whole screen.
func (a *App) draw() {
	a.screen.Clear()

	selT := make(map[string]bool, len(a.selTriangles))
	for _, id := range a.selTriangles {
		selT[id] = true
	}
	selE := make(map[string]bool, len(a.selEdges))
	for _, id := range a.selEdges {
		selE[id] = true
	}

	for i := range a.doc.Edges {
		a.drawEdge(&a.doc.Edges[i], selE[a.doc.Edges[i].ID])
	}
	for i := range a.rendered {
		a.drawTriangle(&a.rendered[i], selT[a.rendered[i].ID])
	}

	a.drawOverlay()
	a.drawStatusBar()
	a.screen.Show()
}
