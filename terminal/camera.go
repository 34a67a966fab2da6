// Package terminal is the interactive tcell frontend: it owns the
// viewport, rasterizes the resolved sketch into character cells, feeds
// pointer input through the gesture dispatcher into the editor machine,
// and applies the effects that come back.
package terminal

import "trisketch/geometry"

// cellAspect compensates for terminal cells being roughly twice as tall
// as they are wide: one world unit spans Scale columns but only
// Scale*cellAspect rows, so triangles keep their proportions on screen.
const cellAspect = 0.5

// Scale limits in columns per world unit.
const (
	minScale = 0.25
	maxScale = 200.0
)

// Camera maps the Y-up world plane onto Y-down screen cells. Center is
// the world point rendered at the middle of the viewport; Scale is the
// number of columns covering one world unit.
type Camera struct {
	Center geometry.Point
	Scale  float64
}

// NewCamera returns a camera centered on the origin at a scale where a
// typical room-sized sketch fits a standard terminal.
func NewCamera() *Camera {
	return &Camera{Scale: 6}
}

// Project converts a world point to fractional screen coordinates for a
// viewport of w columns by h rows.
func (c *Camera) Project(p geometry.Point, w, h int) (float64, float64) {
	sx := (p.X-c.Center.X)*c.Scale + float64(w)/2
	sy := float64(h)/2 - (p.Y-c.Center.Y)*c.Scale*cellAspect
	return sx, sy
}

// Unproject converts screen coordinates back to a world point.
func (c *Camera) Unproject(sx, sy float64, w, h int) geometry.Point {
	return geometry.Point{
		X: (sx-float64(w)/2)/c.Scale + c.Center.X,
		Y: (float64(h)/2-sy)/(c.Scale*cellAspect) + c.Center.Y,
	}
}

// Pan shifts the viewport by a screen-space delta so the content tracks
// the pointer.
func (c *Camera) Pan(dxCells, dyCells float64) {
	c.Center.X -= dxCells / c.Scale
	c.Center.Y += dyCells / (c.Scale * cellAspect)
}

// ZoomAt multiplies the scale by factor while keeping the world point
// under the given screen position fixed.
func (c *Camera) ZoomAt(sx, sy, factor float64, w, h int) {
	if factor <= 0 {
		return
	}
	anchor := c.Unproject(sx, sy, w, h)
	c.Scale *= factor
	if c.Scale < minScale {
		c.Scale = minScale
	} else if c.Scale > maxScale {
		c.Scale = maxScale
	}
	c.Center.X = anchor.X - (sx-float64(w)/2)/c.Scale
	c.Center.Y = anchor.Y - (float64(h)/2-sy)/(c.Scale*cellAspect)
}
