// Package gesture translates raw pointer events into device-agnostic
// down/move/up, long-press, pinch and double-tap callbacks. It owns the
// long-press timer outright: every disqualifying transition cancels it at
// a single point, so a stale timer can never fire against a state that has
// already moved on.
package gesture

import (
	"math"
	"time"
)

// Device identifies the source of a pointer.
type Device int

const (
	Mouse Device = iota
	Touch
	Pen
)

// Tunables. Pixel thresholds are in screen units.
const (
	LongPressDuration   = 500 * time.Millisecond
	LongPressMovePx     = 8.0 // movement past this cancels the long press
	DoubleTapMaxDelay   = 300 * time.Millisecond
	DoubleTapMaxDistPx  = 12.0
)

// Callbacks receive the interpreted gestures. Nil entries are skipped.
// LongPress may be invoked from a timer goroutine; wrap it to post onto
// your event loop if you need serialization.
type Callbacks struct {
	Down      func(id int, dev Device, x, y float64)
	Move      func(id int, dev Device, x, y float64)
	Up        func(id int, dev Device, x, y float64)
	LongPress func(x, y float64)
	Pinch     func(centerX, centerY, scale float64)
	DoubleTap func(x, y float64)
}

type pointer struct {
	dev            Device
	startX, startY float64
	x, y           float64
	downAt         time.Time
}

// Dispatcher tracks active pointers and recognizes gestures. Not
// goroutine-safe; feed it from a single event loop.
type Dispatcher struct {
	clock Clock
	cb    Callbacks

	pointers map[int]*pointer

	longPress Timer // pending long-press, nil when none

	pinchActive bool
	pinchStart  float64 // two-pointer distance at pinch start

	lastTapAt   time.Time
	lastTapX    float64
	lastTapY    float64
	haveLastTap bool
}

// NewDispatcher creates a dispatcher delivering to cb on the given clock.
func NewDispatcher(clock Clock, cb Callbacks) *Dispatcher {
	if clock == nil {
		clock = SystemClock()
	}
	return &Dispatcher{
		clock:    clock,
		cb:       cb,
		pointers: make(map[int]*pointer),
	}
}

// PointerDown registers a pointer press.
func (d *Dispatcher) PointerDown(id int, dev Device, x, y float64) {
	now := d.clock.Now()
	d.pointers[id] = &pointer{dev: dev, startX: x, startY: y, x: x, y: y, downAt: now}

	switch len(d.pointers) {
	case 1:
		// Double-tap first: the second tap of a pair suppresses the
		// ordinary down so consumers see exactly one gesture.
		if d.haveLastTap &&
			now.Sub(d.lastTapAt) <= DoubleTapMaxDelay &&
			math.Hypot(x-d.lastTapX, y-d.lastTapY) <= DoubleTapMaxDistPx {
			d.haveLastTap = false
			if d.cb.DoubleTap != nil {
				d.cb.DoubleTap(x, y)
			}
			return
		}
		d.lastTapAt = now
		d.lastTapX, d.lastTapY = x, y
		d.haveLastTap = true

		d.armLongPress(x, y)
		if d.cb.Down != nil {
			d.cb.Down(id, dev, x, y)
		}
	case 2:
		// A second simultaneous pointer disqualifies the long press and
		// starts pinch tracking.
		d.cancelLongPress()
		d.haveLastTap = false
		d.pinchActive = true
		d.pinchStart = d.twoPointerDistance()
	default:
		// Three or more pointers: nothing useful to recognize.
	}
}

// PointerMove updates a pointer's position.
func (d *Dispatcher) PointerMove(id int, x, y float64) {
	p, ok := d.pointers[id]
	if !ok {
		return
	}
	p.x, p.y = x, y

	if d.pinchActive && len(d.pointers) >= 2 {
		if d.pinchStart > 0 && d.cb.Pinch != nil {
			cx, cy := d.twoPointerCentroid()
			d.cb.Pinch(cx, cy, d.twoPointerDistance()/d.pinchStart)
		}
		return
	}

	if math.Hypot(x-p.startX, y-p.startY) > LongPressMovePx {
		d.cancelLongPress()
	}
	if d.cb.Move != nil {
		d.cb.Move(id, p.dev, x, y)
	}
}

// PointerUp releases a pointer.
func (d *Dispatcher) PointerUp(id int, x, y float64) {
	p, ok := d.pointers[id]
	if !ok {
		return
	}
	d.cancelLongPress()
	delete(d.pointers, id)

	if d.pinchActive {
		if len(d.pointers) < 2 {
			d.pinchActive = false
			d.pinchStart = 0
		}
		return
	}
	if d.cb.Up != nil {
		d.cb.Up(id, p.dev, x, y)
	}
}

// PointerCancel handles cancel/leave: treated as an up for mice, ignored
// for touch so finger jitter leaving the hit area does not end a gesture.
func (d *Dispatcher) PointerCancel(id int) {
	p, ok := d.pointers[id]
	if !ok {
		return
	}
	if p.dev == Touch {
		return
	}
	d.PointerUp(id, p.x, p.y)
}

// Reset drops all tracked pointers and pending gestures. Call when the
// consumer's state machine is forcibly reset.
func (d *Dispatcher) Reset() {
	d.cancelLongPress()
	d.pointers = make(map[int]*pointer)
	d.pinchActive = false
	d.pinchStart = 0
	d.haveLastTap = false
}

func (d *Dispatcher) armLongPress(x, y float64) {
	d.cancelLongPress()
	d.longPress = d.clock.AfterFunc(LongPressDuration, func() {
		if d.cb.LongPress != nil {
			d.cb.LongPress(x, y)
		}
	})
}

// cancelLongPress is the single cancellation point for the pending
// long-press timer.
func (d *Dispatcher) cancelLongPress() {
	if d.longPress != nil {
		d.longPress.Stop()
		d.longPress = nil
	}
}

func (d *Dispatcher) twoPointerDistance() float64 {
	pts := d.firstTwo()
	if pts[0] == nil || pts[1] == nil {
		return 0
	}
	return math.Hypot(pts[1].x-pts[0].x, pts[1].y-pts[0].y)
}

func (d *Dispatcher) twoPointerCentroid() (float64, float64) {
	pts := d.firstTwo()
	if pts[0] == nil || pts[1] == nil {
		return 0, 0
	}
	return (pts[0].x + pts[1].x) / 2, (pts[0].y + pts[1].y) / 2
}

func (d *Dispatcher) firstTwo() [2]*pointer {
	var out [2]*pointer
	i := 0
	for _, p := range d.pointers {
		if i < 2 {
			out[i] = p
			i++
		}
	}
	return out
}
