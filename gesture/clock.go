package gesture

import "time"

// Clock abstracts wall-clock time and timer scheduling so the dispatcher
// can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
	// AfterFunc schedules f after d and returns a handle that can cancel
	// it. Implementations may run f on another goroutine; consumers that
	// need serialization should post back onto their event loop.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the callback was still
	// pending; either way the callback will not run after Stop returns
	// true.
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock returns the real wall clock.
func SystemClock() Clock { return realClock{} }
