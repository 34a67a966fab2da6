package editor

import (
	"encoding/json"

	"trisketch/sketch"
)

// History manages undo/redo over sketch snapshots using a simple slice of
// JSON states. Documents are small (tens of definitions), so snapshotting
// the whole thing per edit is cheaper than being clever.
type History struct {
	states  []string // JSON states
	current int      // Current position in history
	max     int      // Maximum number of states to keep
}

// NewHistory creates a history manager keeping at most max states.
func NewHistory(max int) *History {
	if max <= 0 {
		max = 50
	}
	return &History{
		states:  make([]string, 0, max),
		current: -1,
		max:     max,
	}
}

// SaveState records a new state, truncating any redo tail.
func (h *History) SaveState(s *sketch.Sketch) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	if h.current < len(h.states)-1 {
		h.states = h.states[:h.current+1]
	}

	h.states = append(h.states, string(data))

	if len(h.states) > h.max {
		h.states = h.states[1:]
	} else {
		h.current++
	}

	return nil
}

// CanUndo returns true if an earlier state exists.
func (h *History) CanUndo() bool {
	return h.current > 0
}

// CanRedo returns true if a later state exists.
func (h *History) CanRedo() bool {
	return h.current < len(h.states)-1
}

// Undo steps back one state. Returns nil when there is nothing to undo.
func (h *History) Undo() (*sketch.Sketch, error) {
	if !h.CanUndo() {
		return nil, nil
	}

	h.current--

	var s sketch.Sketch
	if err := json.Unmarshal([]byte(h.states[h.current]), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Redo steps forward one state. Returns nil when there is nothing to redo.
func (h *History) Redo() (*sketch.Sketch, error) {
	if !h.CanRedo() {
		return nil, nil
	}

	h.current++

	var s sketch.Sketch
	if err := json.Unmarshal([]byte(h.states[h.current]), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Clear drops all history.
func (h *History) Clear() {
	h.states = h.states[:0]
	h.current = -1
}

// Stats returns the current position and total number of states.
func (h *History) Stats() (current, total int) {
	return h.current + 1, len(h.states)
}
