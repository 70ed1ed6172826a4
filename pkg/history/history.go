// Package history implements a bounded, linear undo/redo timeline of image
// snapshots.
//
// The top of the undo stack is the state currently on screen; there is no
// separate cursor. Undo therefore needs at least two entries: the first entry
// is the initially loaded image and has nothing earlier to revert to.
//
// When a push overflows MaxDepth the oldest entry is evicted, so states older
// than MaxDepth edits can no longer be reached by undo. Any push clears the
// redo stack.
//
// Every snapshot stored or returned is an independent copy.
package history

import "github.com/Fepozopo/snapedit/pkg/stdimg"

// DefaultMaxDepth bounds the undo stack when no depth is configured.
const DefaultMaxDepth = 20

// History holds the undo and redo stacks.
type History struct {
	undo     []stdimg.Buffer
	redo     []stdimg.Buffer
	maxDepth int
}

// New returns an empty history. maxDepth < 1 uses DefaultMaxDepth.
func New(maxDepth int) *History {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	return &History{maxDepth: maxDepth}
}

// MaxDepth is the undo stack capacity.
func (h *History) MaxDepth() int { return h.maxDepth }

// Push records img as the newest state. Empty buffers are ignored.
func (h *History) Push(img stdimg.Buffer) {
	if img.Empty() {
		return
	}
	h.undo = append(h.undo, img.Clone())
	if len(h.undo) > h.maxDepth {
		// drop the reference so the evicted pixels can be collected
		h.undo[0] = stdimg.Buffer{}
		h.undo = h.undo[1:]
	}
	h.redo = nil
}

// Undo moves the current state onto the redo stack and returns a copy of the
// previous state. It returns false, without changing anything, when fewer
// than two states are recorded.
func (h *History) Undo() (stdimg.Buffer, bool) {
	if len(h.undo) < 2 {
		return stdimg.Buffer{}, false
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, top)
	return h.undo[len(h.undo)-1].Clone(), true
}

// Redo replays the most recently undone state and returns a copy of it.
func (h *History) Redo() (stdimg.Buffer, bool) {
	if len(h.redo) == 0 {
		return stdimg.Buffer{}, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, next.Clone())
	return next.Clone(), true
}

// Reset clears both stacks.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return len(h.undo) >= 2 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Size returns the number of undo and redo entries.
func (h *History) Size() (undo, redo int) { return len(h.undo), len(h.redo) }

// Current returns a copy of the newest undo entry.
func (h *History) Current() (stdimg.Buffer, bool) {
	if len(h.undo) == 0 {
		return stdimg.Buffer{}, false
	}
	return h.undo[len(h.undo)-1].Clone(), true
}

// Bytes is the total pixel memory held by both stacks.
func (h *History) Bytes() int {
	n := 0
	for _, b := range h.undo {
		n += b.Size()
	}
	for _, b := range h.redo {
		n += b.Size()
	}
	return n
}
