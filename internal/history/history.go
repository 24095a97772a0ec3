// Package history implements a fixed-capacity, linear undo history.
//
// Entries live in a ring buffer ordered from oldest to newest. A cursor marks
// the current entry; pushing after an undo discards everything newer than the
// cursor, and pushing into a full history evicts the oldest entry.
package history

// DefaultCapacity is the number of states kept per image unless configured
// otherwise.
const DefaultCapacity = 10

// History is a bounded list of states with a cursor. The zero value is not
// usable; create one with New.
type History[T any] struct {
	buf    []T
	start  int
	n      int
	cursor int
}

// New creates an empty history holding at most capacity entries. Capacities
// below one are raised to one.
func New[T any](capacity int) *History[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &History[T]{buf: make([]T, capacity), cursor: -1}
}

// Cap returns the maximum number of entries.
func (h *History[T]) Cap() int { return len(h.buf) }

// Len returns the number of stored entries.
func (h *History[T]) Len() int { return h.n }

// Cursor returns the index of the current entry, or -1 when empty.
func (h *History[T]) Cursor() int { return h.cursor }

func (h *History[T]) slot(i int) int { return (h.start + i) % len(h.buf) }

// At returns the entry at logical index i, where 0 is the oldest entry.
func (h *History[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= h.n {
		return zero, false
	}
	return h.buf[h.slot(i)], true
}

// Current returns the entry under the cursor.
func (h *History[T]) Current() (T, bool) {
	return h.At(h.cursor)
}

// Push makes v the current entry. Entries after the cursor are forgotten and
// the oldest entry is evicted when the history is full. It reports whether an
// eviction happened.
func (h *History[T]) Push(v T) (evicted bool) {
	h.forget()
	if h.n == len(h.buf) {
		var zero T
		h.buf[h.start] = zero
		h.start = (h.start + 1) % len(h.buf)
		h.n--
		evicted = true
	}
	h.buf[h.slot(h.n)] = v
	h.n++
	h.cursor = h.n - 1
	return evicted
}

// forget drops every entry newer than the cursor.
func (h *History[T]) forget() {
	var zero T
	for i := h.cursor + 1; i < h.n; i++ {
		h.buf[h.slot(i)] = zero
	}
	h.n = h.cursor + 1
}

// Undo moves the cursor one step back. It needs at least two entries and a
// cursor past the oldest one.
func (h *History[T]) Undo() bool {
	if h.n < 2 || h.cursor < 1 {
		return false
	}
	h.cursor--
	return true
}

// Redo moves the cursor one step forward if a newer entry exists.
func (h *History[T]) Redo() bool {
	if h.n < 2 || h.cursor+1 >= h.n {
		return false
	}
	h.cursor++
	return true
}

// CanUndo reports whether Undo would move the cursor.
func (h *History[T]) CanUndo() bool { return h.n >= 2 && h.cursor >= 1 }

// CanRedo reports whether Redo would move the cursor.
func (h *History[T]) CanRedo() bool { return h.n >= 2 && h.cursor+1 < h.n }

// Entries returns the stored entries from oldest to newest.
func (h *History[T]) Entries() []T {
	out := make([]T, h.n)
	for i := range out {
		out[i] = h.buf[h.slot(i)]
	}
	return out
}

// Reset drops all entries.
func (h *History[T]) Reset() {
	clear(h.buf)
	h.start = 0
	h.n = 0
	h.cursor = -1
}
