package editor

import (
	"fmt"
	"image"
)

// Task is the interaction mode that decides how pointer events are read.
type Task int

const (
	TaskSelect Task = iota
	TaskDrawBrush
	TaskPaste
)

func (t Task) String() string {
	switch t {
	case TaskSelect:
		return "select"
	case TaskDrawBrush:
		return "draw-brush"
	case TaskPaste:
		return "paste"
	}
	return fmt.Sprintf("Task(%d)", int(t))
}

// Cursor is the pointer shape shown by the window.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorDraw
	CursorMove
)

func (c Cursor) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorDraw:
		return "draw"
	case CursorMove:
		return "move"
	}
	return fmt.Sprintf("Cursor(%d)", int(c))
}

// Cursor returns the pointer shape that goes with the task.
func (t Task) Cursor() Cursor {
	switch t {
	case TaskSelect:
		return CursorDefault
	case TaskDrawBrush:
		return CursorDraw
	case TaskPaste:
		return CursorMove
	}
	panic(fmt.Sprintf("editor: unhandled task %d", int(t)))
}

// Selection is empty, anchored at one corner, or a complete rectangle.
type Selection struct {
	points [2]image.Point
	n      int
}

// Begin starts a new selection at p, dropping any previous one.
func (s *Selection) Begin(p image.Point) {
	s.points[0] = p
	s.n = 1
}

// End sets the second corner. Without an anchor it does nothing.
func (s *Selection) End(p image.Point) {
	if s.n == 0 {
		return
	}
	s.points[1] = p
	s.n = 2
}

func (s *Selection) Clear() { *s = Selection{} }

func (s Selection) Empty() bool { return s.n == 0 }

// Anchor returns the first corner.
func (s Selection) Anchor() (image.Point, bool) { return s.points[0], s.n >= 1 }

// Complete reports whether both corners are set.
func (s Selection) Complete() bool { return s.n == 2 }

// Rect returns the canonical rectangle spanned by the two corners.
func (s Selection) Rect() image.Rectangle {
	if s.n < 2 {
		return image.Rectangle{}
	}
	return image.Rectangle{Min: s.points[0], Max: s.points[1]}.Canon()
}

// Coords returns the selection as the flat list of 0, 2 or 4 numbers.
func (s Selection) Coords() []int {
	out := make([]int, 0, 4)
	for i := 0; i < s.n; i++ {
		out = append(out, s.points[i].X, s.points[i].Y)
	}
	return out
}

// State is the controller state the handlers read and write.
type State struct {
	Task      Task
	Selection Selection
	Clip      *image.RGBA
	// PasteAt is the top-left corner of the pending paste in image
	// coordinates. Only meaningful in TaskPaste.
	PasteAt image.Point
}
