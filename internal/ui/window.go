package ui

import (
	"image"
	"log"
	"time"

	"github.com/example/retouch/internal/editor"
)

const (
	tabHeight    = 24
	statusHeight = 24
	tabWidth     = 120
	buttonHeight = 20

	messageDuration = 2 * time.Second
)

type page struct {
	label string
	shown image.Image
}

// Window is the tabbed view driven by the editor. It only records state;
// the event loop in App renders it.
type Window struct {
	pages   []page
	current int
	cursor  editor.Cursor

	width, height int
	toolbarWidth  int

	message      string
	messageUntil time.Time

	// repaint asks the event loop for a new frame. Nil until the window is
	// shown.
	repaint func()
}

var _ editor.Window = (*Window)(nil)

// NewWindow returns an empty window of the given size.
func NewWindow(width, height int) *Window {
	return &Window{width: width, height: height, toolbarWidth: 96}
}

func (w *Window) CurrentPage() int {
	if len(w.pages) == 0 {
		return -1
	}
	return w.current
}

// AddPage appends a tab and switches to it.
func (w *Window) AddPage(label string, img image.Image) {
	w.pages = append(w.pages, page{label: label, shown: img})
	w.current = len(w.pages) - 1
	w.invalidate()
}

func (w *Window) RemovePage(i int) {
	if i < 0 || i >= len(w.pages) {
		return
	}
	w.pages = append(w.pages[:i], w.pages[i+1:]...)
	if i < w.current || w.current >= len(w.pages) {
		w.current--
	}
	if w.current < 0 {
		w.current = 0
	}
	w.invalidate()
}

// SelectPage makes page i current.
func (w *Window) SelectPage(i int) {
	if i < 0 || i >= len(w.pages) || i == w.current {
		return
	}
	w.current = i
	w.invalidate()
}

func (w *Window) PageCount() int { return len(w.pages) }

func (w *Window) SetTabLabel(i int, label string) {
	if i < 0 || i >= len(w.pages) {
		return
	}
	w.pages[i].label = label
	w.invalidate()
}

// Allocation is the canvas area below the tabs and beside the toolbar. All
// pages share it. An unsized window has no canvas, so points are already in
// image coordinates.
func (w *Window) Allocation(int) image.Rectangle {
	if w.width == 0 && w.height == 0 {
		return image.Rectangle{}
	}
	return image.Rect(w.toolbarWidth, tabHeight, w.width, w.height-statusHeight)
}

func (w *Window) SetCursor(c editor.Cursor) {
	w.cursor = c
	w.invalidate()
}

func (w *Window) Cursor() editor.Cursor { return w.cursor }

func (w *Window) UpdateImage(img image.Image) {
	if len(w.pages) == 0 {
		return
	}
	w.pages[w.current].shown = img
	w.invalidate()
}

// Shown returns the image displayed on the current page.
func (w *Window) Shown() image.Image {
	if len(w.pages) == 0 {
		return nil
	}
	return w.pages[w.current].shown
}

// Status shows a transient message over the canvas and logs it.
func (w *Window) Status(msg string) {
	log.Print(msg)
	w.message = msg
	w.messageUntil = time.Now().Add(messageDuration)
	w.invalidate()
}

func (w *Window) resize(width, height int) {
	w.width, w.height = width, height
}

func (w *Window) invalidate() {
	if w.repaint != nil {
		w.repaint()
	}
}
