package editor

import (
	"image"
	"image/color"
	"log"

	"github.com/example/retouch/internal/document"
	"github.com/example/retouch/internal/paint"
)

var (
	marqueeDark  = color.RGBA{0, 0, 0, 255}
	marqueeLight = color.RGBA{255, 255, 255, 255}
)

// Select switches to the selection tool. A pending paste is committed first.
func (e *Editor) Select() {
	if d, _ := e.current(); d == nil {
		return
	}
	if e.state.Task == TaskPaste {
		e.CommitPaste()
		return
	}
	e.setTask(TaskSelect)
}

// Draw switches to the freehand brush. A pending paste is committed first.
func (e *Editor) Draw() {
	if d, _ := e.current(); d == nil {
		return
	}
	if e.state.Task == TaskPaste {
		e.CommitPaste()
	}
	e.setTask(TaskDrawBrush)
}

// Paste places the clipboard at the top-left corner of the visible document
// and enters paste mode. The composite is only a preview until CommitPaste.
// With an empty clipboard the system clipboard is tried.
func (e *Editor) Paste() {
	d, _ := e.current()
	if d == nil {
		return
	}
	if e.state.Clip == nil && e.sysClip != nil {
		img, err := e.sysClip.ReadImage()
		if err != nil {
			log.Printf("paste: read system clipboard: %v", err)
		} else if img != nil {
			e.state.Clip = paint.Clone(img)
		}
	}
	if e.state.Clip == nil {
		return
	}
	e.setTask(TaskPaste)
	e.pasteAt(d, image.Point{})
}

func (e *Editor) pasteAt(d *document.Document, at image.Point) {
	e.state.PasteAt = at
	img := paint.Clone(d.Current())
	paint.Paste(img, e.state.Clip, at)
	e.setScratch(d, img)
}

// CommitPaste commits the pasted preview and returns to select mode.
func (e *Editor) CommitPaste() {
	d, _ := e.current()
	if d == nil || e.state.Task != TaskPaste {
		return
	}
	s := d.Scratch()
	d.SetScratch(nil)
	e.setTask(TaskSelect)
	if s != nil {
		e.DoChange(s)
	}
}

// CancelPaste drops the pasted preview and returns to select mode.
func (e *Editor) CancelPaste() {
	d, _ := e.current()
	if d == nil || e.state.Task != TaskPaste {
		return
	}
	d.SetScratch(nil)
	e.win.UpdateImage(d.Current())
	e.setTask(TaskSelect)
}

// Copy crops the visible document to the selection and stores it as the
// clipboard. Area outside the image comes out transparent.
func (e *Editor) Copy() {
	d, _ := e.current()
	if d == nil {
		return
	}
	r := e.state.Selection.Rect()
	if !e.state.Selection.Complete() || r.Empty() {
		return
	}
	e.state.Clip = paint.Crop(d.Current(), r)
	if e.sysClip != nil {
		if err := e.sysClip.WriteImage(e.state.Clip); err != nil {
			log.Printf("copy: write system clipboard: %v", err)
		}
	}
	if e.onCopy != nil {
		e.onCopy(e.state.Clip)
	}
}

// Cut copies the selection and fills it with the fill colour.
func (e *Editor) Cut() {
	d, _ := e.current()
	if d == nil {
		return
	}
	r := e.state.Selection.Rect()
	if !e.state.Selection.Complete() || r.Empty() {
		return
	}
	e.Copy()
	img := paint.Clone(d.Current())
	paint.Fill(img, r, e.fill)
	e.DoChange(img)
}

func (e *Editor) toImage(d *document.Document, page int, p image.Point) image.Point {
	return paint.ToImage(d.Current().Bounds().Size(), e.win.Allocation(page), p)
}

// Press handles a button press at window point p.
func (e *Editor) Press(p image.Point) {
	d, page := e.current()
	if d == nil {
		return
	}
	switch e.state.Task {
	case TaskSelect:
		e.state.Selection.Begin(e.toImage(d, page, p))
		e.win.UpdateImage(d.Current())
	case TaskDrawBrush:
		e.stroking = false
		e.Move(p)
	case TaskPaste:
		if e.state.Clip != nil {
			e.Move(p)
		}
	}
}

// Move handles pointer motion at window point p.
func (e *Editor) Move(p image.Point) {
	d, page := e.current()
	if d == nil {
		return
	}
	pt := e.toImage(d, page, p)
	switch e.state.Task {
	case TaskSelect:
		anchor, ok := e.state.Selection.Anchor()
		if !ok || e.state.Selection.Complete() {
			return
		}
		img := paint.Clone(d.ScratchOrCurrent())
		paint.DrawMarquee(img, image.Rectangle{Min: anchor, Max: pt}.Canon(), marqueeDark, marqueeLight)
		e.win.UpdateImage(img)
	case TaskDrawBrush:
		img := paint.Clone(d.ScratchOrCurrent())
		if e.stroking {
			paint.DrawStroke(img, e.strokeLast, pt, e.brushSize, e.brushColor)
		} else {
			paint.DrawPoint(img, pt, e.brushSize, e.brushColor)
		}
		e.stroking = true
		e.strokeLast = pt
		e.setScratch(d, img)
	case TaskPaste:
		if e.state.Clip == nil {
			return
		}
		e.pasteAt(d, paint.CenterOn(e.state.Clip.Bounds().Size(), pt))
	}
}

// Release handles a button release at window point p.
func (e *Editor) Release(p image.Point) {
	d, page := e.current()
	if d == nil {
		return
	}
	switch e.state.Task {
	case TaskSelect:
		e.state.Selection.End(e.toImage(d, page, p))
	case TaskDrawBrush:
		e.stroking = false
		s := d.Scratch()
		if s == nil {
			return
		}
		d.SetScratch(nil)
		e.DoChange(s)
	case TaskPaste:
	}
}
