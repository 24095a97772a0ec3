// Package editor is the controller between the window and the image
// documents. Every method runs on the window's event goroutine.
package editor

import (
	"fmt"
	"image"
	"image/color"

	"github.com/example/retouch/internal/document"
	"github.com/example/retouch/internal/filters"
	"github.com/example/retouch/internal/history"
	"github.com/example/retouch/internal/imageio"
	"github.com/example/retouch/internal/paint"
)

// DefaultHistoryLimit is the number of states kept per document.
const DefaultHistoryLimit = history.DefaultCapacity

// PropertiesTitle is the title of the properties dialog.
const PropertiesTitle = "Image properties"

// Window is the tabbed view the editor drives. Pages are indexed in the
// order they were added, matching the editor's documents.
type Window interface {
	CurrentPage() int
	AddPage(label string, img image.Image)
	RemovePage(page int)
	SetTabLabel(page int, label string)
	// Allocation is the on-screen area of a page's canvas.
	Allocation(page int) image.Rectangle
	SetCursor(c Cursor)
	// UpdateImage redisplays the current page with img.
	UpdateImage(img image.Image)
}

// FileMode selects between the open and save file dialogs.
type FileMode int

const (
	FileOpen FileMode = iota
	FileSave
)

// Dialogs are the modal prompts. A false return means the user declined.
type Dialogs interface {
	FileDialog(mode FileMode) (string, bool)
	ParamsDialog(title string, limits []filters.Limit) ([]float64, bool)
	InfoDialog(title string, info []document.Property)
}

// SystemClipboard mirrors copied regions to the desktop clipboard.
type SystemClipboard interface {
	WriteImage(img image.Image) error
	ReadImage() (image.Image, error)
}

// Editor holds the open documents and the interaction state.
type Editor struct {
	win   Window
	dlg   Dialogs
	reg   *filters.Registry
	docs  []*document.Document
	state State

	limit      int
	fill       color.RGBA
	brushColor color.RGBA
	brushSize  int
	saveOpts   imageio.Options
	sysClip    SystemClipboard
	onSave     func(path string)
	onCopy     func(img image.Image)

	stroking   bool
	strokeLast image.Point
	untitled   int
}

// Option modifies an Editor during creation.
type Option func(*Editor)

// WithHistoryLimit sets how many states each document keeps.
func WithHistoryLimit(n int) Option { return func(e *Editor) { e.limit = n } }

// WithFill sets the colour left behind by Cut.
func WithFill(c color.RGBA) Option { return func(e *Editor) { e.fill = c } }

// WithBrush sets the brush diameter and colour.
func WithBrush(size int, c color.RGBA) Option {
	return func(e *Editor) {
		e.brushSize = size
		e.brushColor = c
	}
}

// WithSaveOptions sets the encoder options used by Save and SaveAs.
func WithSaveOptions(o imageio.Options) Option { return func(e *Editor) { e.saveOpts = o } }

// WithSystemClipboard mirrors Copy and Cut to c and lets Paste import from it.
func WithSystemClipboard(c SystemClipboard) Option { return func(e *Editor) { e.sysClip = c } }

// WithSaveListener is called with the path after every successful save.
func WithSaveListener(fn func(path string)) Option { return func(e *Editor) { e.onSave = fn } }

// WithCopyListener is called with the clipboard buffer after Copy or Cut.
func WithCopyListener(fn func(img image.Image)) Option { return func(e *Editor) { e.onCopy = fn } }

// New creates an editor in select mode with no documents.
func New(win Window, dlg Dialogs, reg *filters.Registry, opts ...Option) *Editor {
	e := &Editor{
		win:        win,
		dlg:        dlg,
		reg:        reg,
		limit:      DefaultHistoryLimit,
		fill:       color.RGBA{255, 255, 255, 255},
		brushColor: color.RGBA{0, 0, 0, 255},
		brushSize:  4,
	}
	for _, o := range opts {
		o(e)
	}
	if e.reg == nil {
		e.reg = filters.Default()
	}
	return e
}

// SetWindow replaces the window the editor drives.
func (e *Editor) SetWindow(win Window) { e.win = win }

// SetDialogs replaces the dialog provider.
func (e *Editor) SetDialogs(dlg Dialogs) { e.dlg = dlg }

// State returns a copy of the interaction state.
func (e *Editor) State() State { return e.state }

// Task returns the active tool.
func (e *Editor) Task() Task { return e.state.Task }

// Selection returns the selection in image coordinates.
func (e *Editor) Selection() Selection { return e.state.Selection }

// Clipboard returns the internal clipboard buffer, or nil.
func (e *Editor) Clipboard() *image.RGBA { return e.state.Clip }

// Documents returns the open documents in tab order.
func (e *Editor) Documents() []*document.Document { return e.docs }

// Registry returns the filter registry in use.
func (e *Editor) Registry() *filters.Registry { return e.reg }

// current returns the document on the visible page, or nil when nothing is
// open.
func (e *Editor) current() (*document.Document, int) {
	if len(e.docs) == 0 || e.win == nil {
		return nil, -1
	}
	page := e.win.CurrentPage()
	if page < 0 || page >= len(e.docs) {
		return nil, -1
	}
	return e.docs[page], page
}

// Current returns the visible document, or nil.
func (e *Editor) Current() *document.Document {
	d, _ := e.current()
	return d
}

// CurrentImage returns the committed buffer of the visible document.
func (e *Editor) CurrentImage() *image.RGBA {
	d, _ := e.current()
	if d == nil {
		return nil
	}
	return d.Current()
}

// Add opens d in a new tab and returns its index.
func (e *Editor) Add(d *document.Document) int {
	if d.Title() == "" {
		e.untitled++
		d.SetTitle(fmt.Sprintf("untitled-%d", e.untitled))
	}
	e.docs = append(e.docs, d)
	if e.win != nil {
		e.win.AddPage(d.Title(), d.Current())
	}
	return len(e.docs) - 1
}

// AddImage opens img in a new tab bound to filename, which may be empty.
func (e *Editor) AddImage(img *image.RGBA, filename string) int {
	return e.Add(document.New(img, filename, e.limit))
}

// AddUntitled opens img as an unsaved tab labelled title.
func (e *Editor) AddUntitled(img *image.RGBA, title string) int {
	d := document.New(img, "", e.limit)
	d.SetTitle(title)
	return e.Add(d)
}

// OpenFile decodes path and opens it in a new tab.
func (e *Editor) OpenFile(path string) (int, error) {
	im, err := imageio.Open(path)
	if err != nil {
		return -1, err
	}
	d := document.New(im.RGBA, path, e.limit)
	d.SetMIME(im.MIME)
	return e.Add(d), nil
}

// Open asks for a file and opens it. Cancelling is a no-op.
func (e *Editor) Open() error {
	if e.dlg == nil {
		return nil
	}
	path, ok := e.dlg.FileDialog(FileOpen)
	if !ok {
		return nil
	}
	_, err := e.OpenFile(path)
	return err
}

// NewImage opens a blank canvas of the given size.
func (e *Editor) NewImage(size image.Point, fill color.Color) int {
	return e.AddImage(paint.Blank(size, fill), "")
}

// CloseImage closes tab index. The editor returns to select mode with no
// selection. A pending paste is discarded.
func (e *Editor) CloseImage(index int) {
	if len(e.docs) == 0 || index < 0 || index >= len(e.docs) {
		return
	}
	if e.state.Task == TaskPaste {
		e.CancelPaste()
	}
	e.docs[index].Close()
	e.docs = append(e.docs[:index], e.docs[index+1:]...)
	e.win.RemovePage(index)
	// A stroke in progress on the page that stays visible is dropped too.
	if d, _ := e.current(); d != nil && d.Scratch() != nil {
		d.SetScratch(nil)
		e.win.UpdateImage(d.Current())
	}
	e.state.Selection.Clear()
	e.state.Task = TaskSelect
	e.stroking = false
	e.win.SetCursor(CursorDefault)
}

// CloseCurrent closes the visible tab.
func (e *Editor) CloseCurrent() {
	if _, page := e.current(); page >= 0 {
		e.CloseImage(page)
	}
}

// DoChange redisplays img and commits it to the visible document's history.
// It is the only way the history grows. A pending paste is redrawn on top
// of the new state.
func (e *Editor) DoChange(img *image.RGBA) {
	d, _ := e.current()
	if d == nil || img == nil {
		return
	}
	e.win.UpdateImage(img)
	d.Commit(img)
	e.refreshPaste(d)
}

// refreshPaste rebuilds a pending paste preview on top of the document's
// current buffer, so commits made during paste mode are not overwritten by
// a preview of the older buffer.
func (e *Editor) refreshPaste(d *document.Document) {
	if e.state.Task != TaskPaste || e.state.Clip == nil {
		return
	}
	e.pasteAt(d, e.state.PasteAt)
}

// Undo steps the visible document back one state.
func (e *Editor) Undo() {
	d, _ := e.current()
	if d == nil {
		return
	}
	if d.Undo() {
		e.win.UpdateImage(d.Current())
		e.refreshPaste(d)
	}
}

// Redo steps the visible document forward one state.
func (e *Editor) Redo() {
	d, _ := e.current()
	if d == nil {
		return
	}
	if d.Redo() {
		e.win.UpdateImage(d.Current())
		e.refreshPaste(d)
	}
}

// ApplyFilter runs filter id on the visible document and commits the result.
func (e *Editor) ApplyFilter(id string, params []float64) error {
	d, _ := e.current()
	if d == nil {
		return nil
	}
	out, err := e.reg.Apply(id, d.Current(), params)
	if err != nil {
		return fmt.Errorf("apply %s: %w", id, err)
	}
	e.DoChange(out)
	return nil
}

// FilterWithParams prompts for the entry's parameters and applies the filter
// if the prompt is confirmed. Entries without parameters apply directly.
func (e *Editor) FilterWithParams(entry filters.MenuEntry) error {
	if d, _ := e.current(); d == nil {
		return nil
	}
	if len(entry.Limits) == 0 {
		return e.ApplyFilter(entry.ID, nil)
	}
	if e.dlg == nil {
		return nil
	}
	values, ok := e.dlg.ParamsDialog(entry.DialogTitle(), entry.Limits)
	if !ok {
		return nil
	}
	return e.ApplyFilter(entry.ID, values)
}

// Properties shows the visible document's details.
func (e *Editor) Properties() {
	d, _ := e.current()
	if d == nil || e.dlg == nil {
		return
	}
	e.dlg.InfoDialog(PropertiesTitle, d.Properties())
}

func (e *Editor) setTask(t Task) {
	if e.state.Task == t {
		return
	}
	e.state.Task = t
	e.win.SetCursor(t.Cursor())
}

// setScratch shows img as the live preview of the visible document.
func (e *Editor) setScratch(d *document.Document, img *image.RGBA) {
	e.win.UpdateImage(img)
	d.SetScratch(img)
}
