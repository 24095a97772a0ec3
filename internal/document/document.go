// Package document holds the per-tab state of an open image: its bounded
// history of buffers, the scratch buffer used for live previews and the file
// it is bound to.
package document

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/example/retouch/internal/history"
	"github.com/example/retouch/internal/imageio"
)

// Document is one open image.
type Document struct {
	hist     *history.History[*image.RGBA]
	scratch  *image.RGBA
	filename string
	mime     string
	saved    bool
	isNew    bool
	title    string
}

// New creates a document whose history starts with img. An empty filename
// marks the document as new, so saving it asks for a destination.
func New(img *image.RGBA, filename string, limit int) *Document {
	d := &Document{
		hist:     history.New[*image.RGBA](limit),
		filename: filename,
		saved:    filename != "",
		isNew:    filename == "",
	}
	d.hist.Push(img)
	if filename != "" {
		d.title = filepath.Base(filename)
	}
	return d
}

// Current returns the buffer under the history cursor.
func (d *Document) Current() *image.RGBA {
	img, _ := d.hist.Current()
	return img
}

// Scratch returns the pending preview buffer, or nil.
func (d *Document) Scratch() *image.RGBA { return d.scratch }

// ScratchOrCurrent returns the preview buffer when one is pending and the
// current buffer otherwise.
func (d *Document) ScratchOrCurrent() *image.RGBA {
	if d.scratch != nil {
		return d.scratch
	}
	return d.Current()
}

// SetScratch replaces the preview buffer; nil clears it.
func (d *Document) SetScratch(img *image.RGBA) { d.scratch = img }

// Commit makes img the current state. Newer states are forgotten, the
// document becomes unsaved, and the oldest state is evicted past the limit.
func (d *Document) Commit(img *image.RGBA) {
	d.hist.Push(img)
	d.saved = false
}

// Undo steps back in history.
func (d *Document) Undo() bool { return d.hist.Undo() }

// Redo steps forward in history.
func (d *Document) Redo() bool { return d.hist.Redo() }

// Len returns the number of states kept.
func (d *Document) Len() int { return d.hist.Len() }

// Index returns the history cursor.
func (d *Document) Index() int { return d.hist.Cursor() }

// History returns the kept states from oldest to newest.
func (d *Document) History() []*image.RGBA { return d.hist.Entries() }

func (d *Document) Filename() string { return d.filename }

// SetFilename binds the document to path. The document is no longer new.
func (d *Document) SetFilename(path string) {
	d.filename = path
	d.title = filepath.Base(path)
	d.isNew = false
}

func (d *Document) Saved() bool { return d.saved }

func (d *Document) SetSaved(saved bool) { d.saved = saved }

// IsNew reports whether the document has never been bound to a file.
func (d *Document) IsNew() bool { return d.isNew }

// Title is the tab label.
func (d *Document) Title() string { return d.title }

func (d *Document) SetTitle(title string) { d.title = title }

// SetMIME records the detected file type.
func (d *Document) SetMIME(mime string) { d.mime = mime }

// Close drops every buffer the document holds.
func (d *Document) Close() {
	d.hist.Reset()
	d.scratch = nil
}

// Property is one labelled line of the properties dialog.
type Property struct {
	Name  string
	Value string
}

// Properties describes the document for the info dialog.
func (d *Document) Properties() []Property {
	img := d.Current()
	name := d.title
	path := d.filename
	if path == "" {
		path = "(not saved)"
	} else if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	mime := d.mime
	if mime == "" && d.filename != "" {
		mime = imageio.DetectMIME(d.filename)
	}
	if mime == "" {
		mime = "unknown"
	}
	props := []Property{
		{Name: "Name", Value: name},
		{Name: "Path", Value: path},
		{Name: "Format", Value: mime},
	}
	if img != nil {
		b := img.Bounds()
		props = append(props,
			Property{Name: "Dimensions", Value: fmt.Sprintf("%d x %d px", b.Dx(), b.Dy())},
			Property{Name: "Mode", Value: "RGBA"},
		)
	}
	if d.filename != "" {
		if st, err := os.Stat(d.filename); err == nil {
			props = append(props, Property{Name: "File size", Value: humanize.Bytes(uint64(st.Size()))})
		}
	}
	saved := "no"
	if d.saved {
		saved = "yes"
	}
	props = append(props,
		Property{Name: "Saved", Value: saved},
		Property{Name: "History", Value: fmt.Sprintf("%d of %d", d.hist.Cursor()+1, d.hist.Len())},
	)
	return props
}
