package editor

import (
	"fmt"

	"github.com/example/retouch/internal/imageio"
)

// Save writes the visible document to its file. Documents that were never
// saved go through SaveAs.
func (e *Editor) Save() error {
	d, _ := e.current()
	if d == nil {
		return nil
	}
	if d.IsNew() {
		return e.SaveAs()
	}
	if err := imageio.Save(d.Filename(), d.Current(), e.saveOpts); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	d.SetSaved(true)
	if e.onSave != nil {
		e.onSave(d.Filename())
	}
	return nil
}

// SaveAs asks for a destination and writes the visible document there. The
// tab is relabelled after the new file. Cancelling changes nothing.
func (e *Editor) SaveAs() error {
	d, page := e.current()
	if d == nil || e.dlg == nil {
		return nil
	}
	path, ok := e.dlg.FileDialog(FileSave)
	if !ok {
		return nil
	}
	return e.SaveTo(page, path)
}

// SaveTo writes document page to path and binds it to that file.
func (e *Editor) SaveTo(page int, path string) error {
	if page < 0 || page >= len(e.docs) {
		return nil
	}
	d := e.docs[page]
	if err := imageio.Save(path, d.Current(), e.saveOpts); err != nil {
		return fmt.Errorf("save as %s: %w", path, err)
	}
	d.SetFilename(path)
	d.SetMIME(imageio.DetectMIME(path))
	e.win.SetTabLabel(page, d.Title())
	d.SetSaved(true)
	if e.onSave != nil {
		e.onSave(path)
	}
	return nil
}
