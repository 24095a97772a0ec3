//go:build !cgo

package ui

import (
	"path/filepath"

	"github.com/example/retouch/internal/document"
	"github.com/example/retouch/internal/editor"
)

func (d dialogs) FileDialog(mode editor.FileMode) (string, bool) {
	initial := ""
	if d.app.startDir != "" {
		initial = d.app.startDir + string(filepath.Separator)
	}
	p := newPathPrompt(fileDialogTitle(mode), initial)
	if !d.app.runPrompt(p) {
		return "", false
	}
	return p.text(), true
}

func (d dialogs) InfoDialog(title string, info []document.Property) {
	d.app.runPrompt(newInfoPrompt(title, info))
}
