package ui

import (
	"github.com/example/retouch/internal/editor"
	"github.com/example/retouch/internal/filters"
)

// dialogs implements editor.Dialogs. Parameters are always asked in the
// window; file and info dialogs use the native toolkit when the build has
// cgo and fall back to the in-window prompt otherwise.
type dialogs struct {
	app *App
}

var _ editor.Dialogs = dialogs{}

func (d dialogs) ParamsDialog(title string, limits []filters.Limit) ([]float64, bool) {
	p := newParamsPrompt(title, limits)
	if !d.app.runPrompt(p) {
		return nil, false
	}
	vals, err := p.values()
	if err != nil {
		return nil, false
	}
	return vals, true
}

func fileDialogTitle(mode editor.FileMode) string {
	switch mode {
	case editor.FileOpen:
		return "Open image"
	case editor.FileSave:
		return "Save image as"
	}
	return "File"
}
