//go:build cgo

package ui

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/sqweek/dialog"

	"github.com/example/retouch/internal/document"
	"github.com/example/retouch/internal/editor"
	"github.com/example/retouch/internal/imageio"
)

func (d dialogs) FileDialog(mode editor.FileMode) (string, bool) {
	b := dialog.File().Title(fileDialogTitle(mode)).Filter("Images", imageio.Formats...)
	if d.app.startDir != "" {
		b = b.SetStartDir(d.app.startDir)
	}
	var (
		path string
		err  error
	)
	switch mode {
	case editor.FileOpen:
		path, err = b.Load()
	case editor.FileSave:
		path, err = b.Save()
	}
	if errors.Is(err, dialog.ErrCancelled) {
		return "", false
	}
	if err != nil {
		log.Printf("file dialog: %v", err)
		return "", false
	}
	return path, path != ""
}

func (d dialogs) InfoDialog(title string, info []document.Property) {
	var b strings.Builder
	for _, p := range info {
		fmt.Fprintf(&b, "%s: %s\n", p.Name, p.Value)
	}
	dialog.Message("%s", strings.TrimSuffix(b.String(), "\n")).Title(title).Info()
}
