package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/example/retouch/internal/capture"
	"github.com/example/retouch/internal/editor"
	"github.com/example/retouch/internal/ui"
)

var captureScreenshotFn = capture.Screenshot

type editCmd struct {
	*root
	fs            *flag.FlagSet
	capture       bool
	includeCursor bool
	width         int
	height        int
	files         []string
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	c := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.BoolVar(&c.capture, "capture", false, "open a screenshot in a new tab on startup")
	fs.BoolVar(&c.includeCursor, "include-cursor", false, "ask the portal to include the pointer in screenshots")
	fs.IntVar(&c.width, "width", 1024, "initial window width")
	fs.IntVar(&c.height, "height", 768, "initial window height")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.width <= 0 || c.height <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %dx%d", c.width, c.height)
	}
	c.files = fs.Args()
	return c, nil
}

func (c *editCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *editCmd) Template() string {
	return "edit.txt"
}

func (c *editCmd) screenshot(ctx context.Context) (*image.RGBA, error) {
	return captureScreenshotFn(ctx, capture.Options{Interactive: true, IncludeCursor: c.includeCursor})
}

// startupTabs opens the command line files and the optional capture. A
// file that fails to open is reported and skipped.
func (c *editCmd) startupTabs(ed *editor.Editor) error {
	opened := 0
	for _, path := range c.files {
		if _, err := ed.OpenFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			continue
		}
		opened++
	}
	if c.capture {
		img, err := c.screenshot(context.Background())
		switch {
		case errors.Is(err, capture.ErrCancelled):
		case err != nil:
			return fmt.Errorf("failed to capture screen: %w", err)
		default:
			title := "screenshot-" + time.Now().Format("150405")
			ed.AddUntitled(img, title)
			c.notifyCapture(title, img)
			opened++
		}
	}
	if len(c.files) > 0 && opened == 0 {
		return errors.New("no image could be opened")
	}
	return nil
}

func (c *editCmd) Run() error {
	ed := c.newEditor(nil, nil)
	opts := []ui.Option{
		ui.WithTheme(c.activeTheme),
		ui.WithMenu(c.menu),
		ui.WithCapture(c.screenshot),
		ui.WithCaptureListener(c.notifyCapture),
		ui.WithSize(c.width, c.height),
	}
	if c.config != nil {
		opts = append(opts, ui.WithStartDir(c.config.SaveDirectory()))
	}
	app := ui.New(ed, opts...)
	if err := c.startupTabs(ed); err != nil {
		return err
	}
	app.Run()
	return nil
}
