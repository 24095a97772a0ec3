package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/retouch/internal/clipboard"
	"github.com/example/retouch/internal/document"
	"github.com/example/retouch/internal/imageio"
)

var clipboardWriteTextFn = clipboard.WriteText

type infoCmd struct {
	*root
	fs   *flag.FlagSet
	file string
	copy bool
	out  io.Writer
}

func parseInfoCmd(args []string, r *root) (*infoCmd, error) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	c := &infoCmd{root: r, fs: fs, out: os.Stdout}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image to describe")
	fs.BoolVar(&c.copy, "copy", false, "also copy the text to the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && fs.NArg() == 1 {
		c.file = fs.Arg(0)
	}
	if c.file == "" {
		return nil, &UsageError{of: c, msg: "-file is required"}
	}
	return c, nil
}

func (c *infoCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *infoCmd) Template() string {
	return "info.txt"
}

func formatProperties(props []document.Property) string {
	width := 0
	for _, p := range props {
		width = max(width, len(p.Name))
	}
	var sb strings.Builder
	for _, p := range props {
		fmt.Fprintf(&sb, "%-*s  %s\n", width+1, p.Name+":", p.Value)
	}
	return sb.String()
}

func (c *infoCmd) Run() error {
	im, err := imageio.Open(c.file)
	if err != nil {
		return err
	}
	d := document.New(im.RGBA, c.file, 1)
	d.SetMIME(im.MIME)
	text := formatProperties(d.Properties())
	if _, err := io.WriteString(c.out, text); err != nil {
		return err
	}
	if c.copy {
		if err := clipboardWriteTextFn(text); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
	}
	return nil
}
