package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/retouch/internal/clipboard"
	"github.com/example/retouch/internal/filters"
	"github.com/example/retouch/internal/ui"
)

var clipboardWriteImageFn = clipboard.WriteImage

// filterStep is one filter from the command line with its resolved
// parameters.
type filterStep struct {
	id     string
	params []float64
}

type applyCmd struct {
	*root
	fs          *flag.FlagSet
	file        string
	output      string
	toClipboard bool
	steps       []string
}

func parseApplyCmd(args []string, r *root) (*applyCmd, error) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	c := &applyCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image to read")
	fs.StringVar(&c.output, "output", "", "write the result to this path; the extension picks the format")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" {
		return nil, &UsageError{of: c, msg: "-file is required"}
	}
	if c.output == "" && !c.toClipboard {
		return nil, &UsageError{of: c, msg: "nothing to do: give -output or -to-clipboard"}
	}
	if fs.NArg() == 0 {
		return nil, &UsageError{of: c, msg: "at least one filter is required"}
	}
	c.steps = fs.Args()
	return c, nil
}

func (c *applyCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *applyCmd) Template() string {
	return "apply.txt"
}

// parseFilterStep reads "id" or "id:p1,p2". Missing trailing parameters take
// the menu defaults and every value is clamped to its limit.
func parseFilterStep(menu filters.Menu, arg string) (filterStep, error) {
	id, rest, hasParams := strings.Cut(arg, ":")
	id = strings.TrimSpace(id)
	entry, ok := menu.Find(id)
	if !ok {
		return filterStep{}, fmt.Errorf("%w: %q", filters.ErrUnknownFilter, id)
	}
	params := entry.Defaults()
	if hasParams {
		fields := strings.Split(rest, ",")
		if len(fields) > len(entry.Limits) {
			return filterStep{}, fmt.Errorf("%w: %s takes %d, got %d", filters.ErrParams, id, len(entry.Limits), len(fields))
		}
		for i, f := range fields {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return filterStep{}, fmt.Errorf("%w: %s parameter %q is not a number", filters.ErrParams, id, f)
			}
			params[i] = entry.Limits[i].Clamp(v)
		}
	}
	if len(params) == 0 {
		params = nil
	}
	return filterStep{id: entry.ID, params: params}, nil
}

func (c *applyCmd) Run() error {
	steps := make([]filterStep, 0, len(c.steps))
	for _, arg := range c.steps {
		s, err := parseFilterStep(c.menu, arg)
		if err != nil {
			return err
		}
		steps = append(steps, s)
	}

	// The headless run goes through the same editor as the window, so
	// history limits and save options match.
	win := ui.NewWindow(0, 0)
	ed := c.newEditor(win, nil)
	page, err := ed.OpenFile(c.file)
	if err != nil {
		return err
	}
	for _, s := range steps {
		if err := ed.ApplyFilter(s.id, s.params); err != nil {
			return err
		}
	}
	img := ed.CurrentImage()
	if img == nil {
		return errors.New("no image after applying filters")
	}
	if c.output != "" {
		if err := ed.SaveTo(page, c.output); err != nil {
			return err
		}
	}
	if c.toClipboard {
		if err := clipboardWriteImageFn(img); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		c.notifyCopy(img)
	}
	return nil
}
