package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/example/retouch/internal/editor"
	"github.com/example/retouch/internal/ui"
)

// commandList collects repeated -e flags.
type commandList []string

func (c *commandList) String() string { return strings.Join(*c, "; ") }

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

var errShellExit = errors.New("exit")

const shellHelp = `commands:
  open PATH            open an image in a new tab
  new W H              open a blank canvas
  tabs                 list tabs (* marks the current one)
  tab N                switch to tab N
  close                close the current tab
  filter ID [P...]     apply a filter; missing parameters use defaults
  undo | redo
  select X0 Y0 X1 Y1   select a rectangle
  brush X Y [X Y]...   draw a stroke through the points
  copy | cut
  paste [X Y]          paste, optionally centred on X Y
  commit | cancel      finish or drop a paste
  save [PATH]          save, or save as PATH
  info                 print image properties
  exit`

type shellCmd struct {
	*root
	fs     *flag.FlagSet
	execs  commandList
	files  []string
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	win *ui.Window
	ed  *editor.Editor
}

func parseShellCmd(args []string, r *root) (*shellCmd, error) {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	c := &shellCmd{root: r, fs: fs, in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	fs.Usage = usageFunc(c)
	fs.Var(&c.execs, "e", "run a command and exit (may be given more than once)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	c.files = fs.Args()
	return c, nil
}

func (c *shellCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *shellCmd) Template() string {
	return "shell.txt"
}

func (c *shellCmd) start() {
	c.win = ui.NewWindow(0, 0)
	c.ed = c.newEditor(c.win, nil)
	for _, path := range c.files {
		if _, err := c.ed.OpenFile(path); err != nil {
			fmt.Fprintf(c.errOut, "warning: %v\n", err)
		}
	}
}

func (c *shellCmd) Run() error {
	c.start()
	if len(c.execs) > 0 {
		for _, line := range c.execs {
			if err := c.executeLine(line); err != nil {
				if errors.Is(err, errShellExit) {
					return nil
				}
				return err
			}
		}
		return nil
	}

	fmt.Fprintln(c.out, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			break
		}
		if err := c.executeLine(scanner.Text()); err != nil {
			if errors.Is(err, errShellExit) {
				return nil
			}
			fmt.Fprintln(c.errOut, err)
		}
	}
	return scanner.Err()
}

func (c *shellCmd) executeLine(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 || strings.HasPrefix(args[0], "#") {
		return nil
	}
	name, rest := args[0], args[1:]
	ed := c.ed
	switch name {
	case "exit", "quit":
		return errShellExit
	case "help":
		fmt.Fprintln(c.out, shellHelp)
	case "open":
		if len(rest) != 1 {
			return errors.New("usage: open PATH")
		}
		_, err := ed.OpenFile(rest[0])
		return err
	case "new":
		n, err := ints(rest, 2)
		if err != nil {
			return fmt.Errorf("usage: new W H: %w", err)
		}
		if n[0] <= 0 || n[1] <= 0 {
			return errors.New("new: size must be positive")
		}
		ed.NewImage(image.Pt(n[0], n[1]), color.White)
	case "tabs":
		c.printTabs()
	case "tab":
		n, err := ints(rest, 1)
		if err != nil {
			return fmt.Errorf("usage: tab N: %w", err)
		}
		if n[0] < 0 || n[0] >= c.win.PageCount() {
			return fmt.Errorf("tab %d does not exist", n[0])
		}
		if n[0] != c.win.CurrentPage() && ed.Task() == editor.TaskPaste {
			ed.CancelPaste()
		}
		c.win.SelectPage(n[0])
	case "close":
		ed.CloseCurrent()
	case "filter":
		return c.filter(rest)
	case "undo":
		ed.Undo()
	case "redo":
		ed.Redo()
	case "select":
		n, err := ints(rest, 4)
		if err != nil {
			return fmt.Errorf("usage: select X0 Y0 X1 Y1: %w", err)
		}
		ed.Select()
		ed.Press(image.Pt(n[0], n[1]))
		ed.Release(image.Pt(n[2], n[3]))
	case "brush":
		if len(rest) == 0 || len(rest)%2 != 0 {
			return errors.New("usage: brush X Y [X Y]...")
		}
		n, err := ints(rest, len(rest))
		if err != nil {
			return fmt.Errorf("brush: %w", err)
		}
		ed.Draw()
		ed.Press(image.Pt(n[0], n[1]))
		for i := 2; i < len(n); i += 2 {
			ed.Move(image.Pt(n[i], n[i+1]))
		}
		ed.Release(image.Pt(n[len(n)-2], n[len(n)-1]))
	case "copy":
		ed.Copy()
	case "cut":
		ed.Cut()
	case "paste":
		ed.Paste()
		if len(rest) > 0 {
			n, err := ints(rest, 2)
			if err != nil {
				return fmt.Errorf("usage: paste [X Y]: %w", err)
			}
			if ed.Task() == editor.TaskPaste {
				ed.Press(image.Pt(n[0], n[1]))
				ed.Release(image.Pt(n[0], n[1]))
			}
		}
	case "commit":
		ed.CommitPaste()
	case "cancel":
		ed.CancelPaste()
	case "save":
		return c.save(rest)
	case "info":
		d := ed.Current()
		if d == nil {
			return errors.New("no image open")
		}
		fmt.Fprint(c.out, formatProperties(d.Properties()))
	default:
		return fmt.Errorf("unknown command %q (try 'help')", name)
	}
	return nil
}

func (c *shellCmd) filter(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: filter ID [P...]")
	}
	arg := args[0]
	if len(args) > 1 {
		arg += ":" + strings.Join(args[1:], ",")
	}
	step, err := parseFilterStep(c.menu, arg)
	if err != nil {
		return err
	}
	return c.ed.ApplyFilter(step.id, step.params)
}

func (c *shellCmd) save(args []string) error {
	d := c.ed.Current()
	if d == nil {
		return errors.New("no image open")
	}
	switch {
	case len(args) == 1:
		return c.ed.SaveTo(c.win.CurrentPage(), args[0])
	case len(args) > 1:
		return errors.New("usage: save [PATH]")
	case d.IsNew():
		return errors.New("image has no file yet: use save PATH")
	}
	return c.ed.Save()
}

func (c *shellCmd) printTabs() {
	docs := c.ed.Documents()
	if len(docs) == 0 {
		fmt.Fprintln(c.out, "no images open")
		return
	}
	cur := c.win.CurrentPage()
	for i, d := range docs {
		marker := " "
		if i == cur {
			marker = "*"
		}
		dirty := ""
		if !d.Saved() {
			dirty = " (modified)"
		}
		b := d.Current().Bounds()
		fmt.Fprintf(c.out, "%s %d: %s %dx%d%s\n", marker, i, d.Title(), b.Dx(), b.Dy(), dirty)
	}
}

// ints parses exactly n integers.
func ints(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(args))
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%q is not a whole number", a)
		}
		out[i] = v
	}
	return out, nil
}
