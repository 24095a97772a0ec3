package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/example/retouch/internal/clipboard"
	"github.com/example/retouch/internal/config"
	"github.com/example/retouch/internal/editor"
	"github.com/example/retouch/internal/filters"
	"github.com/example/retouch/internal/imageio"
	"github.com/example/retouch/internal/notify"
	"github.com/example/retouch/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs            *flag.FlagSet
	program       string
	notifier      *notify.Notifier
	config        *config.Config
	captureAlerts bool
	saveAlerts    bool
	copyAlerts    bool
	themeName     string
	activeTheme   *theme.Theme
	menu          filters.Menu
	registry      *filters.Registry
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:       program,
		notifier:      r.notifier,
		config:        r.config,
		captureAlerts: r.captureAlerts,
		saveAlerts:    r.saveAlerts,
		copyAlerts:    r.copyAlerts,
		themeName:     r.themeName,
		activeTheme:   r.activeTheme,
		menu:          r.menu,
		registry:      r.registry,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("retouch", flag.ExitOnError),
		program:  "retouch",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", cfg.Notify.Capture, "show a desktop notification after capturing a screenshot")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default. The flag default stays empty
	// so Run can tell whether it was given.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, or a [theme.NAME] from the config)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventCapture, r.captureAlerts)
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	r.activeTheme = r.resolveTheme()

	if err := r.loadFilters(); err != nil {
		return err
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r.subcommand(cmdName))
	case "apply":
		cmd, err = parseApplyCmd(subArgs, r.subcommand(cmdName))
	case "info":
		cmd, err = parseInfoCmd(subArgs, r.subcommand(cmdName))
	case "shell":
		cmd, err = parseShellCmd(subArgs, r.subcommand(cmdName))
	case "filters":
		cmd, err = parseFiltersCmd(subArgs, r.subcommand(cmdName))
	case "config":
		cmd, err = parseConfigCmd(subArgs, r.subcommand(cmdName))
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("RETOUCH_THEME")
	}
	if name == "" {
		name = r.config.Theme
	}
	loader := theme.NewLoader()
	loader.Custom = r.config.Themes
	t, err := loader.Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

// loadFilters reads the menu and checks it against the registry. A broken
// menu is fatal: every command depends on it.
func (r *root) loadFilters() error {
	menu, err := filters.DefaultMenu()
	if err != nil {
		return err
	}
	reg := filters.Default()
	if err := reg.Validate(menu); err != nil {
		return fmt.Errorf("filter menu: %w", err)
	}
	r.menu = menu
	r.registry = reg
	return nil
}

// newEditor builds an editor configured from the loaded config. win may be
// nil when the caller replaces it with SetWindow.
func (r *root) newEditor(win editor.Window, dlg editor.Dialogs) *editor.Editor {
	cfg := r.config
	if cfg == nil {
		cfg = config.New()
	}
	return editor.New(win, dlg, r.registry,
		editor.WithHistoryLimit(cfg.HistoryLimit),
		editor.WithBrush(cfg.BrushSize, cfg.BrushColor),
		editor.WithFill(cfg.FillColor),
		editor.WithSaveOptions(imageio.Options{JPEGQuality: cfg.JPEGQuality}),
		editor.WithSystemClipboard(clipboard.System{}),
		editor.WithSaveListener(r.notifySave),
		editor.WithCopyListener(r.notifyCopy),
	)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) notifyCapture(title string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Capture(title, img)
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(img)
}
