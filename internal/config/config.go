package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/example/retouch/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Config holds the application configuration.
type Config struct {
	Theme        string
	SaveDir      string
	HistoryLimit int
	BrushSize    int
	BrushColor   color.RGBA
	FillColor    color.RGBA
	JPEGQuality  int
	Notify       Notify
	Themes       map[string]*theme.Theme
}

// Defaults used when the config file leaves a key out.
const (
	DefaultHistoryLimit = 10
	DefaultBrushSize    = 4
	DefaultJPEGQuality  = 90
)

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		HistoryLimit: DefaultHistoryLimit,
		BrushSize:    DefaultBrushSize,
		BrushColor:   color.RGBA{0, 0, 0, 255},
		FillColor:    color.RGBA{255, 255, 255, 255},
		JPEGQuality:  DefaultJPEGQuality,
		Themes:       make(map[string]*theme.Theme),
	}
}

// SaveDirectory returns SaveDir with a leading ~ expanded, or the working
// directory when unset.
func (c *Config) SaveDirectory() string {
	if c.SaveDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "."
		}
		return wd
	}
	dir, err := homedir.Expand(c.SaveDir)
	if err != nil {
		return c.SaveDir
	}
	return dir
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "history_limit = %d\n", c.HistoryLimit)
	fmt.Fprintf(&sb, "brush_size = %d\n", c.BrushSize)
	fmt.Fprintf(&sb, "brush_color = %s\n", theme.FormatColor(c.BrushColor))
	fmt.Fprintf(&sb, "fill_color = %s\n", theme.FormatColor(c.FillColor))
	fmt.Fprintf(&sb, "jpeg_quality = %d\n", c.JPEGQuality)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "\n[theme.%s]\n", name)
		_ = c.Themes[name].Write(&sb)
	}
	return sb.String()
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(c.String()), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
