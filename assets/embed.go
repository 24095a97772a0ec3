// Package assets carries the data files compiled into retouch.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// FilterMenu is the YAML document describing the filter menu.
//
//go:embed filters.yaml
var FilterMenu []byte

//go:embed themes/*.theme
var embeddedThemes embed.FS

// Themes exposes the bundled themes rooted at the themes directory.
func Themes() fs.FS {
	sub, err := fs.Sub(embeddedThemes, "themes")
	if err != nil {
		// Only reachable if the embed pattern above changes.
		panic(err)
	}
	return sub
}

// ThemeNames lists the bundled themes without their extension.
func ThemeNames() []string {
	entries, err := fs.ReadDir(embeddedThemes, "themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".theme"))
	}
	sort.Strings(names)
	return names
}

// Theme returns the raw bytes of a bundled theme.
func Theme(name string) ([]byte, error) {
	data, err := embeddedThemes.ReadFile("themes/" + name + ".theme")
	if err != nil {
		return nil, fmt.Errorf("theme %q not embedded: %w", name, err)
	}
	return data, nil
}
