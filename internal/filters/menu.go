package filters

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/example/retouch/assets"
)

// Limit bounds one numeric parameter of a filter.
type Limit struct {
	Name    string  `yaml:"name"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Default float64 `yaml:"default"`
	Step    float64 `yaml:"step"`
}

// Clamp keeps v within the limit.
func (l Limit) Clamp(v float64) float64 {
	return min(max(v, l.Min), l.Max)
}

// MenuEntry is one item of the filter menu.
type MenuEntry struct {
	ID     string  `yaml:"id"`
	Label  string  `yaml:"label"`
	Title  string  `yaml:"title"`
	Key    string  `yaml:"key"`
	Limits []Limit `yaml:"limits"`
}

// Defaults returns the default value of every parameter.
func (e MenuEntry) Defaults() []float64 {
	out := make([]float64, len(e.Limits))
	for i, l := range e.Limits {
		out[i] = l.Default
	}
	return out
}

// DialogTitle is the title of the parameter prompt.
func (e MenuEntry) DialogTitle() string {
	if e.Title != "" {
		return e.Title
	}
	return e.Label
}

// Menu is the ordered filter menu.
type Menu []MenuEntry

// Find returns the entry for id.
func (m Menu) Find(id string) (MenuEntry, bool) {
	for _, e := range m {
		if e.ID == id {
			return e, true
		}
	}
	return MenuEntry{}, false
}

// ByKey returns the entry bound to a shortcut key.
func (m Menu) ByKey(key string) (MenuEntry, bool) {
	if key == "" {
		return MenuEntry{}, false
	}
	for _, e := range m {
		if e.Key == key {
			return e, true
		}
	}
	return MenuEntry{}, false
}

// LoadMenu parses a YAML filter menu.
func LoadMenu(r io.Reader) (Menu, error) {
	var m Menu
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return Menu{}, nil
		}
		return nil, fmt.Errorf("parse filter menu: %w", err)
	}
	return m, nil
}

// DefaultMenu parses the menu compiled into the binary.
func DefaultMenu() (Menu, error) {
	return LoadMenu(bytes.NewReader(assets.FilterMenu))
}

// Validate checks that every menu entry names a registered filter with
// matching limits. All problems are reported together.
func (r *Registry) Validate(m Menu) error {
	var errs []error
	seen := map[string]bool{}
	keys := map[string]string{}
	for i, e := range m {
		if e.Label == "" {
			errs = append(errs, fmt.Errorf("menu entry %d (%s): missing label", i, e.ID))
		}
		if seen[e.ID] {
			errs = append(errs, fmt.Errorf("menu entry %d: %q listed twice", i, e.ID))
		}
		seen[e.ID] = true
		if e.Key != "" {
			if other, ok := keys[e.Key]; ok {
				errs = append(errs, fmt.Errorf("menu entry %q: key %q already bound to %q", e.ID, e.Key, other))
			}
			keys[e.Key] = e.ID
		}
		f, ok := r.Lookup(e.ID)
		if !ok {
			errs = append(errs, fmt.Errorf("menu entry %d: %w: %q", i, ErrUnknownFilter, e.ID))
			continue
		}
		if len(e.Limits) != f.Arity {
			errs = append(errs, fmt.Errorf("menu entry %q: %w: %d limits for %d parameters", e.ID, ErrParams, len(e.Limits), f.Arity))
			continue
		}
		for _, l := range e.Limits {
			if l.Min > l.Max || l.Default < l.Min || l.Default > l.Max {
				errs = append(errs, fmt.Errorf("menu entry %q: %w: %s default %v outside [%v, %v]", e.ID, ErrParams, l.Name, l.Default, l.Min, l.Max))
			}
		}
	}
	return errors.Join(errs...)
}
