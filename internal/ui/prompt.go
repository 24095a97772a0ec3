package ui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/retouch/internal/document"
	"github.com/example/retouch/internal/filters"
)

type field struct {
	label string
	text  string
	// limit is nil for free text such as a file path.
	limit *filters.Limit
}

// prompt is a modal form drawn over the canvas. A prompt without fields is
// an information box.
type prompt struct {
	title  string
	lines  []string
	fields []field
	focus  int
	err    string
}

func newParamsPrompt(title string, limits []filters.Limit) *prompt {
	p := &prompt{title: title}
	for i := range limits {
		l := limits[i]
		p.fields = append(p.fields, field{
			label: fmt.Sprintf("%s (%s to %s)", l.Name, formatValue(l.Min), formatValue(l.Max)),
			text:  formatValue(l.Default),
			limit: &l,
		})
	}
	return p
}

func newPathPrompt(title, initial string) *prompt {
	return &prompt{title: title, fields: []field{{label: "Path", text: initial}}}
}

func newInfoPrompt(title string, info []document.Property) *prompt {
	p := &prompt{title: title}
	for _, prop := range info {
		p.lines = append(p.lines, fmt.Sprintf("%s: %s", prop.Name, prop.Value))
	}
	return p
}

func formatValue(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// key applies a key press. done is true once the prompt is dismissed and ok
// tells whether it was accepted.
func (p *prompt) key(e key.Event) (done, ok bool) {
	switch e.Code {
	case key.CodeEscape:
		return true, false
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		if _, err := p.values(); err != nil {
			p.err = err.Error()
			return false, false
		}
		return true, true
	case key.CodeTab:
		if len(p.fields) > 0 {
			step := 1
			if e.Modifiers&key.ModShift != 0 {
				step = len(p.fields) - 1
			}
			p.focus = (p.focus + step) % len(p.fields)
		}
		return false, false
	}
	if len(p.fields) == 0 {
		return false, false
	}
	f := &p.fields[p.focus]
	switch e.Code {
	case key.CodeDeleteBackspace:
		if len(f.text) > 0 {
			r := []rune(f.text)
			f.text = string(r[:len(r)-1])
		}
	case key.CodeUpArrow, key.CodeDownArrow:
		if f.limit == nil {
			break
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(f.text), 64)
		if err != nil {
			v = f.limit.Default
		}
		step := f.limit.Step
		if step == 0 {
			step = 1
		}
		if e.Code == key.CodeDownArrow {
			step = -step
		}
		f.text = formatValue(f.limit.Clamp(v + step))
	default:
		if e.Rune > 0 && unicode.IsPrint(e.Rune) && e.Modifiers&key.ModControl == 0 {
			f.text += string(e.Rune)
		}
	}
	p.err = ""
	return false, false
}

// values parses the numeric fields, clamped to their limits.
func (p *prompt) values() ([]float64, error) {
	var out []float64
	for _, f := range p.fields {
		if f.limit == nil {
			if strings.TrimSpace(f.text) == "" {
				return nil, fmt.Errorf("%s is empty", f.label)
			}
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(f.text), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: not a number", f.limit.Name)
		}
		out = append(out, f.limit.Clamp(v))
	}
	return out, nil
}

// text returns the first free-text field.
func (p *prompt) text() string {
	for _, f := range p.fields {
		if f.limit == nil {
			return strings.TrimSpace(f.text)
		}
	}
	return ""
}
