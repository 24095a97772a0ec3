package ui

import (
	"strings"
	"unicode"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut describes a keyboard combination that triggers an action.
// Code is matched when set, otherwise the lower-cased rune.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

const modifierMask = key.ModShift | key.ModControl | key.ModAlt | key.ModMeta

// Matches reports whether e triggers the shortcut.
func (s KeyShortcut) Matches(e key.Event) bool {
	if e.Modifiers&modifierMask != s.Modifiers {
		return false
	}
	if s.Code != key.CodeUnknown {
		return e.Code == s.Code
	}
	return s.Rune != 0 && unicode.ToLower(e.Rune) == s.Rune
}

// String renders the shortcut the way the status bar shows it, e.g. ^S.
func (s KeyShortcut) String() string {
	var b strings.Builder
	if s.Modifiers&key.ModControl != 0 {
		b.WriteString("^")
	}
	if s.Modifiers&key.ModAlt != 0 {
		b.WriteString("Alt+")
	}
	if s.Modifiers&key.ModShift != 0 {
		b.WriteString("Shift+")
	}
	switch s.Code {
	case key.CodeReturnEnter:
		b.WriteString("Enter")
	case key.CodeEscape:
		b.WriteString("Esc")
	case key.CodeUnknown:
		b.WriteRune(unicode.ToUpper(s.Rune))
	default:
		b.WriteString(s.Code.String())
	}
	return b.String()
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

func ctrl(r rune) shortcutList {
	return shortcutList{{Rune: r, Modifiers: key.ModControl}}
}

func ctrlShift(r rune) shortcutList {
	return shortcutList{{Rune: r, Modifiers: key.ModControl | key.ModShift}}
}

func plain(r rune) shortcutList { return shortcutList{{Rune: r}} }

func code(c key.Code) shortcutList { return shortcutList{{Code: c}} }

// keymap resolves key events to named actions. Earlier registrations win.
type keymap struct {
	names    []string
	bindings map[string]shortcutList
}

func newKeymap() *keymap { return &keymap{bindings: map[string]shortcutList{}} }

func (k *keymap) bind(name string, keys KeyboardShortcuts) {
	if keys == nil {
		return
	}
	if _, ok := k.bindings[name]; !ok {
		k.names = append(k.names, name)
	}
	k.bindings[name] = append(k.bindings[name], keys.KeyboardShortcuts()...)
}

func (k *keymap) lookup(e key.Event) (string, bool) {
	for _, name := range k.names {
		for _, sc := range k.bindings[name] {
			if sc.Matches(e) {
				return name, true
			}
		}
	}
	return "", false
}

// hint is the first shortcut of an action, or "" when it has none.
func (k *keymap) hint(name string) string {
	if scs := k.bindings[name]; len(scs) > 0 {
		return scs[0].String()
	}
	return ""
}
