package ui

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/retouch/internal/paint"
	"github.com/example/retouch/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// ActionButton is a toolbar entry. Active reports whether it should be drawn
// as the selected tool.
type ActionButton struct {
	label  string
	rect   image.Rectangle
	theme  *theme.Theme
	action func()
	active func() bool
}

func (b *ActionButton) Draw(dst *image.RGBA, state ButtonState) {
	bg := b.theme.ButtonBackground
	switch state {
	case StateHover:
		bg = b.theme.ButtonBackgroundHover
	case StatePressed:
		bg = b.theme.ButtonActive
	}
	drawLabelBox(dst, b.rect, b.label, bg, b.theme.ButtonText, b.theme.ButtonBorder)
}

func (b *ActionButton) Rect() image.Rectangle { return b.rect }

func (b *ActionButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *ActionButton) Activate() {
	if b.action != nil {
		b.action()
	}
}

func (b *ActionButton) isActive() bool { return b.active != nil && b.active() }

// TabButton draws a tab title in the header bar. The close box sits at its
// right edge.
type TabButton struct {
	label   string
	rect    image.Rectangle
	theme   *theme.Theme
	onClick func()
	onClose func()
}

func (tb *TabButton) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := tb.theme.TabBackground, tb.theme.TabText
	switch state {
	case StateHover:
		bg = tb.theme.ButtonBackgroundHover
	case StatePressed:
		bg, fg = tb.theme.TabActive, tb.theme.TabTextActive
	}
	drawLabelBox(dst, tb.rect, tb.label, bg, fg, tb.theme.ButtonBorder)
	cb := tb.closeRect()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
		Dot: fixed.P(cb.Min.X+2, cb.Min.Y+12)}
	d.DrawString("x")
}

func (tb *TabButton) closeRect() image.Rectangle {
	return image.Rect(tb.rect.Max.X-14, tb.rect.Min.Y+4, tb.rect.Max.X-2, tb.rect.Max.Y-4)
}

func (tb *TabButton) Rect() image.Rectangle { return tb.rect }

func (tb *TabButton) SetRect(r image.Rectangle) { tb.rect = r }

func (tb *TabButton) Activate() {
	if tb.onClick != nil {
		tb.onClick()
	}
}

// Click activates the tab or closes it when p hits the close box.
func (tb *TabButton) Click(p image.Point) {
	if p.In(tb.closeRect()) && tb.onClose != nil {
		tb.onClose()
		return
	}
	tb.Activate()
}

// Shortcut is a clickable hint in the status bar.
type Shortcut struct {
	label  string
	action func()
	rect   image.Rectangle
	theme  *theme.Theme
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	bg := s.theme.ButtonBackground
	switch state {
	case StateHover:
		bg = s.theme.ButtonBackgroundHover
	case StatePressed:
		bg = s.theme.ButtonActive
	}
	draw.Draw(dst, s.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	paint.DrawOutline(dst, s.rect, s.theme.ButtonBorder, 1)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(s.theme.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(s.rect.Min.X+2, s.rect.Min.Y+14)}
	d.DrawString(s.label)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) { s.rect = r }

func (s *Shortcut) Activate() {
	if s.action != nil {
		s.action()
	}
}

func drawLabelBox(dst *image.RGBA, r image.Rectangle, label string, bg, fg, border color.RGBA) {
	draw.Draw(dst, r, &image.Uniform{bg}, image.Point{}, draw.Src)
	paint.DrawOutline(dst, r, border, 1)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
		Dot: fixed.P(r.Min.X+4, r.Min.Y+(r.Dy()+10)/2)}
	d.DrawString(label)
}

// labelWidth is the pixel width of s in the button face.
func labelWidth(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Ceil()
}
