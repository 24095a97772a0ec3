package ui

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/retouch/internal/editor"
	"github.com/example/retouch/internal/paint"
	"github.com/example/retouch/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var (
	titleFace   font.Face
	messageFace font.Face
)

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	titleFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 16, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 28, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

type tabView struct {
	label string
	dirty bool
}

// frame is an immutable snapshot of everything drawFrame needs. It is built
// on the event goroutine and painted on the paint goroutine.
type frame struct {
	width, height int
	toolbarWidth  int
	theme         *theme.Theme

	tabs    []tabView
	current int
	shown   image.Image
	// selection is in image coordinates; empty when nothing is selected.
	selection image.Rectangle

	cursor    editor.Cursor
	pointer   image.Point
	pointerIn bool

	buttons   []*CacheButton
	active    []bool
	shortcuts []string
	status    string

	hoverButton   int
	hoverTab      int
	hoverShortcut int

	message      string
	messageUntil time.Time
	prompt       *prompt
}

func (f *frame) canvas() image.Rectangle {
	return image.Rect(f.toolbarWidth, tabHeight, f.width, f.height-statusHeight)
}

func toolbarButtonRect(i, toolbarWidth int) image.Rectangle {
	y := tabHeight + i*buttonHeight
	return image.Rect(0, y, toolbarWidth, y+buttonHeight)
}

func tabRect(i, toolbarWidth int) image.Rectangle {
	x := toolbarWidth + i*tabWidth
	return image.Rect(x, 0, x+tabWidth, tabHeight)
}

// shortcutRects lays the status bar hints out from the left.
func shortcutRects(labels []string, toolbarWidth, height int) []image.Rectangle {
	out := make([]image.Rectangle, len(labels))
	x := toolbarWidth + 4
	y := height - statusHeight + 16
	for i, l := range labels {
		out[i] = image.Rect(x-2, y-14, x+labelWidth(l)+2, y+4)
		x = out[i].Max.X + 8
	}
	return out
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, f frame) {
	b, err := s.NewBuffer(image.Point{f.width, f.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()
	th := f.theme

	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)
	if ctx.Err() != nil {
		return
	}

	canvas := f.canvas()
	if f.shown != nil {
		size := f.shown.Bounds().Size()
		r, _ := paint.Fit(size, canvas)
		paint.DrawCheckerboard(dst, r, 8, th.CheckerLight, th.CheckerDark)
		if r.Size() == size {
			draw.Draw(dst, r, f.shown, f.shown.Bounds().Min, draw.Over)
		} else {
			xdraw.ApproxBiLinear.Scale(dst, r, f.shown, f.shown.Bounds(), draw.Over, nil)
		}
		if !f.selection.Empty() {
			sel := image.Rectangle{
				Min: paint.FromImage(size, canvas, f.selection.Min),
				Max: paint.FromImage(size, canvas, f.selection.Max),
			}
			paint.DrawMarquee(dst, sel, th.Selection, th.SelectionAlt)
		}
	}
	if ctx.Err() != nil {
		return
	}

	if f.pointerIn && f.shown != nil {
		drawCursor(dst, f.pointer, f.cursor, th.Foreground)
	}

	drawTabs(dst, f)
	drawToolbar(dst, f)
	drawStatus(dst, f)
	if ctx.Err() != nil {
		return
	}

	if f.message != "" && time.Now().Before(f.messageUntil) {
		drawMessage(dst, f.message, f.width, f.height)
	}
	if f.prompt != nil {
		drawPrompt(dst, f.prompt, canvas, th)
	}
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func drawTabs(dst *image.RGBA, f frame) {
	th := f.theme
	draw.Draw(dst, image.Rect(0, 0, dst.Bounds().Dx(), tabHeight), &image.Uniform{th.TabBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.TabText), Face: basicfont.Face7x13, Dot: fixed.P(4, 16)}
	d.DrawString("retouch")

	for i, t := range f.tabs {
		label := []rune(t.label)
		if t.dirty {
			label = append(label, '*')
		}
		for len(label) > 1 && labelWidth(string(label)) > tabWidth-24 {
			label = label[:len(label)-1]
		}
		tb := TabButton{label: string(label), theme: th}
		tb.SetRect(tabRect(i, f.toolbarWidth))
		state := StateDefault
		if i == f.current {
			state = StatePressed
		} else if i == f.hoverTab {
			state = StateHover
		}
		tb.Draw(dst, state)
	}
}

func drawToolbar(dst *image.RGBA, f frame) {
	th := f.theme
	draw.Draw(dst, image.Rect(0, tabHeight, f.toolbarWidth, f.height-statusHeight), &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	for i, cb := range f.buttons {
		cb.SetRect(toolbarButtonRect(i, f.toolbarWidth))
		state := StateDefault
		if f.active[i] {
			state = StatePressed
		} else if i == f.hoverButton {
			state = StateHover
		}
		cb.Draw(dst, state)
	}
}

func drawStatus(dst *image.RGBA, f frame) {
	th := f.theme
	bar := image.Rect(0, f.height-statusHeight, f.width, f.height)
	draw.Draw(dst, bar, &image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	for i, r := range shortcutRects(f.shortcuts, f.toolbarWidth, f.height) {
		sc := Shortcut{label: f.shortcuts[i], theme: th}
		sc.SetRect(r)
		state := StateDefault
		if i == f.hoverShortcut {
			state = StateHover
		}
		sc.Draw(dst, state)
	}
	if f.status != "" {
		x := f.width - labelWidth(f.status) - 6
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.StatusText), Face: basicfont.Face7x13,
			Dot: fixed.P(x, f.height-statusHeight+16)}
		d.DrawString(f.status)
	}
}

// drawCursor marks the pointer with a glyph for the active task, since the
// window system cursor is not under our control.
func drawCursor(dst *image.RGBA, p image.Point, c editor.Cursor, col color.Color) {
	switch c {
	case editor.CursorDraw:
		paint.DrawOutline(dst, image.Rect(p.X-3, p.Y-3, p.X+4, p.Y+4), col, 1)
	case editor.CursorMove:
		paint.DrawOutline(dst, image.Rect(p.X-8, p.Y, p.X+9, p.Y+1), col, 1)
		paint.DrawOutline(dst, image.Rect(p.X, p.Y-8, p.X+1, p.Y+9), col, 1)
		paint.DrawOutline(dst, image.Rect(p.X-3, p.Y-3, p.X+4, p.Y+4), col, 1)
	case editor.CursorDefault:
	}
}

func drawMessage(dst *image.RGBA, msg string, width, height int) {
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: messageFace}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	px := (width - wmsg) / 2
	py := (height-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 230}}, image.Point{}, draw.Over)
	paint.DrawOutline(dst, rect, color.Black, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

func drawPrompt(dst *image.RGBA, p *prompt, canvas image.Rectangle, th *theme.Theme) {
	const lineHeight = 20
	rows := len(p.lines) + len(p.fields) + 2
	w := 360
	for _, l := range p.lines {
		w = max(w, labelWidth(l)+24)
	}
	h := 32 + rows*lineHeight
	x0 := canvas.Min.X + (canvas.Dx()-w)/2
	y0 := canvas.Min.Y + (canvas.Dy()-h)/2
	box := image.Rect(x0, y0, x0+w, y0+h)
	draw.Draw(dst, box, &image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	paint.DrawOutline(dst, box, th.ButtonBorder, 2)

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.StatusText), Face: titleFace, Dot: fixed.P(x0+12, y0+24)}
	d.DrawString(p.title)

	y := y0 + 32 + lineHeight
	text := &font.Drawer{Dst: dst, Src: image.NewUniform(th.StatusText), Face: basicfont.Face7x13}
	for _, l := range p.lines {
		text.Dot = fixed.P(x0+12, y)
		text.DrawString(l)
		y += lineHeight
	}
	for i, f := range p.fields {
		text.Dot = fixed.P(x0+12, y)
		text.DrawString(f.label)
		field := image.Rect(x0+w/2, y-14, x0+w-12, y+4)
		draw.Draw(dst, field, &image.Uniform{th.ButtonBackground}, image.Point{}, draw.Src)
		border := th.ButtonBorder
		value := f.text
		if i == p.focus {
			border = th.ButtonActive
			value += "|"
		}
		paint.DrawOutline(dst, field, border, 1)
		text.Dot = fixed.P(field.Min.X+4, y)
		text.DrawString(value)
		y += lineHeight
	}
	hint := "Enter: OK   Esc: cancel"
	if len(p.fields) == 0 {
		hint = "Enter: close"
	}
	if p.err != "" {
		hint = p.err
	}
	text.Dot = fixed.P(x0+12, y)
	text.DrawString(hint)
}
