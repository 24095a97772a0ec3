// Package ui renders the editor in a shiny window and translates window
// events into editor commands.
package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"slices"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/retouch/internal/capture"
	"github.com/example/retouch/internal/editor"
	"github.com/example/retouch/internal/filters"
	"github.com/example/retouch/internal/theme"
)

const (
	defaultWidth  = 1024
	defaultHeight = 720
)

var defaultBlankSize = image.Pt(800, 600)

// CaptureFunc grabs a screenshot for a new tab.
type CaptureFunc func(ctx context.Context) (*image.RGBA, error)

// App owns the window state and dispatches events to the editor.
type App struct {
	ed    *editor.Editor
	win   *Window
	theme *theme.Theme
	menu  filters.Menu
	title string

	keys    *keymap
	actions map[string]func()

	buttons  []*CacheButton
	isActive []func() bool

	capture   CaptureFunc
	onCapture func(title string, img image.Image)
	onClose   func()
	startDir  string

	sw            screen.Window
	painter       *painter
	pending       []any
	captureCancel context.CancelFunc

	pressed       bool
	pointer       image.Point
	pointerIn     bool
	hoverButton   int
	hoverTab      int
	hoverShortcut int
	prompt        *prompt
	confirmQuit   bool
	quit          bool
}

// Option modifies an App during creation.
type Option func(*App)

// WithTheme sets the window colors.
func WithTheme(t *theme.Theme) Option { return func(a *App) { a.theme = t } }

// WithMenu sets the filter entries shown in the toolbar.
func WithMenu(m filters.Menu) Option { return func(a *App) { a.menu = m } }

// WithCapture enables the screenshot action.
func WithCapture(fn CaptureFunc) Option { return func(a *App) { a.capture = fn } }

// WithCaptureListener registers a callback for screenshots opened as tabs.
func WithCaptureListener(fn func(title string, img image.Image)) Option {
	return func(a *App) { a.onCapture = fn }
}

// WithStartDir sets the directory file dialogs start in.
func WithStartDir(dir string) Option { return func(a *App) { a.startDir = dir } }

// WithSize sets the initial window size.
func WithSize(width, height int) Option {
	return func(a *App) { a.win.resize(width, height) }
}

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *App) { a.title = title } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New attaches a window and dialogs to ed.
func New(ed *editor.Editor, opts ...Option) *App {
	a := &App{
		ed:            ed,
		win:           NewWindow(defaultWidth, defaultHeight),
		theme:         theme.Default(),
		title:         "retouch",
		hoverButton:   -1,
		hoverTab:      -1,
		hoverShortcut: -1,
	}
	for _, o := range opts {
		o(a)
	}
	ed.SetWindow(a.win)
	ed.SetDialogs(dialogs{app: a})
	a.registerActions()
	a.buildToolbar()
	return a
}

// Window returns the editor-facing window.
func (a *App) Window() *Window { return a.win }

func (a *App) registerActions() {
	a.keys = newKeymap()
	a.actions = map[string]func(){}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		a.actions[name] = fn
		a.keys.bind(name, keys)
	}

	register("open", ctrl('o'), func() {
		if err := a.ed.Open(); err != nil {
			a.fail("open", err)
		}
	})
	register("new", ctrlShift('n'), func() {
		a.ed.NewImage(a.blankSize(), color.White)
	})
	register("capture", ctrl('n'), a.startCapture)
	register("save", ctrl('s'), func() { a.save(a.ed.Save) })
	register("save as", ctrlShift('s'), func() { a.save(a.ed.SaveAs) })
	register("close", ctrl('w'), a.ed.CloseCurrent)
	register("undo", ctrl('z'), a.ed.Undo)
	register("redo", append(ctrl('y'), ctrlShift('z')...), a.ed.Redo)
	register("copy", ctrl('c'), func() { a.copyWith(a.ed.Copy) })
	register("cut", ctrl('x'), func() { a.copyWith(a.ed.Cut) })
	register("paste", ctrl('v'), a.ed.Paste)
	register("commit", code(key.CodeReturnEnter), a.ed.CommitPaste)
	register("cancel", code(key.CodeEscape), a.ed.CancelPaste)
	register("select", plain('s'), a.ed.Select)
	register("brush", plain('b'), a.ed.Draw)
	register("info", plain('i'), a.ed.Properties)
	register("quit", ctrl('q'), a.requestQuit)
	for i := 1; i <= 9; i++ {
		page := i - 1
		register(fmt.Sprintf("tab %d", i), ctrl(rune('0'+i)), func() { a.selectPage(page) })
	}

	for _, entry := range a.menu {
		entry := entry // per-iteration copy; go directive is below 1.22
		name := "filter " + entry.ID
		var keys KeyboardShortcuts
		if r := []rune(entry.Key); len(r) == 1 {
			ev := key.Event{Rune: r[0], Direction: key.DirPress}
			if other, taken := a.keys.lookup(ev); taken {
				log.Printf("filter %s: key %q already bound to %s", entry.ID, entry.Key, other)
			} else {
				keys = plain(r[0])
			}
		}
		register(name, keys, func() {
			if err := a.ed.FilterWithParams(entry); err != nil {
				a.fail(entry.Label, err)
			}
		})
	}
}

func (a *App) buildToolbar() {
	add := func(label, action string, active func() bool) {
		if hint := a.keys.hint(action); hint != "" {
			label = hint + ":" + label
		}
		a.buttons = append(a.buttons, &CacheButton{Button: &ActionButton{
			label:  label,
			theme:  a.theme,
			action: func() { a.run(action) },
		}})
		a.isActive = append(a.isActive, active)
	}
	taskIs := func(t editor.Task) func() bool {
		return func() bool { return a.ed.Task() == t }
	}
	add("Select", "select", taskIs(editor.TaskSelect))
	add("Brush", "brush", taskIs(editor.TaskDrawBrush))
	add("Paste", "paste", taskIs(editor.TaskPaste))
	add("Commit", "commit", nil)
	add("Cancel", "cancel", nil)
	add("Copy", "copy", nil)
	add("Cut", "cut", nil)
	add("Undo", "undo", nil)
	add("Redo", "redo", nil)
	for _, entry := range a.menu {
		add(entry.Label, "filter "+entry.ID, nil)
	}

	w := a.win.toolbarWidth
	for _, cb := range a.buttons {
		w = max(w, labelWidth(cb.Button.(*ActionButton).label)+8)
	}
	a.win.toolbarWidth = w
	minHeight := tabHeight + statusHeight + len(a.buttons)*buttonHeight
	if a.win.height < minHeight {
		a.win.resize(a.win.width, minHeight)
	}
}

// statusActions are the hints shown in the status bar for the current task.
func (a *App) statusActions() []string {
	names := []string{"open", "save", "undo", "redo", "close", "info", "quit"}
	if a.ed.Task() == editor.TaskPaste {
		names = append([]string{"commit", "cancel"}, names...)
	}
	return names
}

func (a *App) statusLabels() []string {
	names := a.statusActions()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = a.keys.hint(n) + ":" + n
	}
	return out
}

func (a *App) statusText() string {
	d := a.ed.Current()
	if d == nil {
		return a.ed.Task().String()
	}
	b := d.Current().Bounds()
	return fmt.Sprintf("%s  %dx%d  %d/%d", a.ed.Task(), b.Dx(), b.Dy(), d.Index()+1, d.Len())
}

// run executes a named action. Unknown names are ignored.
func (a *App) run(name string) {
	if name != "quit" {
		a.confirmQuit = false
	}
	if fn, ok := a.actions[name]; ok {
		fn()
	}
	a.win.invalidate()
}

func (a *App) fail(what string, err error) {
	a.win.Status(fmt.Sprintf("%s: %v", what, err))
}

func (a *App) save(fn func() error) {
	if err := fn(); err != nil {
		a.fail("save", err)
		return
	}
	if d := a.ed.Current(); d != nil && d.Saved() {
		a.win.Status("saved " + d.Title())
	}
}

func (a *App) copyWith(fn func()) {
	before := a.ed.Clipboard()
	fn()
	if clip := a.ed.Clipboard(); clip != nil && clip != before {
		a.win.Status(fmt.Sprintf("copied %dx%d", clip.Bounds().Dx(), clip.Bounds().Dy()))
	}
}

func (a *App) requestQuit() {
	if !a.confirmQuit {
		for _, d := range a.ed.Documents() {
			if !d.Saved() {
				a.confirmQuit = true
				a.win.Status("unsaved changes, press ^Q again to quit")
				return
			}
		}
	}
	a.quit = true
}

// selectPage switches tabs. A paste in progress stays with its own tab, so
// it is cancelled first.
func (a *App) selectPage(i int) {
	if i < 0 || i >= a.win.PageCount() || i == a.win.CurrentPage() {
		return
	}
	if a.ed.Task() == editor.TaskPaste {
		a.ed.CancelPaste()
	}
	a.win.SelectPage(i)
}

func (a *App) blankSize() image.Point {
	if img := a.ed.CurrentImage(); img != nil {
		return img.Bounds().Size()
	}
	return defaultBlankSize
}

type captureEvent struct {
	img *image.RGBA
	err error
}

func (a *App) startCapture() {
	if a.capture == nil || a.sw == nil {
		a.win.Status("screenshots are not available")
		return
	}
	if a.captureCancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.captureCancel = cancel
	w := a.sw
	go func() {
		img, err := a.capture(ctx)
		w.Send(captureEvent{img: img, err: err})
	}()
}

func (a *App) finishCapture(e captureEvent) {
	if a.captureCancel != nil {
		a.captureCancel()
		a.captureCancel = nil
	}
	switch {
	case errors.Is(e.err, capture.ErrCancelled):
		a.win.Status("capture cancelled")
	case e.err != nil:
		a.fail("capture", e.err)
	case e.img != nil:
		title := "screenshot-" + time.Now().Format("150405")
		a.ed.AddUntitled(e.img, title)
		if a.onCapture != nil {
			a.onCapture(title, e.img)
		}
	}
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

// Main runs the event loop on s until the window closes.
func (a *App) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.win.width, Height: a.win.height, Title: a.title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()
	if a.onClose != nil {
		defer a.onClose()
	}

	a.sw = w
	a.painter = newPainter(s, w)
	a.win.repaint = func() { w.Send(paint.Event{}) }
	defer func() {
		a.win.repaint = nil
		a.painter.stop()
		if a.captureCancel != nil {
			a.captureCancel()
		}
		a.sw = nil
	}()

	for !a.quit {
		if !a.handle(w.NextEvent()) {
			return
		}
		for len(a.pending) > 0 {
			e := a.pending[0]
			a.pending = a.pending[1:]
			if !a.handle(e) {
				return
			}
		}
	}
}

// handle dispatches one event and reports whether the loop should go on.
func (a *App) handle(e any) bool {
	switch e := e.(type) {
	case lifecycle.Event:
		if e.To == lifecycle.StageDead {
			return false
		}
	case size.Event:
		a.win.resize(e.WidthPx, e.HeightPx)
		a.win.invalidate()
	case paint.Event:
		a.painter.submit(a.snapshot())
	case captureEvent:
		a.finishCapture(e)
	case mouse.Event:
		a.handleMouse(e)
	case key.Event:
		a.handleKey(e)
	}
	return true
}

func (a *App) handleKey(e key.Event) {
	if e.Direction != key.DirPress {
		return
	}
	name, ok := a.keys.lookup(e)
	if !ok {
		a.confirmQuit = false
		return
	}
	a.run(name)
}

func (a *App) handleMouse(e mouse.Event) {
	p := image.Pt(int(e.X), int(e.Y))
	press := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress
	a.pointer = p
	a.pointerIn = p.In(a.win.Allocation(a.win.CurrentPage()))
	defer a.win.invalidate()

	if press && a.win.message != "" && time.Now().Before(a.win.messageUntil) {
		a.win.messageUntil = time.Time{}
		return
	}
	a.hoverButton, a.hoverTab, a.hoverShortcut = -1, -1, -1

	switch {
	case a.pressed:
		a.canvasMouse(e, p)
	case p.Y >= a.win.height-statusHeight:
		for i, r := range shortcutRects(a.statusLabels(), a.win.toolbarWidth, a.win.height) {
			if p.In(r) {
				a.hoverShortcut = i
				if press {
					a.run(a.statusActions()[i])
				}
				break
			}
		}
	case p.Y < tabHeight:
		for i := 0; i < a.win.PageCount(); i++ {
			r := tabRect(i, a.win.toolbarWidth)
			if !p.In(r) {
				continue
			}
			a.hoverTab = i
			if press {
				tb := TabButton{
					rect:    r,
					onClick: func() { a.selectPage(i) },
					onClose: func() { a.ed.CloseImage(i) },
				}
				tb.Click(p)
			}
			break
		}
	case p.X < a.win.toolbarWidth:
		idx := (p.Y - tabHeight) / buttonHeight
		if idx >= 0 && idx < len(a.buttons) {
			a.hoverButton = idx
			if press {
				a.buttons[idx].Activate()
			}
		}
	default:
		a.canvasMouse(e, p)
	}
}

// canvasMouse forwards button and drag events to the editor. A drag that
// started on the canvas keeps going when the pointer leaves it.
func (a *App) canvasMouse(e mouse.Event, p image.Point) {
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		a.pressed = true
		a.ed.Press(p)
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		if !a.pressed {
			return
		}
		a.pressed = false
		a.ed.Release(p)
	case e.Direction == mouse.DirNone && a.pressed:
		a.ed.Move(p)
	}
}

func (a *App) snapshot() frame {
	f := frame{
		width:         a.win.width,
		height:        a.win.height,
		toolbarWidth:  a.win.toolbarWidth,
		theme:         a.theme,
		current:       a.win.CurrentPage(),
		shown:         a.win.Shown(),
		cursor:        a.win.cursor,
		pointer:       a.pointer,
		pointerIn:     a.pointerIn,
		buttons:       a.buttons,
		active:        make([]bool, len(a.buttons)),
		shortcuts:     a.statusLabels(),
		status:        a.statusText(),
		hoverButton:   a.hoverButton,
		hoverTab:      a.hoverTab,
		hoverShortcut: a.hoverShortcut,
		message:       a.win.message,
		messageUntil:  a.win.messageUntil,
	}
	docs := a.ed.Documents()
	for i, pg := range a.win.pages {
		f.tabs = append(f.tabs, tabView{label: pg.label, dirty: i < len(docs) && !docs[i].Saved()})
	}
	for i, fn := range a.isActive {
		f.active[i] = fn != nil && fn()
	}
	if sel := a.ed.Selection(); sel.Complete() && a.ed.Task() == editor.TaskSelect {
		f.selection = sel.Rect()
	}
	if a.prompt != nil {
		p := *a.prompt
		p.fields = slices.Clone(a.prompt.fields)
		f.prompt = &p
	}
	return f
}

// runPrompt shows p over the canvas and pumps window events until it is
// dismissed. Events the prompt cannot handle are queued for the main loop.
func (a *App) runPrompt(p *prompt) bool {
	if a.sw == nil {
		return false
	}
	a.prompt = p
	defer func() {
		a.prompt = nil
		a.win.invalidate()
	}()
	a.win.invalidate()
	for {
		switch e := a.sw.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				a.pending = append(a.pending, e)
				return false
			}
		case size.Event:
			a.win.resize(e.WidthPx, e.HeightPx)
			a.win.invalidate()
		case paint.Event:
			a.painter.submit(a.snapshot())
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			done, ok := p.key(e)
			a.win.invalidate()
			if done {
				return ok
			}
		case captureEvent:
			a.pending = append(a.pending, e)
		}
	}
}

// painter renders frames off the event goroutine, cancelling stale frames
// when newer ones arrive.
type painter struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	drops  int
	ch     chan frame
}

func newPainter(s screen.Screen, w screen.Window) *painter {
	p := &painter{ch: make(chan frame, 1)}
	go func() {
		for f := range p.ch {
			ctx, cancel := context.WithCancel(context.Background())
			p.mu.Lock()
			p.cancel = cancel
			p.mu.Unlock()
			drawFrame(ctx, s, w, f)
			p.mu.Lock()
			p.cancel = nil
			if ctx.Err() == nil {
				p.drops = 0
			}
			p.mu.Unlock()
			cancel()
		}
	}()
	return p
}

func (p *painter) submit(f frame) {
	p.mu.Lock()
	if p.cancel != nil && p.drops < frameDropThreshold {
		p.cancel()
		p.drops++
	}
	p.mu.Unlock()
	for {
		select {
		case p.ch <- f:
			return
		default:
			select {
			case <-p.ch:
			default:
			}
		}
	}
}

func (p *painter) stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()
	close(p.ch)
}
