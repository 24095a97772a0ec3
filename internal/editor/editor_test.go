package editor

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/retouch/internal/document"
	"github.com/example/retouch/internal/filters"
	"github.com/example/retouch/internal/imageio"
	"github.com/example/retouch/internal/paint"
)

type fakeWindow struct {
	page    int
	labels  []string
	shown   image.Image
	cursor  Cursor
	alloc   image.Rectangle
	updates int
}

func (w *fakeWindow) CurrentPage() int { return w.page }

func (w *fakeWindow) AddPage(label string, img image.Image) {
	w.labels = append(w.labels, label)
	w.page = len(w.labels) - 1
	w.shown = img
}

func (w *fakeWindow) RemovePage(page int) {
	w.labels = append(w.labels[:page], w.labels[page+1:]...)
	if page < w.page || w.page >= len(w.labels) {
		w.page--
	}
	if w.page < 0 {
		w.page = 0
	}
}

func (w *fakeWindow) SetTabLabel(page int, label string) { w.labels[page] = label }

func (w *fakeWindow) Allocation(int) image.Rectangle { return w.alloc }

func (w *fakeWindow) SetCursor(c Cursor) { w.cursor = c }

func (w *fakeWindow) UpdateImage(img image.Image) {
	w.shown = img
	w.updates++
}

type fakeDialogs struct {
	path      string
	pathOK    bool
	modes     []FileMode
	values    []float64
	valuesOK  bool
	paramsFor string
	infoTitle string
	info      []document.Property
}

func (d *fakeDialogs) FileDialog(mode FileMode) (string, bool) {
	d.modes = append(d.modes, mode)
	return d.path, d.pathOK
}

func (d *fakeDialogs) ParamsDialog(title string, _ []filters.Limit) ([]float64, bool) {
	d.paramsFor = title
	return d.values, d.valuesOK
}

func (d *fakeDialogs) InfoDialog(title string, info []document.Property) {
	d.infoTitle = title
	d.info = info
}

type fakeClipboard struct {
	written image.Image
	read    image.Image
	err     error
}

func (c *fakeClipboard) WriteImage(img image.Image) error {
	c.written = img
	return c.err
}

func (c *fakeClipboard) ReadImage() (image.Image, error) {
	if c.read == nil {
		return nil, errors.New("empty")
	}
	return c.read, nil
}

// pattern returns a w x h image whose pixels encode their coordinates.
func pattern(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 10), uint8(y * 10), 7, 255})
		}
	}
	return img
}

// bumpRegistry has a single filter that increments the red channel of the
// first pixel so every application yields a distinct buffer.
func bumpRegistry(t *testing.T) *filters.Registry {
	t.Helper()
	reg, err := filters.NewRegistry(filters.Filter{ID: "bump", Apply: func(img image.Image, _ []float64) *image.RGBA {
		out := paint.Clone(img)
		out.Pix[0]++
		return out
	}}, filters.Filter{ID: "set", Arity: 1, Apply: func(img image.Image, p []float64) *image.RGBA {
		out := paint.Clone(img)
		out.Pix[0] = uint8(p[0])
		return out
	}})
	require.NoError(t, err)
	return reg
}

func newTestEditor(t *testing.T, opts ...Option) (*Editor, *fakeWindow, *fakeDialogs) {
	t.Helper()
	w := &fakeWindow{}
	d := &fakeDialogs{}
	return New(w, d, bumpRegistry(t), opts...), w, d
}

func TestElevenFiltersKeepLastTen(t *testing.T) {
	e, w, _ := newTestEditor(t)
	e.AddImage(pattern(4, 4), "")
	for i := 0; i < 11; i++ {
		require.NoError(t, e.ApplyFilter("bump", nil))
	}
	d := e.Current()
	require.Equal(t, DefaultHistoryLimit, d.Len())
	assert.Equal(t, d.Len()-1, d.Index())
	for i, img := range d.History() {
		assert.Equal(t, uint8(i+2), img.Pix[0], "entry %d", i)
	}
	assert.Equal(t, uint8(11), e.CurrentImage().Pix[0])
	assert.Same(t, e.CurrentImage(), w.shown)

	e.Undo()
	assert.Equal(t, uint8(10), e.CurrentImage().Pix[0])
	assert.Same(t, e.CurrentImage(), w.shown)
}

func TestHistoryLimitOption(t *testing.T) {
	e, _, _ := newTestEditor(t, WithHistoryLimit(3))
	e.AddImage(pattern(2, 2), "")
	for i := 0; i < 5; i++ {
		require.NoError(t, e.ApplyFilter("bump", nil))
	}
	assert.Equal(t, 3, e.Current().Len())
}

func TestUndoRedoRestoresExactBuffer(t *testing.T) {
	e, _, _ := newTestEditor(t)
	e.AddImage(pattern(2, 2), "")
	for i := 0; i < 3; i++ {
		require.NoError(t, e.ApplyFilter("bump", nil))
	}
	e.Undo()
	before := e.CurrentImage()
	e.Undo()
	e.Redo()
	assert.Same(t, before, e.CurrentImage())
}

func TestUndoRedoBoundaries(t *testing.T) {
	e, w, _ := newTestEditor(t)
	e.Undo()
	e.Redo()

	e.AddImage(pattern(2, 2), "")
	updates := w.updates
	e.Undo()
	e.Redo()
	assert.Equal(t, updates, w.updates, "single entry history must not redisplay")

	require.NoError(t, e.ApplyFilter("bump", nil))
	e.Redo()
	assert.Equal(t, 1, e.Current().Index())
	e.Undo()
	e.Undo()
	assert.Equal(t, 0, e.Current().Index())
}

func TestCommitAfterUndoDropsFuture(t *testing.T) {
	e, _, _ := newTestEditor(t)
	e.AddImage(pattern(2, 2), "")
	require.NoError(t, e.ApplyFilter("set", []float64{50}))
	require.NoError(t, e.ApplyFilter("set", []float64{60}))
	e.Undo()
	e.Undo()
	require.NoError(t, e.ApplyFilter("set", []float64{99}))
	e.Redo()
	d := e.Current()
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, uint8(99), e.CurrentImage().Pix[0])
	for _, img := range d.History() {
		assert.NotEqual(t, uint8(50), img.Pix[0])
		assert.NotEqual(t, uint8(60), img.Pix[0])
	}
}

func TestApplyFilterErrors(t *testing.T) {
	e, _, _ := newTestEditor(t)
	assert.NoError(t, e.ApplyFilter("missing", nil), "no open image is a no-op")

	e.AddImage(pattern(2, 2), "")
	err := e.ApplyFilter("missing", nil)
	assert.ErrorIs(t, err, filters.ErrUnknownFilter)
	err = e.ApplyFilter("set", nil)
	assert.ErrorIs(t, err, filters.ErrParams)
	assert.Equal(t, 1, e.Current().Len())
}

func TestFilterWithParams(t *testing.T) {
	e, _, dlg := newTestEditor(t)
	entry := filters.MenuEntry{ID: "set", Label: "Set", Title: "Set first byte", Limits: []filters.Limit{{Name: "v", Max: 255}}}

	require.NoError(t, e.FilterWithParams(entry))
	assert.Empty(t, dlg.paramsFor, "no dialog without an open image")

	e.AddImage(pattern(2, 2), "")
	require.NoError(t, e.FilterWithParams(entry))
	assert.Equal(t, "Set first byte", dlg.paramsFor)
	assert.Equal(t, 1, e.Current().Len(), "declined dialog applies nothing")

	dlg.values, dlg.valuesOK = []float64{42}, true
	require.NoError(t, e.FilterWithParams(entry))
	assert.Equal(t, uint8(42), e.CurrentImage().Pix[0])

	require.NoError(t, e.FilterWithParams(filters.MenuEntry{ID: "bump", Label: "Bump"}))
	assert.Equal(t, uint8(43), e.CurrentImage().Pix[0])
}

func TestTaskTransitionsSetCursor(t *testing.T) {
	e, w, _ := newTestEditor(t)
	e.Draw()
	assert.Equal(t, TaskSelect, e.Task(), "tools need an open image")

	e.AddImage(pattern(4, 4), "")
	e.Draw()
	assert.Equal(t, TaskDrawBrush, e.Task())
	assert.Equal(t, CursorDraw, w.cursor)
	e.Select()
	assert.Equal(t, TaskSelect, e.Task())
	assert.Equal(t, CursorDefault, w.cursor)
}

func TestSelectionByDrag(t *testing.T) {
	e, w, _ := newTestEditor(t)
	e.AddImage(pattern(10, 10), "")
	e.Press(image.Pt(6, 7))
	sel := e.Selection()
	assert.Equal(t, []int{6, 7}, sel.Coords())

	e.Move(image.Pt(2, 3))
	assert.NotSame(t, e.CurrentImage(), w.shown, "drag shows a preview copy")
	assert.Nil(t, e.Current().Scratch(), "selection preview is never stored")
	assert.Equal(t, 1, e.Current().Len())

	e.Release(image.Pt(2, 3))
	sel = e.Selection()
	assert.True(t, sel.Complete())
	assert.Equal(t, []int{6, 7, 2, 3}, sel.Coords())
	assert.Equal(t, image.Rect(2, 3, 6, 7), sel.Rect())
}

func TestSelectionMapsThroughAllocation(t *testing.T) {
	e, w, _ := newTestEditor(t)
	e.AddImage(pattern(10, 10), "")
	w.alloc = image.Rect(0, 0, 30, 30)
	e.Press(image.Pt(12, 12))
	e.Release(image.Pt(100, 100))
	assert.Equal(t, image.Rect(2, 2, 10, 10), e.Selection().Rect())
}

func TestBrushStrokeCommitsOnce(t *testing.T) {
	e, w, _ := newTestEditor(t, WithBrush(1, color.RGBA{A: 255}))
	e.AddImage(paint.Blank(image.Pt(10, 10), color.White), "")
	e.Draw()
	e.Press(image.Pt(1, 1))
	e.Move(image.Pt(5, 1))
	e.Move(image.Pt(8, 1))
	assert.Equal(t, 1, e.Current().Len(), "nothing is committed while drawing")
	require.NotNil(t, e.Current().Scratch())
	assert.Same(t, e.Current().Scratch(), w.shown)

	e.Release(image.Pt(8, 1))
	d := e.Current()
	assert.Nil(t, d.Scratch())
	require.Equal(t, 2, d.Len())
	img := e.CurrentImage()
	for x := 1; x <= 8; x++ {
		assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(x, 1), "x=%d", x)
	}
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(1, 5))

	e.Release(image.Pt(8, 1))
	assert.Equal(t, 2, d.Len(), "release without a stroke commits nothing")
}

func TestCopyPasteCommit(t *testing.T) {
	e, w, _ := newTestEditor(t)
	src := pattern(10, 10)
	e.AddImage(src, "")

	e.Paste()
	assert.Equal(t, TaskSelect, e.Task(), "empty clipboard")

	e.Press(image.Pt(1, 1))
	e.Release(image.Pt(4, 4))
	e.Copy()
	clip := e.Clipboard()
	require.NotNil(t, clip)
	assert.Equal(t, image.Rect(0, 0, 3, 3), clip.Bounds())
	assert.Equal(t, src.RGBAAt(1, 1), clip.RGBAAt(0, 0))

	e.Paste()
	assert.Equal(t, TaskPaste, e.Task())
	assert.Equal(t, CursorMove, w.cursor)
	first := e.Current().Scratch()
	require.NotNil(t, first)
	assert.Equal(t, src.RGBAAt(1, 1), first.RGBAAt(0, 0), "first paste lands at the origin")
	assert.Equal(t, 1, e.Current().Len())

	e.Move(image.Pt(6, 6))
	e.CommitPaste()
	assert.Equal(t, TaskSelect, e.Task())
	assert.Equal(t, CursorDefault, w.cursor)
	assert.Nil(t, e.Current().Scratch())
	require.Equal(t, 2, e.Current().Len())

	want := paint.Clone(src)
	paint.Paste(want, paint.Crop(src, image.Rect(1, 1, 4, 4)), image.Pt(5, 5))
	assert.Equal(t, want.Pix, e.CurrentImage().Pix)
	assert.Same(t, src, e.Current().History()[0], "source buffer is untouched")
}

func TestSelectCommitsPendingPaste(t *testing.T) {
	e, _, _ := newTestEditor(t)
	e.AddImage(pattern(6, 6), "")
	e.Press(image.Pt(0, 0))
	e.Release(image.Pt(2, 2))
	e.Copy()
	e.Paste()
	e.Move(image.Pt(4, 4))
	e.Select()
	assert.Equal(t, TaskSelect, e.Task())
	assert.Equal(t, 2, e.Current().Len())
}

func TestCancelPasteDiscards(t *testing.T) {
	e, w, _ := newTestEditor(t)
	e.AddImage(pattern(6, 6), "")
	e.Press(image.Pt(0, 0))
	e.Release(image.Pt(2, 2))
	e.Copy()
	e.Paste()
	e.Move(image.Pt(4, 4))
	e.CancelPaste()
	assert.Equal(t, TaskSelect, e.Task())
	assert.Nil(t, e.Current().Scratch())
	assert.Equal(t, 1, e.Current().Len())
	assert.Same(t, e.CurrentImage(), w.shown)

	e.CommitPaste()
	assert.Equal(t, 1, e.Current().Len(), "commit outside paste mode is a no-op")
}

func TestDrawCommitsPendingPaste(t *testing.T) {
	e, w, _ := newTestEditor(t)
	e.AddImage(pattern(6, 6), "")
	e.Press(image.Pt(0, 0))
	e.Release(image.Pt(2, 2))
	e.Copy()
	e.Paste()
	e.Draw()
	assert.Equal(t, TaskDrawBrush, e.Task())
	assert.Equal(t, CursorDraw, w.cursor)
	assert.Equal(t, 2, e.Current().Len())
}

func TestCut(t *testing.T) {
	fill := color.RGBA{1, 2, 3, 255}
	e, _, _ := newTestEditor(t, WithFill(fill))
	src := pattern(8, 8)
	e.AddImage(src, "")
	e.Cut()
	assert.Equal(t, 1, e.Current().Len(), "cut needs a selection")

	e.Press(image.Pt(5, 5))
	e.Release(image.Pt(2, 2))
	e.Cut()

	assert.Equal(t, paint.Crop(src, image.Rect(2, 2, 5, 5)).Pix, e.Clipboard().Pix)
	require.Equal(t, 2, e.Current().Len())
	want := paint.Clone(src)
	paint.Fill(want, image.Rect(2, 2, 5, 5), fill)
	assert.Equal(t, want.Pix, e.CurrentImage().Pix)
}

func TestCopyNeedsCompleteSelection(t *testing.T) {
	e, _, _ := newTestEditor(t)
	e.AddImage(pattern(8, 8), "")
	e.Press(image.Pt(1, 1))
	e.Copy()
	assert.Nil(t, e.Clipboard())

	e.Release(image.Pt(1, 1))
	e.Copy()
	assert.Nil(t, e.Clipboard(), "zero-area selection")
}

func TestSystemClipboardMirror(t *testing.T) {
	sys := &fakeClipboard{}
	var copied image.Image
	e, _, _ := newTestEditor(t, WithSystemClipboard(sys), WithCopyListener(func(img image.Image) { copied = img }))
	e.AddImage(pattern(8, 8), "")
	e.Press(image.Pt(0, 0))
	e.Release(image.Pt(3, 3))
	e.Copy()
	assert.Same(t, e.Clipboard(), sys.written)
	assert.Same(t, e.Clipboard(), copied)

	sys.err = errors.New("no display")
	e.Release(image.Pt(4, 4))
	e.Copy()
	assert.Equal(t, image.Rect(0, 0, 4, 4), e.Clipboard().Bounds(), "system clipboard failure is not fatal")
}

func TestPasteImportsSystemClipboard(t *testing.T) {
	sys := &fakeClipboard{read: paint.Blank(image.Pt(2, 2), color.RGBA{9, 9, 9, 255})}
	e, _, _ := newTestEditor(t, WithSystemClipboard(sys))
	e.AddImage(pattern(6, 6), "")
	e.Paste()
	require.NotNil(t, e.Clipboard())
	assert.Equal(t, TaskPaste, e.Task())
	assert.Equal(t, color.RGBA{9, 9, 9, 255}, e.Current().Scratch().RGBAAt(1, 1))
}

func TestCloseOnlyTab(t *testing.T) {
	e, w, _ := newTestEditor(t)
	e.AddImage(pattern(6, 6), "")
	e.Draw()
	e.Select()
	e.Press(image.Pt(1, 1))
	e.Release(image.Pt(3, 3))
	e.Draw()

	e.CloseImage(0)
	assert.Equal(t, TaskSelect, e.Task())
	assert.Empty(t, e.Documents())
	assert.True(t, e.Selection().Empty())
	assert.Equal(t, CursorDefault, w.cursor)
	assert.Empty(t, w.labels)
	assert.Nil(t, e.CurrentImage())

	e.CloseImage(0)
}

func TestCloseKeepsOtherTabs(t *testing.T) {
	e, w, _ := newTestEditor(t)
	e.AddImage(pattern(2, 2), "/tmp/a.png")
	e.AddImage(pattern(3, 3), "/tmp/b.png")
	e.CloseImage(0)
	require.Len(t, e.Documents(), 1)
	assert.Equal(t, []string{"b.png"}, w.labels)
	assert.Equal(t, image.Rect(0, 0, 3, 3), e.CurrentImage().Bounds())
}

func TestCloseEarlierTabKeepsCurrent(t *testing.T) {
	for _, closed := range []int{0, 1} {
		e, w, _ := newTestEditor(t)
		e.AddImage(pattern(2, 2), "/tmp/a.png")
		e.AddImage(pattern(3, 3), "/tmp/b.png")
		e.AddImage(pattern(4, 4), "/tmp/c.png")
		require.Equal(t, 2, w.page)
		third := e.Documents()[2]

		e.CloseImage(closed)
		require.Len(t, e.Documents(), 2, "closed %d", closed)
		assert.Equal(t, 1, w.page, "closed %d", closed)
		assert.Same(t, third, e.Current(), "closed %d", closed)
		assert.Equal(t, image.Rect(0, 0, 4, 4), e.CurrentImage().Bounds(), "closed %d", closed)
	}
	e, w, _ := newTestEditor(t)
	e.AddImage(pattern(2, 2), "/tmp/a.png")
	e.AddImage(pattern(3, 3), "/tmp/b.png")
	e.AddImage(pattern(4, 4), "/tmp/c.png")
	e.CloseImage(1)
	assert.Equal(t, []string{"a.png", "c.png"}, w.labels)
}

func TestCloseBackgroundTabDiscardsPaste(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}
	sys := &fakeClipboard{read: paint.Blank(image.Pt(3, 3), red)}
	e, w, _ := newTestEditor(t, WithSystemClipboard(sys), WithBrush(1, color.RGBA{A: 255}))
	e.AddImage(paint.Blank(image.Pt(10, 10), color.White), "")
	e.AddImage(paint.Blank(image.Pt(10, 10), color.White), "")

	e.Paste()
	require.Equal(t, TaskPaste, e.Task())
	require.NotNil(t, e.Current().Scratch())

	e.CloseImage(0)
	d := e.Current()
	require.NotNil(t, d)
	assert.Equal(t, TaskSelect, e.Task())
	assert.Nil(t, d.Scratch())
	assert.Same(t, d.Current(), w.shown)

	e.Draw()
	e.Press(image.Pt(8, 8))
	e.Release(image.Pt(8, 8))
	require.Equal(t, 2, d.Len())
	assert.Equal(t, white, e.CurrentImage().RGBAAt(1, 1), "pasted pixels are not committed")
	assert.Equal(t, color.RGBA{A: 255}, e.CurrentImage().RGBAAt(8, 8))
}

func TestFilterDuringPasteSurvivesCommit(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	sys := &fakeClipboard{read: paint.Blank(image.Pt(2, 2), red)}
	w := &fakeWindow{}
	e := New(w, &fakeDialogs{}, filters.Default(), WithSystemClipboard(sys))
	e.AddImage(paint.Blank(image.Pt(10, 10), color.White), "")

	e.Paste()
	require.Equal(t, TaskPaste, e.Task())
	require.NoError(t, e.ApplyFilter("invert", nil))
	assert.Equal(t, TaskPaste, e.Task())
	preview := e.Current().Scratch()
	require.NotNil(t, preview)
	assert.Same(t, preview, w.shown)
	assert.Equal(t, color.RGBA{A: 255}, preview.RGBAAt(5, 5))
	assert.Equal(t, red, preview.RGBAAt(0, 0))

	e.CommitPaste()
	d := e.Current()
	assert.Nil(t, d.Scratch())
	require.Equal(t, 3, d.Len())
	img := e.CurrentImage()
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(5, 5))
	assert.Equal(t, red, img.RGBAAt(0, 0))
	assert.Equal(t, red, img.RGBAAt(1, 1))

	e.Undo()
	assert.Equal(t, color.RGBA{A: 255}, e.CurrentImage().RGBAAt(0, 0), "undo leaves the inverted buffer")
}

func TestUndoDuringPasteRebuildsPreview(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	sys := &fakeClipboard{read: paint.Blank(image.Pt(2, 2), red)}
	e, w, _ := newTestEditor(t, WithSystemClipboard(sys))
	e.AddImage(pattern(6, 6), "")
	require.NoError(t, e.ApplyFilter("bump", nil))

	e.Paste()
	e.Move(image.Pt(3, 3))
	e.Undo()
	assert.Equal(t, TaskPaste, e.Task())
	preview := e.Current().Scratch()
	require.NotNil(t, preview)
	assert.Same(t, preview, w.shown)
	assert.Equal(t, red, preview.RGBAAt(2, 2))
	assert.Equal(t, red, preview.RGBAAt(3, 3))
	assert.Equal(t, uint8(0), preview.Pix[0])

	e.Redo()
	preview = e.Current().Scratch()
	require.NotNil(t, preview)
	assert.Equal(t, uint8(1), preview.Pix[0])
	assert.Equal(t, red, preview.RGBAAt(3, 3))

	e.CommitPaste()
	assert.Equal(t, 3, e.Current().Len())
	assert.Equal(t, uint8(1), e.CurrentImage().Pix[0])
}

func TestUntitledLabels(t *testing.T) {
	e, w, _ := newTestEditor(t)
	e.NewImage(image.Pt(4, 4), color.White)
	e.AddUntitled(pattern(2, 2), "screenshot")
	e.NewImage(image.Pt(4, 4), color.Black)
	assert.Equal(t, []string{"untitled-1", "screenshot", "untitled-2"}, w.labels)
	assert.True(t, e.Documents()[0].IsNew())
}

func TestSaveNewDelegatesToSaveAs(t *testing.T) {
	var saved []string
	e, w, dlg := newTestEditor(t, WithSaveListener(func(p string) { saved = append(saved, p) }))
	e.NewImage(image.Pt(3, 3), color.White)
	require.NoError(t, e.ApplyFilter("bump", nil))

	require.NoError(t, e.Save())
	assert.Equal(t, []FileMode{FileSave}, dlg.modes)
	assert.False(t, e.Current().Saved(), "cancelled save-as changes nothing")
	assert.True(t, e.Current().IsNew())

	path := filepath.Join(t.TempDir(), "out.png")
	dlg.path, dlg.pathOK = path, true
	require.NoError(t, e.Save())
	d := e.Current()
	assert.True(t, d.Saved())
	assert.Equal(t, path, d.Filename())
	assert.Equal(t, "out.png", w.labels[0])
	assert.Equal(t, []string{path}, saved)

	back, err := imageio.Open(path)
	require.NoError(t, err)
	assert.Equal(t, e.CurrentImage().Pix, back.RGBA.Pix)

	require.NoError(t, e.ApplyFilter("bump", nil))
	assert.False(t, e.Current().Saved())
	require.NoError(t, e.Save())
	assert.True(t, e.Current().Saved())
	assert.Len(t, dlg.modes, 2, "bound documents save without a dialog")
}

func TestSaveErrorKeepsUnsaved(t *testing.T) {
	e, _, dlg := newTestEditor(t)
	e.NewImage(image.Pt(2, 2), color.White)
	dlg.path, dlg.pathOK = filepath.Join(t.TempDir(), "out.xyz"), true
	err := e.SaveAs()
	assert.ErrorIs(t, err, imageio.ErrUnsupportedFormat)
	assert.True(t, e.Current().IsNew())
	assert.False(t, e.Current().Saved())
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, imageio.Save(path, pattern(5, 4), imageio.Options{}))

	e, w, dlg := newTestEditor(t)
	require.NoError(t, e.Open())
	assert.Empty(t, e.Documents())

	dlg.path, dlg.pathOK = path, true
	require.NoError(t, e.Open())
	require.Len(t, e.Documents(), 1)
	assert.Equal(t, []string{"in.png"}, w.labels)
	assert.Equal(t, []FileMode{FileOpen, FileOpen}, dlg.modes)
	assert.True(t, e.Current().Saved())

	dlg.path = filepath.Join(t.TempDir(), "missing.png")
	assert.Error(t, e.Open())
}

func TestProperties(t *testing.T) {
	e, _, dlg := newTestEditor(t)
	e.Properties()
	assert.Empty(t, dlg.infoTitle)

	e.AddImage(pattern(5, 4), "")
	e.Properties()
	assert.Equal(t, PropertiesTitle, dlg.infoTitle)
	assert.Contains(t, dlg.info, document.Property{Name: "Dimensions", Value: "5 x 4 px"})
}

func TestGuardsWithoutImages(t *testing.T) {
	e, w, _ := newTestEditor(t)
	e.Press(image.Pt(1, 1))
	e.Move(image.Pt(2, 2))
	e.Release(image.Pt(3, 3))
	e.Copy()
	e.Cut()
	e.Paste()
	e.CommitPaste()
	e.CancelPaste()
	e.Properties()
	e.DoChange(pattern(1, 1))
	assert.NoError(t, e.Save())
	assert.NoError(t, e.SaveAs())
	assert.Equal(t, 0, w.updates)
	assert.Equal(t, TaskSelect, e.Task())
}

func TestTaskCursorIsExhaustive(t *testing.T) {
	cases := map[Task]Cursor{
		TaskSelect:    CursorDefault,
		TaskDrawBrush: CursorDraw,
		TaskPaste:     CursorMove,
	}
	for task, cur := range cases {
		assert.Equal(t, cur, task.Cursor(), task.String())
	}
	assert.Panics(t, func() { Task(42).Cursor() })
	assert.Equal(t, "Task(42)", Task(42).String())
}
