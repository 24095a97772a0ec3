package filters

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 30), uint8(y * 30), 90, 255})
		}
	}
	return img
}

func TestDefaultMenuValidates(t *testing.T) {
	m, err := DefaultMenu()
	require.NoError(t, err)
	require.NotEmpty(t, m)
	require.NoError(t, Default().Validate(m))
}

func TestEveryMenuEntryRunsWithDefaults(t *testing.T) {
	m, err := DefaultMenu()
	require.NoError(t, err)
	reg := Default()
	src := gradient(8, 8)
	for _, e := range m {
		t.Run(e.ID, func(t *testing.T) {
			out, err := reg.Apply(e.ID, src, e.Defaults())
			require.NoError(t, err)
			require.NotNil(t, out)
			assert.False(t, out.Bounds().Empty())
		})
	}
}

func TestEveryRegisteredFilterIsInMenu(t *testing.T) {
	m, err := DefaultMenu()
	require.NoError(t, err)
	for _, id := range Default().IDs() {
		_, ok := m.Find(id)
		assert.True(t, ok, "filter %s missing from menu", id)
	}
}

func TestApplyErrors(t *testing.T) {
	reg := Default()
	_, err := reg.Apply("nope", gradient(2, 2), nil)
	assert.ErrorIs(t, err, ErrUnknownFilter)

	_, err = reg.Apply("blur", gradient(2, 2), nil)
	assert.ErrorIs(t, err, ErrParams)

	_, err = reg.Apply("invert", gradient(2, 2), []float64{1})
	assert.ErrorIs(t, err, ErrParams)
}

func TestInvert(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{10, 20, 30, 255})
	out, err := Default().Apply("invert", img, nil)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{245, 235, 225, 255}, out.RGBAAt(0, 0))
}

func TestFlipH(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{B: 255, A: 255})
	out, err := Default().Apply("flip-h", img, nil)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(1, 0))
}

func TestResizeScalesByPercent(t *testing.T) {
	out, err := Default().Apply("resize", gradient(8, 4), []float64{50})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), out.Bounds())

	out, err = Default().Apply("resize", gradient(8, 4), []float64{0})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1, 1), out.Bounds())
}

func TestThresholdIsBinary(t *testing.T) {
	out, err := Default().Apply("threshold", gradient(8, 8), []float64{128})
	require.NoError(t, err)
	for i := 0; i < len(out.Pix); i += 4 {
		v := out.Pix[i]
		assert.True(t, v == 0 || v == 255, "pixel %d = %d", i/4, v)
	}
}

func TestGrayscaleEqualChannels(t *testing.T) {
	out, err := Default().Apply("grayscale", gradient(4, 4), nil)
	require.NoError(t, err)
	c := out.RGBAAt(3, 2)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.G, c.B)
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	f := Filter{ID: "x", Apply: func(img image.Image, _ []float64) *image.RGBA { return nil }}
	_, err := NewRegistry(f, f)
	assert.Error(t, err)
}

func TestApplyRejectsNilResult(t *testing.T) {
	reg, err := NewRegistry(Filter{ID: "x", Apply: func(image.Image, []float64) *image.RGBA { return nil }})
	require.NoError(t, err)
	_, err = reg.Apply("x", gradient(1, 1), nil)
	assert.Error(t, err)
}

func TestValidateReportsProblems(t *testing.T) {
	const doc = `
- id: invert
  label: Invert
  key: v
- id: blur
  label: Blur
- id: warp
  label: Warp
- id: gamma
  label: Gamma
  key: v
  limits:
    - {name: Gamma, min: 1, max: 2, default: 3}
`
	m, err := LoadMenu(strings.NewReader(doc))
	require.NoError(t, err)
	err = Default().Validate(m)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFilter)
	assert.ErrorIs(t, err, ErrParams)
	assert.Contains(t, err.Error(), `"warp"`)
	assert.Contains(t, err.Error(), `key "v" already bound`)
	assert.Contains(t, err.Error(), "0 limits for 1 parameters")
	assert.Contains(t, err.Error(), "default 3 outside")
}

func TestLoadMenuRejectsUnknownFields(t *testing.T) {
	_, err := LoadMenu(strings.NewReader("- id: invert\n  lable: x\n"))
	assert.Error(t, err)
}

func TestMenuLookups(t *testing.T) {
	m := Menu{
		{ID: "blur", Label: "Blur", Key: "u", Limits: []Limit{{Name: "Radius", Min: 1, Max: 5, Default: 2}}},
		{ID: "invert", Label: "Invert"},
	}
	e, ok := m.ByKey("u")
	require.True(t, ok)
	assert.Equal(t, "blur", e.ID)
	_, ok = m.ByKey("")
	assert.False(t, ok)
	assert.Equal(t, []float64{2}, e.Defaults())
	assert.Equal(t, "Blur", e.DialogTitle())
	assert.Equal(t, 5.0, e.Limits[0].Clamp(9))
	assert.Equal(t, 1.0, e.Limits[0].Clamp(-1))
}
