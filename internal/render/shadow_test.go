package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func opaqueSquare(size int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestShadowExpandsBounds(t *testing.T) {
	img := opaqueSquare(10, color.RGBA{R: 255, A: 255})
	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	out, shift := Shadow(img, opts)
	if out == nil {
		t.Fatal("expected output image")
	}
	expected := image.Rect(0, 0, 22, 20)
	if !out.Bounds().Eq(expected) {
		t.Fatalf("unexpected bounds %v, want %v", out.Bounds(), expected)
	}
	if shift != (image.Point{}) {
		t.Fatalf("unexpected shift %v", shift)
	}
	// Inside the shadow but outside the subject.
	if out.RGBAAt(15, 13).A == 0 {
		t.Fatal("expected shadow alpha below the subject")
	}
	if got := out.RGBAAt(2, 2); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("subject pixel changed: %+v", got)
	}
}

func TestShadowNegativeOffsetShiftsContent(t *testing.T) {
	img := opaqueSquare(6, color.RGBA{G: 255, A: 255})
	out, shift := Shadow(img, ShadowOptions{Radius: 0, Offset: image.Pt(-3, -2), Opacity: 1})
	if shift != image.Pt(3, 2) {
		t.Fatalf("shift = %v, want (3,2)", shift)
	}
	if !out.Bounds().Eq(image.Rect(0, 0, 9, 8)) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if got := out.RGBAAt(0, 0); got != (color.RGBA{A: 255}) {
		t.Fatalf("expected hard black shadow at origin, got %+v", got)
	}
	if got := out.RGBAAt(3, 2); got != (color.RGBA{G: 255, A: 255}) {
		t.Fatalf("expected subject at shift, got %+v", got)
	}
}

func TestShadowNoShadowWhenOpacityZero(t *testing.T) {
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	img := opaqueSquare(4, fill)
	out, _ := Shadow(img, ShadowOptions{Radius: 12, Offset: image.Pt(20, 10), Opacity: 0})
	if !out.Bounds().Eq(img.Bounds()) {
		t.Fatalf("bounds changed unexpectedly: %v vs %v", out.Bounds(), img.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := out.RGBAAt(x, y); got != fill {
				t.Fatalf("pixel mismatch at (%d,%d): got %+v want %+v", x, y, got, fill)
			}
		}
	}
	if out == img {
		t.Fatal("expected a copy, not the input")
	}
}

func TestShadowNil(t *testing.T) {
	if out, _ := Shadow(nil, DefaultShadowOptions()); out != nil {
		t.Fatal("expected nil for nil input")
	}
}
