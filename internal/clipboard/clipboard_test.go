package clipboard

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestPNGHelpersRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{10, 20, 30, 255})
	data, err := encodePNG(img)
	if err != nil {
		t.Fatalf("encodePNG: %v", err)
	}
	back, err := decodePNG(data)
	if err != nil {
		t.Fatalf("decodePNG: %v", err)
	}
	if !back.Bounds().Eq(img.Bounds()) {
		t.Fatalf("bounds = %v", back.Bounds())
	}
	r, g, b, _ := back.At(2, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel = %v", back.At(2, 1))
	}
}

func TestDecodeEmpty(t *testing.T) {
	if _, err := decodePNG(nil); !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
	if _, err := decodePNG([]byte("not a png")); err == nil {
		t.Fatal("expected decode error")
	}
}
