//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestZPixmapToRGBA(t *testing.T) {
	formats := []xproto.Format{{Depth: 1, BitsPerPixel: 1}, {Depth: 24, BitsPerPixel: 32}, {Depth: 32, BitsPerPixel: 32}}
	// two pixels per row: blue then red, with a zero padding byte
	data := []byte{
		0xFF, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFF, 0x00,
		0x10, 0x20, 0x30, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	img, err := zpixmapToRGBA(formats, 24, data, 2, 2)
	if err != nil {
		t.Fatalf("zpixmapToRGBA: %v", err)
	}
	if got := img.RGBAAt(0, 0); got.R != 0 || got.G != 0 || got.B != 0xFF || got.A != 0xFF {
		t.Fatalf("pixel 0,0 = %+v, want opaque blue", got)
	}
	if got := img.RGBAAt(1, 0); got.R != 0xFF || got.B != 0 || got.A != 0xFF {
		t.Fatalf("pixel 1,0 = %+v, want opaque red", got)
	}
	if got := img.RGBAAt(0, 1); got.R != 0x30 || got.G != 0x20 || got.B != 0x10 {
		t.Fatalf("pixel 0,1 = %+v", got)
	}

	img, err = zpixmapToRGBA(formats, 32, data, 2, 2)
	if err != nil {
		t.Fatalf("depth 32: %v", err)
	}
	if got := img.RGBAAt(0, 0).A; got != 0 {
		t.Fatalf("depth 32 should keep alpha byte, got %d", got)
	}
}

func TestZPixmapToRGBAErrors(t *testing.T) {
	formats := []xproto.Format{{Depth: 24, BitsPerPixel: 32}, {Depth: 16, BitsPerPixel: 16}}
	tests := []struct {
		name  string
		depth byte
		data  []byte
		w, h  int
	}{
		{"empty geometry", 24, make([]byte, 4), 0, 1},
		{"no data", 24, nil, 1, 1},
		{"unknown depth", 8, make([]byte, 4), 1, 1},
		{"16 bpp", 16, make([]byte, 2), 1, 1},
		{"short rows", 24, make([]byte, 6), 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := zpixmapToRGBA(formats, tt.depth, tt.data, tt.w, tt.h); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
