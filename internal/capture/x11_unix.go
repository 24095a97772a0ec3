//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"context"
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// x11Screenshot reads the root window of the default X screen.
func x11Screenshot(ctx context.Context) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil {
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		return nil, fmt.Errorf("xproto screen unavailable")
	}
	w, h := int(screen.WidthInPixels), int(screen.HeightInPixels)
	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(screen.Root),
		0, 0, uint16(w), uint16(h), 0xffffffff).Reply()
	if err != nil {
		return nil, fmt.Errorf("root window pixels: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return zpixmapToRGBA(setup.PixmapFormats, reply.Depth, reply.Data, w, h)
}

// zpixmapToRGBA converts little-endian BGR(X) pixel rows. Only depth 32
// carries alpha; the fourth byte of depth 24 pixels is padding.
func zpixmapToRGBA(formats []xproto.Format, depth byte, data []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("screen has empty geometry")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("screen pixels: empty image data")
	}
	bitsPerPixel := 0
	for _, f := range formats {
		if f.Depth == depth {
			bitsPerPixel = int(f.BitsPerPixel)
			break
		}
	}
	bytesPerPixel := bitsPerPixel / 8
	if bytesPerPixel < 3 {
		return nil, fmt.Errorf("unsupported screen depth %d (%d bpp)", depth, bitsPerPixel)
	}
	stride := len(data) / height
	if stride*height != len(data) || stride < width*bytesPerPixel {
		return nil, fmt.Errorf("screen pixels: unexpected stride")
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := data[y*stride : (y+1)*stride]
		for x := 0; x < width; x++ {
			src := row[x*bytesPerPixel:]
			a := byte(0xFF)
			if depth == 32 && bytesPerPixel >= 4 {
				a = src[3]
			}
			i := img.PixOffset(x, y)
			img.Pix[i+0] = src[2]
			img.Pix[i+1] = src[1]
			img.Pix[i+2] = src[0]
			img.Pix[i+3] = a
		}
	}
	return img, nil
}
