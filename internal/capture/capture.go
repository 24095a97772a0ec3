// Package capture grabs the desktop so it can be opened as an editor tab.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"
	"time"
)

var (
	// ErrCancelled is returned when the user dismisses the screenshot prompt.
	ErrCancelled = errors.New("screenshot cancelled")
	// ErrUnsupported is returned on platforms without a screenshot portal.
	ErrUnsupported = errors.New("screenshots are not supported on this platform")
)

// DefaultTimeout bounds how long Screenshot waits for the portal.
const DefaultTimeout = 2 * time.Minute

// Options tunes the screenshot request.
type Options struct {
	// Interactive lets the user pick an area or window in the portal's UI.
	Interactive   bool
	IncludeCursor bool
	// Region, when not empty, crops the result to these screen coordinates.
	Region image.Rectangle
}

var (
	portalScreenshotFn = portalScreenshot
	x11ScreenshotFn    = x11Screenshot
)

// Screenshot captures the desktop through the xdg-desktop-portal. When the
// portal cannot be reached it falls back to reading the X11 root window,
// which is never interactive.
func Screenshot(ctx context.Context, opts Options) (*image.RGBA, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}
	img, err := portalScreenshotFn(ctx, opts)
	if err != nil {
		if errors.Is(err, ErrCancelled) || ctx.Err() != nil {
			return nil, err
		}
		var xerr error
		img, xerr = x11ScreenshotFn(ctx)
		if xerr != nil {
			return nil, fmt.Errorf("%w (x11 fallback: %v)", err, xerr)
		}
		log.Printf("screenshot: portal unavailable, used X11: %v", err)
	}
	if opts.Region.Empty() {
		return img, nil
	}
	return cropToRect(img, opts.Region)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
