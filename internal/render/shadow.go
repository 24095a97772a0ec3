// Package render holds compositing effects that change the canvas size and so
// do not map onto a single pixel filter.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
)

// ShadowOptions configures the drop shadow effect applied to an image.
type ShadowOptions struct {
	Radius  float64
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns the drop shadow used when no parameters are
// given.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  24,
		Offset:  image.Pt(16, 16),
		Opacity: 0.55,
	}
}

// Shadow composites img over a blurred copy of its alpha channel. The canvas
// grows to fit the shadow and the result always has a zero origin. The
// second return value is where the original top-left corner ended up.
func Shadow(img image.Image, opts ShadowOptions) (*image.RGBA, image.Point) {
	if img == nil {
		return nil, image.Point{}
	}
	srcBounds := img.Bounds()
	if srcBounds.Empty() || opts.Opacity <= 0 {
		out := image.NewRGBA(srcBounds.Sub(srcBounds.Min))
		draw.Draw(out, out.Bounds(), img, srcBounds.Min, draw.Src)
		return out, image.Point{}
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)
	pad := int(radius + 0.5)

	padded := srcBounds.Inset(-pad)
	shadowBounds := padded.Add(opts.Offset)
	canvas := srcBounds.Union(shadowBounds)
	shift := srcBounds.Min.Sub(canvas.Min)

	// Black with the source alpha; premultiplied so it can be blurred as is.
	mask := image.NewRGBA(padded.Sub(padded.Min))
	for y := srcBounds.Min.Y; y < srcBounds.Max.Y; y++ {
		for x := srcBounds.Min.X; x < srcBounds.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			mask.SetRGBA(x-padded.Min.X, y-padded.Min.Y, color.RGBA{A: uint8(a >> 8)})
		}
	}
	blurred := mask
	if radius > 0 {
		blurred = blur.Gaussian(mask, radius)
	}

	dst := image.NewRGBA(canvas.Sub(canvas.Min))
	alpha := image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, blurred.Bounds().Add(shadowBounds.Min.Sub(canvas.Min)), blurred, image.Point{}, alpha, image.Point{}, draw.Over)
	draw.Draw(dst, srcBounds.Sub(canvas.Min), img, srcBounds.Min, draw.Over)
	return dst, shift
}
