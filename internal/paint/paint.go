// Package paint holds the pixel-level helpers the editor builds on: buffer
// construction, crop and paste, and the brush and outline primitives used for
// live previews.
package paint

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Blank returns a new buffer of the given size filled with fill.
func Blank(size image.Point, fill color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	return img
}

// Clone returns a copy of src rebased to a zero origin.
func Clone(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Crop returns a copy of the given rectangle from img. If rect extends
// outside img, the missing areas are left transparent.
func Crop(img *image.RGBA, rect image.Rectangle) *image.RGBA {
	rect = rect.Canon()
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	src := rect.Intersect(img.Bounds())
	if !src.Empty() {
		draw.Draw(out, src.Sub(rect.Min), img, src.Min, draw.Src)
	}
	return out
}

// Paste copies src into dst with its top-left corner at at. Pixels falling
// outside dst are dropped.
func Paste(dst *image.RGBA, src image.Image, at image.Point) {
	sb := src.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}
	draw.Draw(dst, r, src, sb.Min, draw.Src)
}

// Fill paints rect of img with a solid colour.
func Fill(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect.Canon(), image.NewUniform(col), image.Point{}, draw.Src)
}

// CenterOn returns the top-left offset that centres a buffer of the given
// size on p.
func CenterOn(size image.Point, p image.Point) image.Point {
	return image.Pt(p.X-size.X/2, p.Y-size.Y/2)
}

// DrawPoint stamps a round brush dab of the given diameter centred at p.
func DrawPoint(img *image.RGBA, p image.Point, size int, col color.Color) {
	if size <= 1 {
		if p.In(img.Bounds()) {
			img.Set(p.X, p.Y, col)
		}
		return
	}
	drawFilledCircle(img, p.X, p.Y, size/2, col)
}

// DrawStroke joins two brush positions so fast pointer motion still leaves a
// continuous stroke.
func DrawStroke(img *image.RGBA, from, to image.Point, size int, col color.Color) {
	drawLine(img, from.X, from.Y, to.X, to.Y, col, size)
}

// DrawOutline draws the border of rect with a solid colour.
func DrawOutline(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	drawRect(img, rect, col, thick)
}

// DrawMarquee draws rect as an alternating two-colour dashed border.
func DrawMarquee(img *image.RGBA, rect image.Rectangle, c1, c2 color.Color) {
	rect = rect.Canon()
	drawDashedRect(img, rect, 4, 1, c1, c2)
}

// DrawCheckerboard fills rect of dst with a checkerboard of the given
// square size.
func DrawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		if thick > 2 {
			drawFilledCircle(img, x0, y0, thick/2, col)
		} else {
			setThickPixel(img, x0, y0, thick, col)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func drawFilledCircle(img *image.RGBA, cx, cy, r int, col color.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				px := cx + dx
				py := cy + dy
				if image.Pt(px, py).In(img.Bounds()) {
					img.Set(px, py, col)
				}
			}
		}
	}
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	drawLine(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col, thick)
	drawLine(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col, thick)
	drawLine(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col, thick)
	drawLine(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col, thick)
}

// drawDashedLine only handles horizontal and vertical runs.
func drawDashedLine(img *image.RGBA, x0, y0, x1, y1, dash, thickness int, c1, c2 color.Color) {
	horiz := y0 == y1
	length := x1 - x0
	if !horiz {
		length = y1 - y0
	}
	step := 1
	if length < 0 {
		length = -length
		step = -1
	}
	for i := 0; i <= length; i++ {
		col := c1
		if (i/dash)%2 == 1 {
			col = c2
		}
		for t := 0; t < thickness; t++ {
			var p image.Point
			if horiz {
				p = image.Pt(x0+i*step, y0+t)
			} else {
				p = image.Pt(x0+t, y0+i*step)
			}
			if p.In(img.Bounds()) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
}

func drawDashedRect(img *image.RGBA, rect image.Rectangle, dash, thickness int, c1, c2 color.Color) {
	drawDashedLine(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Max.X, rect.Min.Y, rect.Max.X, rect.Max.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Max.X, rect.Max.Y, rect.Min.X, rect.Max.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Min.X, rect.Max.Y, rect.Min.X, rect.Min.Y, dash, thickness, c1, c2)
}
