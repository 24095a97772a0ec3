package paint

import "image"

// Fit returns where an image of the given size is drawn inside alloc and the
// zoom applied. Images are centred and only ever scaled down.
func Fit(size image.Point, alloc image.Rectangle) (image.Rectangle, float64) {
	zoom := 1.0
	if size.X <= 0 || size.Y <= 0 || alloc.Empty() {
		return image.Rectangle{Min: alloc.Min, Max: alloc.Min.Add(size)}, zoom
	}
	zx := float64(alloc.Dx()) / float64(size.X)
	zy := float64(alloc.Dy()) / float64(size.Y)
	if zx < zoom {
		zoom = zx
	}
	if zy < zoom {
		zoom = zy
	}
	w := int(float64(size.X) * zoom)
	h := int(float64(size.Y) * zoom)
	x0 := alloc.Min.X + (alloc.Dx()-w)/2
	y0 := alloc.Min.Y + (alloc.Dy()-h)/2
	return image.Rect(x0, y0, x0+w, y0+h), zoom
}

// ToImage maps a point in widget coordinates to image coordinates for an
// image of the given size shown inside alloc. The result is clamped to the
// image edges so a selection can reach the last row and column.
func ToImage(size image.Point, alloc image.Rectangle, p image.Point) image.Point {
	dst, zoom := Fit(size, alloc)
	x := int(float64(p.X-dst.Min.X) / zoom)
	y := int(float64(p.Y-dst.Min.Y) / zoom)
	return image.Pt(clamp(x, 0, size.X), clamp(y, 0, size.Y))
}

// FromImage is the inverse of ToImage.
func FromImage(size image.Point, alloc image.Rectangle, p image.Point) image.Point {
	dst, zoom := Fit(size, alloc)
	return image.Pt(dst.Min.X+int(float64(p.X)*zoom), dst.Min.Y+int(float64(p.Y)*zoom))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
