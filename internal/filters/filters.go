// Package filters maps filter identifiers to pixel functions. The registry is
// built once in Go code; the menu that exposes it is data and is checked
// against the registry at startup.
package filters

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/anthonynsimon/bild/transform"

	"github.com/example/retouch/internal/render"
)

var (
	ErrUnknownFilter = errors.New("unknown filter")
	ErrParams        = errors.New("wrong filter parameters")
)

// Func produces a new buffer from img. params has exactly the filter's arity.
type Func func(img image.Image, params []float64) *image.RGBA

// Filter is a registered pixel function.
type Filter struct {
	ID    string
	Arity int
	Apply Func
}

// Registry is an immutable set of filters keyed by identifier.
type Registry struct {
	byID map[string]Filter
}

// NewRegistry builds a registry. Duplicate identifiers are rejected.
func NewRegistry(fs ...Filter) (*Registry, error) {
	r := &Registry{byID: make(map[string]Filter, len(fs))}
	for _, f := range fs {
		if f.ID == "" || f.Apply == nil {
			return nil, fmt.Errorf("filter %q: missing id or function", f.ID)
		}
		if _, dup := r.byID[f.ID]; dup {
			return nil, fmt.Errorf("filter %q registered twice", f.ID)
		}
		r.byID[f.ID] = f
	}
	return r, nil
}

// Lookup returns the filter registered under id.
func (r *Registry) Lookup(id string) (Filter, bool) {
	f, ok := r.byID[id]
	return f, ok
}

// IDs lists the registered identifiers in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Apply runs filter id on img.
func (r *Registry) Apply(id string, img image.Image, params []float64) (*image.RGBA, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, id)
	}
	if len(params) != f.Arity {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrParams, id, f.Arity, len(params))
	}
	for _, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: %s: %v", ErrParams, id, p)
		}
	}
	out := f.Apply(img, params)
	if out == nil {
		return nil, fmt.Errorf("filter %s produced no image", id)
	}
	return out, nil
}

// Default returns the built-in filter set.
func Default() *Registry {
	r, err := NewRegistry(builtin()...)
	if err != nil {
		panic(err)
	}
	return r
}

func noParams(fn func(image.Image) *image.RGBA) Func {
	return func(img image.Image, _ []float64) *image.RGBA { return fn(img) }
}

func builtin() []Filter {
	return []Filter{
		{ID: "grayscale", Apply: func(img image.Image, _ []float64) *image.RGBA {
			return clone.AsRGBA(effect.Grayscale(img))
		}},
		{ID: "invert", Apply: noParams(effect.Invert)},
		{ID: "sepia", Apply: noParams(effect.Sepia)},
		{ID: "sharpen", Apply: noParams(effect.Sharpen)},
		{ID: "emboss", Apply: noParams(effect.Emboss)},
		{ID: "sobel", Apply: noParams(effect.Sobel)},
		{ID: "flip-h", Apply: noParams(transform.FlipH)},
		{ID: "flip-v", Apply: noParams(transform.FlipV)},
		{ID: "edges", Arity: 1, Apply: func(img image.Image, p []float64) *image.RGBA {
			return effect.EdgeDetection(img, p[0])
		}},
		{ID: "blur", Arity: 1, Apply: func(img image.Image, p []float64) *image.RGBA {
			return blur.Gaussian(img, p[0])
		}},
		{ID: "box-blur", Arity: 1, Apply: func(img image.Image, p []float64) *image.RGBA {
			return blur.Box(img, p[0])
		}},
		{ID: "median", Arity: 1, Apply: func(img image.Image, p []float64) *image.RGBA {
			return effect.Median(img, p[0])
		}},
		{ID: "dilate", Arity: 1, Apply: func(img image.Image, p []float64) *image.RGBA {
			return effect.Dilate(img, p[0])
		}},
		{ID: "erode", Arity: 1, Apply: func(img image.Image, p []float64) *image.RGBA {
			return effect.Erode(img, p[0])
		}},
		{ID: "brightness", Arity: 1, Apply: func(img image.Image, p []float64) *image.RGBA {
			return adjust.Brightness(img, percent(p[0]))
		}},
		{ID: "contrast", Arity: 1, Apply: func(img image.Image, p []float64) *image.RGBA {
			return adjust.Contrast(img, percent(p[0]))
		}},
		{ID: "saturation", Arity: 1, Apply: func(img image.Image, p []float64) *image.RGBA {
			return adjust.Saturation(img, percent(p[0]))
		}},
		{ID: "gamma", Arity: 1, Apply: func(img image.Image, p []float64) *image.RGBA {
			return adjust.Gamma(img, math.Max(p[0], 0.01))
		}},
		{ID: "hue", Arity: 1, Apply: func(img image.Image, p []float64) *image.RGBA {
			return adjust.Hue(img, int(math.Round(p[0])))
		}},
		{ID: "threshold", Arity: 1, Apply: func(img image.Image, p []float64) *image.RGBA {
			level := uint8(math.Round(math.Min(math.Max(p[0], 0), 255)))
			return clone.AsRGBA(segment.Threshold(img, level))
		}},
		{ID: "rotate", Arity: 1, Apply: func(img image.Image, p []float64) *image.RGBA {
			return transform.Rotate(img, p[0], &transform.RotationOptions{ResizeBounds: true})
		}},
		{ID: "resize", Arity: 1, Apply: resize},
		{ID: "shadow", Arity: 3, Apply: func(img image.Image, p []float64) *image.RGBA {
			off := int(math.Round(p[1]))
			out, _ := render.Shadow(img, render.ShadowOptions{
				Radius:  p[0],
				Offset:  image.Pt(off, off),
				Opacity: p[2],
			})
			return out
		}},
	}
}

// percent maps a -100..100 menu value onto bild's -1..1 change factor.
func percent(v float64) float64 {
	return math.Min(math.Max(v/100, -1), 1)
}

func resize(img image.Image, p []float64) *image.RGBA {
	b := img.Bounds()
	scale := math.Max(p[0], 0) / 100
	w := max(int(math.Round(float64(b.Dx())*scale)), 1)
	h := max(int(math.Round(float64(b.Dy())*scale)), 1)
	return transform.Resize(img, w, h, transform.Linear)
}
