// Package clipboard mirrors editor selections to the desktop clipboard as
// PNG. cgo builds use golang.design/x/clipboard; pure Go builds talk to the
// X server directly.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
)

var (
	ErrNoImage   = errors.New("clipboard does not contain image data")
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
)

// System adapts the package functions to the editor's clipboard interface.
type System struct{}

func (System) WriteImage(img image.Image) error { return WriteImage(img) }

func (System) ReadImage() (image.Image, error) { return ReadImage() }

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode clipboard image: %w", err)
	}
	return buf.Bytes(), nil
}

func decodePNG(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode clipboard image: %w", err)
	}
	return img, nil
}
