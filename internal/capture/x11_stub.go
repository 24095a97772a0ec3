//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"context"
	"image"
)

func x11Screenshot(context.Context) (*image.RGBA, error) {
	return nil, ErrUnsupported
}
