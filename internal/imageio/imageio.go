// Package imageio reads and writes image files for the editor.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/example/retouch/internal/paint"
)

// ErrUnsupportedFormat is returned when a file is not a decodable image or a
// save path has an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// DefaultJPEGQuality is used when saving JPEG files without an explicit quality.
const DefaultJPEGQuality = 90

// Formats lists the extensions Save understands.
var Formats = []string{"png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff"}

// Image is a decoded file together with the detected MIME type.
type Image struct {
	RGBA *image.RGBA
	MIME string
}

// Open decodes the image at path into an RGBA buffer.
func Open(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode sniffs the stream header and decodes it.
func Decode(r io.ReadSeeker) (*Image, error) {
	head := make([]byte, 261)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	kind, _ := filetype.Match(head[:n])
	if !filetype.IsImage(head[:n]) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind.MIME.Value, err)
	}
	return &Image{RGBA: paint.Clone(img), MIME: kind.MIME.Value}, nil
}

// DetectMIME returns the MIME type of the file at path, or an empty string
// when it cannot be determined.
func DetectMIME(path string) string {
	kind, err := filetype.MatchFile(path)
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}

// Options tunes encoders that take parameters.
type Options struct {
	JPEGQuality int
}

// Save writes img to path, choosing the encoder from the file extension.
func Save(path string, img image.Image, opts Options) error {
	enc, err := encoderFor(path, opts)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	return nil
}

func encoderFor(path string, opts Options) (imgio.Encoder, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png":
		return imgio.PNGEncoder(), nil
	case "jpg", "jpeg":
		q := opts.JPEGQuality
		if q <= 0 || q > 100 {
			q = DefaultJPEGQuality
		}
		return imgio.JPEGEncoder(q), nil
	case "bmp":
		return imgio.BMPEncoder(), nil
	case "gif":
		return func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, nil)
		}, nil
	case "tif", "tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
