// Package chromakey removes the solid background colour the model is asked to paint behind a cursor.
package chromakey

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"regexp"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// Size is the canonical edge length of a cursor image
	Size = 128

	// Tolerance is the exclusive per-channel distance to the sampled background
	Tolerance = 40
)

// ErrDecode is returned when a payload cannot be decoded into pixels
var ErrDecode = errors.New("failed to decode image")

var dataURLPrefix = regexp.MustCompile(`^data:image/[^;]+;base64,`)

// RemoveBase64 decodes a base64 payload (optionally a data URL), keys out its background
// and returns the result as PNG bytes.
func RemoveBase64(payload string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(dataURLPrefix.ReplaceAllString(payload, ""))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return Remove(raw)
}

// Remove decodes an encoded image, keys out its background and re-encodes it as PNG.
func Remove(raw []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	dst := Key(Resample(src))

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Resample scales src onto a Size x Size canvas without smoothing.
func Resample(src image.Image) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, Size, Size))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// Key zeroes the alpha of every background pixel in place and returns img.
// The reference colour is sampled from the top-left pixel.
func Key(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	if b.Empty() {
		return img
	}
	ref := img.NRGBAAt(b.Min.X, b.Min.Y)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			r, g, bl := img.Pix[i], img.Pix[i+1], img.Pix[i+2]
			if IsBackground(r, g, bl, ref.R, ref.G, ref.B) {
				img.Pix[i+3] = 0
			}
		}
	}
	return img
}

// IsBackground reports whether (r,g,b) is within Tolerance of the reference colour on every
// channel, or looks magenta on its own.
func IsBackground(r, g, b, refR, refG, refB uint8) bool {
	if absDiff(r, refR) < Tolerance && absDiff(g, refG) < Tolerance && absDiff(b, refB) < Tolerance {
		return true
	}
	// compression can shift the corner away from #FF00FF
	return r > 200 && g < 100 && b > 200
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
