// Package imaging crops uploaded offer images. JPEG and PNG inputs are
// accepted; output is always JPEG.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"

	_ "image/png" // register png decoder
)

// ErrDecode means the upload could not be decoded as a supported image.
var ErrDecode = errors.New("imaging: cannot decode image")

const jpegQuality = 80

// Region is the pixel rectangle to keep.
type Region struct {
	X      int `json:"x" form:"x"`
	Y      int `json:"y" form:"y"`
	Width  int `json:"width" form:"width"`
	Height int `json:"height" form:"height"`
}

func (r Region) rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Crop decodes the raw image, cuts out the region and re-encodes as
// JPEG. The region must lie fully inside the image bounds.
func Crop(data []byte, region Region) ([]byte, error) {
	if region.Width <= 0 || region.Height <= 0 {
		return nil, fmt.Errorf("imaging: empty crop region")
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	rect := region.rect()
	if !rect.In(src.Bounds()) {
		return nil, fmt.Errorf("imaging: crop region %v outside image bounds %v",
			rect, src.Bounds())
	}

	dst := image.NewRGBA(image.Rect(0, 0, region.Width, region.Height))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("imaging: encode failed: %w", err)
	}
	return out.Bytes(), nil
}
