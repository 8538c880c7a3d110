package minirt

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnknownFormat is returned when an output format cannot be determined.
var ErrUnknownFormat = errors.New("minirt: unknown image format")

// Format is an output encoding for an Image.
type Format int

const (
	FormatJPEG Format = iota
	FormatPNG
	FormatBMP
	FormatTIFF
)

// JPEGQuality is the quality used when encoding JPEG output.
const JPEGQuality = 95

// String returns the conventional file extension of the format, without dot.
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath picks a Format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Image is the shared output buffer of a render.
//
// All cells are allocated by NewImage and the backing slice is never grown,
// copied or reallocated afterwards. Set performs no locking: concurrent
// callers are safe only if no two of them write the same cell.
type Image struct {
	width  int
	height int
	cells  []Color
}

// NewImage creates a width×height image with every cell black.
// Non-positive dimensions produce an empty image.
func NewImage(width, height int) *Image {
	if width <= 0 || height <= 0 {
		return &Image{}
	}
	return &Image{
		width:  width,
		height: height,
		cells:  make([]Color, width*height),
	}
}

// Width returns the width of the image.
func (img *Image) Width() int {
	return img.width
}

// Height returns the height of the image.
func (img *Image) Height() int {
	return img.height
}

// Set stores the color of a single cell. Out-of-range coordinates are ignored.
func (img *Image) Set(x, y int, c Color) {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		return
	}
	img.cells[y*img.width+x] = c
}

// At returns the color of a single cell, or Black for out-of-range coordinates.
func (img *Image) At(x, y int) Color {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		return Black
	}
	return img.cells[y*img.width+x]
}

// Equal reports whether two images have the same size and identical cells.
func (img *Image) Equal(o *Image) bool {
	if img.width != o.width || img.height != o.height {
		return false
	}
	for i, c := range img.cells {
		if o.cells[i] != c {
			return false
		}
	}
	return true
}

// ToImage converts the image to an 8-bit image.RGBA.
func (img *Image) ToImage() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.width, img.height))
	for y := range img.height {
		row := img.cells[y*img.width : (y+1)*img.width]
		for x, c := range row {
			out.SetRGBA(x, y, c.ToRGBA())
		}
	}
	return out
}

// Bounds returns the pixel rectangle of the image.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.width, img.height)
}

// Encode writes the image to w in the given format.
func (img *Image) Encode(w io.Writer, f Format) error {
	rgba := img.ToImage()
	switch f {
	case FormatJPEG:
		return jpeg.Encode(w, rgba, &jpeg.Options{Quality: JPEGQuality})
	case FormatPNG:
		return png.Encode(w, rgba)
	case FormatBMP:
		return bmp.Encode(w, rgba)
	case FormatTIFF:
		return tiff.Encode(w, rgba, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
}

// Save writes the image to path, choosing the format from its extension.
func (img *Image) Save(path string) (err error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	out, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	return img.Encode(out, f)
}
