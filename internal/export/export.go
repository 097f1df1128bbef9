// Package export writes generated maps to disk.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"planet-texgen/internal/buffer"
)

// ErrUnknownFormat is returned for image formats the encoder does not know.
var ErrUnknownFormat = errors.New("export: unknown format")

// Format extensions.
const (
	FormatWebP = "webp"
	FormatPNG  = "png"
	FormatTGA  = "tga"

	// FloatExt is the extension of raw little-endian float32 maps.
	FloatExt = ".f32"
)

// Encode writes img to w in the given format. WebP output is lossless.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	case FormatPNG:
		return png.Encode(w, img)
	case FormatTGA:
		return tga.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// SaveImage encodes img into path, creating parent directories.
func SaveImage(path string, img image.Image, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("export: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	return nil
}

// SaveColor writes a color map as an opaque image.
func SaveColor(path string, g *buffer.Color, format string) error {
	return SaveImage(path, buffer.ToNRGBA(g), format)
}

// SaveFloat writes a scalar map as raw little-endian float32 values.
func SaveFloat(path string, g *buffer.Float) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buffer.Float32Bytes(g), 0644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

// SaveGray writes a scalar map as a 16-bit grayscale PNG, mapping
// [lo, hi] to black..white.
func SaveGray(path string, g *buffer.Float, lo, hi float64) error {
	return SaveImage(path, buffer.ToGray16(g, lo, hi), FormatPNG)
}
