package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/webp"

	"planet-texgen/internal/buffer"
)

// LoadImage decodes a WEBP, PNG or TGA file, chosen by extension.
func LoadImage(path string) (image.Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	var img image.Image
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".webp":
		img, err = webp.Decode(bytes.NewReader(raw))
	case ".png":
		img, err = png.Decode(bytes.NewReader(raw))
	case ".tga":
		// TGA has no magic number, so it is never sniffed.
		img, err = tga.Decode(bytes.NewReader(raw))
	default:
		return nil, fmt.Errorf("texture: unknown extension: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return img, nil
}

// LoadColor reads an image file into a color map.
func LoadColor(path string) (*buffer.Color, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	g, err := buffer.ColorFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("texture: %s: %w", path, err)
	}
	return g, nil
}

// LoadFloat reads a raw float32 map of known dimensions.
func LoadFloat(path string, w, h int) (*buffer.Float, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	g, err := buffer.FloatFromBytes(w, h, raw)
	if err != nil {
		return nil, fmt.Errorf("texture: %s: %w", path, err)
	}
	return g, nil
}
