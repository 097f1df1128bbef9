package buffer

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"math"
)

// RGBABytes returns the color grid as W*H*4 bytes in [R, G, B, 0xFF] order,
// ready to upload as an 8-bit RGBA texture.
func RGBABytes(g *Color) []byte {
	out := make([]byte, len(g.data)*4)
	for i, c := range g.data {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(c))
	}
	return out
}

// ColorFromRGBA rebuilds a color grid from RGBABytes output. Alpha is
// forced opaque.
func ColorFromRGBA(w, h int, data []byte) (*Color, error) {
	if len(data) != w*h*4 {
		return nil, fmt.Errorf("%w: %dx%d color grid from %d bytes", ErrInvalidSize, w, h, len(data))
	}
	g, err := New[RGB](w, h)
	if err != nil {
		return nil, err
	}
	for i := range g.data {
		g.data[i] = Pack(int(data[i*4]), int(data[i*4+1]), int(data[i*4+2]))
	}
	return g, nil
}

// Float32Bytes returns the scalar grid as W*H little-endian IEEE floats.
func Float32Bytes(g *Float) []byte {
	out := make([]byte, len(g.data)*4)
	for i, v := range g.data {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// FloatFromBytes rebuilds a scalar grid from Float32Bytes output.
func FloatFromBytes(w, h int, data []byte) (*Float, error) {
	if len(data) != w*h*4 {
		return nil, fmt.Errorf("%w: %dx%d float grid from %d bytes", ErrInvalidSize, w, h, len(data))
	}
	g, err := New[float32](w, h)
	if err != nil {
		return nil, err
	}
	for i := range g.data {
		g.data[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return g, nil
}

// ToNRGBA converts a color grid to an opaque NRGBA image.
func ToNRGBA(g *Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.W, g.H))
	copy(img.Pix, RGBABytes(g))
	return img
}

// ColorFromImage converts any image into a color grid. Alpha is dropped.
func ColorFromImage(src image.Image) (*Color, error) {
	b := src.Bounds()
	g, err := New[RGB](b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < g.H; y++ {
			off := n.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < g.W; x++ {
				i := off + x*4
				g.data[y*g.W+x] = Pack(int(n.Pix[i]), int(n.Pix[i+1]), int(n.Pix[i+2]))
			}
		}
		return g, nil
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			g.data[y*g.W+x] = Pack(int(c.R), int(c.G), int(c.B))
		}
	}
	return g, nil
}

// ToGray16 maps a scalar grid linearly from [lo, hi] onto 16-bit gray,
// clamping values outside the range.
func ToGray16(g *Float, lo, hi float64) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, g.W, g.H))
	span := hi - lo
	if span == 0 {
		span = 1
	}
	for i, v := range g.data {
		t := (float64(v) - lo) / span
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		v16 := uint16(t*65535 + 0.5)
		img.Pix[i*2], img.Pix[i*2+1] = uint8(v16>>8), uint8(v16)
	}
	return img
}
