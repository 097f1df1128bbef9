package raster

import (
	"math"

	"planet-texgen/internal/buffer"
)

// SampleColor performs bilinear filtering on an equirectangular map.
// u wraps around the globe; v clamps at the poles. Channels are returned
// in [0, 255].
func SampleColor(tex *buffer.Color, u, v float64) (r, g, b float64) {
	w, h := tex.W, tex.H

	u -= math.Floor(u)
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}

	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	xa, xb := tex.WrapX(x0), tex.WrapX(x0+1)
	ya, yb := tex.ClampY(y0), tex.ClampY(y0+1)

	// Four texels
	c00, c10 := tex.At(xa, ya), tex.At(xb, ya)
	c01, c11 := tex.At(xa, yb), tex.At(xb, yb)

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	r = float64(c00.R())*w00 + float64(c10.R())*w10 + float64(c01.R())*w01 + float64(c11.R())*w11
	g = float64(c00.G())*w00 + float64(c10.G())*w10 + float64(c01.G())*w01 + float64(c11.G())*w11
	b = float64(c00.B())*w00 + float64(c10.B())*w10 + float64(c01.B())*w01 + float64(c11.B())*w11
	return r, g, b
}
