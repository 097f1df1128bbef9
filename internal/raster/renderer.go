package raster

import (
	"image"
	"math"

	"planet-texgen/internal/buffer"
	"planet-texgen/internal/mathutil"
)

// Surface is the set of maps the preview renderer reads. Only Color is
// required; a nil Bump renders a smooth sphere and a nil Light uses the
// config's ambient and diffuse weights.
type Surface struct {
	Color *buffer.Color
	Bump  *buffer.Color
	Light *buffer.Color
}

// RenderSphere ray-casts an orthographic unit sphere into a size×size
// image. rotation spins the globe around its axis, in radians, on top of
// the fixed view tilt. Pixels outside the disc are transparent.
func RenderSphere(s Surface, size int, rotation float64, lc LightConfig) *image.NRGBA {
	fb := NewFrameBuffer(size, size)
	if s.Color == nil || size <= 0 {
		return fb.Image()
	}

	// View space to model space is the inverse (transpose) rotation.
	R := mathutil.ModelRotation(rotation)
	Rt := R.Transpose()

	inv := 2.0 / float64(size)
	for py := 0; py < size; py++ {
		vy := 1 - (float64(py)+0.5)*inv
		for px := 0; px < size; px++ {
			vx := (float64(px)+0.5)*inv - 1
			d2 := vx*vx + vy*vy
			if d2 > 1 {
				continue
			}
			nView := mathutil.Vec3{vx, vy, math.Sqrt(1 - d2)}
			nModel := Rt.MulVec3(nView)

			u, v, east, north := sphereFrame(nModel)

			n := nModel
			if s.Bump != nil {
				br, bg, _ := SampleColor(s.Bump, u, v)
				tx := br/255*2 - 1
				ty := bg/255*2 - 1
				// Height rising east or north tilts the normal away from it.
				n = n.Sub(east.Scale(tx * lc.BumpGain)).Sub(north.Scale(ty * lc.BumpGain)).Normalize()
			}
			n = R.MulVec3(n)

			k := lc.Default()
			if s.Light != nil {
				k = CoefficientsFromMap(SampleColor(s.Light, u, v))
			}
			shade := lc.Shade(n, k)

			cr, cg, cb := SampleColor(s.Color, u, v)
			fb.SetPixel(px, py, clamp8(cr*shade), clamp8(cg*shade), clamp8(cb*shade))
		}
	}
	return fb.Image()
}

// sphereFrame maps a unit model-space point to texture coordinates and the
// east and north unit tangents there. Longitude runs around Y starting at
// +Z; v=0 is the north pole at +Y.
func sphereFrame(p mathutil.Vec3) (u, v float64, east, north mathutil.Vec3) {
	lon := math.Atan2(p[0], p[2])
	if lon < 0 {
		lon += mathutil.TwoPi
	}
	lat := math.Acos(mathutil.Clamp(p[1], -1, 1))
	u = lon / mathutil.TwoPi
	v = lat / math.Pi

	sinLon, cosLon := math.Sincos(lon)
	sinLat, cosLat := math.Sincos(lat)
	east = mathutil.Vec3{cosLon, 0, -sinLon}
	north = mathutil.Vec3{-cosLat * sinLon, sinLat, -cosLat * cosLon}
	return u, v, east, north
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
