package noise

import (
	"math"

	"planet-texgen/internal/buffer"
	"planet-texgen/internal/derive"
)

// Field evaluates an angular sampler over a grid: cell (x, y) is sampled
// at lon = x·2π/W, lat = y·π/H.
func Field(p *derive.Pipeline, size buffer.Size, s Sampler) (*buffer.Float, error) {
	return derive.Map0(p, size, func(c derive.Cell) float32 {
		return float32(s(FieldLon(c.X, size.W), FieldLat(c.Y, size.H)))
	})
}

// FieldLon is the longitude of column x in a field of width w. Column w
// lands exactly on 2π.
func FieldLon(x, w int) float64 { return float64(x) / float64(w) * 2 * math.Pi }

// FieldLat is the latitude of row y in a field of height h.
func FieldLat(y, h int) float64 { return float64(y) / float64(h) * math.Pi }

// FieldUV evaluates a normalized sampler such as Spherical over a grid:
// cell (x, y) is sampled at u = x/W, v = y/H.
func FieldUV(p *derive.Pipeline, size buffer.Size, s Sampler) (*buffer.Float, error) {
	return derive.Map0(p, size, func(c derive.Cell) float32 {
		return float32(s(float64(c.X)/float64(size.W), float64(c.Y)/float64(size.H)))
	})
}
