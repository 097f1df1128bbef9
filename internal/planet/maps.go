package planet

import (
	"math"

	"planet-texgen/internal/buffer"
	"planet-texgen/internal/derive"
	"planet-texgen/internal/mathutil"
	"planet-texgen/internal/noise"
)

// Steps shared by the profiles.

func rawHeight(g *Generation) (*buffer.Float, error) {
	pr := g.Params
	s := noise.Octave(g.Source, float64(g.Seed), pr.HeightOctaves, pr.HeightRoughness)
	return noise.Field(g.Pipeline, g.Size, s)
}

func variation(g *Generation) (*buffer.Float, error) {
	pr := g.Params
	seed := g.Rand.Float64() * 32767
	s := noise.Octave(g.Source, seed, pr.VariationOctaves, pr.VariationRoughness)
	return noise.Field(g.Pipeline, g.Size, s)
}

// elevation maps raw noise to height above sea level: (0, 1] on land and
// [-1, 0] at or below the water level.
func elevation(g *Generation, raw *buffer.Float) (*buffer.Float, error) {
	wl, steep := g.Params.WaterLevel, g.Params.MountainSteepness
	return derive.Map1(g.Pipeline, raw, func(r float32) float32 {
		v := float64(r)
		if v > wl {
			return float32(math.Pow(mathutil.Lerp(v, wl, 1, 0, 1), steep))
		}
		return float32(mathutil.Lerp(v, -1, wl, -1, 0))
	})
}

func displacement(g *Generation, height *buffer.Float, size float64) (*buffer.Float, error) {
	sea := float32(g.Params.SeaDisplacement)
	return derive.Map1(g.Pipeline, height, func(h float32) float32 {
		if h <= 0 {
			return sea
		}
		return float32(1 + float64(h)*size)
	})
}

// bump packs the displacement slope into red (x tilt) and green (y tilt).
// Longitude wraps; latitude clamps at the poles.
func bump(g *Generation, disp *buffer.Float, size float64) (*buffer.Color, error) {
	hardness := 0.1 * size
	return derive.Map0(g.Pipeline, disp.Size(), func(c derive.Cell) buffer.RGB {
		hL := float64(disp.At(disp.WrapX(c.X-1), c.Y))
		hR := float64(disp.At(disp.WrapX(c.X+1), c.Y))
		hU := float64(disp.At(c.X, disp.ClampY(c.Y-1)))
		hD := float64(disp.At(c.X, disp.ClampY(c.Y+1)))
		xTilt := mathutil.Clamp((hR-hL)/hardness, -1, 1)
		yTilt := mathutil.Clamp((hU-hD)/hardness, -1, 1)
		return buffer.PackF(
			mathutil.Lerp(xTilt, -1, 1, 0, 255),
			mathutil.Lerp(yTilt, -1, 1, 0, 255),
			0,
		)
	})
}

var (
	WaterDeep    = buffer.Pack(0, 0, 60)
	WaterShallow = buffer.Pack(24, 24, 126)
)

func waterColor(h float64) buffer.RGB {
	return buffer.LerpColor(h, -1, 0, WaterDeep, WaterShallow)
}
