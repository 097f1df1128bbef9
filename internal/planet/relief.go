package planet

import (
	"context"

	"planet-texgen/internal/buffer"
	"planet-texgen/internal/derive"
	"planet-texgen/internal/mathutil"
	"planet-texgen/internal/noise"
)

var (
	LandLow  = buffer.Pack(180, 140, 110)
	LandHigh = buffer.Pack(255, 240, 200)
)

const (
	// reliefDisplacement is the displacement scale of the relief profile.
	reliefDisplacement = 0.1

	// Fine surface grain mixed into the land shade.
	grainScale    = 8
	grainStrength = 0.08
)

func init() {
	Register("relief", buildRelief)
}

// buildRelief shades land by height without terrain classification. The
// light map keeps its default.
func buildRelief(ctx context.Context, g *Generation, p *Planet) error {
	var (
		raw, height, grain *buffer.Float
		err                error
	)
	if err := step(ctx, "height noise", func() error { raw, err = rawHeight(g); return err }); err != nil {
		return err
	}
	if err := step(ctx, "elevation", func() error { height, err = elevation(g, raw); return err }); err != nil {
		return err
	}
	if err := step(ctx, "displacement", func() error {
		p.Displacement, err = displacement(g, height, reliefDisplacement)
		return err
	}); err != nil {
		return err
	}
	if err := step(ctx, "bump", func() error {
		p.Bump, err = bump(g, p.Displacement, reliefDisplacement)
		return err
	}); err != nil {
		return err
	}
	if err := step(ctx, "grain", func() error { grain, err = reliefGrain(g); return err }); err != nil {
		return err
	}
	if err := step(ctx, "color", func() error {
		p.Color, err = derive.Map2(g.Pipeline, height, grain, func(h, gr float32) buffer.RGB {
			if h > 0 {
				shade := mathutil.Clamp01(float64(h) + grainStrength*float64(gr))
				return buffer.LerpColor(shade, 0, 1, LandLow, LandHigh)
			}
			return waterColor(float64(h))
		})
		return err
	}); err != nil {
		return err
	}
	p.Elevation = height
	return nil
}

// reliefGrain is high-frequency spherical noise on normalized coordinates.
func reliefGrain(g *Generation) (*buffer.Float, error) {
	s := noise.Spherical(g.Source, g.Rand.Float64()*32767, grainScale)
	return noise.FieldUV(g.Pipeline, g.Size, s)
}
