package planet

import (
	"context"
	"fmt"
	"math"
	"sync"

	"planet-texgen/internal/buffer"
	"planet-texgen/internal/derive"
	"planet-texgen/internal/mathutil"
	"planet-texgen/internal/terrain"
)

// Earthlike palette.
var (
	SandColor  = buffer.Pack(220, 180, 100)
	SnowColor  = buffer.Pack(220, 220, 255)
	RockColor1 = buffer.Pack(160, 140, 110)
	RockColor2 = buffer.Pack(210, 180, 160)
	PaleGrass  = buffer.Pack(130, 170, 130)
	LushGrass  = buffer.Pack(20, 100, 20)
)

// LightCoefficients holds (ambient, diffuse, specular) per terrain type.
var LightCoefficients = map[terrain.Type]buffer.RGB{
	terrain.Grass: buffer.Pack(32, 224, 10),
	terrain.Sand:  buffer.Pack(32, 224, 0),
	terrain.Rock:  buffer.Pack(32, 224, 64),
	terrain.Snow:  buffer.Pack(32, 224, 196),
	terrain.Water: buffer.Pack(32, 224, 80),
}

func init() {
	Register("earthlike", buildEarthlike)
}

func buildEarthlike(ctx context.Context, g *Generation, p *Planet) error {
	pr := g.Params
	var (
		raw, vari, height, temp *buffer.Float
		terr                    *buffer.Category
		err                     error
	)
	steps := []struct {
		name string
		fn   func() error
	}{
		{"height noise", func() error { raw, err = rawHeight(g); return err }},
		{"variation noise", func() error { vari, err = variation(g); return err }},
		{"elevation", func() error { height, err = elevation(g, raw); return err }},
		{"displacement", func() error {
			p.Displacement, err = displacement(g, height, pr.DisplacementSize)
			return err
		}},
		{"bump", func() error { p.Bump, err = bump(g, p.Displacement, pr.DisplacementSize); return err }},
		{"temperature", func() error { temp, err = temperature(g, height, vari); return err }},
		{"terrain", func() error { terr, err = classify(g, height, temp); return err }},
		{"color", func() error { p.Color, err = earthColor(g, terr, height, temp, vari); return err }},
		{"light", func() error { p.Light, err = lightMap(g, terr); return err }},
	}
	for _, s := range steps {
		if err := step(ctx, s.name, s.fn); err != nil {
			return err
		}
	}
	p.Elevation, p.Temperature, p.Terrain = height, temp, terr
	return nil
}

// temperature falls off linearly from equator to pole, varies locally and
// drops with altitude. Water has a flat temperature.
func temperature(g *Generation, height, vari *buffer.Float) (*buffer.Float, error) {
	pr := g.Params
	eq, pole := pr.equator(), pr.pole()
	equatorY := float64(g.Size.H) / 2
	return derive.Map2XY(g.Pipeline, height, vari, func(h, v float32, c derive.Cell) float32 {
		if h <= 0 {
			return float32(pr.WaterTemperature)
		}
		t := mathutil.Lerp(math.Abs(float64(c.Y)-equatorY), 0, equatorY, eq, pole)
		t += pr.LocalVariation * float64(v)
		t -= float64(h) * pr.ColdnessWithAltitude
		return float32(t)
	})
}

func classify(g *Generation, height, temp *buffer.Float) (*buffer.Category, error) {
	th := g.Params.Thresholds()
	var (
		mu       sync.Mutex
		firstErr error
	)
	out, err := derive.Map2XY(g.Pipeline, height, temp, func(h, t float32, c derive.Cell) int16 {
		ty, err := terrain.Classify(c.Rand, float64(h), float64(t), th)
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("cell (%d,%d): %w", c.X, c.Y, err)
			}
			mu.Unlock()
			return int16(terrain.Water)
		}
		return int16(ty)
	})
	if err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func earthColor(g *Generation, terr *buffer.Category, height, temp, vari *buffer.Float) (*buffer.Color, error) {
	return derive.Map3XY(g.Pipeline, terr, height, temp, func(ty int16, h, t float32, c derive.Cell) buffer.RGB {
		switch terrain.Type(ty) {
		case terrain.Water:
			return waterColor(float64(h))
		case terrain.Sand:
			return SandColor
		case terrain.Snow:
			return SnowColor
		case terrain.Rock:
			v := float64(vari.At(c.X, c.Y))
			band := math.Abs(math.Mod(v+1, 0.2)-0.1) / 0.1
			alpha := mathutil.Clamp01(band + mathutil.RandomInRange(c.Rand, -0.5, 0.5))
			return buffer.LerpColor(alpha, 0, 1, RockColor1, RockColor2)
		default:
			v := float64(vari.At(c.X*2%vari.W, c.Y*2%vari.H))
			alpha := mathutil.Clamp01(
				mathutil.Lerp(float64(t)+v*13, 0, 30, 0, 1) +
					mathutil.RandomInRange(c.Rand, -0.2, 0.2))
			return buffer.LerpColor(alpha, 0, 1, PaleGrass, LushGrass)
		}
	})
}

func lightMap(g *Generation, terr *buffer.Category) (*buffer.Color, error) {
	return derive.Map1(g.Pipeline, terr, func(ty int16) buffer.RGB {
		return LightCoefficients[terrain.Type(ty)]
	})
}
