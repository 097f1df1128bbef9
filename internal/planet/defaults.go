package planet

import (
	"context"

	"planet-texgen/internal/buffer"
	"planet-texgen/internal/derive"
)

// Constant maps for profiles that leave a channel unset.
var (
	DefaultColor        = buffer.Pack(127, 127, 127)
	DefaultBump         = buffer.Pack(128, 128, 128)
	DefaultLight        = buffer.Pack(32, 224, 0)
	DefaultDisplacement = float32(1.0)
)

func constantColor(g *Generation, c buffer.RGB) (*buffer.Color, error) {
	return derive.Map0(g.Pipeline, g.Size, func(derive.Cell) buffer.RGB { return c })
}

// fillDefaults replaces every map a profile did not build.
func fillDefaults(g *Generation, p *Planet) error {
	var err error
	if p.Color == nil {
		if p.Color, err = constantColor(g, DefaultColor); err != nil {
			return err
		}
	}
	if p.Bump == nil {
		if p.Bump, err = constantColor(g, DefaultBump); err != nil {
			return err
		}
	}
	if p.Light == nil {
		if p.Light, err = constantColor(g, DefaultLight); err != nil {
			return err
		}
	}
	if p.Displacement == nil {
		p.Displacement, err = derive.Map0(g.Pipeline, g.Size, func(derive.Cell) float32 { return DefaultDisplacement })
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	Register("gray", func(ctx context.Context, g *Generation, p *Planet) error { return ctx.Err() })
}
