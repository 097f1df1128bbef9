package raster

import (
	"math"

	"planet-texgen/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters.
type LightConfig struct {
	ToLight  mathutil.Vec3 // unit vector from the surface toward the light
	ViewDir  mathutil.Vec3 // unit vector from the surface toward the viewer
	HalfVec  mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient  float64       // used when no light map is present
	Diffuse  float64       // used when no light map is present
	SpecPow  float64
	BumpGain float64 // scales the tilt stored in the bump map
}

// DefaultLightConfig returns the preview lighting: a single directional
// light travelling along (0.5, -0.5, -1), viewed from +z.
func DefaultLightConfig() LightConfig {
	toLight := mathutil.Vec3{0.5, -0.5, -1}.Normalize().Neg()
	viewDir := mathutil.Vec3{0, 0, 1}

	return LightConfig{
		ToLight:  toLight,
		ViewDir:  viewDir,
		HalfVec:  toLight.Add(viewDir).Normalize(),
		Ambient:  0.18,
		Diffuse:  0.82,
		SpecPow:  24,
		BumpGain: 0.5,
	}
}

// Coefficients are the per-texel lighting weights in [0, 1], decoded from
// the red, green and blue channels of a light map.
type Coefficients struct {
	Ambient, Diffuse, Specular float64
}

// CoefficientsFromMap scales light-map channels to [0, 1].
func CoefficientsFromMap(r, g, b float64) Coefficients {
	return Coefficients{Ambient: r / 255, Diffuse: g / 255, Specular: b / 255}
}

// Shade returns the light intensity for a unit normal.
func (lc *LightConfig) Shade(normal mathutil.Vec3, k Coefficients) float64 {
	ndl := normal.Dot(lc.ToLight)
	if ndl < 0 {
		ndl = 0
	}
	ndh := normal.Dot(lc.HalfVec)
	if ndh < 0 {
		ndh = 0
	}
	spec := 0.0
	if ndl > 0 && k.Specular > 0 {
		spec = k.Specular * math.Pow(ndh, lc.SpecPow)
	}
	return k.Ambient + k.Diffuse*ndl + spec
}

// Default returns the coefficients used when no light map is available.
func (lc *LightConfig) Default() Coefficients {
	return Coefficients{Ambient: lc.Ambient, Diffuse: lc.Diffuse}
}
