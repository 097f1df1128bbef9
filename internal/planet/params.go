package planet

import (
	"math/rand/v2"

	"planet-texgen/internal/mathutil"
	"planet-texgen/internal/terrain"
)

// Params holds the generation constants of a planet. Zero values are not
// meaningful; start from DefaultParams.
type Params struct {
	// Noise layers.
	HeightOctaves      int     `json:"height_octaves"`
	HeightRoughness    float64 `json:"height_roughness"`
	VariationOctaves   int     `json:"variation_octaves"`
	VariationRoughness float64 `json:"variation_roughness"`

	// Elevation.
	WaterLevel        float64 `json:"water_level"`
	MountainSteepness float64 `json:"mountain_steepness"`

	// Displacement and bump.
	DisplacementSize float64 `json:"displacement_size"`
	SeaDisplacement  float64 `json:"sea_displacement"`

	// Temperature.
	Climate              float64 `json:"climate"`
	EquatorTemperature   float64 `json:"equator_temperature"`
	PoleTemperature      float64 `json:"pole_temperature"`
	LocalVariation       float64 `json:"local_variation"`
	ColdnessWithAltitude float64 `json:"coldness_with_altitude"`
	WaterTemperature     float64 `json:"water_temperature"`

	// Terrain.
	RockHeight      float64 `json:"rock_height"`
	SandTemperature float64 `json:"sand_temperature"`
}

// DefaultParams returns the earthlike constants.
func DefaultParams() Params {
	return Params{
		HeightOctaves:        6,
		HeightRoughness:      1.0,
		VariationOctaves:     3,
		VariationRoughness:   4.0,
		WaterLevel:           0.1,
		MountainSteepness:    1.0,
		DisplacementSize:     0.2,
		SeaDisplacement:      0.985,
		Climate:              0,
		EquatorTemperature:   45,
		PoleTemperature:      -15,
		LocalVariation:       10,
		ColdnessWithAltitude: 80,
		WaterTemperature:     10,
		RockHeight:           terrain.DefaultThresholds.RockHeight,
		SandTemperature:      terrain.DefaultThresholds.SandTemperature,
	}
}

// Randomize perturbs the tunable constants from fixed ranges. Draw order
// is part of the reproducibility contract; do not reorder.
func (p Params) Randomize(rng *rand.Rand) Params {
	p.WaterLevel = mathutil.RandomInRange(rng, -0.25, 0.25)
	p.MountainSteepness = mathutil.RandomInRange(rng, 0.75, 1.5)
	p.Climate = mathutil.RandomInRange(rng, -30, 30)
	p.ColdnessWithAltitude = mathutil.RandomInRange(rng, 40, 140)
	p.RockHeight = mathutil.RandomInRange(rng, 0.03, 0.2)
	p.SandTemperature += mathutil.RandomInRange(rng, -10, 10)
	return p
}

// Thresholds returns the terrain classification thresholds.
func (p Params) Thresholds() terrain.Thresholds {
	return terrain.Thresholds{RockHeight: p.RockHeight, SandTemperature: p.SandTemperature}
}

func (p Params) equator() float64 { return p.EquatorTemperature + p.Climate }
func (p Params) pole() float64    { return p.PoleTemperature + p.Climate }
