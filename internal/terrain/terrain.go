// Package terrain assigns surface categories to cells from elevation and
// temperature by weighted random choice.
package terrain

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"planet-texgen/internal/mathutil"
)

var (
	// ErrNoPositiveWeight is returned when the weights sum to zero or the
	// slice is empty.
	ErrNoPositiveWeight = errors.New("terrain: no positive weight")
	// ErrInvalidWeight is returned for negative or NaN weights.
	ErrInvalidWeight = errors.New("terrain: invalid weight")
)

// Type is a surface category. Values are stable and used as cell codes.
type Type int16

const (
	Grass Type = iota
	Sand
	Rock
	Snow
	Water
)

// Types lists every category in code order.
var Types = []Type{Grass, Sand, Rock, Snow, Water}

func (t Type) String() string {
	switch t {
	case Grass:
		return "grass"
	case Sand:
		return "sand"
	case Rock:
		return "rock"
	case Snow:
		return "snow"
	case Water:
		return "water"
	}
	return fmt.Sprintf("terrain(%d)", int16(t))
}

// FuzzyPick draws r uniformly in [0, sum) and returns the first index
// whose cumulative weight exceeds r.
func FuzzyPick(rng *rand.Rand, weights []float64) (int, error) {
	sum := 0.0
	last := -1
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return 0, fmt.Errorf("%w: weights[%d]=%v", ErrInvalidWeight, i, w)
		}
		if w > 0 {
			last = i
		}
		sum += w
	}
	if last < 0 || math.IsInf(sum, 0) {
		return 0, fmt.Errorf("%w: %v", ErrNoPositiveWeight, weights)
	}

	r := rng.Float64() * sum
	acc := 0.0
	for i, w := range weights {
		acc += w
		if acc > r {
			return i, nil
		}
	}
	// Round-off can leave r at or above the final sum.
	return last, nil
}

// Thresholds shapes the land category chances.
type Thresholds struct {
	// RockHeight is the elevation where rock starts to appear.
	RockHeight float64
	// SandTemperature is the temperature above which sand dominates.
	SandTemperature float64
}

// DefaultThresholds are the earthlike defaults.
var DefaultThresholds = Thresholds{RockHeight: 0.2, SandTemperature: 23}

// Chances returns land weights in [Grass, Sand, Rock, Snow] order. Each
// weight is in [0, 1].
func Chances(height, temperature float64, th Thresholds) [4]float64 {
	snow := mathutil.Clamp01(mathutil.Lerp(temperature, 1, -2, 0, 1))
	sand := mathutil.Clamp01(math.Pow((temperature-th.SandTemperature)/10, 3))
	rock := mathutil.Clamp01(mathutil.Clamp01((height-th.RockHeight)/0.05) - snow - sand)
	grass := mathutil.Clamp01(1 - rock - sand - snow)
	return [4]float64{grass, sand, rock, snow}
}

// Classify returns Water at or below sea level and a weighted land pick
// otherwise.
func Classify(rng *rand.Rand, height, temperature float64, th Thresholds) (Type, error) {
	if height <= 0 {
		return Water, nil
	}
	ch := Chances(height, temperature, th)
	i, err := FuzzyPick(rng, ch[:])
	if err != nil {
		return 0, fmt.Errorf("terrain: classify h=%.3f t=%.1f: %w", height, temperature, err)
	}
	return Type(i), nil
}
