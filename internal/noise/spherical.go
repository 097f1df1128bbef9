package noise

import "math"

// Sampler evaluates a 2D noise function. Coordinates are defined by the
// constructor: normalized [0,1] for Spherical, radians for Octave.
type Sampler func(x, y float64) float64

// Spherical samples src over a sphere so that u=0 and u=1 meet without a
// seam and the poles converge. u and v are normalized to [0, 1].
func Spherical(src Source3D, seed, scale float64) Sampler {
	return func(u, v float64) float64 {
		u -= math.Floor(u)
		lon := u * 2 * math.Pi
		radius := scale * math.Sin(v*math.Pi)
		return src.Eval3(
			math.Sin(lon)*radius,
			v*2*scale,
			math.Cos(lon)*radius+seed,
		)
	}
}

// Sub-seed recurrence shared by every octave generator.
const (
	seedMul = 15227
	seedAdd = 11699
	seedMod = 32987
)

// NextSeed advances the octave sub-seed sequence.
func NextSeed(seed float64) float64 {
	return math.Mod(seed*seedMul+seedAdd, seedMod)
}

// Octave sums octaves layers of spherical noise. lon is in [0, 2π] and
// lat in [0, π]. Each layer doubles the frequency and halves the
// amplitude, starting at 0.5, and is offset along z by its own sub-seed.
func Octave(src Source3D, seed float64, octaves int, roughness float64) Sampler {
	seeds := make([]float64, octaves)
	for i := range seeds {
		seeds[i] = seed
		seed = NextSeed(seed)
	}
	yMul0 := 2 * roughness / math.Pi
	return func(lon, lat float64) float64 {
		sinLon, cosLon := math.Sincos(wrapLon(lon))
		radius := roughness * math.Sin(lat)
		yMul := yMul0
		amp := 0.5
		sum := 0.0
		for _, s := range seeds {
			sum += amp * src.Eval3(sinLon*radius, lat*yMul, cosLon*radius+s)
			radius *= 2
			yMul *= 2
			amp *= 0.5
		}
		return sum
	}
}

// wrapLon reduces lon to [0, 2π) so that 2π samples exactly like 0.
func wrapLon(lon float64) float64 {
	lon = math.Mod(lon, 2*math.Pi)
	if lon < 0 {
		lon += 2 * math.Pi
	}
	return lon
}
