package mathutil

import "math/rand/v2"

// Clamp restricts v to [lo, hi].
//
//	Clamp(1.3, 0, 1) == 1
//	Clamp(0.6, 0, 1) == 0.6
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0, 1].
func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }

// Lerp maps v from [fromLo, fromHi] onto [toLo, toHi] without clamping.
//
//	Lerp(0.5, 0, 1, 0, 255) == 127.5
//	Lerp(0, 0, 1, 64, 192) == 64
func Lerp(v, fromLo, fromHi, toLo, toHi float64) float64 {
	alpha := (v - fromLo) / (fromHi - fromLo)
	return toLo + alpha*(toHi-toLo)
}

// RandomInRange returns a uniform float in [lo, hi).
func RandomInRange(r *rand.Rand, lo, hi float64) float64 {
	return r.Float64()*(hi-lo) + lo
}
