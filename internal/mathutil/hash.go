package mathutil

// Hash32 mixes 32-bit input into a well-distributed 32-bit output
// (murmur-style finalizer).
func Hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// Hash64 is the 64-bit splitmix finalizer.
func Hash64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// StreamKey derives a stable stream identifier from a stage and a row so
// that independent random streams never share state.
func StreamKey(stage, row uint32) uint64 {
	return Hash64(uint64(Hash32(stage))<<32 | uint64(row))
}
