package buffer

// RGB is an opaque color packed as 0xAABBGGRR, which is the byte order
// [R, G, B, A] in little-endian memory.
type RGB uint32

const alphaOpaque RGB = 0xFF000000

// Pack builds an opaque RGB word. Channels outside [0,255] are masked to
// their low 8 bits, not clamped.
func Pack(r, g, b int) RGB {
	return alphaOpaque | RGB(b&0xFF)<<16 | RGB(g&0xFF)<<8 | RGB(r&0xFF)
}

// PackF packs float channels, truncating toward zero before masking.
// Blends routinely produce fractional or slightly out-of-range values.
func PackF(r, g, b float64) RGB {
	return Pack(int(int64(r)), int(int64(g)), int(int64(b)))
}

// R returns the red channel.
func (c RGB) R() uint8 { return uint8(c) }

// G returns the green channel.
func (c RGB) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c RGB) B() uint8 { return uint8(c >> 16) }

// A returns the alpha channel, which is always 0xFF for packed colors.
func (c RGB) A() uint8 { return uint8(c >> 24) }

// Channels decomposes the word into its color channels.
func (c RGB) Channels() (r, g, b uint8) {
	return c.R(), c.G(), c.B()
}

// GetRGB returns the channel triple at (x, y).
func GetRGB(g *Color, x, y int) (r, gr, b uint8, err error) {
	c, err := g.Get(x, y)
	if err != nil {
		return 0, 0, 0, err
	}
	r, gr, b = c.Channels()
	return r, gr, b, nil
}

// SetRGB packs the channels and stores them at (x, y).
func SetRGB(g *Color, x, y, r, gr, b int) error {
	return g.Set(x, y, Pack(r, gr, b))
}

// LerpColor maps value from [from, to] onto the color range [a, b],
// blending each channel linearly.
func LerpColor(value, from, to float64, a, b RGB) RGB {
	t := (value - from) / (to - from)
	it := 1 - t
	ar, ag, ab := a.Channels()
	br, bg, bb := b.Channels()
	return PackF(
		t*float64(br)+it*float64(ar),
		t*float64(bg)+it*float64(ag),
		t*float64(bb)+it*float64(ab),
	)
}
