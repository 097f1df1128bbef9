package export

import (
	"image"

	"planet-texgen/internal/buffer"
	"planet-texgen/internal/terrain"
)

// TerrainPalette is the false-color legend of terrain images.
var TerrainPalette = map[terrain.Type]buffer.RGB{
	terrain.Grass: buffer.Pack(60, 160, 60),
	terrain.Sand:  buffer.Pack(230, 200, 120),
	terrain.Rock:  buffer.Pack(130, 110, 90),
	terrain.Snow:  buffer.Pack(245, 245, 255),
	terrain.Water: buffer.Pack(30, 60, 170),
}

// TerrainImage renders a category map with TerrainPalette. Unknown codes
// are black.
func TerrainImage(g *buffer.Category) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.W, g.H))
	for i, code := range g.Cells() {
		c, ok := TerrainPalette[terrain.Type(code)]
		if !ok {
			c = buffer.Pack(0, 0, 0)
		}
		img.Pix[i*4], img.Pix[i*4+1], img.Pix[i*4+2], img.Pix[i*4+3] = c.R(), c.G(), c.B(), 255
	}
	return img
}
