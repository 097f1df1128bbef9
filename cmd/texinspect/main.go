package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"planet-texgen/internal/buffer"
	"planet-texgen/internal/export"
	"planet-texgen/internal/planet"
	"planet-texgen/internal/raster"
	"planet-texgen/internal/terrain"
	"planet-texgen/internal/texture"
)

func main() {
	preview := flag.Int("preview", 0, "Render a globe preview of each planet at this size (0: none)")
	rotation := flag.Float64("rotation", 0, "Preview rotation in radians")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: texinspect [flags] <planet dir | output dir with manifest.json>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	failed := false
	for _, arg := range flag.Args() {
		for _, dir := range planetDirs(arg) {
			if err := inspect(dir, *preview, *rotation); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", dir, err)
				failed = true
			}
		}
	}
	if failed {
		os.Exit(1)
	}
}

// planetDirs expands an output directory into its planets via the manifest.
func planetDirs(arg string) []string {
	entries, err := export.ReadManifest(filepath.Join(arg, "manifest.json"))
	if err != nil {
		return []string{arg}
	}
	dirs := make([]string, 0, len(entries))
	for _, e := range entries {
		fmt.Printf("%s: %s seed=%d %dx%d\n", e.Name, e.Profile, e.Seed, e.Width, e.Height)
		dirs = append(dirs, filepath.Join(arg, e.Name))
	}
	return dirs
}

func inspect(dir string, previewSize int, rotation float64) error {
	idx := texture.BuildIndex(dir)
	if idx.Len() == 0 {
		return fmt.Errorf("no maps found")
	}
	cache := texture.NewCache(idx)

	fmt.Printf("\n%s (%d maps)\n", dir, idx.Len())

	var surface raster.Surface
	for _, name := range []string{export.MapColor, export.MapBump, export.MapLight} {
		g, err := cache.Load(name)
		if err != nil {
			return err
		}
		if g == nil {
			fmt.Printf("  %-6s missing\n", name)
			continue
		}
		path, _ := idx.ResolvePath(name)
		lo, hi := channelRanges(g)
		fmt.Printf("  %-6s %s %s  R[%d,%d] G[%d,%d] B[%d,%d]\n",
			name, g.Size(), filepath.Base(path), lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])

		switch name {
		case export.MapColor:
			surface.Color = g
		case export.MapBump:
			surface.Bump = g
		case export.MapLight:
			surface.Light = g
		}
	}

	if surface.Light != nil {
		printTerrain(surface.Light)
	}

	if previewSize > 0 && surface.Color != nil {
		img := raster.RenderSphere(surface, previewSize, rotation, raster.DefaultLightConfig())
		path := filepath.Join(dir, export.Preview+".png")
		if err := export.SaveImage(path, img, export.FormatPNG); err != nil {
			return err
		}
		fmt.Printf("  preview %s\n", path)
	}
	return nil
}

func channelRanges(g *buffer.Color) (lo, hi [3]uint8) {
	lo = [3]uint8{255, 255, 255}
	for _, c := range g.Cells() {
		r, gr, b := c.Channels()
		for i, v := range [3]uint8{r, gr, b} {
			lo[i] = min(lo[i], v)
			hi[i] = max(hi[i], v)
		}
	}
	return lo, hi
}

// printTerrain recovers the terrain distribution from a light map: every
// terrain type writes its own specular coefficient.
func printTerrain(light *buffer.Color) {
	bySpec := map[uint8]terrain.Type{}
	for t, c := range planet.LightCoefficients {
		bySpec[c.B()] = t
	}

	cat, _ := buffer.New[int16](light.W, light.H)
	cells := cat.Cells()
	unknown := 0
	for i, c := range light.Cells() {
		t, ok := bySpec[c.B()]
		if !ok {
			unknown++
			continue
		}
		cells[i] = int16(t)
	}
	if unknown > 0 {
		fmt.Printf("  terrain: %d cells with unrecognized coefficients\n", unknown)
		return
	}

	shares := planet.TerrainShares(cat)
	names := make([]string, 0, len(shares))
	for n := range shares {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("  terrain %-6s %5.1f%%\n", n, shares[n]*100)
	}
}
