package export

import (
	"fmt"
	"path/filepath"

	"planet-texgen/internal/buffer"
	"planet-texgen/internal/planet"
	"planet-texgen/internal/postprocess"
	"planet-texgen/internal/raster"
)

// Options selects what WritePlanet produces.
type Options struct {
	Formats        []string // color, bump and light map formats
	FloatMaps      bool     // also write raw .f32 displacement and elevation
	ThumbnailWidth int      // 0 disables color thumbnails
	PreviewSize    int      // 0 disables the rendered globe preview
	Supersample    int      // preview supersampling factor
}

// Map file stems.
const (
	MapColor        = "color"
	MapBump         = "bump"
	MapLight        = "light"
	MapDisplacement = "displacement"
	MapElevation    = "elevation"
	MapTerrain      = "terrain"
	MapTemperature  = "temperature"
	Thumbnail       = "thumbnail"
	Preview         = "preview"
)

// WritePlanet writes every map of p under dir/<planet name>/ and returns
// the written paths relative to dir.
func WritePlanet(dir string, p *planet.Planet, opts Options) ([]string, error) {
	base := p.Name
	var written []string
	add := func(rel string, save func(path string) error) error {
		if err := save(filepath.Join(dir, rel)); err != nil {
			return err
		}
		written = append(written, rel)
		return nil
	}

	formats := opts.Formats
	if len(formats) == 0 {
		formats = []string{FormatWebP}
	}
	colorMaps := []struct {
		name string
		grid *buffer.Color
	}{
		{MapColor, p.Color},
		{MapBump, p.Bump},
		{MapLight, p.Light},
	}
	for _, m := range colorMaps {
		for _, f := range formats {
			rel := filepath.Join(base, m.name+"."+f)
			if err := add(rel, func(path string) error { return SaveColor(path, m.grid, f) }); err != nil {
				return written, err
			}
		}
	}

	lo, hi := p.Displacement.MinMax()
	if err := add(filepath.Join(base, MapDisplacement+".png"), func(path string) error {
		return SaveGray(path, p.Displacement, float64(lo), float64(hi))
	}); err != nil {
		return written, err
	}
	if p.Terrain != nil {
		if err := add(filepath.Join(base, MapTerrain+".png"), func(path string) error {
			return SaveImage(path, TerrainImage(p.Terrain), FormatPNG)
		}); err != nil {
			return written, err
		}
	}

	if opts.FloatMaps {
		floats := []struct {
			name string
			grid *buffer.Float
		}{
			{MapDisplacement, p.Displacement},
			{MapElevation, p.Elevation},
			{MapTemperature, p.Temperature},
		}
		for _, m := range floats {
			if m.grid == nil {
				continue
			}
			if err := add(filepath.Join(base, m.name+FloatExt), func(path string) error {
				return SaveFloat(path, m.grid)
			}); err != nil {
				return written, err
			}
		}
	}

	if opts.ThumbnailWidth > 0 {
		th := postprocess.Thumbnail(buffer.ToNRGBA(p.Color), opts.ThumbnailWidth)
		if err := add(filepath.Join(base, Thumbnail+".png"), func(path string) error {
			return SaveImage(path, th, FormatPNG)
		}); err != nil {
			return written, err
		}
	}

	if opts.PreviewSize > 0 {
		ss := max(opts.Supersample, 1)
		surf := raster.Surface{Color: p.Color, Bump: p.Bump, Light: p.Light}
		img := raster.RenderSphere(surf, opts.PreviewSize*ss, 0, raster.DefaultLightConfig())
		if ss > 1 {
			img = postprocess.Downsample(img, opts.PreviewSize)
		}
		if err := add(filepath.Join(base, Preview+".png"), func(path string) error {
			return SaveImage(path, img, FormatPNG)
		}); err != nil {
			return written, err
		}
	}

	if len(written) == 0 {
		return nil, fmt.Errorf("export: %s: nothing written", base)
	}
	return written, nil
}
