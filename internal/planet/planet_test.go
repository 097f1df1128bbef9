package planet

import (
	"context"
	"errors"
	"slices"
	"testing"

	"planet-texgen/internal/buffer"
	"planet-texgen/internal/derive"
	"planet-texgen/internal/noise"
	"planet-texgen/internal/terrain"
)

func smallOptions() Options {
	return Options{Width: 64, Height: 32, Workers: 4}
}

func generate(t *testing.T, opts Options) *Planet {
	t.Helper()
	p, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatalf("Generate(%+v): %v", opts, err)
	}
	return p
}

func testGeneration(w, h int) *Generation {
	return &Generation{
		Size:     buffer.Size{W: w, H: h},
		Params:   DefaultParams(),
		Pipeline: derive.New(1, 2),
		Source:   noise.Simplex{},
	}
}

func TestEarthlikeDefaults(t *testing.T) {
	p := generate(t, smallOptions())
	if p.Seed != DefaultSeed || p.Profile != "earthlike" {
		t.Fatalf("seed=%d profile=%q", p.Seed, p.Profile)
	}
	if p.Params != DefaultParams() {
		t.Fatalf("params=%+v, want defaults", p.Params)
	}
	for name, sz := range map[string]buffer.Size{
		"color":        p.Color.Size(),
		"displacement": p.Displacement.Size(),
		"bump":         p.Bump.Size(),
		"light":        p.Light.Size(),
		"elevation":    p.Elevation.Size(),
		"temperature":  p.Temperature.Size(),
		"terrain":      p.Terrain.Size(),
	} {
		if sz != (buffer.Size{W: 64, H: 32}) {
			t.Fatalf("%s size=%s", name, sz)
		}
	}
}

func TestSeaDisplacementIsMinimum(t *testing.T) {
	p := generate(t, smallOptions())
	lo, hi := p.Displacement.MinMax()
	if lo != float32(0.985) {
		t.Fatalf("displacement min=%v, want 0.985", lo)
	}
	if hi <= 1 {
		t.Fatalf("displacement max=%v, want land above 1", hi)
	}
}

func TestWaterCellsFollowDepthGradient(t *testing.T) {
	p := generate(t, smallOptions())
	water := 0
	for i, ty := range p.Terrain.Cells() {
		h := p.Elevation.Cells()[i]
		isWater := terrain.Type(ty) == terrain.Water
		if isWater != (h <= 0) {
			t.Fatalf("cell %d: terrain=%v elevation=%v", i, terrain.Type(ty), h)
		}
		if !isWater {
			continue
		}
		water++
		if got, want := p.Color.Cells()[i], buffer.LerpColor(float64(h), -1, 0, WaterDeep, WaterShallow); got != want {
			t.Fatalf("cell %d water color=%#x, want %#x", i, got, want)
		}
		if p.Temperature.Cells()[i] != 10 {
			t.Fatalf("cell %d water temperature=%v", i, p.Temperature.Cells()[i])
		}
	}
	if water == 0 {
		t.Fatal("no water cells generated")
	}
}

func TestLightMapByTerrain(t *testing.T) {
	p := generate(t, smallOptions())
	for i, ty := range p.Terrain.Cells() {
		if got := p.Light.Cells()[i]; got != LightCoefficients[terrain.Type(ty)] {
			t.Fatalf("cell %d light=%#x for %v", i, got, terrain.Type(ty))
		}
	}
}

func TestElevationRanges(t *testing.T) {
	p := generate(t, smallOptions())
	lo, hi := p.Elevation.MinMax()
	if lo < -1 || hi > 1 {
		t.Fatalf("elevation range [%v,%v] outside [-1,1]", lo, hi)
	}
}

func TestElevationMonotonic(t *testing.T) {
	g := testGeneration(21, 1)
	g.Params.MountainSteepness = 1.3
	raw, _ := buffer.New[float32](21, 1)
	for i := range raw.Cells() {
		raw.Cells()[i] = float32(-1 + float64(i)*0.1)
	}
	h, err := elevation(g, raw)
	if err != nil {
		t.Fatal(err)
	}
	cells := h.Cells()
	for i := 1; i < len(cells); i++ {
		if cells[i] < cells[i-1] {
			t.Fatalf("elevation not monotonic at %d: %v < %v", i, cells[i], cells[i-1])
		}
	}
	if cells[0] != -1 || cells[len(cells)-1] != 1 {
		t.Fatalf("endpoints %v, %v", cells[0], cells[len(cells)-1])
	}
	if cells[10] > 0 || cells[12] <= 0 {
		t.Fatalf("sea level crossing misplaced: %v, %v", cells[10], cells[12])
	}
}

func TestBumpFlatAndSlope(t *testing.T) {
	g := testGeneration(4, 3)
	disp, _ := buffer.New[float32](4, 3)
	disp.Fill(0.985)
	// A single raised column at x=2 tilts its neighbors in x.
	for y := 0; y < 3; y++ {
		_ = disp.Set(2, y, 1.5)
	}
	b, err := bump(g, disp, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	r, gr, bl := b.At(0, 1).Channels()
	if r != 127 || gr != 127 || bl != 0 {
		t.Fatalf("flat cell bump=(%d,%d,%d), want (127,127,0)", r, gr, bl)
	}
	if r := b.At(1, 1).R(); r != 255 {
		t.Fatalf("left of ridge R=%d, want 255", r)
	}
	if r := b.At(3, 1).R(); r != 0 {
		t.Fatalf("right of ridge R=%d, want 0", r)
	}
	// Pole rows clamp instead of reading the opposite pole.
	if gr := b.At(0, 0).G(); gr != 127 {
		t.Fatalf("pole G=%d, want 127", gr)
	}
}

func TestDeterministicAcrossWorkers(t *testing.T) {
	a := generate(t, Options{Width: 48, Height: 24, Seed: 99, Workers: 1})
	b := generate(t, Options{Width: 48, Height: 24, Seed: 99, Workers: 7})
	if !slices.Equal(a.Color.Cells(), b.Color.Cells()) ||
		!slices.Equal(a.Terrain.Cells(), b.Terrain.Cells()) ||
		!slices.Equal(a.Displacement.Cells(), b.Displacement.Cells()) ||
		!slices.Equal(a.Bump.Cells(), b.Bump.Cells()) {
		t.Fatal("same seed produced different planets")
	}
}

func TestSeedsDiffer(t *testing.T) {
	a := generate(t, Options{Width: 48, Height: 24, Seed: 1})
	b := generate(t, Options{Width: 48, Height: 24, Seed: 2})
	if slices.Equal(a.Displacement.Cells(), b.Displacement.Cells()) {
		t.Fatal("different seeds produced identical displacement")
	}
}

func TestRandomizeWithSeed(t *testing.T) {
	opts := Options{Width: 32, Height: 16, Seed: 1234, Randomize: true}
	a := generate(t, opts)
	b := generate(t, opts)
	if a.Params == DefaultParams() {
		t.Fatal("randomize left parameters at defaults")
	}
	if a.Params != b.Params || !slices.Equal(a.Color.Cells(), b.Color.Cells()) {
		t.Fatal("randomized generation with a fixed seed is not reproducible")
	}
	pr := a.Params
	if pr.WaterLevel < -0.25 || pr.WaterLevel >= 0.25 ||
		pr.MountainSteepness < 0.75 || pr.MountainSteepness >= 1.5 ||
		pr.Climate < -30 || pr.Climate >= 30 ||
		pr.ColdnessWithAltitude < 40 || pr.ColdnessWithAltitude >= 140 ||
		pr.RockHeight < 0.03 || pr.RockHeight >= 0.2 ||
		pr.SandTemperature < 13 || pr.SandTemperature >= 33 {
		t.Fatalf("randomized params out of range: %+v", pr)
	}
}

func TestRandomizeWithoutSeedPicksOne(t *testing.T) {
	p := generate(t, Options{Width: 16, Height: 8, Randomize: true})
	if p.Seed == 0 {
		t.Fatal("no seed recorded")
	}
}

func TestProfiles(t *testing.T) {
	names := Profiles()
	for _, want := range []string{"earthlike", "gray", "relief"} {
		if !slices.Contains(names, want) {
			t.Fatalf("Profiles()=%v, missing %q", names, want)
		}
	}
}

func TestGrayProfileUsesDefaults(t *testing.T) {
	p := generate(t, Options{Width: 8, Height: 4, Profile: "gray"})
	checks := []struct {
		name string
		grid *buffer.Color
		want buffer.RGB
	}{
		{"color", p.Color, DefaultColor},
		{"bump", p.Bump, DefaultBump},
		{"light", p.Light, DefaultLight},
	}
	for _, c := range checks {
		for i, v := range c.grid.Cells() {
			if v != c.want {
				t.Fatalf("%s cell %d = %#x, want %#x", c.name, i, v, c.want)
			}
		}
	}
	for _, v := range p.Displacement.Cells() {
		if v != DefaultDisplacement {
			t.Fatalf("displacement=%v, want 1", v)
		}
	}
	if p.Terrain != nil || p.Elevation != nil {
		t.Fatal("gray profile built intermediates")
	}
}

func TestReliefProfile(t *testing.T) {
	p := generate(t, Options{Width: 32, Height: 16, Profile: "relief"})
	for _, v := range p.Light.Cells() {
		if v != DefaultLight {
			t.Fatalf("relief light=%#x, want default", v)
		}
	}
	lr, lg, lb := LandLow.Channels()
	hr, hg, hb := LandHigh.Channels()
	land := 0
	for i, h := range p.Elevation.Cells() {
		c := p.Color.Cells()[i]
		if h <= 0 {
			if c != waterColor(float64(h)) {
				t.Fatalf("cell %d water color %#x, want %#x", i, c, waterColor(float64(h)))
			}
			continue
		}
		land++
		r, g, b := c.Channels()
		if r < lr || r > hr || g < lg || g > hg || b < lb || b > hb {
			t.Fatalf("cell %d land color %d,%d,%d outside the land ramp", i, r, g, b)
		}
	}
	if land == 0 {
		t.Fatal("relief planet has no land")
	}
	if p.Terrain != nil {
		t.Fatal("relief profile built a terrain map")
	}
}

func TestUnknownProfile(t *testing.T) {
	_, err := Generate(context.Background(), Options{Width: 8, Height: 4, Profile: "gas-giant"})
	if !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("err=%v, want ErrUnknownProfile", err)
	}
}

func TestUnknownNoise(t *testing.T) {
	_, err := Generate(context.Background(), Options{Width: 8, Height: 4, Noise: "value"})
	if !errors.Is(err, noise.ErrUnknownSource) {
		t.Fatalf("err=%v, want ErrUnknownSource", err)
	}
}

func TestAlternativeNoiseSources(t *testing.T) {
	for _, name := range []string{noise.SourceOpenSimplex, noise.SourcePerlin} {
		p := generate(t, Options{Width: 32, Height: 16, Noise: name})
		if p.Color == nil || p.Terrain == nil {
			t.Fatalf("%s: incomplete planet", name)
		}
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p, err := Generate(ctx, smallOptions())
	if !errors.Is(err, context.Canceled) || p != nil {
		t.Fatalf("Generate on cancelled ctx = %v, %v", p, err)
	}
}

func TestTerrainShares(t *testing.T) {
	g, err := buffer.FromCells(4, 1, []int16{int16(terrain.Water), int16(terrain.Water), int16(terrain.Rock), int16(terrain.Water)})
	if err != nil {
		t.Fatal(err)
	}
	shares := TerrainShares(g)
	if len(shares) != 2 {
		t.Fatalf("shares = %v, want two types", shares)
	}
	if shares[terrain.Water.String()] != 0.75 || shares[terrain.Rock.String()] != 0.25 {
		t.Errorf("shares = %v", shares)
	}
}
