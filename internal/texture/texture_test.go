package texture

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"planet-texgen/internal/buffer"
	"planet-texgen/internal/export"
)

func sampleGrid() *buffer.Color {
	g, _ := buffer.New[buffer.RGB](6, 3)
	for i := range g.Cells() {
		g.Cells()[i] = buffer.Pack(i*40, 255-i*10, i*3)
	}
	return g
}

func TestLoadColorRoundTrip(t *testing.T) {
	dir := t.TempDir()
	g := sampleGrid()
	for _, f := range []string{export.FormatWebP, export.FormatPNG, export.FormatTGA} {
		t.Run(f, func(t *testing.T) {
			path := filepath.Join(dir, "color."+f)
			if err := export.SaveColor(path, g, f); err != nil {
				t.Fatal(err)
			}
			back, err := LoadColor(path)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(back.Cells(), g.Cells()) {
				t.Fatalf("%s round trip changed pixels", f)
			}
		})
	}
}

func TestLoadFloatRoundTrip(t *testing.T) {
	g, _ := buffer.New[float32](4, 2)
	copy(g.Cells(), []float32{0.985, 1, 1.2, -3, 0, 5, 6, 7})
	path := filepath.Join(t.TempDir(), "d.f32")
	if err := export.SaveFloat(path, g); err != nil {
		t.Fatal(err)
	}
	back, err := LoadFloat(path, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(back.Cells(), g.Cells()) {
		t.Fatal("float round trip changed values")
	}
	if _, err := LoadFloat(path, 3, 3); err == nil {
		t.Fatal("expected size mismatch error")
	}
}

func TestLoadImageUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.bmp")
	_ = os.WriteFile(path, []byte{1, 2, 3}, 0644)
	if _, err := LoadImage(path); err == nil {
		t.Fatal("expected error for .bmp")
	}
}

func TestIndexPrefersWebP(t *testing.T) {
	dir := t.TempDir()
	g := sampleGrid()
	for _, name := range []string{"color.tga", "color.png", "bump.tga", "light.png", "Light.webp"} {
		f := filepath.Ext(name)[1:]
		if err := export.SaveColor(filepath.Join(dir, name), g, f); err != nil {
			t.Fatal(err)
		}
	}
	_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)

	idx := BuildIndex(dir)
	if idx.Len() != 3 {
		t.Fatalf("Len=%d, want 3", idx.Len())
	}
	cases := map[string]string{
		"color":      "color.png",
		"bump.webp":  "bump.tga",
		"maps/LIGHT": "Light.webp",
	}
	for name, want := range cases {
		path, ok := idx.ResolvePath(name)
		if !ok || filepath.Base(path) != want {
			t.Fatalf("ResolvePath(%q)=%q,%v, want %s", name, path, ok, want)
		}
	}
	if _, ok := idx.ResolvePath("displacement"); ok {
		t.Fatal("resolved a missing map")
	}
}

func TestCacheReturnsSameGrid(t *testing.T) {
	dir := t.TempDir()
	if err := export.SaveColor(filepath.Join(dir, "color.png"), sampleGrid(), export.FormatPNG); err != nil {
		t.Fatal(err)
	}
	c := NewCache(BuildIndex(dir))
	a := c.Resolve("color")
	if a == nil {
		t.Fatal("color not resolved")
	}
	if b := c.Resolve("color"); b != a {
		t.Fatal("second Resolve reloaded the map")
	}
	if c.Resolve("bump") != nil {
		t.Fatal("missing map resolved")
	}
}

func TestCacheRemembersDecodeError(t *testing.T) {
	dir := t.TempDir()
	_ = os.WriteFile(filepath.Join(dir, "color.png"), []byte("not a png"), 0644)
	c := NewCache(BuildIndex(dir))
	if _, err := c.Load("color"); err == nil {
		t.Fatal("expected decode error")
	}
	if g, err := c.Load("color"); g != nil || err == nil {
		t.Fatalf("cached entry = %v, %v", g, err)
	}
}
