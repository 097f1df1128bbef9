package buffer

import (
	"errors"
	"math"
	"testing"
)

func TestNewRejectsInvalidSize(t *testing.T) {
	huge := math.MaxInt/2 + 1
	for _, size := range [][2]int{{0, 4}, {4, 0}, {-1, 3}, {huge, huge}, {huge, 2}, {1 << 16, 1 << 15}} {
		if _, err := New[float32](size[0], size[1]); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("New(%d,%d) err=%v, want ErrInvalidSize", size[0], size[1], err)
		}
	}
	// w*h wraps to 0 here, matching an empty slice.
	if _, err := FromCells[float32](huge, 2, nil); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("FromCells overflow err=%v, want ErrInvalidSize", err)
	}
	if err := checkSize(MaxCells, 1); err != nil {
		t.Fatalf("MaxCells cells rejected: %v", err)
	}
	if err := checkSize(MaxCells/2+1, 2); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("MaxCells+2 cells err=%v, want ErrInvalidSize", err)
	}
}

func TestKind(t *testing.T) {
	f, _ := New[float32](2, 2)
	c, _ := New[int16](2, 2)
	rgb, _ := New[RGB](2, 2)
	if f.Kind() != KindFloat || c.Kind() != KindCategory || rgb.Kind() != KindColor {
		t.Fatalf("kinds = %v %v %v", f.Kind(), c.Kind(), rgb.Kind())
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	g, err := New[float32](7, 5)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			v := float32(x*100+y) - 0.25
			if err := g.Set(x, y, v); err != nil {
				t.Fatal(err)
			}
			got, err := g.Get(x, y)
			if err != nil {
				t.Fatal(err)
			}
			if got != v {
				t.Fatalf("Get(%d,%d)=%v, want %v", x, y, got, v)
			}
			if g.Cells()[y*7+x] != v {
				t.Fatalf("cell (%d,%d) not stored row-major", x, y)
			}
		}
	}
}

func TestOutOfBounds(t *testing.T) {
	g, _ := New[int16](4, 3)
	cases := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"x past width", 4, 0},
		{"negative y", 0, -1},
		{"y past height", 0, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := g.Get(tc.x, tc.y); !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("Get err=%v, want ErrOutOfBounds", err)
			}
			if err := g.Set(tc.x, tc.y, 1); !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("Set err=%v, want ErrOutOfBounds", err)
			}
		})
	}
}

func TestAtPanicsOutOfBounds(t *testing.T) {
	g, _ := New[float32](2, 2)
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("recover()=%v, want ErrOutOfBounds", r)
		}
	}()
	g.At(2, 0)
}

func TestWrapAndClamp(t *testing.T) {
	g, _ := New[float32](8, 4)
	if got := g.WrapX(-1); got != 7 {
		t.Fatalf("WrapX(-1)=%d", got)
	}
	if got := g.WrapX(8); got != 0 {
		t.Fatalf("WrapX(8)=%d", got)
	}
	if got := g.ClampY(-3); got != 0 {
		t.Fatalf("ClampY(-3)=%d", got)
	}
	if got := g.ClampY(4); got != 3 {
		t.Fatalf("ClampY(4)=%d", got)
	}
	if x, y := g.Wrap(-1, -1); x != 7 || y != 3 {
		t.Fatalf("Wrap(-1,-1)=(%d,%d)", x, y)
	}
}

func TestPackMasksChannels(t *testing.T) {
	cases := []struct {
		r, g, b    int
		wr, wg, wb uint8
	}{
		{10, 20, 30, 10, 20, 30},
		{256, 257, 511, 0, 1, 255},
		{-1, 0, 300, 255, 0, 44},
	}
	for _, tc := range cases {
		c := Pack(tc.r, tc.g, tc.b)
		r, g, b := c.Channels()
		if r != tc.wr || g != tc.wg || b != tc.wb {
			t.Fatalf("Pack(%d,%d,%d) channels=(%d,%d,%d), want (%d,%d,%d)", tc.r, tc.g, tc.b, r, g, b, tc.wr, tc.wg, tc.wb)
		}
		if c.A() != 0xFF {
			t.Fatalf("alpha=%#x, want 0xff", c.A())
		}
	}
}

func TestPackFTruncates(t *testing.T) {
	c := PackF(12.9, 255.99, -0.5)
	r, g, b := c.Channels()
	if r != 12 || g != 255 || b != 0 {
		t.Fatalf("PackF channels=(%d,%d,%d), want (12,255,0)", r, g, b)
	}
	// 260.7 truncates to 260, masked to 4.
	if got := PackF(260.7, 0, 0).R(); got != 4 {
		t.Fatalf("PackF(260.7).R()=%d, want 4", got)
	}
}

func TestSetRGBRoundTrip(t *testing.T) {
	g, _ := New[RGB](3, 3)
	if err := SetRGB(g, 1, 2, 300, 128, 7); err != nil {
		t.Fatal(err)
	}
	r, gr, b, err := GetRGB(g, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if r != 300&0xFF || gr != 128 || b != 7 {
		t.Fatalf("GetRGB=(%d,%d,%d)", r, gr, b)
	}
	if _, _, _, err := GetRGB(g, 3, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("GetRGB out of range err=%v", err)
	}
}

func TestLerpColorEndpoints(t *testing.T) {
	deep, shallow := Pack(0, 0, 60), Pack(24, 24, 126)
	if got := LerpColor(-1, -1, 0, deep, shallow); got != deep {
		t.Fatalf("LerpColor at from = %#x, want %#x", got, deep)
	}
	if got := LerpColor(0, -1, 0, deep, shallow); got != shallow {
		t.Fatalf("LerpColor at to = %#x, want %#x", got, shallow)
	}
	r, g, b := LerpColor(-0.5, -1, 0, deep, shallow).Channels()
	if r != 12 || g != 12 || b != 93 {
		t.Fatalf("LerpColor midpoint=(%d,%d,%d), want (12,12,93)", r, g, b)
	}
}

func TestRGBABytesLayout(t *testing.T) {
	g, _ := New[RGB](2, 1)
	g.Cells()[0] = Pack(1, 2, 3)
	g.Cells()[1] = Pack(250, 251, 252)
	got := RGBABytes(g)
	want := []byte{1, 2, 3, 0xFF, 250, 251, 252, 0xFF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, got[i], want[i])
		}
	}
	back, err := ColorFromRGBA(2, 1, got)
	if err != nil {
		t.Fatal(err)
	}
	if back.Cells()[0] != g.Cells()[0] || back.Cells()[1] != g.Cells()[1] {
		t.Fatal("ColorFromRGBA did not restore the grid")
	}
}

func TestFloat32Bytes(t *testing.T) {
	g, _ := New[float32](3, 1)
	copy(g.Cells(), []float32{-1, 0.985, float32(math.Pi)})
	data := Float32Bytes(g)
	if len(data) != 12 {
		t.Fatalf("len=%d, want 12", len(data))
	}
	// 1.0 in little-endian IEEE 754 is 00 00 80 3f; -1.0 is 00 00 80 bf.
	if data[2] != 0x80 || data[3] != 0xbf {
		t.Fatalf("first float bytes = % x", data[:4])
	}
	back, err := FloatFromBytes(3, 1, data)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range g.Cells() {
		if back.Cells()[i] != v {
			t.Fatalf("cell %d = %v, want %v", i, back.Cells()[i], v)
		}
	}
}

func TestImageConversion(t *testing.T) {
	g, _ := New[RGB](4, 2)
	for i := range g.Cells() {
		g.Cells()[i] = Pack(i*10, 255-i, i)
	}
	img := ToNRGBA(g)
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds=%v", img.Bounds())
	}
	back, err := ColorFromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range g.Cells() {
		if back.Cells()[i] != c {
			t.Fatalf("cell %d = %#x, want %#x", i, back.Cells()[i], c)
		}
	}
}

func TestToGray16(t *testing.T) {
	g, _ := New[float32](3, 1)
	copy(g.Cells(), []float32{0.5, 1.0, 2.0})
	img := ToGray16(g, 1, 2)
	if img.Gray16At(0, 0).Y != 0 {
		t.Fatalf("below range = %d, want 0", img.Gray16At(0, 0).Y)
	}
	if img.Gray16At(2, 0).Y != 65535 {
		t.Fatalf("top of range = %d, want 65535", img.Gray16At(2, 0).Y)
	}
}

func TestMinMax(t *testing.T) {
	g, _ := New[float32](2, 2)
	copy(g.Cells(), []float32{3, -2, 7, 0})
	lo, hi := g.MinMax()
	if lo != -2 || hi != 7 {
		t.Fatalf("MinMax=(%v,%v)", lo, hi)
	}
}
