package mathutil

import (
	"math"
	"math/rand/v2"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestClampAndLerp(t *testing.T) {
	tests := []struct {
		got, want float64
	}{
		{Clamp(1.3, 0, 1), 1},
		{Clamp(-4, -1, 1), -1},
		{Clamp(0.6, 0, 1), 0.6},
		{Clamp01(2), 1},
		{Lerp(0.5, 0, 1, 0, 255), 127.5},
		{Lerp(0, 0, 1, 64, 192), 64},
		{Lerp(-2, 1, -2, 0, 1), 1},
		{Lerp(2, 0, 1, 0, 10), 20}, // no clamping
	}
	for i, tt := range tests {
		if !near(tt.got, tt.want) {
			t.Errorf("case %d: got %v, want %v", i, tt.got, tt.want)
		}
	}
}

func TestRandomInRange(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 1000 {
		v := RandomInRange(r, -0.25, 0.25)
		if v < -0.25 || v >= 0.25 {
			t.Fatalf("RandomInRange = %v, outside [-0.25, 0.25)", v)
		}
	}
}

func TestRotationIsOrthonormal(t *testing.T) {
	for _, rot := range []float64{0, 0.7, math.Pi, 5} {
		m := ModelRotation(rot)
		p := Mat3Mul(m, m.Transpose())
		for r := range 3 {
			for c := range 3 {
				want := 0.0
				if r == c {
					want = 1
				}
				if !near(p[r][c], want) {
					t.Fatalf("rot %v: M*Mt[%d][%d] = %v, want %v", rot, r, c, p[r][c], want)
				}
			}
		}
	}
}

func TestRotYQuarterTurn(t *testing.T) {
	v := RotY(math.Pi / 2).MulVec3(Vec3{1, 0, 0})
	if !near(v[0], 0) || !near(v[1], 0) || !near(v[2], -1) {
		t.Errorf("RotY(pi/2)*x = %v, want (0, 0, -1)", v)
	}
}

func TestVecOps(t *testing.T) {
	a := Vec3{3, 0, 4}
	if a.Len() != 5 {
		t.Errorf("Len = %v", a.Len())
	}
	n := a.Normalize()
	if !near(n.Len(), 1) {
		t.Errorf("Normalize length = %v", n.Len())
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("Normalize of zero vector should stay zero")
	}
	if a.Add(a.Neg()) != (Vec3{}) || a.Sub(a) != (Vec3{}) {
		t.Error("a + -a and a - a should be zero")
	}
	if a.Dot(a.Scale(2)) != 50 {
		t.Errorf("Dot = %v", a.Dot(a.Scale(2)))
	}
}

func TestStreamKeyDistinct(t *testing.T) {
	seen := map[uint64]bool{}
	for stage := uint32(0); stage < 8; stage++ {
		for row := uint32(0); row < 256; row++ {
			k := StreamKey(stage, row)
			if seen[k] {
				t.Fatalf("StreamKey(%d, %d) collides", stage, row)
			}
			seen[k] = true
		}
	}
}
