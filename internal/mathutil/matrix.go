package mathutil

import "math"

// Mat3 is a 3×3 matrix stored as rows.
type Mat3 [3]Vec3

// Mat3Mul returns a × b.
func Mat3Mul(a, b Mat3) Mat3 {
	bt := b.Transpose()
	var m Mat3
	for r := range m {
		for c := range m[r] {
			m[r][c] = a[r].Dot(bt[c])
		}
	}
	return m
}

// MulVec3 returns M × v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{m[0].Dot(v), m[1].Dot(v), m[2].Dot(v)}
}

// Transpose returns Mᵀ. For the rotations built here it is the inverse.
func (m Mat3) Transpose() Mat3 {
	var t Mat3
	for r := range m {
		for c := range m[r] {
			t[c][r] = m[r][c]
		}
	}
	return t
}

// axisRotation rotates by a radians around coordinate axis i (0 = X,
// 1 = Y, 2 = Z), right-handed.
func axisRotation(i int, a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	j, k := (i+1)%3, (i+2)%3
	var m Mat3
	m[i][i] = 1
	m[j][j], m[j][k] = c, -s
	m[k][j], m[k][k] = s, c
	return m
}

// RotX, RotY and RotZ rotate around the named axis. Angles in radians.
func RotX(a float64) Mat3 { return axisRotation(0, a) }
func RotY(a float64) Mat3 { return axisRotation(1, a) }
func RotZ(a float64) Mat3 { return axisRotation(2, a) }
