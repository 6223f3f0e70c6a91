package core

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Mat4 is a 4x4 matrix in row major order: element (row, col) lives at index row*4+col.
type Mat4 f64.Mat4

// Identity4 returns the 4x4 identity matrix
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at (row, col)
func (m Mat4) At(row, col int) float64 {
	return m[row*4+col]
}

// Mul returns the matrix product m * other
func (m Mat4) Mul(other Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i*4+k] * other[k*4+j]
			}
			r[i*4+j] = sum
		}
	}
	return r
}

// Transpose returns the transposed matrix
func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[j*4+i] = m[i*4+j]
		}
	}
	return r
}

// Inverse returns the inverse using Gauss-Jordan elimination with partial pivoting.
// The second result is false when the matrix is singular.
func (m Mat4) Inverse() (Mat4, bool) {
	a := m
	inv := Identity4()

	for col := 0; col < 4; col++ {
		// Pick the row with the largest pivot for numerical stability
		pivot := col
		for row := col + 1; row < 4; row++ {
			if math.Abs(a[row*4+col]) > math.Abs(a[pivot*4+col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot*4+col]) < 1e-12 {
			return Mat4{}, false
		}
		if pivot != col {
			for k := 0; k < 4; k++ {
				a[col*4+k], a[pivot*4+k] = a[pivot*4+k], a[col*4+k]
				inv[col*4+k], inv[pivot*4+k] = inv[pivot*4+k], inv[col*4+k]
			}
		}

		scale := 1.0 / a[col*4+col]
		for k := 0; k < 4; k++ {
			a[col*4+k] *= scale
			inv[col*4+k] *= scale
		}

		for row := 0; row < 4; row++ {
			if row == col {
				continue
			}
			factor := a[row*4+col]
			if factor == 0 {
				continue
			}
			for k := 0; k < 4; k++ {
				a[row*4+k] -= factor * a[col*4+k]
				inv[row*4+k] -= factor * inv[col*4+k]
			}
		}
	}

	return inv, true
}

// TransformPoint applies the matrix to a point (w=1), dividing by w when it is not 1
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3]
	y := m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7]
	z := m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11]
	w := m[12]*p.X + m[13]*p.Y + m[14]*p.Z + m[15]
	if w != 1 && w != 0 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// TransformVector applies the upper 3x3 part of the matrix to a direction (w=0)
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z,
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z,
	}
}

// ApproxEquals reports whether every element differs by at most tolerance
func (m Mat4) ApproxEquals(other Mat4, tolerance float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > tolerance {
			return false
		}
	}
	return true
}
