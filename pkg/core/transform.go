package core

import "math"

// Transform is an affine transform together with its inverse.
// The zero value is the identity.
type Transform struct {
	Matrix  Mat4
	Inverse Mat4
}

// orIdentity maps the zero value to an explicit identity
func (t Transform) orIdentity() Transform {
	if t.Matrix == (Mat4{}) {
		return IdentityTransform()
	}
	return t
}

// IdentityTransform returns the transform that leaves geometry unchanged
func IdentityTransform() Transform {
	return Transform{Matrix: Identity4(), Inverse: Identity4()}
}

// NewTransform builds a transform from an arbitrary matrix.
// The second result is false when the matrix cannot be inverted.
func NewTransform(m Mat4) (Transform, bool) {
	inv, ok := m.Inverse()
	if !ok {
		return Transform{}, false
	}
	return Transform{Matrix: m, Inverse: inv}, true
}

// Translate returns a translation by delta
func Translate(delta Vec3) Transform {
	m := Identity4()
	m[3], m[7], m[11] = delta.X, delta.Y, delta.Z
	inv := Identity4()
	inv[3], inv[7], inv[11] = -delta.X, -delta.Y, -delta.Z
	return Transform{Matrix: m, Inverse: inv}
}

// Scale returns a non-uniform scale. Zero factors produce a singular matrix
// whose inverse keeps a zero on that axis.
func Scale(factors Vec3) Transform {
	m := Identity4()
	m[0], m[5], m[10] = factors.X, factors.Y, factors.Z
	inv := Identity4()
	inv[0], inv[5], inv[10] = safeReciprocal(factors.X), safeReciprocal(factors.Y), safeReciprocal(factors.Z)
	return Transform{Matrix: m, Inverse: inv}
}

// RotateX returns a rotation of angle radians about the X axis
func RotateX(angle float64) Transform {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity4()
	m[5], m[6] = c, -s
	m[9], m[10] = s, c
	return Transform{Matrix: m, Inverse: m.Transpose()}
}

// RotateY returns a rotation of angle radians about the Y axis
func RotateY(angle float64) Transform {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity4()
	m[0], m[2] = c, s
	m[8], m[10] = -s, c
	return Transform{Matrix: m, Inverse: m.Transpose()}
}

// RotateZ returns a rotation of angle radians about the Z axis
func RotateZ(angle float64) Transform {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity4()
	m[0], m[1] = c, -s
	m[4], m[5] = s, c
	return Transform{Matrix: m, Inverse: m.Transpose()}
}

// Rotate returns a rotation of angle radians about an arbitrary axis (Rodrigues)
func Rotate(axis Vec3, angle float64) Transform {
	a := axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	m := Mat4{
		t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y, 0,
		t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X, 0,
		t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c, 0,
		0, 0, 0, 1,
	}
	return Transform{Matrix: m, Inverse: m.Transpose()}
}

// FromQuaternion returns the rotation described by the quaternion (x, y, z, w).
// The quaternion is normalized first.
func FromQuaternion(x, y, z, w float64) Transform {
	n := math.Sqrt(x*x + y*y + z*z + w*w)
	if n == 0 {
		return IdentityTransform()
	}
	x, y, z, w = x/n, y/n, z/n, w/n

	m := Mat4{
		1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w), 0,
		2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w), 0,
		2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}
	return Transform{Matrix: m, Inverse: m.Transpose()}
}

// Mul composes two transforms. The result applies other first, then t.
func (t Transform) Mul(other Transform) Transform {
	t, other = t.orIdentity(), other.orIdentity()
	return Transform{
		Matrix:  t.Matrix.Mul(other.Matrix),
		Inverse: other.Inverse.Mul(t.Inverse),
	}
}

// Then returns the transform that applies t first and next afterwards
func (t Transform) Then(next Transform) Transform {
	return next.Mul(t)
}

// Invert returns the inverse transform
func (t Transform) Invert() Transform {
	t = t.orIdentity()
	return Transform{Matrix: t.Inverse, Inverse: t.Matrix}
}

// IsIdentity reports whether the transform leaves geometry unchanged
func (t Transform) IsIdentity() bool {
	return t.orIdentity().Matrix.ApproxEquals(Identity4(), 0)
}

// Point transforms a position
func (t Transform) Point(p Vec3) Vec3 {
	return t.orIdentity().Matrix.TransformPoint(p)
}

// Vector transforms a direction, ignoring translation
func (t Transform) Vector(v Vec3) Vec3 {
	return t.orIdentity().Matrix.TransformVector(v)
}

// Normal transforms a surface normal with the inverse transpose and renormalizes it
func (t Transform) Normal(n Vec3) Vec3 {
	return t.orIdentity().Inverse.Transpose().TransformVector(n).Normalize()
}

// Position extracts the translation part
func (t Transform) Position() Vec3 {
	return Vec3{t.Matrix[3], t.Matrix[7], t.Matrix[11]}
}

// ScaleFactors extracts the scale along each axis as the length of each basis column
func (t Transform) ScaleFactors() Vec3 {
	m := t.orIdentity().Matrix
	return Vec3{
		X: Vec3{m[0], m[4], m[8]}.Length(),
		Y: Vec3{m[1], m[5], m[9]}.Length(),
		Z: Vec3{m[2], m[6], m[10]}.Length(),
	}
}

func safeReciprocal(v float64) float64 {
	if v == 0 {
		return 0
	}
	return 1.0 / v
}
