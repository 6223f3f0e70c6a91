package core

import "math"

// ONB is an orthonormal basis built around a surface normal (W)
type ONB struct {
	U, V, W Vec3
}

// NewONB builds an orthonormal basis whose W axis is the normalized input
func NewONB(normal Vec3) ONB {
	w := normal.Normalize()

	// Pick the helper axis least aligned with w
	var a Vec3
	if math.Abs(w.X) > 0.9 {
		a = NewVec3(0, 1, 0)
	} else {
		a = NewVec3(1, 0, 0)
	}

	v := w.Cross(a).Normalize()
	u := v.Cross(w)
	return ONB{U: u, V: v, W: w}
}

// Local converts a vector expressed in basis coordinates to world space
func (o ONB) Local(a Vec3) Vec3 {
	return o.U.Multiply(a.X).Add(o.V.Multiply(a.Y)).Add(o.W.Multiply(a.Z))
}
