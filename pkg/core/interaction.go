package core

// SurfaceInteraction describes a ray-surface hit.
// T is -1 until a hit has been recorded.
type SurfaceInteraction struct {
	T           float64 // Ray parameter of the hit
	Point       Vec3    // World-space hit position
	Normal      Vec3    // Unit normal facing against the incoming ray
	FrontFace   bool    // True when the ray hit the outward side
	UV          Vec2    // Surface parameterization
	Barycentric Vec2    // Triangle barycentric (u, v); zero for other shapes
}

// NewSurfaceInteraction returns an interaction with no hit recorded
func NewSurfaceInteraction() SurfaceInteraction {
	return SurfaceInteraction{T: -1}
}

// IsHit reports whether a hit has been recorded
func (si SurfaceInteraction) IsHit() bool {
	return si.T >= 0
}

// SetFaceNormal orients the normal against the ray and records which side was hit.
// outwardNormal is assumed to have unit length.
func (si *SurfaceInteraction) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	si.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if si.FrontFace {
		si.Normal = outwardNormal
	} else {
		si.Normal = outwardNormal.Negate()
	}
}
