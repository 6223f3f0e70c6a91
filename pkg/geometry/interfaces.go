package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the nearest intersection with tMin <= t <= tMax.
	// Degenerate shapes never report a hit.
	Hit(ray core.Ray, tMin, tMax float64) (core.SurfaceInteraction, bool)

	// Transformed returns a copy of the shape baked into the space described by transform
	Transformed(transform core.Transform) Shape
}

// Textured is implemented by shapes that carry their own base color
type Textured interface {
	BaseColorAt(uv core.Vec2, point core.Vec3) (core.Spectrum, bool)
}
