package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (core.SurfaceInteraction, bool) {
	si := core.NewSurfaceInteraction()
	if s.Radius <= 0 || !isFinite(s.Radius) {
		return si, false
	}

	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	if a == 0 {
		return si, false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		return si, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		// Try the farther intersection point
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return si, false
		}
	}

	si.T = root
	si.Point = ray.At(root)

	// Calculate outward normal (from center to hit point)
	outwardNormal := si.Point.Subtract(s.Center).Divide(s.Radius)
	si.SetFaceNormal(ray, outwardNormal)
	si.UV = sphereUV(outwardNormal)

	return si, true
}

// Transformed moves the center and scales the radius by the largest axis scale
func (s *Sphere) Transformed(transform core.Transform) Shape {
	return &Sphere{
		Center: transform.Point(s.Center),
		Radius: s.Radius * transform.ScaleFactors().MaxComponent(),
	}
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// phi = atan2(z, x) sweeps u around the Y axis, theta = asin(y) sweeps v from the south pole.
func sphereUV(p core.Vec3) core.Vec2 {
	phi := math.Atan2(p.Z, p.X)
	theta := math.Asin(math.Max(-1, math.Min(1, p.Y)))
	return core.NewVec2(
		1-(phi+math.Pi)/(2*math.Pi),
		(theta+math.Pi/2)/math.Pi,
	)
}
