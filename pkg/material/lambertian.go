package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo ColorSource // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with a solid color
func NewLambertian(albedo core.Spectrum) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedoTexture ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedoTexture}
}

// Scatter samples a cosine-weighted direction about the normal.
// The cosine term and the π of the BRDF cancel against the sampling density,
// so the attenuation is the albedo itself.
func (l *Lambertian) Scatter(rayIn core.Ray, si core.SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	direction := core.SampleCosineHemisphere(si.Normal, sampler.Get2D())

	// Catch degenerate samples lying in the tangent plane
	if direction.NearZero() {
		direction = si.Normal
	}

	scattered := core.NewRay(si.Point, direction)
	pdf := core.CosineHemispherePDF(scattered.Direction.Dot(si.Normal))

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: l.Albedo.Evaluate(si.UV, si.Point),
		PDF:         pdf,
	}, true
}

// Value returns the albedo at the texture origin
func (l *Lambertian) Value() core.Spectrum {
	return l.Albedo.Evaluate(core.Vec2{}, core.Vec3{})
}
