package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Spectrum // Metal color
	Fuzzness float64       // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Spectrum, fuzzness float64) *Metal {
	return &Metal{Albedo: albedo, Fuzzness: max(0.0, min(1.0, fuzzness))}
}

// Scatter reflects the incoming ray about the normal, perturbed by fuzz.
// Reflections that end up below the surface are absorbed.
func (m *Metal) Scatter(rayIn core.Ray, si core.SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(si.Normal)

	if m.Fuzzness > 0 {
		reflected = reflected.Normalize().Add(core.SampleUnitSphere(sampler).Multiply(m.Fuzzness))
	}

	if reflected.Dot(si.Normal) <= 0 {
		return ScatterResult{Attenuation: core.Black}, false
	}

	return ScatterResult{
		Scattered:   core.NewRay(si.Point, reflected),
		Attenuation: m.Albedo,
		PDF:         0, // Specular materials have no PDF
	}, true
}

// Value returns the metal color
func (m *Metal) Value() core.Spectrum {
	return m.Albedo
}
