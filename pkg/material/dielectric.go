package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass.
// Rays refract unless total internal reflection forces a reflection.
// With Fresnel enabled the Schlick reflectance picks reflection stochastically.
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
	Fresnel         bool
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// NewFresnelDielectric creates a dielectric that also reflects with Schlick probability
func NewFresnelDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex, Fresnel: true}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, si core.SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	// Entering the material (air to glass) on the front face, leaving it on the back face
	refractionRatio := d.RefractiveIndex
	if si.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(unitDirection.Negate().Dot(si.Normal), 1.0)

	direction, ok := unitDirection.Refract(si.Normal, refractionRatio)
	if !ok || (d.Fresnel && Reflectance(cosTheta, refractionRatio) > sampler.Get1D()) {
		direction = unitDirection.Reflect(si.Normal)
	}

	return ScatterResult{
		Scattered:   core.NewRay(si.Point, direction),
		Attenuation: core.White,
		PDF:         0, // Specular materials have no PDF
	}, true
}

// Value returns white since clear glass absorbs nothing
func (d *Dielectric) Value() core.Spectrum {
	return core.White
}

// Reflectance calculates reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
