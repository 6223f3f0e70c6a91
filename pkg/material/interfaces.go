package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Material interface for surfaces that can scatter rays.
// Materials are immutable after construction and may be shared across goroutines.
type Material interface {
	// Scatter turns an incoming ray into an outgoing ray plus attenuation.
	// When it returns false the path ends and Attenuation is the final factor
	// applied to the path (black for absorbed rays).
	Scatter(rayIn core.Ray, si core.SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool)

	// Value returns the base reflectance of the material
	Value() core.Spectrum
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray      // The scattered ray, starting at the hit point
	Attenuation core.Spectrum // Color attenuation
	PDF         float64       // Probability density of the sampled direction (0 for specular materials)
}

// IsSpecular returns true if this is specular scattering (no PDF)
func (s ScatterResult) IsSpecular() bool {
	return s.PDF <= 0
}
