package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Constant is a non-scattering material. A path that reaches it ends
// with the constant color as its final factor, which makes it useful for
// flat debug shading and as a simple emitter against a black environment.
type Constant struct {
	Color core.Spectrum
}

// NewConstant creates a new constant material
func NewConstant(color core.Spectrum) *Constant {
	return &Constant{Color: color}
}

// Scatter never produces an outgoing ray
func (c *Constant) Scatter(rayIn core.Ray, si core.SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{Attenuation: c.Color}, false
}

// Value returns the constant color
func (c *Constant) Value() core.Spectrum {
	return c.Color
}
