package lights

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// GradientInfiniteLight blends between a bottom and a top color by ray elevation
type GradientInfiniteLight struct {
	TopColor    core.Spectrum
	BottomColor core.Spectrum
}

// NewGradientInfiniteLight creates a new gradient infinite light
func NewGradientInfiniteLight(topColor, bottomColor core.Spectrum) *GradientInfiniteLight {
	return &GradientInfiniteLight{TopColor: topColor, BottomColor: bottomColor}
}

// NewSkyLight returns the white-to-blue daylight gradient used by the outdoor scenes
func NewSkyLight() *GradientInfiniteLight {
	return NewGradientInfiniteLight(core.NewSpectrum(0.5, 0.7, 1.0), core.White)
}

// Emit maps the ray's Y direction from [-1,1] to [0,1] and interpolates
func (gil *GradientInfiniteLight) Emit(ray core.Ray) core.Spectrum {
	direction := ray.Direction.Normalize()
	t := 0.5 * (direction.Y + 1.0)
	return gil.BottomColor.Scale(1.0 - t).Add(gil.TopColor.Scale(t))
}
