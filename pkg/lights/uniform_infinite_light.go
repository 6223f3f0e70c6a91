package lights

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// UniformInfiniteLight emits the same radiance in every direction.
// A constant environment is the classic furnace test setup.
type UniformInfiniteLight struct {
	Emission core.Spectrum
}

// NewUniformInfiniteLight creates a new uniform infinite light
func NewUniformInfiniteLight(emission core.Spectrum) *UniformInfiniteLight {
	return &UniformInfiniteLight{Emission: emission}
}

// Emit returns the constant emission regardless of direction
func (uil *UniformInfiniteLight) Emit(ray core.Ray) core.Spectrum {
	return uil.Emission
}
