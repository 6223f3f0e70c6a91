package lights

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// EnvironmentLight supplies the radiance arriving along rays that escape the scene
type EnvironmentLight interface {
	Emit(ray core.Ray) core.Spectrum
}

// EnvironmentFunc adapts a plain function to the EnvironmentLight interface
type EnvironmentFunc func(ray core.Ray) core.Spectrum

// Emit calls f(ray)
func (f EnvironmentFunc) Emit(ray core.Ray) core.Spectrum {
	return f(ray)
}
