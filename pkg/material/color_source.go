package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Spectrum
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Spectrum
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Spectrum) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Spectrum {
	return s.Color
}
