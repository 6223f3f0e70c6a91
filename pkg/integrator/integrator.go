package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Li traces the path starting at fragment.Ray to termination and returns the
	// fragment with Radiance holding the sample estimate
	Li(fragment Fragment, scene *scene.Scene, sampler core.Sampler) Fragment
}

// Config contains the integrator settings
type Config struct {
	MaxDepth                  int           // Maximum number of bounces per path
	RussianRouletteMinBounces int           // Bounces before Russian roulette may end a path; 0 disables it
	SkyColorTint              core.Spectrum // Multiplies every environment lookup
}

// DefaultConfig returns the default integrator settings
func DefaultConfig() Config {
	return Config{
		MaxDepth:     DefaultMaxDepth,
		SkyColorTint: core.White,
	}
}
