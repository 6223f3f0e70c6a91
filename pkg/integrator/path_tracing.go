package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

const (
	// DefaultMaxDepth is the bounce limit used when none is configured
	DefaultMaxDepth = 50

	// RayEpsilon offsets scattered ray origins along their direction to avoid self-intersection
	RayEpsilon = 1e-3

	// maxSurvivalProbability caps Russian roulette survival so bright paths can still end
	maxSurvivalProbability = 0.95
)

// defaultMaterial shades primitives that have no material
var defaultMaterial material.Material = material.NewLambertian(core.White)

// PathTracingIntegrator implements unidirectional path tracing.
// Radiance is the product of the attenuations along the path, closed by one
// environment lookup when the path escapes.
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultMaxDepth
	}
	return &PathTracingIntegrator{config: config}
}

// Config returns the integrator settings
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// Li traces fragment.Ray until it escapes, is absorbed, or reaches the depth limit.
// A path cut off at the depth limit keeps the radiance accumulated so far.
func (pt *PathTracingIntegrator) Li(fragment Fragment, s *scene.Scene, sampler core.Sampler) Fragment {
	fragment.Reset(fragment.Ray)

	for !fragment.Terminated {
		if fragment.Depth >= pt.config.MaxDepth {
			fragment.Terminated = true
			break
		}
		pt.bounce(&fragment, s, sampler)
	}

	return fragment
}

// RayColor returns the radiance estimate for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Spectrum {
	return pt.Li(Fragment{Ray: ray}, s, sampler).Radiance
}

// bounce advances the path in fragment by one intersection
func (pt *PathTracingIntegrator) bounce(fragment *Fragment, s *scene.Scene, sampler core.Sampler) {
	ray := fragment.Ray

	hit, isHit := s.Intersect(ray)
	if !isHit {
		env := s.EnvironmentRadiance(ray).Mul(pt.skyTint())
		fragment.Radiance = fragment.Radiance.Mul(env)
		fragment.Terminated = true
		return
	}

	mat := hit.Primitive.Material
	if mat == nil {
		mat = defaultMaterial
	}

	scatter, didScatter := mat.Scatter(ray, hit.SurfaceInteraction, sampler)

	attenuation := scatter.Attenuation
	if baseColor, textured := hit.BaseColor(); textured {
		attenuation = attenuation.Mul(baseColor)
	}
	fragment.Radiance = fragment.Radiance.Mul(attenuation)

	if !didScatter {
		fragment.Terminated = true
		return
	}

	fragment.Depth++

	if !pt.applyRussianRoulette(fragment, sampler) {
		return
	}

	direction := scatter.Scattered.Direction.Normalize()
	fragment.Ray = core.Ray{
		Origin:    hit.Point.Add(direction.Multiply(RayEpsilon)),
		Direction: direction,
	}
}

// applyRussianRoulette randomly ends long paths and reweights survivors.
// Returns false when the path was terminated.
func (pt *PathTracingIntegrator) applyRussianRoulette(fragment *Fragment, sampler core.Sampler) bool {
	if pt.config.RussianRouletteMinBounces <= 0 || fragment.Depth < pt.config.RussianRouletteMinBounces {
		return true
	}

	survival := min(maxSurvivalProbability, fragment.Radiance.Vec3().MaxComponent())
	if survival <= 0 || sampler.Get1D() > survival {
		fragment.Radiance = core.Black
		fragment.Terminated = true
		return false
	}

	fragment.Radiance = fragment.Radiance.Div(survival)
	return true
}

func (pt *PathTracingIntegrator) skyTint() core.Spectrum {
	if pt.config.SkyColorTint == (core.Spectrum{}) {
		return core.White
	}
	return pt.config.SkyColorTint
}
