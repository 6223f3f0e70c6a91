package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewGlassScene creates solid and hollow glass spheres in front of colored diffuse spheres
func NewGlassScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.DefaultCameraConfig()

	s, err := newSceneWithCamera(defaultCameraConfig, cameraOverrides)
	if err != nil {
		return nil, err
	}
	s.SamplingConfig.SamplesPerPixel = 200
	s.SamplingConfig.MaxDepth = 50
	s.SamplingConfig.RussianRouletteMinBounces = 20 // Need a lot of bounces for complex glass

	lambertianGreen := material.NewLambertian(core.NewSpectrum(0.8, 0.8, 0.0).Scale(0.6))
	lambertianBlue := material.NewLambertian(core.NewSpectrum(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewSpectrum(0.65, 0.25, 0.2))
	metalGold := material.NewMetal(core.NewSpectrum(0.8, 0.6, 0.2), 0.3)
	glass := material.NewFresnelDielectric(1.5)

	identity := core.IdentityTransform()

	// Ground
	s.Add(NewPrimitive(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000), lambertianGreen, identity))

	s.Add(NewPrimitive(geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5), lambertianRed, identity))
	s.Add(NewPrimitive(geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5), metalGold, identity))
	s.Add(NewPrimitive(geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5), lambertianBlue, identity))

	// Solid glass sphere
	s.Add(NewPrimitive(geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25), glass, identity))

	// Glass shell around a diffuse core
	s.Add(NewPrimitive(geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25), glass, identity))
	s.Add(NewPrimitive(geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.2), lambertianBlue, identity))

	return s, nil
}
