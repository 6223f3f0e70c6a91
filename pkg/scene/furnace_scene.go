package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

// FurnaceRadiance is the constant environment radiance of the furnace scene
var FurnaceRadiance = core.Gray(0.5)

// NewFurnaceScene creates a white-furnace test: a unit-albedo diffuse sphere under a constant
// environment must converge to the environment radiance and disappear against the background.
// With reveal set, two colored spheres are added so the image has visible structure.
func NewFurnaceScene(reveal bool, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 5, -15.5),
		LookAt:      core.NewVec3(0, 0, 10),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}

	s, err := newSceneWithCamera(defaultCameraConfig, cameraOverrides)
	if err != nil {
		return nil, err
	}
	s.Environment = lights.NewUniformInfiniteLight(FurnaceRadiance)
	s.SamplingConfig.SamplesPerPixel = 64
	s.SamplingConfig.MaxDepth = 50

	identity := core.IdentityTransform()
	s.Add(NewPrimitive(geometry.NewSphere(core.NewVec3(0, 0, 0), 2), material.NewLambertian(core.White), identity))

	if reveal {
		s.Add(NewPrimitive(geometry.NewSphere(core.NewVec3(3, 0, -0.5), 1), material.NewLambertian(core.NewSpectrum(0.8, 0, 0)), identity))
		s.Add(NewPrimitive(geometry.NewSphere(core.NewVec3(0, 3, -0.5), 1), material.NewLambertian(core.NewSpectrum(0.8, 0.1, 0.02)), identity))
	}

	return s, nil
}
