package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// newSceneWithCamera merges the optional override onto the scene's camera and builds an empty scene
func newSceneWithCamera(defaultCameraConfig geometry.CameraConfig, cameraOverrides []geometry.CameraConfig) (*Scene, error) {
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	camera, err := geometry.NewCamera(cameraConfig)
	if err != nil {
		return nil, fmt.Errorf("scene camera: %w", err)
	}
	return NewScene(camera), nil
}

// NewWeekendScene creates three spheres over a large ground sphere under a sky gradient.
// The center sphere is flat shaded, the side spheres are mirrors.
func NewWeekendScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0.5, -5.5),
		LookAt:      core.NewVec3(0, 0, -1),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
		Aperture:    0.02,
	}

	s, err := newSceneWithCamera(defaultCameraConfig, cameraOverrides)
	if err != nil {
		return nil, err
	}
	s.SamplingConfig.SamplesPerPixel = 100
	s.SamplingConfig.MaxDepth = 50

	flatPurple := material.NewConstant(core.NewSpectrum(0.5, 0.2, 0.5))
	teal := material.NewMetal(core.NewSpectrum(0.2, 0.5, 0.5), 0.0)
	ground := material.NewLambertian(core.Gray(0.2))

	identity := core.IdentityTransform()
	s.Add(NewPrimitive(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5), flatPurple, identity))
	s.Add(NewPrimitive(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5), teal, identity))
	s.Add(NewPrimitive(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5), teal, identity))
	s.Add(NewPrimitive(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100), ground, identity))

	return s, nil
}
