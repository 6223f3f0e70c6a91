package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewMeshScene creates a checkerboard-textured floor mesh with a tilted pyramid mesh and a
// UV debug sphere. baseColor overrides the floor texture when non-nil, e.g. with a loaded image.
func NewMeshScene(baseColor material.ColorSource, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 2, 5),
		LookAt:      core.NewVec3(0, 0.5, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        45.0,
	}

	s, err := newSceneWithCamera(defaultCameraConfig, cameraOverrides)
	if err != nil {
		return nil, err
	}
	s.SamplingConfig.SamplesPerPixel = 100
	s.SamplingConfig.MaxDepth = 10

	if baseColor == nil {
		baseColor = material.NewCheckerboardTexture(256, 256, 32,
			core.Gray(0.9),                  // White
			core.NewSpectrum(0.2, 0.2, 0.8), // Blue
		)
	}

	floor, err := NewQuadMesh(4, baseColor)
	if err != nil {
		return nil, fmt.Errorf("floor mesh: %w", err)
	}
	pyramid, err := NewPyramidMesh()
	if err != nil {
		return nil, fmt.Errorf("pyramid mesh: %w", err)
	}

	// The floor mesh texture modulates a white diffuse base
	s.Add(NewPrimitive(floor, material.NewLambertian(core.White), core.IdentityTransform()))

	pyramidTransform := core.Translate(core.NewVec3(-1.2, 0, 0)).
		Mul(core.RotateY(math.Pi / 6)).
		Mul(core.Scale(core.NewVec3(0.8, 1.2, 0.8)))
	s.Add(NewPrimitive(pyramid, material.NewMetal(core.NewSpectrum(0.8, 0.6, 0.2), 0.1), pyramidTransform))

	uvSphere := material.NewTexturedLambertian(material.NewUVDebugTexture(64, 64))
	s.Add(NewPrimitive(geometry.NewSphere(core.NewVec3(0, 0, 0), 1), uvSphere,
		core.Translate(core.NewVec3(1.2, 0.6, 0)).Mul(core.Scale(core.NewVec3(0.6, 0.6, 0.6)))))

	return s, nil
}

// NewQuadMesh builds a size×size square mesh in the XZ plane facing +Y, UVs spanning [0,1]²
func NewQuadMesh(size float64, baseColor material.ColorSource) (*geometry.Mesh, error) {
	h := size / 2
	positions := []core.Vec3{
		core.NewVec3(-h, 0, h),
		core.NewVec3(h, 0, h),
		core.NewVec3(h, 0, -h),
		core.NewVec3(-h, 0, -h),
	}
	uvs := []core.Vec2{
		core.NewVec2(0, 0),
		core.NewVec2(1, 0),
		core.NewVec2(1, 1),
		core.NewVec2(0, 1),
	}
	indices := []int{0, 1, 2, 0, 2, 3}
	return geometry.NewMesh(positions, indices, uvs, baseColor)
}

// NewPyramidMesh builds a unit square pyramid standing on the origin
func NewPyramidMesh() (*geometry.Mesh, error) {
	positions := []core.Vec3{
		core.NewVec3(-0.5, 0, 0.5),
		core.NewVec3(0.5, 0, 0.5),
		core.NewVec3(0.5, 0, -0.5),
		core.NewVec3(-0.5, 0, -0.5),
		core.NewVec3(0, 1, 0), // apex
	}
	indices := []int{
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
		3, 0, 4,
		0, 2, 1,
		0, 3, 2,
	}
	return geometry.NewMesh(positions, indices, nil, nil)
}

// NewModelScene places a loaded mesh on a checkerboard floor under the sky.
// The model is transformed once, then shaded with a light gray diffuse material.
func NewModelScene(model *geometry.Mesh, transform core.Transform, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	if model == nil {
		return nil, fmt.Errorf("model scene: %w", geometry.ErrInvalidMesh)
	}

	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 1.5, 4),
		LookAt:      core.NewVec3(0, 0.5, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}

	s, err := newSceneWithCamera(defaultCameraConfig, cameraOverrides)
	if err != nil {
		return nil, err
	}
	s.SamplingConfig.SamplesPerPixel = 64
	s.SamplingConfig.MaxDepth = 10

	floor, err := NewQuadMesh(20, material.NewCheckerboardTexture(256, 256, 16, core.Gray(0.8), core.Gray(0.3)))
	if err != nil {
		return nil, fmt.Errorf("floor mesh: %w", err)
	}
	s.Add(NewPrimitive(floor, material.NewLambertian(core.White), core.IdentityTransform()))
	s.Add(NewPrimitive(model, material.NewLambertian(core.Gray(0.7)), transform))

	return s, nil
}
