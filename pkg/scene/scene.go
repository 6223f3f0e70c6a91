package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
)

const (
	// MinHitDistance rejects hits at the ray origin
	MinHitDistance = 1e-3
	// MaxHitDistance bounds the scene extent along any ray
	MaxHitDistance = 1e5
)

// Scene contains all the elements needed for rendering.
// It must not be modified while a render is in progress.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Primitives     []Primitive
	Environment    lights.EnvironmentLight
	SamplingConfig SamplingConfig
}

// SamplingConfig holds the render settings a scene was tuned for
type SamplingConfig struct {
	Width                     int // Image width
	Height                    int // Image height
	SamplesPerPixel           int // Number of rays per pixel
	MaxDepth                  int // Maximum ray bounce depth
	RussianRouletteMinBounces int // Minimum bounces before Russian Roulette can activate (0 disables it)
}

// NewScene creates an empty scene under the default sky
func NewScene(camera *geometry.Camera) *Scene {
	s := &Scene{
		Camera:      camera,
		Environment: lights.NewSkyLight(),
		SamplingConfig: SamplingConfig{
			SamplesPerPixel: 100,
			MaxDepth:        50,
		},
	}
	if camera != nil {
		s.CameraConfig = camera.Config()
		s.SamplingConfig.Width = camera.Config().Width
		s.SamplingConfig.Height = camera.ImageHeight()
	}
	return s
}

// Add appends a primitive. Primitives without a shape are ignored.
func (s *Scene) Add(p Primitive) {
	if p.Shape == nil {
		return
	}
	s.Primitives = append(s.Primitives, p)
}

// Intersect finds the closest hit with MinHitDistance < t < MaxHitDistance.
// On equal distances the primitive added first wins.
func (s *Scene) Intersect(ray core.Ray) (Interaction, bool) {
	closest := Interaction{SurfaceInteraction: core.NewSurfaceInteraction()}
	closestSoFar := MaxHitDistance

	for i := range s.Primitives {
		si, ok := s.Primitives[i].Shape.Hit(ray, MinHitDistance, closestSoFar)
		if !ok || si.T <= MinHitDistance || si.T >= closestSoFar {
			continue
		}
		closestSoFar = si.T
		closest = Interaction{SurfaceInteraction: si, Primitive: &s.Primitives[i]}
	}

	return closest, closest.Primitive != nil
}

// EnvironmentRadiance returns the environment contribution for an escaping ray
func (s *Scene) EnvironmentRadiance(ray core.Ray) core.Spectrum {
	if s.Environment == nil {
		return core.Black
	}
	return s.Environment.Emit(ray)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, p := range s.Primitives {
		switch obj := p.Shape.(type) {
		case *geometry.Mesh:
			// Meshes contain multiple triangles
			count += obj.TriangleCount()
		default:
			count++
		}
	}
	return count
}
