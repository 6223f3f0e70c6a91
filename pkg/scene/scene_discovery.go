package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/geometry"
)

// ErrUnknownScene is returned for a scene id that is not built in
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

// ListBuiltinScenes returns the built-in scenes in display order
func ListBuiltinScenes() []SceneInfo {
	return []SceneInfo{
		{ID: "weekend", DisplayName: "Weekend", Description: "Flat, mirror and diffuse spheres under a sky gradient"},
		{ID: "furnace", DisplayName: "Furnace", Description: "White furnace test under a constant environment"},
		{ID: "glass", DisplayName: "Glass", Description: "Solid and hollow glass spheres"},
		{ID: "mesh", DisplayName: "Mesh", Description: "Textured floor mesh with a transformed pyramid"},
	}
}

// NewBuiltinScene creates the built-in scene with the given id
func NewBuiltinScene(id string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	switch id {
	case "weekend", "default":
		return NewWeekendScene(cameraOverrides...)
	case "furnace":
		return NewFurnaceScene(true, cameraOverrides...)
	case "glass":
		return NewGlassScene(cameraOverrides...)
	case "mesh":
		return NewMeshScene(nil, cameraOverrides...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
}
