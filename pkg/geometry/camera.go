package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// worldUp is the fixed up direction used to build the camera frame
var worldUp = core.NewVec3(0, 1, 0)

// CameraConfig describes a thin-lens perspective camera
type CameraConfig struct {
	Center        core.Vec3 // Eye position
	LookAt        core.Vec3 // Point the camera looks at
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens radius; 0 gives a pinhole camera
	FocusDistance float64   // Distance to the focal plane; 0 uses |LookAt - Center|
}

// DefaultCameraConfig returns the camera used by most built-in scenes
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0.75, 2),
		LookAt:      core.NewVec3(0, 0.5, -1),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
		Aperture:    0.02,
	}
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}

	if !override.Center.Equals(zero) {
		result.Center = override.Center
	}
	if !override.LookAt.Equals(zero) {
		result.LookAt = override.LookAt
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}

	return result
}

// Camera generates primary rays through a thin lens
type Camera struct {
	config CameraConfig

	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	forward         core.Vec3
	right           core.Vec3
	up              core.Vec3
	lensRadius      float64
}

// NewCamera validates the configuration and precomputes the viewport
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := validateCameraConfig(config); err != nil {
		return nil, err
	}

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.LookAt.Subtract(config.Center).Length()
	}

	// Right-handed frame with right pointing to the right of the image
	forward := config.LookAt.Subtract(config.Center).Normalize()
	right := forward.Cross(worldUp).Normalize()
	up := right.Cross(forward)

	theta := config.VFov * math.Pi / 180.0
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	// Viewport spans the focal plane
	horizontal := right.Multiply(2 * halfWidth * focusDistance)
	vertical := up.Multiply(2 * halfHeight * focusDistance)
	lowerLeft := config.Center.
		Add(forward.Multiply(focusDistance)).
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5))

	return &Camera{
		config:          config,
		origin:          config.Center,
		lowerLeftCorner: lowerLeft,
		horizontal:      horizontal,
		vertical:        vertical,
		forward:         forward,
		right:           right,
		up:              up,
		lensRadius:      config.Aperture,
	}, nil
}

func validateCameraConfig(config CameraConfig) error {
	if config.Width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidCamera, config.Width)
	}
	if config.AspectRatio <= 0 || !isFinite(config.AspectRatio) {
		return fmt.Errorf("%w: aspect ratio must be positive, got %v", ErrInvalidCamera, config.AspectRatio)
	}
	if config.VFov <= 0 || config.VFov >= 180 {
		return fmt.Errorf("%w: vertical fov must be in (0, 180), got %v", ErrInvalidCamera, config.VFov)
	}
	if config.Aperture < 0 {
		return fmt.Errorf("%w: aperture must not be negative, got %v", ErrInvalidCamera, config.Aperture)
	}
	if config.FocusDistance < 0 {
		return fmt.Errorf("%w: focus distance must not be negative, got %v", ErrInvalidCamera, config.FocusDistance)
	}

	view := config.LookAt.Subtract(config.Center)
	if view.NearZero() {
		return fmt.Errorf("%w: eye and look-at coincide at %v", ErrInvalidCamera, config.Center)
	}
	if worldUp.Cross(view.Normalize()).NearZero() {
		return fmt.Errorf("%w: view direction %v is parallel to world up", ErrInvalidCamera, view)
	}
	return nil
}

// GetRay generates a ray for viewport coordinates uv in [0,1]², (0,0) at the lower left.
// With a non-zero aperture the origin is jittered across the lens using the sampler.
func (c *Camera) GetRay(uv core.Vec2, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		disk := core.SampleUnitDisk(sampler).Multiply(c.lensRadius)
		origin = origin.Add(c.right.Multiply(disk.X)).Add(c.up.Multiply(disk.Y))
	}

	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(uv.X)).
		Add(c.vertical.Multiply(uv.Y))

	return core.NewRay(origin, target.Subtract(origin))
}

// GetCameraForward returns the unit view direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.forward
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// ImageHeight derives the pixel height from the configured width and aspect ratio
func (c *Camera) ImageHeight() int {
	return max(1, int(float64(c.config.Width)/c.config.AspectRatio))
}
