package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// ErrInvalidView is returned for views with a non-positive dimension or that
// do not match the frame buffer they are rendered into
var ErrInvalidView = errors.New("invalid view")

// View is the size of the rendered image in pixels
type View struct {
	Width  int
	Height int
}

// Validate reports whether the view can be rendered
func (v View) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidView, v.Width, v.Height)
	}
	return nil
}

// FrameBuffer holds one fragment per pixel in row-major order, row 0 at the top.
// It is the only state that persists between Render calls.
type FrameBuffer struct {
	Width         int
	Height        int
	Fragments     []integrator.Fragment
	CurrentSample int // Samples accumulated into every fragment so far
}

// NewFrameBuffer allocates a frame buffer for view
func NewFrameBuffer(view View) (*FrameBuffer, error) {
	if err := view.Validate(); err != nil {
		return nil, err
	}

	fragments := make([]integrator.Fragment, view.Width*view.Height)
	for y := 0; y < view.Height; y++ {
		for x := 0; x < view.Width; x++ {
			fragments[y*view.Width+x] = integrator.NewFragment(x, y)
		}
	}

	return &FrameBuffer{
		Width:     view.Width,
		Height:    view.Height,
		Fragments: fragments,
	}, nil
}

// At returns the fragment for pixel (x, y)
func (fb *FrameBuffer) At(x, y int) *integrator.Fragment {
	return &fb.Fragments[y*fb.Width+x]
}

// matches reports whether the frame buffer was allocated for view
func (fb *FrameBuffer) matches(view View) bool {
	return fb.Width == view.Width && fb.Height == view.Height && len(fb.Fragments) == view.Width*view.Height
}

// ToImage converts the accumulated means to 8-bit sRGB-ish pixels with gamma 2 and clamping
func ToImage(fb *FrameBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, spectrumToColor(fb.At(x, y).Spectrum))
		}
	}
	return img
}

// extractTileImage copies the pixels inside bounds into a tile-sized image
func extractTileImage(fb *FrameBuffer, bounds image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, spectrumToColor(fb.At(x, y).Spectrum))
		}
	}
	return img
}

// spectrumToColor applies gamma 2 and clamps to [0, 1] before quantizing
func spectrumToColor(s core.Spectrum) color.RGBA {
	c := s.Sqrt().Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * c.R),
		G: uint8(255 * c.G),
		B: uint8(255 * c.B),
		A: 255,
	}
}
