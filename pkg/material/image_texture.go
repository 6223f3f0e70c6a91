package material

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageTexture provides color from a 2D image.
// Texels are stored as linear float32 RGB triples, row-major with row 0 at the top.
type ImageTexture struct {
	Width  int
	Height int
	Texels []float32 // len = Width*Height*3
}

// NewImageTexture creates a new image texture from row-major pixels
func NewImageTexture(width, height int, pixels []core.Spectrum) *ImageTexture {
	texels := make([]float32, len(pixels)*3)
	for i, p := range pixels {
		texels[i*3] = float32(p.R)
		texels[i*3+1] = float32(p.G)
		texels[i*3+2] = float32(p.B)
	}
	return &ImageTexture{Width: width, Height: height, Texels: texels}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering.
// UVs wrap, so the texture repeats outside [0,1).
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Spectrum {
	if t.Width <= 0 || t.Height <= 0 || len(t.Texels) < t.Width*t.Height*3 {
		return core.Black
	}

	u := wrapUnit(float32(uv.X))
	v := wrapUnit(float32(uv.Y))

	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	x := min(int(u*float32(t.Width)), t.Width-1)
	y := min(int((1-v)*float32(t.Height)), t.Height-1)

	return t.At(x, y)
}

// At returns the texel at pixel (x, y)
func (t *ImageTexture) At(x, y int) core.Spectrum {
	i := (y*t.Width + x) * 3
	return core.NewSpectrum(float64(t.Texels[i]), float64(t.Texels[i+1]), float64(t.Texels[i+2]))
}

// wrapUnit maps any coordinate into [0, 1)
func wrapUnit(x float32) float32 {
	if math32.IsNaN(x) || math32.IsInf(x, 0) {
		return 0
	}
	w := x - math32.Floor(x)
	if w >= 1 {
		return 0
	}
	return w
}

// SRGBToLinear decodes an sRGB-encoded channel value in [0,1]
func SRGBToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math32.Pow((c+0.055)/1.055, 2.4)
}
