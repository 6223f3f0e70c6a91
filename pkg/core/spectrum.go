package core

import "math"

// Spectrum is an RGB radiance triple. Channels carry no physical units.
type Spectrum struct {
	R, G, B float64
}

// NewSpectrum creates a new Spectrum
func NewSpectrum(r, g, b float64) Spectrum {
	return Spectrum{R: r, G: g, B: b}
}

// Gray returns a spectrum with all channels set to v
func Gray(v float64) Spectrum {
	return Spectrum{v, v, v}
}

// Black is the zero spectrum
var Black = Spectrum{}

// White is the unit spectrum
var White = Gray(1)

// SpectrumFromVec3 reinterprets a vector as an RGB triple
func SpectrumFromVec3(v Vec3) Spectrum {
	return Spectrum{v.X, v.Y, v.Z}
}

// Vec3 reinterprets the spectrum as a vector
func (s Spectrum) Vec3() Vec3 {
	return Vec3{s.R, s.G, s.B}
}

// Add returns the channel-wise sum
func (s Spectrum) Add(other Spectrum) Spectrum {
	return Spectrum{s.R + other.R, s.G + other.G, s.B + other.B}
}

// Mul returns the channel-wise product
func (s Spectrum) Mul(other Spectrum) Spectrum {
	return Spectrum{s.R * other.R, s.G * other.G, s.B * other.B}
}

// Scale multiplies every channel by k
func (s Spectrum) Scale(k float64) Spectrum {
	return Spectrum{s.R * k, s.G * k, s.B * k}
}

// Div divides every channel by k. Division by zero yields black.
func (s Spectrum) Div(k float64) Spectrum {
	if k == 0 {
		return Black
	}
	return s.Scale(1.0 / k)
}

// Clamp limits every channel to [lo, hi]
func (s Spectrum) Clamp(lo, hi float64) Spectrum {
	return Spectrum{
		R: max(lo, min(hi, s.R)),
		G: max(lo, min(hi, s.G)),
		B: max(lo, min(hi, s.B)),
	}
}

// Dot returns the channel dot product
func (s Spectrum) Dot(other Spectrum) float64 {
	return s.R*other.R + s.G*other.G + s.B*other.B
}

// Luminance returns the perceptual luminance of an RGB color
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (s Spectrum) Luminance() float64 {
	return 0.299*s.R + 0.587*s.G + 0.114*s.B
}

// IsBlack reports whether all channels are zero
func (s Spectrum) IsBlack() bool {
	return s.R == 0 && s.G == 0 && s.B == 0
}

// Sqrt applies gamma 2 correction. Negative channels map to zero.
func (s Spectrum) Sqrt() Spectrum {
	return Spectrum{
		R: math.Sqrt(math.Max(0, s.R)),
		G: math.Sqrt(math.Max(0, s.G)),
		B: math.Sqrt(math.Max(0, s.B)),
	}
}

// ApproxEquals reports whether every channel differs by at most tolerance
func (s Spectrum) ApproxEquals(other Spectrum, tolerance float64) bool {
	return math.Abs(s.R-other.R) <= tolerance &&
		math.Abs(s.G-other.G) <= tolerance &&
		math.Abs(s.B-other.B) <= tolerance
}
