package core

import (
	"math"
	"math/rand"
)

// MaxRejectionAttempts caps rejection sampling loops before falling back to a direct mapping
const MaxRejectionAttempts = 64

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded deterministically
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// Random01 draws one uniform value in [0, 1)
func Random01(s Sampler) float64 {
	return s.Get1D()
}

// SampleFromPixel returns a jittered UV in [0,1]² for pixel (x, y) of a width×height image.
// Pixel (0,0) is the top-left corner, so v grows upward in image space.
func SampleFromPixel(s Sampler, x, y, width, height int) Vec2 {
	jitter := s.Get2D()
	u := (float64(x) + jitter.X) / float64(width)
	v := 1.0 - (float64(y)+jitter.Y)/float64(height)
	return NewVec2(u, v)
}

// SampleUnitDisk draws a uniform point in the unit disk by rejection.
// After MaxRejectionAttempts misses it falls back to the concentric mapping.
func SampleUnitDisk(s Sampler) Vec2 {
	for i := 0; i < MaxRejectionAttempts; i++ {
		u := s.Get2D()
		p := NewVec2(2*u.X-1, 2*u.Y-1)
		if p.Dot(p) < 1.0 {
			return p
		}
	}
	return SampleUnitDiskConcentric(s.Get2D())
}

// SampleUnitDiskConcentric maps a point in [0,1)² to the unit disk using concentric mapping
// This avoids rejection sampling by mapping a square uniformly to a disk
func SampleUnitDiskConcentric(sample Vec2) Vec2 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	offset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if offset.X == 0 && offset.Y == 0 {
		return Vec2{}
	}

	var theta, r float64
	if math.Abs(offset.X) > math.Abs(offset.Y) {
		r = offset.X
		theta = math.Pi / 4 * (offset.Y / offset.X)
	} else {
		r = offset.Y
		theta = math.Pi/2 - math.Pi/4*(offset.X/offset.Y)
	}

	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// SampleUnitSphere draws a uniform point inside the unit ball by rejection.
// After MaxRejectionAttempts misses it falls back to SamplePointInUnitSphere.
func SampleUnitSphere(s Sampler) Vec3 {
	for i := 0; i < MaxRejectionAttempts; i++ {
		u := s.Get3D()
		p := NewVec3(2*u.X-1, 2*u.Y-1, 2*u.Z-1)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
	return SamplePointInUnitSphere(s.Get3D())
}

// SamplePointInUnitSphere generates a random point inside a unit sphere using spherical coordinates
// This avoids rejection sampling by using the inverse CDF method
func SamplePointInUnitSphere(sample Vec3) Vec3 {
	// r = ∛(u₁) to account for volume scaling
	// φ = 2π * u₂ (azimuthal angle)
	// cos(θ) = 2 * u₃ - 1 (polar angle, uniform on [-1,1])
	r := math.Cbrt(sample.X)
	phi := 2 * math.Pi * sample.Y
	cosTheta := 2*sample.Z - 1
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))

	x := r * sinTheta * math.Cos(phi)
	y := r * sinTheta * math.Sin(phi)
	z := r * cosTheta

	return NewVec3(x, y, z)
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	return NewVec3(x, y, z)
}

// SampleCosineDirection returns a cosine-weighted direction in the local frame (z up).
// Uses Malley's method: a concentric disk point lifted onto the hemisphere.
func SampleCosineDirection(sample Vec2) Vec3 {
	d := SampleUnitDiskConcentric(sample)
	z := math.Sqrt(math.Max(0, 1.0-d.X*d.X-d.Y*d.Y))
	return NewVec3(d.X, d.Y, z)
}

// SampleCosineHemisphere generates a cosine-weighted random direction in hemisphere around normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	return NewONB(normal).Local(SampleCosineDirection(sample))
}

// CosineHemispherePDF returns the density of SampleCosineHemisphere for a direction
// whose cosine with the normal is cosTheta
func CosineHemispherePDF(cosTheta float64) float64 {
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}
