package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Fragment carries the state of one pixel: the path being traced for the current
// sample and the running mean of all samples accumulated so far.
type Fragment struct {
	X, Y int

	Ray        core.Ray      // Current path segment
	Radiance   core.Spectrum // Product of attenuations along the path; the sample value once terminated
	Depth      int           // Bounces taken by the current path
	Terminated bool

	Spectrum core.Spectrum // Running mean over accumulated samples
}

// NewFragment creates a fragment for pixel (x, y)
func NewFragment(x, y int) Fragment {
	return Fragment{X: x, Y: y}
}

// Reset starts a new path along ray, keeping the accumulated mean
func (f *Fragment) Reset(ray core.Ray) {
	f.Ray = ray
	f.Radiance = core.White
	f.Depth = 0
	f.Terminated = false
}

// Accumulate folds a new sample into the running mean, where n is the 1-based index of the sample:
// mean_n = mean_(n-1)*(n-1)/n + sample/n
func (f *Fragment) Accumulate(sample core.Spectrum, n int) {
	if n <= 1 {
		f.Spectrum = sample
		return
	}
	k := float64(n)
	f.Spectrum = f.Spectrum.Scale((k - 1) / k).Add(sample.Scale(1 / k))
}
