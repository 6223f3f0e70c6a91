package geometry

import (
	"errors"
	"math"
)

var (
	// ErrInvalidMesh is returned when mesh buffers are inconsistent
	ErrInvalidMesh = errors.New("invalid mesh")
	// ErrInvalidCamera is returned when a camera configuration cannot produce rays
	ErrInvalidCamera = errors.New("invalid camera")
)

// parallelEpsilon is the smallest |dot(direction, normal)| treated as non-parallel
const parallelEpsilon = 1e-12

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
