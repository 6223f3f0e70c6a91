package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Mesh is an indexed triangle list with optional per-vertex UVs and a base color texture.
// Intersection is a linear scan over all triangles.
type Mesh struct {
	Positions []core.Vec3
	Indices   []int
	UVs       []core.Vec2          // Empty, or one entry per position
	BaseColor material.ColorSource // Optional texture sampled at the hit UV

	triangles []Triangle
}

// NewMesh validates the buffers and builds the triangle list.
// Every group of three indices forms one triangle.
func NewMesh(positions []core.Vec3, indices []int, uvs []core.Vec2, baseColor material.ColorSource) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: index count %d is not a multiple of 3", ErrInvalidMesh, len(indices))
	}
	if len(uvs) != 0 && len(uvs) != len(positions) {
		return nil, fmt.Errorf("%w: %d uvs for %d positions", ErrInvalidMesh, len(uvs), len(positions))
	}
	for i, idx := range indices {
		if idx < 0 || idx >= len(positions) {
			return nil, fmt.Errorf("%w: index %d at position %d out of range [0, %d)", ErrInvalidMesh, idx, i, len(positions))
		}
	}

	m := &Mesh{
		Positions: positions,
		Indices:   indices,
		UVs:       uvs,
		BaseColor: baseColor,
	}
	m.buildTriangles()
	return m, nil
}

func (m *Mesh) buildTriangles() {
	m.triangles = make([]Triangle, len(m.Indices)/3)
	for i := range m.triangles {
		i0, i1, i2 := m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]

		uvs := defaultTriangleUVs
		if len(m.UVs) > 0 {
			uvs = [3]core.Vec2{m.UVs[i0], m.UVs[i1], m.UVs[i2]}
		}

		m.triangles[i] = Triangle{
			V0:  m.Positions[i0],
			V1:  m.Positions[i1],
			V2:  m.Positions[i2],
			UVs: uvs,
		}
	}
}

// Hit returns the nearest triangle hit
func (m *Mesh) Hit(ray core.Ray, tMin, tMax float64) (core.SurfaceInteraction, bool) {
	closest := core.NewSurfaceInteraction()
	hitAnything := false
	closestSoFar := tMax

	for i := range m.triangles {
		if si, ok := m.triangles[i].Hit(ray, tMin, closestSoFar); ok {
			hitAnything = true
			closestSoFar = si.T
			closest = si
		}
	}

	return closest, hitAnything
}

// Transformed returns a copy of the mesh with every position transformed
func (m *Mesh) Transformed(transform core.Transform) Shape {
	positions := make([]core.Vec3, len(m.Positions))
	for i, p := range m.Positions {
		positions[i] = transform.Point(p)
	}

	out := &Mesh{
		Positions: positions,
		Indices:   m.Indices,
		UVs:       m.UVs,
		BaseColor: m.BaseColor,
	}
	out.buildTriangles()
	return out
}

// BaseColorAt samples the base color texture, reporting false when the mesh has none
func (m *Mesh) BaseColorAt(uv core.Vec2, point core.Vec3) (core.Spectrum, bool) {
	if m.BaseColor == nil {
		return core.White, false
	}
	return m.BaseColor.Evaluate(uv, point), true
}

// TriangleCount returns the number of triangles in this mesh
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}
