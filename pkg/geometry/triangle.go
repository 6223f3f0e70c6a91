package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// defaultTriangleUVs is used when a triangle carries no texture coordinates
var defaultTriangleUVs = [3]core.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3    // The three vertices
	UVs        [3]core.Vec2 // Per-vertex texture coordinates
}

// NewTriangle creates a new triangle from three vertices with default UVs
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	return &Triangle{V0: v0, V1: v1, V2: v2, UVs: defaultTriangleUVs}
}

// NewTriangleWithUVs creates a new triangle with explicit per-vertex UVs
func NewTriangleWithUVs(v0, v1, v2 core.Vec3, uv0, uv1, uv2 core.Vec2) *Triangle {
	return &Triangle{V0: v0, V1: v1, V2: v2, UVs: [3]core.Vec2{uv0, uv1, uv2}}
}

// Hit tests if a ray intersects with the triangle.
// The ray parameter and barycentrics come from the same determinant:
// n = (v1-v0)×(v2-v0), q = (o-v0)×d, k = 1/(d·n).
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (core.SurfaceInteraction, bool) {
	si := core.NewSurfaceInteraction()

	v1v0 := t.V1.Subtract(t.V0)
	v2v0 := t.V2.Subtract(t.V0)
	rov0 := ray.Origin.Subtract(t.V0)

	n := v1v0.Cross(v2v0)
	nLength := n.Length()
	if nLength < parallelEpsilon {
		// Zero-area triangle
		return si, false
	}

	denom := ray.Direction.Dot(n)
	if math.Abs(denom) < parallelEpsilon {
		// Ray lies in or parallel to the plane
		return si, false
	}
	k := 1.0 / denom

	q := rov0.Cross(ray.Direction)
	u := k * q.Negate().Dot(v2v0)
	v := k * q.Dot(v1v0)
	if u < 0 || v < 0 || u+v > 1 {
		return si, false
	}

	hitT := k * n.Negate().Dot(rov0)
	if hitT < tMin || hitT > tMax || !isFinite(hitT) {
		return si, false
	}

	si.T = hitT
	si.Point = ray.At(hitT)
	si.Barycentric = core.NewVec2(u, v)
	si.UV = interpolateUV(t.UVs, u, v)
	si.SetFaceNormal(ray, n.Divide(nLength))

	return si, true
}

// Transformed returns the triangle with each vertex transformed
func (t *Triangle) Transformed(transform core.Transform) Shape {
	return &Triangle{
		V0:  transform.Point(t.V0),
		V1:  transform.Point(t.V1),
		V2:  transform.Point(t.V2),
		UVs: t.UVs,
	}
}

// Normal returns the unit geometric normal (v1-v0)×(v2-v0), or zero when degenerate
func (t *Triangle) Normal() core.Vec3 {
	return t.V1.Subtract(t.V0).Cross(t.V2.Subtract(t.V0)).Normalize()
}

// interpolateUV blends vertex UVs with barycentric weights (1-u-v, u, v)
func interpolateUV(uvs [3]core.Vec2, u, v float64) core.Vec2 {
	w := 1 - u - v
	return uvs[0].Multiply(w).Add(uvs[1].Multiply(u)).Add(uvs[2].Multiply(v))
}
