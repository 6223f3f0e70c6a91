package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	// Create a triangle in the XY plane
	v0 := core.NewVec3(0, 0, 0)
	v1 := core.NewVec3(1, 0, 0)
	v2 := core.NewVec3(0, 1, 0)
	triangle := NewTriangle(v0, v1, v2)

	tests := []struct {
		name           string
		ray            core.Ray
		shouldHit      bool
		expectedT      float64
		expectedNormal core.Vec3
		expectedFront  bool
	}{
		{
			name:           "Ray hits triangle center",
			ray:            core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1)),
			shouldHit:      true,
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, -1),
			expectedFront:  false,
		},
		{
			name:           "Ray hits triangle edge",
			ray:            core.NewRay(core.NewVec3(0.5, 0, -1), core.NewVec3(0, 0, 1)),
			shouldHit:      true,
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, -1),
			expectedFront:  false,
		},
		{
			name:      "Ray misses triangle",
			ray:       core.NewRay(core.NewVec3(1, 1, -1), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:      "Ray parallel to triangle",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 0), core.NewVec3(1, 0, 0)),
			shouldHit: false,
		},
		{
			name:           "Ray hits from the front",
			ray:            core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)),
			shouldHit:      true,
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
			expectedFront:  true,
		},
		{
			name:      "Triangle behind ray origin",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := triangle.Hit(tt.ray, 0.001, 10.0)

			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got hit=%v", tt.shouldHit, isHit)
			}
			if !tt.shouldHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if !hit.Normal.ApproxEquals(tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %v, got %v", tt.expectedFront, hit.FrontFace)
			}
			if !hit.Point.ApproxEquals(tt.ray.At(hit.T), 1e-12) {
				t.Errorf("Hit point %v does not match ray.At(t) %v", hit.Point, tt.ray.At(hit.T))
			}
		})
	}
}

func TestTriangle_BarycentricAndUV(t *testing.T) {
	triangle := NewTriangleWithUVs(
		core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0),
		core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(1, 1),
	)
	ray := core.NewRay(core.NewVec3(0.5, 1, 1), core.NewVec3(0, 0, -1))

	hit, isHit := triangle.Hit(ray, 0.001, 10.0)
	if !isHit {
		t.Fatal("Expected hit")
	}

	// Point (0.5, 1, 0) = 0.25*v0 + 0.25*v1 + 0.5*v2
	if math.Abs(hit.Barycentric.X-0.25) > 1e-9 || math.Abs(hit.Barycentric.Y-0.5) > 1e-9 {
		t.Errorf("Expected barycentric (0.25, 0.5), got %v", hit.Barycentric)
	}
	expectedUV := core.NewVec2(0.75, 0.5)
	if math.Abs(hit.UV.X-expectedUV.X) > 1e-9 || math.Abs(hit.UV.Y-expectedUV.Y) > 1e-9 {
		t.Errorf("Expected UV %v, got %v", expectedUV, hit.UV)
	}
}

func TestTriangle_Degenerate(t *testing.T) {
	// Collinear vertices
	triangle := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0))
	ray := core.NewRay(core.NewVec3(0.5, 0, 1), core.NewVec3(0, 0, -1))

	if _, isHit := triangle.Hit(ray, 0.001, 10.0); isHit {
		t.Error("Expected degenerate triangle to miss")
	}
}

func TestTriangle_Transformed(t *testing.T) {
	triangle := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))
	baked := triangle.Transformed(core.Translate(core.NewVec3(0, 0, -2)))

	ray := core.NewRay(core.NewVec3(0.25, 0.25, 0), core.NewVec3(0, 0, -1))
	hit, isHit := baked.Hit(ray, 0.001, 10.0)
	if !isHit {
		t.Fatal("Expected hit on translated triangle")
	}
	if math.Abs(hit.T-2.0) > 1e-9 {
		t.Errorf("Expected t=2, got %f", hit.T)
	}
}

func TestTriangle_Hit_InvariantUnderAffineTransform(t *testing.T) {
	triangle := NewTriangle(core.NewVec3(-1, -1, 0), core.NewVec3(2, -0.5, 0.3), core.NewVec3(0, 1.5, -0.2))
	random := rand.New(rand.NewSource(42))

	shear, ok := core.NewTransform(core.Mat4{
		1, 0.5, 0, 0,
		0, 1, 0, 0,
		0, 0.3, 1, 0,
		0, 0, 0, 1,
	})
	if !ok {
		t.Fatal("Expected shear matrix to be invertible")
	}

	// Rigid transforms also preserve t; scales and shears only preserve where the ray lands
	tests := []struct {
		transform core.Transform
		rigid     bool
	}{
		{core.Translate(core.NewVec3(3, -1, 7)), true},
		{core.RotateY(0.7), true},
		{core.Rotate(core.NewVec3(1, 2, 3), 2.1).Then(core.Translate(core.NewVec3(-4, 0.5, 1))), true},
		{core.FromQuaternion(0.1, 0.5, -0.3, 0.8), true},
		{core.Scale(core.NewVec3(2, 0.5, 3)), false},
		{core.Scale(core.NewVec3(0.5, 4, 1)).Then(core.RotateX(0.3)).Then(core.Translate(core.NewVec3(1, 2, -3))), false},
		{shear, false},
	}

	for i, tt := range tests {
		transform := tt.transform
		moved := triangle.Transformed(transform)

		for j := 0; j < 200; j++ {
			origin := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, 3)
			target := core.NewVec3(random.Float64()*4-2, random.Float64()*4-2, 0)
			ray := core.NewRay(origin, target.Subtract(origin))
			movedRay := core.NewRay(transform.Point(ray.Origin), transform.Vector(ray.Direction))

			hit, isHit := triangle.Hit(ray, 0.001, 100)
			movedHit, movedIsHit := moved.Hit(movedRay, 0.001, 100)

			if isHit != movedIsHit {
				// Rays grazing an edge may flip under rounding
				if isHit && !nearEdge(hit.Barycentric) || movedIsHit && !nearEdge(movedHit.Barycentric) {
					t.Fatalf("Transform %d ray %d: hit mismatch %v vs %v", i, j, isHit, movedIsHit)
				}
				continue
			}
			if !isHit {
				continue
			}
			if tt.rigid && math.Abs(hit.T-movedHit.T) > 1e-9 {
				t.Errorf("Transform %d ray %d: t %v vs %v", i, j, hit.T, movedHit.T)
			}
			if !transform.Point(hit.Point).ApproxEquals(movedHit.Point, 1e-9) {
				t.Errorf("Transform %d ray %d: point %v vs %v", i, j, transform.Point(hit.Point), movedHit.Point)
			}
			if math.Abs(hit.Barycentric.X-movedHit.Barycentric.X) > 1e-9 || math.Abs(hit.Barycentric.Y-movedHit.Barycentric.Y) > 1e-9 {
				t.Errorf("Transform %d ray %d: barycentric %v vs %v", i, j, hit.Barycentric, movedHit.Barycentric)
			}
		}
	}
}

func nearEdge(b core.Vec2) bool {
	const eps = 1e-9
	return b.X < eps || b.Y < eps || b.X+b.Y > 1-eps
}
