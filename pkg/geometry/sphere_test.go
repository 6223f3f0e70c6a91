package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
	if hit.T != -1 {
		t.Errorf("Expected miss to keep T=-1, got %f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !hit.Normal.ApproxEquals(tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			// Normal always faces against the ray
			if hit.Normal.Dot(ray.Direction) > 0 {
				t.Errorf("Normal %v faces along ray %v", hit.Normal, ray.Direction)
			}
		})
	}
}

func TestSphere_Hit_TangentRayMisses(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	if hit, isHit := sphere.Hit(ray, 0.001, 1000.0); isHit {
		t.Errorf("Expected tangent ray to miss, got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Test tMax bound
	hit, isHit := sphere.Hit(ray, 0.001, 0.5)
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// Test tMin bound
	hit, isHit = sphere.Hit(ray, 3.5, 1000.0)
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Near root excluded, far root accepted
	hit, isHit = sphere.Hit(ray, 1.5, 1000.0)
	if !isHit || math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected far root at t=3, got hit=%v t=%f", isHit, hit.T)
	}
}

func TestSphere_Hit_Degenerate(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	for _, radius := range []float64{0, -1, math.NaN()} {
		sphere := NewSphere(core.NewVec3(0, 0, 0), radius)
		if _, isHit := sphere.Hit(ray, 0.001, 1000.0); isHit {
			t.Errorf("Expected radius %v to miss", radius)
		}
	}
}

func TestSphere_UV(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name       string
		origin     core.Vec3
		direction  core.Vec3
		expectedUV core.Vec2
	}{
		{"+X equator", core.NewVec3(3, 0, 0), core.NewVec3(-1, 0, 0), core.NewVec2(0.5, 0.5)},
		{"north pole", core.NewVec3(0, 3, 0), core.NewVec3(0, -1, 0), core.NewVec2(0.5, 1.0)},
		{"south pole", core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0), core.NewVec2(0.5, 0.0)},
		{"+Z equator", core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1), core.NewVec2(0.25, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(core.NewRay(tt.origin, tt.direction), 0.001, 1000.0)
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.UV.X-tt.expectedUV.X) > 1e-9 || math.Abs(hit.UV.Y-tt.expectedUV.Y) > 1e-9 {
				t.Errorf("Expected UV %v, got %v", tt.expectedUV, hit.UV)
			}
		})
	}
}

func TestSphere_Transformed(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	transform := core.Translate(core.NewVec3(0, 0, -5)).Mul(core.Scale(core.NewVec3(1, 3, 2)))

	baked, ok := sphere.Transformed(transform).(*Sphere)
	if !ok {
		t.Fatal("Expected transformed sphere to stay a *Sphere")
	}
	if !baked.Center.ApproxEquals(core.NewVec3(0, 0, -5), 1e-9) {
		t.Errorf("Expected center (0,0,-5), got %v", baked.Center)
	}
	if math.Abs(baked.Radius-3) > 1e-9 {
		t.Errorf("Expected radius scaled by largest factor to 3, got %f", baked.Radius)
	}
	if sphere.Radius != 1.0 {
		t.Error("Transformed must not modify the original sphere")
	}
}

func TestSphere_Hit_FromInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, -2, 3), 1.5)
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		// Random origin strictly inside, random direction
		offset := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1).Normalize().Multiply(random.Float64() * 1.4)
		direction := core.NewVec3(random.NormFloat64(), random.NormFloat64(), random.NormFloat64())
		ray := core.NewRay(sphere.Center.Add(offset), direction)

		hit, isHit := sphere.Hit(ray, 0, math.Inf(1))
		if !isHit || hit.T <= 0 {
			t.Fatalf("Ray %v: expected a forward hit, got t=%v hit=%v", ray, hit.T, isHit)
		}
		if d := hit.Point.Subtract(sphere.Center).Length(); math.Abs(d-sphere.Radius) > 1e-9 {
			t.Fatalf("Hit point %v is not on the sphere (distance %v)", hit.Point, d)
		}
		if hit.FrontFace {
			t.Errorf("Expected a back-face hit from inside")
		}

		// No second hit beyond the exit point
		if _, again := sphere.Hit(ray, hit.T+1e-6, math.Inf(1)); again {
			t.Fatalf("Ray %v: expected exactly one forward hit", ray)
		}
	}
}
