package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{"Unit X", NewVec3(5, 0, 0), NewVec3(1, 0, 0)},
		{"Diagonal", NewVec3(3, 4, 0), NewVec3(0.6, 0.8, 0)},
		{"Zero stays zero", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()
			if !result.ApproxEquals(tt.expected, 1e-9) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_CrossAndDot(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)

	if got := x.Cross(y); !got.Equals(NewVec3(0, 0, 1)) {
		t.Errorf("Expected x × y = z, got %v", got)
	}
	if got := y.Cross(x); !got.Equals(NewVec3(0, 0, -1)) {
		t.Errorf("Expected y × x = -z, got %v", got)
	}
	if got := x.Dot(y); got != 0 {
		t.Errorf("Expected orthogonal dot product 0, got %f", got)
	}
	if got := NewVec3(1, 2, 3).Dot(NewVec3(4, 5, 6)); got != 32 {
		t.Errorf("Expected dot product 32, got %f", got)
	}
}

func TestVec3_DivideByZero(t *testing.T) {
	if got := NewVec3(1, 2, 3).Divide(0); !got.Equals(Vec3{}) {
		t.Errorf("Expected zero vector, got %v", got)
	}
}

func TestVec3_Reflect(t *testing.T) {
	d := NewVec3(1, -1, 0).Normalize()
	n := NewVec3(0, 1, 0)

	got := d.Reflect(n)
	expected := NewVec3(1, 1, 0).Normalize()
	if !got.ApproxEquals(expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestVec3_Refract(t *testing.T) {
	n := NewVec3(0, 1, 0)

	t.Run("Normal incidence passes straight through", func(t *testing.T) {
		d := NewVec3(0, -1, 0)
		got, ok := d.Refract(n, 1.0/1.5)
		if !ok {
			t.Fatal("Expected refraction at normal incidence")
		}
		if !got.ApproxEquals(d, 1e-9) {
			t.Errorf("Expected %v, got %v", d, got)
		}
	})

	t.Run("Snell's law holds", func(t *testing.T) {
		d := NewVec3(1, -1, 0).Normalize()
		eta := 1.0 / 1.5
		got, ok := d.Refract(n, eta)
		if !ok {
			t.Fatal("Expected refraction")
		}
		sinIn := math.Sqrt(1 - math.Pow(d.Dot(n), 2))
		sinOut := math.Sqrt(1 - math.Pow(got.Dot(n), 2))
		if math.Abs(sinOut-eta*sinIn) > 1e-9 {
			t.Errorf("Expected sinOut %f, got %f", eta*sinIn, sinOut)
		}
		if math.Abs(got.Length()-1) > 1e-9 {
			t.Errorf("Expected unit direction, got length %f", got.Length())
		}
	})

	t.Run("Total internal reflection", func(t *testing.T) {
		d := NewVec3(1, -0.2, 0).Normalize()
		if _, ok := d.Refract(n, 1.5); ok {
			t.Error("Expected total internal reflection")
		}
	})
}

func TestVec3_Clamp(t *testing.T) {
	got := NewVec3(-1, 0.5, 2).Clamp(0, 1)
	if !got.Equals(NewVec3(0, 0.5, 1)) {
		t.Errorf("Expected (0, 0.5, 1), got %v", got)
	}
}

func TestRay_NormalizesDirection(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -4))

	if !ray.Direction.Equals(NewVec3(0, 0, -1)) {
		t.Errorf("Expected normalized direction, got %v", ray.Direction)
	}
	if got := ray.At(2); !got.Equals(NewVec3(1, 2, 1)) {
		t.Errorf("Expected At(2) = (1,2,1), got %v", got)
	}
}

func TestSpectrum_Operations(t *testing.T) {
	a := NewSpectrum(0.5, 1, 2)
	b := NewSpectrum(2, 0.5, 0.25)

	if got := a.Mul(b); !got.ApproxEquals(NewSpectrum(1, 0.5, 0.5), 1e-12) {
		t.Errorf("Mul: got %v", got)
	}
	if got := a.Add(b); !got.ApproxEquals(NewSpectrum(2.5, 1.5, 2.25), 1e-12) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Div(0); !got.IsBlack() {
		t.Errorf("Div by zero should be black, got %v", got)
	}
	if got := NewSpectrum(4, -1, 0.25).Sqrt(); !got.ApproxEquals(NewSpectrum(2, 0, 0.5), 1e-12) {
		t.Errorf("Sqrt: got %v", got)
	}
	if got := White.Luminance(); math.Abs(got-1) > 1e-12 {
		t.Errorf("Luminance of white should be 1, got %f", got)
	}
}
