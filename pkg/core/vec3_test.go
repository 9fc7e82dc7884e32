package core

import (
	"math"
	"math/rand"
	"testing"
)

const tolerance = 1e-9

func vecApproxEqual(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"divide", a.Divide(2), NewVec3(0.5, 1, 1.5)},
		{"multiply vec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecApproxEqual(tt.got, tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if got := a.Dot(b); got != 12 {
		t.Errorf("Expected dot 12, got %f", got)
	}
	if got := NewVec3(3, 4, 0).Length(); got != 5 {
		t.Errorf("Expected length 5, got %f", got)
	}
}

func TestVec3_UnitVectorHasUnitLength(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		v := NewVec3(random.NormFloat64()*100, random.NormFloat64()*100, random.NormFloat64()*100)
		if v.LengthSquared() == 0 {
			continue
		}
		if length := v.UnitVector().Length(); math.Abs(length-1) > 1e-12 {
			t.Fatalf("UnitVector(%v) has length %f", v, length)
		}
	}
}

func TestVec3_UnitVectorOfZeroIsNotFinite(t *testing.T) {
	u := Vec3{}.UnitVector()
	if !math.IsNaN(u.X) && !math.IsInf(u.X, 0) {
		t.Errorf("Expected non-finite components for zero vector, got %v", u)
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected bool
	}{
		{"zero", NewVec3(0, 0, 0), true},
		{"tiny", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"one component large", NewVec3(1e-9, 1e-7, 0), false},
		{"unit", NewVec3(1, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %t, expected %t", tt.vector, got, tt.expected)
			}
		})
	}
}

func TestReflect_ReflectionLaw(t *testing.T) {
	random := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		v := NewVec3(random.NormFloat64(), random.NormFloat64(), random.NormFloat64())
		n := NewVec3(random.NormFloat64(), random.NormFloat64(), random.NormFloat64()).UnitVector()

		r := Reflect(v, n)
		if math.Abs(r.Dot(n)+v.Dot(n)) > 1e-9 {
			t.Fatalf("dot(reflect(v,n),n) = %f, expected %f", r.Dot(n), -v.Dot(n))
		}
		if math.Abs(r.Length()-v.Length()) > 1e-9 {
			t.Fatalf("Reflection changed length: %f -> %f", v.Length(), r.Length())
		}
	}
}

func TestRefract(t *testing.T) {
	n := NewVec3(0, 1, 0)

	t.Run("normal incidence passes straight through", func(t *testing.T) {
		got := Refract(NewVec3(0, -1, 0), n, 1/1.5)
		if !vecApproxEqual(got, NewVec3(0, -1, 0), tolerance) {
			t.Errorf("Expected (0,-1,0), got %v", got)
		}
	})

	t.Run("snell's law", func(t *testing.T) {
		theta := math.Pi / 6
		uv := NewVec3(math.Sin(theta), -math.Cos(theta), 0)
		eta := 1 / 1.5
		got := Refract(uv, n, eta)

		sinOut := got.X / got.Length()
		if math.Abs(sinOut-eta*math.Sin(theta)) > 1e-9 {
			t.Errorf("Expected sin(theta_t) = %f, got %f", eta*math.Sin(theta), sinOut)
		}
		if math.Abs(got.Length()-1) > 1e-9 {
			t.Errorf("Expected unit refracted direction, got length %f", got.Length())
		}
	})

	t.Run("equal indices leave direction unchanged", func(t *testing.T) {
		uv := NewVec3(1, -1, 0).UnitVector()
		got := Refract(uv, n, 1.0)
		if !vecApproxEqual(got, uv, 1e-12) {
			t.Errorf("Expected %v, got %v", uv, got)
		}
	})
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))
	got := ray.At(1.5)
	if !vecApproxEqual(got, NewVec3(1, 2, 0), tolerance) {
		t.Errorf("Expected (1,2,0), got %v", got)
	}
}

func TestDegreesToRadians(t *testing.T) {
	if got := DegreesToRadians(180); math.Abs(got-math.Pi) > tolerance {
		t.Errorf("Expected π, got %f", got)
	}
}
