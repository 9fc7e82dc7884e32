package material

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

func TestNewMetal_ClampsFuzz(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{-0.5, 0},
		{0.3, 0.3},
		{2.0, 1},
	}

	for _, tt := range tests {
		if got := NewMetal(core.NewColor(1, 1, 1), tt.input).Fuzz; got != tt.expected {
			t.Errorf("NewMetal fuzz %f: expected %f, got %f", tt.input, tt.expected, got)
		}
	}
}

func TestMetal_PerfectMirror(t *testing.T) {
	albedo := core.NewColor(0.8, 0.6, 0.2)
	metal := NewMetal(albedo, 0)
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
		Material:  metal,
	}
	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(2, -2, 0))

	scatter, didScatter := metal.Scatter(ray, hit, core.NewSeededSampler(1))
	if !didScatter {
		t.Fatal("Mirror reflection above the surface should scatter")
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}

	expected := core.NewVec3(1, 1, 0).UnitVector()
	got := scatter.Scattered.Direction
	if math.Abs(got.X-expected.X) > 1e-9 || math.Abs(got.Y-expected.Y) > 1e-9 || math.Abs(got.Z-expected.Z) > 1e-9 {
		t.Errorf("Expected reflected direction %v, got %v", expected, got)
	}
}

func TestMetal_FuzzStaysWithinSphere(t *testing.T) {
	metal := NewMetal(core.NewColor(1, 1, 1), 0.3)
	normal := core.NewVec3(0, 0, 1)
	hit := HitRecord{Normal: normal, FrontFace: true}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	sampler := core.NewSeededSampler(23)

	ideal := core.NewVec3(0, 0, 1)
	for i := 0; i < 500; i++ {
		scatter, didScatter := metal.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Head-on reflection with fuzz 0.3 cannot go below the surface")
		}
		if offset := scatter.Scattered.Direction.Subtract(ideal).Length(); math.Abs(offset-0.3) > 1e-9 {
			t.Fatalf("Expected perturbation of length 0.3, got %f", offset)
		}
	}
}

func TestMetal_AbsorbsScatterBelowSurface(t *testing.T) {
	metal := NewMetal(core.NewColor(1, 1, 1), 1.0)
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}
	// Grazing ray: reflection is (1, ~0, 0), so the fuzz vector decides the side
	ray := core.NewRay(core.NewVec3(-1, 1e-6, 0), core.NewVec3(1, -1e-6, 0))

	// In-sphere point (0, -0.5, 0) -> fuzz direction straight down
	sampler := newSequenceSampler(0.5, 0.25, 0.5)
	if _, didScatter := metal.Scatter(ray, hit, sampler); didScatter {
		t.Error("Expected fuzzed reflection into the surface to be absorbed")
	}
}
