package core

import (
	"math/rand"
)

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

// NewSeededSampler creates a sampler with its own generator seeded with seed
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

// RandomRange returns a random float64 in [min, max)
func RandomRange(sampler Sampler, min, max float64) float64 {
	return min + (max-min)*sampler.Get1D()
}

// RandomVec3 returns a vector with each component uniform in [min, max)
func RandomVec3(sampler Sampler, min, max float64) Vec3 {
	s := sampler.Get3D()
	return NewVec3(
		min+(max-min)*s.X,
		min+(max-min)*s.Y,
		min+(max-min)*s.Z,
	)
}

// RandomColor returns a color with each channel uniform in [0, 1)
func RandomColor(sampler Sampler) Color {
	return sampler.Get3D()
}

// RandomInUnitSphere returns a point uniformly distributed inside the unit ball.
// Uses rejection from the [-1,1]^3 cube; each draw is accepted with probability π/6,
// so the loop ends after ~1.9 draws on average.
func RandomInUnitSphere(sampler Sampler) Vec3 {
	p, _ := randomInUnitSphere(sampler)
	return p
}

func randomInUnitSphere(sampler Sampler) (Vec3, int) {
	for attempts := 1; ; attempts++ {
		p := RandomVec3(sampler, -1, 1)
		if p.LengthSquared() < 1 {
			return p, attempts
		}
	}
}

// RandomUnitVector returns a random direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	return RandomInUnitSphere(sampler).UnitVector()
}

// RandomOnHemisphere returns a random unit vector in the hemisphere around normal.
// Alternative diffuse model; Lambertian uses normal + RandomUnitVector instead.
func RandomOnHemisphere(normal Vec3, sampler Sampler) Vec3 {
	onUnitSphere := RandomUnitVector(sampler)
	if onUnitSphere.Dot(normal) > 0.0 {
		return onUnitSphere
	}
	return onUnitSphere.Negate()
}

// RandomInUnitDisk generates a random point in a unit disk (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		// Generate random point in [-1,1] x [-1,1] square
		s := sampler.Get2D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		// Accept if inside unit disk
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}
