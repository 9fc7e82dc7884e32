package material

import "github.com/df07/go-sphere-raytracer/pkg/core"

// sequenceSampler replays a fixed list of values, cycling when exhausted
type sequenceSampler struct {
	values []float64
	next   int
}

func newSequenceSampler(values ...float64) *sequenceSampler {
	return &sequenceSampler{values: values}
}

func (s *sequenceSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *sequenceSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.Get1D(), s.Get1D())
}

func (s *sequenceSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.Get1D(), s.Get1D(), s.Get1D())
}
