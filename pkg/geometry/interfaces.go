package geometry

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// Hittable interface for objects that can be hit by rays.
// Hit reports the nearest intersection with t strictly inside rayT.
type Hittable interface {
	Hit(ray core.Ray, rayT core.Interval) (material.HitRecord, bool)
}
