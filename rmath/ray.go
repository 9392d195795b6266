package rmath

// Medium is an opaque reference to a participating medium. Volumetric
// transport is out of scope (§1 Non-goals); the field exists so the data
// model matches the spec and future media can be threaded through without
// another Ray field.
type Medium interface{}

// Ray is a parametric ray origin + t*direction. MaxDistance tightens on each
// successful intersection (§3); it is owned exclusively by the traversing
// goroutine (§5) and must never be shared across threads.
type Ray struct {
	Origin      Pt3
	Direction   Vec3
	MaxDistance Float
	Time        Float
	Medium      Medium
}

func NewRay(origin Pt3, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, MaxDistance: Infinity}
}

func (r Ray) At(t Float) Pt3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

func (r Ray) HasNaN() bool {
	return r.Origin.HasNaN() || r.Direction.HasNaN() || IsNaN(r.MaxDistance)
}

// RayWithOffsets additionally carries rays through the adjacent pixels in x
// and y, used to estimate texture-space footprints for filtered lookups
// (§3, §4.D "Surface differentials").
type RayWithOffsets struct {
	Ray
	HasOffsets               bool
	OriginX, OriginY         Pt3
	DirectionX, DirectionY   Vec3
}

// ScaleDifferentials shrinks the offset displacement by s (the renderer
// calls this with 1/sqrt(samplesPerPixel), §4.J step 3).
func (r *RayWithOffsets) ScaleDifferentials(s Float) {
	r.OriginX = r.Origin.Add(r.OriginX.Sub(r.Origin).Mul(s))
	r.OriginY = r.Origin.Add(r.OriginY.Sub(r.Origin).Mul(s))
	r.DirectionX = r.Direction.Add(r.DirectionX.Sub(r.Direction).Mul(s))
	r.DirectionY = r.Direction.Add(r.DirectionY.Sub(r.Direction).Mul(s))
}
