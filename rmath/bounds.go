package rmath

// Bounds3 is an axis-aligned bounding box. A degenerate construction
// (Min = +Infinity, Max = -Infinity) represents emptiness, so that Union
// with any point or box is idempotent over an empty seed (§3, invariant 2).
type Bounds3 struct {
	Min, Max Pt3
}

func EmptyBounds3() Bounds3 {
	return Bounds3{
		Min: Pt3{Infinity, Infinity, Infinity},
		Max: Pt3{-Infinity, -Infinity, -Infinity},
	}
}

func NewBounds3(a, b Pt3) Bounds3 {
	return Bounds3{Min: MinPoint3(a, b), Max: MaxPoint3(a, b)}
}

func (b Bounds3) Corner(i int) Pt3 {
	return Pt3{
		X: b.choose(i&1, b.Min.X, b.Max.X),
		Y: b.choose(i&2, b.Min.Y, b.Max.Y),
		Z: b.choose(i&4, b.Min.Z, b.Max.Z),
	}
}

func (b Bounds3) choose(bit int, lo, hi Float) Float {
	if bit != 0 {
		return hi
	}
	return lo
}

func (b Bounds3) Union(o Bounds3) Bounds3 {
	return Bounds3{Min: MinPoint3(b.Min, o.Min), Max: MaxPoint3(b.Max, o.Max)}
}

func (b Bounds3) UnionPoint(p Pt3) Bounds3 {
	return Bounds3{Min: MinPoint3(b.Min, p), Max: MaxPoint3(b.Max, p)}
}

func (b Bounds3) Contains(p Pt3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func (b Bounds3) Diagonal() Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Bounds3) SurfaceArea() Float {
	d := b.Diagonal()
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0
	}
	return 2 * (d.X*d.Y + d.X*d.Z + d.Y*d.Z)
}

func (b Bounds3) Volume() Float {
	d := b.Diagonal()
	return d.X * d.Y * d.Z
}

// MaximumExtent returns the axis (0,1,2) along which the box is largest.
func (b Bounds3) MaximumExtent() int {
	d := b.Diagonal()
	if d.X > d.Y && d.X > d.Z {
		return 0
	}
	if d.Y > d.Z {
		return 1
	}
	return 2
}

func (b Bounds3) Centroid() Pt3 {
	return Pt3{
		(b.Min.X + b.Max.X) * 0.5,
		(b.Min.Y + b.Max.Y) * 0.5,
		(b.Min.Z + b.Max.Z) * 0.5,
	}
}

// Offset returns the position of p relative to the corners of the box, with
// Min mapped to (0,0,0) and Max mapped to (1,1,1). Used to look up bucket
// indices during SAH construction.
func (b Bounds3) Offset(p Pt3) Vec3 {
	o := p.Sub(b.Min)
	if b.Max.X > b.Min.X {
		o.X /= b.Max.X - b.Min.X
	}
	if b.Max.Y > b.Min.Y {
		o.Y /= b.Max.Y - b.Min.Y
	}
	if b.Max.Z > b.Min.Z {
		o.Z /= b.Max.Z - b.Min.Z
	}
	return o
}

// IntersectP performs the slab test against a ray using precomputed inverse
// direction and direction-is-negative bits, as used by BVH traversal (§4.E).
func (b Bounds3) IntersectP(ray Ray, invDir Vec3, dirIsNeg [3]bool) bool {
	bounds := [2]Pt3{b.Min, b.Max}

	tMin := (bounds[boolIdx(dirIsNeg[0])].X - ray.Origin.X) * invDir.X
	tMax := (bounds[1-boolIdx(dirIsNeg[0])].X - ray.Origin.X) * invDir.X
	tyMin := (bounds[boolIdx(dirIsNeg[1])].Y - ray.Origin.Y) * invDir.Y
	tyMax := (bounds[1-boolIdx(dirIsNeg[1])].Y - ray.Origin.Y) * invDir.Y

	// Widen by a relative epsilon to guard against grazing-ray round-off.
	tMax *= 1 + 2*gamma3
	tyMax *= 1 + 2*gamma3

	if tMin > tyMax || tyMin > tMax {
		return false
	}
	if tyMin > tMin {
		tMin = tyMin
	}
	if tyMax < tMax {
		tMax = tyMax
	}

	tzMin := (bounds[boolIdx(dirIsNeg[2])].Z - ray.Origin.Z) * invDir.Z
	tzMax := (bounds[1-boolIdx(dirIsNeg[2])].Z - ray.Origin.Z) * invDir.Z
	tzMax *= 1 + 2*gamma3

	if tMin > tzMax || tzMin > tMax {
		return false
	}
	if tzMin > tMin {
		tMin = tzMin
	}
	if tzMax < tMax {
		tMax = tzMax
	}

	return tMin < ray.MaxDistance && tMax > 0
}

var gamma3 = GammaBound(3)

func boolIdx(b bool) int {
	if b {
		return 1
	}
	return 0
}

// BoundingRectangle is the 2D analogue used for sensor crop windows and
// sampling bounds (§3).
type BoundingRectangle struct {
	Min, Max Pt2
}

func EmptyBoundingRectangle() BoundingRectangle {
	return BoundingRectangle{
		Min: Pt2{Infinity, Infinity},
		Max: Pt2{-Infinity, -Infinity},
	}
}

func (r BoundingRectangle) Diagonal() Vec2 {
	return Vec2{r.Max.X - r.Min.X, r.Max.Y - r.Min.Y}
}

func (r BoundingRectangle) Area() Float {
	d := r.Diagonal()
	return d.X * d.Y
}

func (r BoundingRectangle) Contains(p Pt2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func (r BoundingRectangle) Intersect(o BoundingRectangle) BoundingRectangle {
	return BoundingRectangle{
		Min: Pt2{Max(r.Min.X, o.Min.X), Max(r.Min.Y, o.Min.Y)},
		Max: Pt2{Min(r.Max.X, o.Max.X), Min(r.Max.Y, o.Max.Y)},
	}
}
