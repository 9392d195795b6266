package shape

import "rayimpact/rmath"

// Disk is a (possibly partial, possibly annular) disk in the object-space
// plane y=height. Grounded on original_source/RayImpact/src/Disk.cpp.
type Disk struct {
	base
	height                 rmath.Float
	radius, innerRadius    rmath.Float
	phiMax                 rmath.Float
}

func NewDisk(objectToWorld rmath.Transform, reverseOrientation bool, height, radius, innerRadius, phiMaxDegrees rmath.Float) *Disk {
	return &Disk{
		base:        newBase(objectToWorld, reverseOrientation),
		height:      height,
		radius:      radius,
		innerRadius: innerRadius,
		phiMax:      rmath.Clamp(phiMaxDegrees, 0, 360) * rmath.Pi / 180,
	}
}

// ObjectBounds conservatively bounds the (possibly partial) disk by the
// full circle of its outer radius at y=height; this gives up tightness for
// phiMax < 360 but is always a superset, which is all BVH culling requires.
func (d *Disk) ObjectBounds() rmath.Bounds3 {
	return rmath.NewBounds3(
		rmath.Pt3{X: -d.radius, Y: d.height, Z: -d.radius},
		rmath.Pt3{X: d.radius, Y: d.height, Z: d.radius},
	)
}

func (d *Disk) WorldBounds() rmath.Bounds3 { return d.worldBoundsFrom(d.ObjectBounds()) }

// planeHit transforms ray to object space and returns the plane-intersection
// distance and point, or ok=false if the ray misses the disk's valid region.
func (d *Disk) planeHit(ray rmath.Ray) (objRay rmath.Ray, t rmath.Float, p rmath.Pt3, ok bool) {
	objRay, _, _ = d.worldToObject.Ray(ray)
	if objRay.Direction.Y == 0 {
		return objRay, 0, rmath.Pt3{}, false
	}
	t = (d.height - objRay.Origin.Y) / objRay.Direction.Y
	if t > objRay.MaxDistance || t < 0 {
		return objRay, 0, rmath.Pt3{}, false
	}
	p = objRay.At(t)
	r2 := p.X*p.X + p.Z*p.Z
	if r2 > d.radius*d.radius || r2 < d.innerRadius*d.innerRadius {
		return objRay, 0, rmath.Pt3{}, false
	}
	if p.X == 0 && p.Z == 0 {
		p.X = 1e-5 * d.radius
	}
	phi := rmath.Atan2(p.Z, p.X)
	if phi < 0 {
		phi += rmath.TwoPi
	}
	if phi > d.phiMax {
		return objRay, 0, rmath.Pt3{}, false
	}
	return objRay, t, p, true
}

func (d *Disk) Intersect(ray rmath.Ray) (rmath.Float, SurfaceScatteringEvent, bool) {
	objRay, t, p, ok := d.planeHit(ray)
	if !ok {
		return 0, SurfaceScatteringEvent{}, false
	}

	r2 := p.X*p.X + p.Z*p.Z
	phi := rmath.Atan2(p.Z, p.X)
	if phi < 0 {
		phi += rmath.TwoPi
	}
	r := rmath.Sqrt(r2)
	radiusRange := d.radius - d.innerRadius

	u := phi / d.phiMax
	v := 1 - (r-d.innerRadius)/radiusRange

	dpdu := rmath.Vec3{X: -p.Z * d.phiMax, Y: 0, Z: p.X * d.phiMax}
	dpdv := rmath.Vec3{X: p.X, Y: 0, Z: p.Z}.Mul(-radiusRange / r)

	p.Y = d.height

	event := NewSurfaceScatteringEvent(p, rmath.Vec3{}, rmath.Pt2{X: u, Y: v}, objRay.Direction.Negate(), dpdu, dpdv, rmath.Norm3{}, rmath.Norm3{}, objRay.Time, d)
	return t, TransformBy(d.objectToWorld, event), true
}

func (d *Disk) HasIntersection(ray rmath.Ray) bool {
	_, _, _, ok := d.planeHit(ray)
	return ok
}

// Area is the disk's (possibly annular, possibly partial) object-space
// area; used by area lights (§4.G).
func (d *Disk) Area() rmath.Float {
	return d.phiMax * 0.5 * (d.radius*d.radius - d.innerRadius*d.innerRadius)
}

// SampleSurface uniformly samples a point on the (possibly annular, possibly
// partial) disk by polar inversion: r is the square root of a lerp between
// the squared radii and phi is linear in u.Y. Returns the world-space point
// and outward normal (§4.G).
func (d *Disk) SampleSurface(u rmath.Pt2) (rmath.Pt3, rmath.Norm3) {
	r := rmath.Sqrt(rmath.Lerp(u.X, d.innerRadius*d.innerRadius, d.radius*d.radius))
	phi := u.Y * d.phiMax
	p := rmath.Pt3{X: r * rmath.Cos(phi), Y: d.height, Z: r * rmath.Sin(phi)}
	n := rmath.Norm3{X: 0, Y: 1, Z: 0}
	if d.reverseOrientation {
		n = n.Negate()
	}
	return d.objectToWorld.Point(p), d.objectToWorld.Normal(n).Normalize()
}
