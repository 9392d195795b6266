package shape

import "rayimpact/rmath"

// Cylinder is a (possibly partial) cylinder of the given radius along the Y
// axis, clipped to [yMin,yMax] and to [0,phiMax] in azimuth. Grounded on
// original_source/RayImpact/src/Cylinder.cpp.
type Cylinder struct {
	base
	radius     rmath.Float
	yMin, yMax rmath.Float
	phiMax     rmath.Float
}

func NewCylinder(objectToWorld rmath.Transform, reverseOrientation bool, radius, yMin, yMax, phiMaxDegrees rmath.Float) *Cylinder {
	return &Cylinder{
		base:   newBase(objectToWorld, reverseOrientation),
		radius: radius,
		yMin:   rmath.Min(yMin, yMax),
		yMax:   rmath.Max(yMin, yMax),
		phiMax: rmath.Clamp(phiMaxDegrees, 0, 360) * rmath.Pi / 180,
	}
}

func (c *Cylinder) ObjectBounds() rmath.Bounds3 {
	switch {
	case c.phiMax >= rmath.ThreePiOver2:
		return rmath.NewBounds3(rmath.Pt3{X: -c.radius, Y: c.yMin, Z: -c.radius}, rmath.Pt3{X: c.radius, Y: c.yMax, Z: c.radius})
	case c.phiMax >= rmath.Pi:
		return rmath.NewBounds3(rmath.Pt3{X: rmath.Sin(c.phiMax) * c.radius, Y: c.yMin, Z: -c.radius}, rmath.Pt3{X: c.radius, Y: c.yMax, Z: c.radius})
	case c.phiMax >= rmath.PiOverTwo:
		return rmath.NewBounds3(rmath.Pt3{X: 0, Y: c.yMin, Z: rmath.Cos(c.phiMax) * c.radius}, rmath.Pt3{X: c.radius, Y: c.yMax, Z: c.radius})
	default:
		return rmath.NewBounds3(rmath.Pt3{X: 0, Y: c.yMin, Z: rmath.Cos(c.phiMax) * c.radius}, rmath.Pt3{X: rmath.Sin(c.phiMax) * c.radius, Y: c.yMax, Z: c.radius})
	}
}

func (c *Cylinder) WorldBounds() rmath.Bounds3 { return c.worldBoundsFrom(c.ObjectBounds()) }

func (c *Cylinder) quadraticCoefficients(origin rmath.Pt3, originErr, direction, directionErr rmath.Vec3) (a, b, cc rmath.ErrorFloat) {
	ox := rmath.NewErrorFloatWithError(origin.X, originErr.X)
	oz := rmath.NewErrorFloatWithError(origin.Z, originErr.Z)
	dx := rmath.NewErrorFloatWithError(direction.X, directionErr.X)
	dz := rmath.NewErrorFloatWithError(direction.Z, directionErr.Z)

	a = dx.Mul(dx).Add(dz.Mul(dz))
	b = rmath.NewErrorFloat(2).Mul(dx.Mul(ox).Add(dz.Mul(oz)))
	r := rmath.NewErrorFloat(c.radius)
	cc = ox.Mul(ox).Add(oz.Mul(oz)).Sub(r.Mul(r))
	return
}

func (c *Cylinder) projectHit(objRay rmath.Ray, t rmath.Float) (rmath.Pt3, rmath.Float, bool) {
	p := objRay.At(t)
	invR := 1 / rmath.Sqrt(p.X*p.X+p.Z*p.Z)
	p.X *= c.radius * invR
	p.Z *= c.radius * invR
	phi := rmath.Atan2(p.X, p.Z)
	if phi < 0 {
		phi += rmath.TwoPi
	}
	if p.Y < c.yMin || p.Y > c.yMax || phi > c.phiMax {
		return p, phi, false
	}
	return p, phi, true
}

func (c *Cylinder) fillEvent(p rmath.Pt3, phi rmath.Float, objRay rmath.Ray) SurfaceScatteringEvent {
	yRange := c.yMax - c.yMin
	u := phi / c.phiMax
	v := (p.Y - c.yMin) / yRange

	dpdu := rmath.Vec3{X: -p.Z * c.phiMax, Y: 0, Z: p.X * c.phiMax}
	dpdv := rmath.Vec3{X: 0, Y: yRange, Z: 0}
	d2pdu2 := rmath.Vec3{X: p.X, Y: 0, Z: p.Z}.Mul(-c.phiMax * c.phiMax)

	e := dpdu.LengthSquared()
	n := dpdu.Cross(dpdv).Normalize()
	ecoef := n.Dot(d2pdu2)
	var dndu rmath.Norm3
	if e != 0 {
		dndu = rmath.NormalFromVector(dpdu.Mul(-ecoef / e))
	}

	pointError := rmath.Vec3{X: rmath.Abs(p.X), Y: 0, Z: rmath.Abs(p.Z)}.Mul(rmath.GammaBound(3))

	return NewSurfaceScatteringEvent(p, pointError, rmath.Pt2{X: u, Y: v}, objRay.Direction.Negate(), dpdu, dpdv, dndu, rmath.Norm3{}, objRay.Time, c)
}

func (c *Cylinder) Intersect(ray rmath.Ray) (rmath.Float, SurfaceScatteringEvent, bool) {
	objRay, originErr, directionErr := c.worldToObject.Ray(ray)
	a, b, cc := c.quadraticCoefficients(objRay.Origin, originErr, objRay.Direction, directionErr)
	t0, t1, ok := rmath.SolveQuadratic(a, b, cc)
	if !ok || t0.Upper > objRay.MaxDistance || t1.Lower < 0 {
		return 0, SurfaceScatteringEvent{}, false
	}
	tHit := t0
	if tHit.Lower <= 0 {
		tHit = t1
		if tHit.Upper > objRay.MaxDistance {
			return 0, SurfaceScatteringEvent{}, false
		}
	}
	p, phi, ok := c.projectHit(objRay, tHit.Value)
	if !ok {
		if tHit.Value == t1.Value || t1.Upper > objRay.MaxDistance {
			return 0, SurfaceScatteringEvent{}, false
		}
		tHit = t1
		p, phi, ok = c.projectHit(objRay, tHit.Value)
		if !ok {
			return 0, SurfaceScatteringEvent{}, false
		}
	}
	event := c.fillEvent(p, phi, objRay)
	return tHit.Value, TransformBy(c.objectToWorld, event), true
}

func (c *Cylinder) HasIntersection(ray rmath.Ray) bool {
	objRay, originErr, directionErr := c.worldToObject.Ray(ray)
	a, b, cc := c.quadraticCoefficients(objRay.Origin, originErr, objRay.Direction, directionErr)
	t0, t1, ok := rmath.SolveQuadratic(a, b, cc)
	if !ok || t0.Upper > objRay.MaxDistance || t1.Lower < 0 {
		return false
	}
	tHit := t0
	if tHit.Lower <= 0 {
		tHit = t1
		if tHit.Upper > objRay.MaxDistance {
			return false
		}
	}
	if _, _, ok := c.projectHit(objRay, tHit.Value); ok {
		return true
	}
	if tHit.Value == t1.Value || t1.Upper > objRay.MaxDistance {
		return false
	}
	_, _, ok = c.projectHit(objRay, t1.Value)
	return ok
}
