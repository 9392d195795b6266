package shape

import "rayimpact/rmath"

// Sphere is a (possibly partial) sphere of the given radius, clipped to
// [yMin,yMax] along the polar axis and to [0,phiMax] in azimuth. Grounded on
// original_source/RayImpact/src/Sphere.cpp, which uses Y as the polar axis
// (theta measured from +Y) rather than the more common Z convention.
type Sphere struct {
	base
	radius             rmath.Float
	yMin, yMax         rmath.Float
	thetaMin, thetaMax rmath.Float
	phiMax             rmath.Float
}

// NewSphere builds a full or partial sphere. yMin/yMax are clamped to
// [-radius, radius] and phiMaxDegrees to [0, 360].
func NewSphere(objectToWorld rmath.Transform, reverseOrientation bool, radius, yMin, yMax, phiMaxDegrees rmath.Float) *Sphere {
	yMin = rmath.Clamp(rmath.Min(yMin, yMax), -radius, radius)
	yMax = rmath.Clamp(rmath.Max(yMin, yMax), -radius, radius)
	return &Sphere{
		base:     newBase(objectToWorld, reverseOrientation),
		radius:   radius,
		yMin:     yMin,
		yMax:     yMax,
		thetaMin: rmath.Acos(rmath.Clamp(yMin/radius, -1, 1)),
		thetaMax: rmath.Acos(rmath.Clamp(yMax/radius, -1, 1)),
		phiMax:   rmath.Clamp(phiMaxDegrees, 0, 360) * rmath.Pi / 180,
	}
}

func (s *Sphere) ObjectBounds() rmath.Bounds3 {
	switch {
	case s.phiMax >= rmath.ThreePiOver2:
		return rmath.NewBounds3(rmath.Pt3{X: -s.radius, Y: s.yMin, Z: -s.radius}, rmath.Pt3{X: s.radius, Y: s.yMax, Z: s.radius})
	case s.phiMax >= rmath.Pi:
		return rmath.NewBounds3(rmath.Pt3{X: rmath.Sin(s.phiMax) * s.radius, Y: s.yMin, Z: -s.radius}, rmath.Pt3{X: s.radius, Y: s.yMax, Z: s.radius})
	case s.phiMax >= rmath.PiOverTwo:
		return rmath.NewBounds3(rmath.Pt3{X: 0, Y: s.yMin, Z: rmath.Cos(s.phiMax) * s.radius}, rmath.Pt3{X: rmath.Sin(s.phiMax) * s.radius, Y: s.yMax, Z: s.radius})
	default:
		return rmath.NewBounds3(rmath.Pt3{X: 0, Y: s.yMin, Z: 0}, rmath.Pt3{X: rmath.Sin(s.phiMax) * s.radius, Y: s.yMax, Z: rmath.Cos(s.phiMax) * s.radius})
	}
}

func (s *Sphere) WorldBounds() rmath.Bounds3 { return s.worldBoundsFrom(s.ObjectBounds()) }

// quadraticCoefficients builds the conservative quadratic a*t^2+b*t+c=0 for
// |O + t*D|^2 = radius^2.
func (s *Sphere) quadraticCoefficients(origin rmath.Pt3, originErr, direction, directionErr rmath.Vec3) (a, b, c rmath.ErrorFloat) {
	ox := rmath.NewErrorFloatWithError(origin.X, originErr.X)
	oy := rmath.NewErrorFloatWithError(origin.Y, originErr.Y)
	oz := rmath.NewErrorFloatWithError(origin.Z, originErr.Z)
	dx := rmath.NewErrorFloatWithError(direction.X, directionErr.X)
	dy := rmath.NewErrorFloatWithError(direction.Y, directionErr.Y)
	dz := rmath.NewErrorFloatWithError(direction.Z, directionErr.Z)

	a = dx.Mul(dx).Add(dy.Mul(dy)).Add(dz.Mul(dz))
	b = rmath.NewErrorFloat(2).Mul(dx.Mul(ox).Add(dy.Mul(oy)).Add(dz.Mul(oz)))
	r := rmath.NewErrorFloat(s.radius)
	c = ox.Mul(ox).Add(oy.Mul(oy)).Add(oz.Mul(oz)).Sub(r.Mul(r))
	return
}

func (s *Sphere) Intersect(ray rmath.Ray) (rmath.Float, SurfaceScatteringEvent, bool) {
	objRay, originErr, directionErr := s.worldToObject.Ray(ray)

	a, b, c := s.quadraticCoefficients(objRay.Origin, originErr, objRay.Direction, directionErr)
	t0, t1, ok := rmath.SolveQuadratic(a, b, c)
	if !ok {
		return 0, SurfaceScatteringEvent{}, false
	}
	if t0.Upper > objRay.MaxDistance || t1.Lower < 0 {
		return 0, SurfaceScatteringEvent{}, false
	}
	tHit := t0
	if tHit.Lower <= 0 {
		tHit = t1
		if tHit.Upper > objRay.MaxDistance {
			return 0, SurfaceScatteringEvent{}, false
		}
	}

	p, phi, ok := s.projectHit(objRay, tHit.Value)
	if !ok {
		if tHit.Value == t1.Value {
			return 0, SurfaceScatteringEvent{}, false
		}
		if t1.Upper > objRay.MaxDistance {
			return 0, SurfaceScatteringEvent{}, false
		}
		tHit = t1
		p, phi, ok = s.projectHit(objRay, tHit.Value)
		if !ok {
			return 0, SurfaceScatteringEvent{}, false
		}
	}

	event := s.fillEvent(p, phi, objRay, tHit.Value)
	worldEvent := TransformBy(s.objectToWorld, event)
	return tHit.Value, worldEvent, true
}

// projectHit evaluates the ray at t, re-projects onto the sphere surface,
// and checks the partial-sphere bounds (§4.D steps 6-8).
func (s *Sphere) projectHit(objRay rmath.Ray, t rmath.Float) (rmath.Pt3, rmath.Float, bool) {
	p := objRay.At(t)
	p = p.Mul(s.radius / rmath.DistanceBetween(p, rmath.Pt3{}))
	if p.X == 0 && p.Z == 0 {
		p.Z = 1e-5 * s.radius
	}
	phi := rmath.Atan2(p.X, p.Z)
	if phi < 0 {
		phi += rmath.TwoPi
	}
	if (s.yMin > -s.radius && p.Y < s.yMin) || (s.yMax < s.radius && p.Y > s.yMax) || phi > s.phiMax {
		return p, phi, false
	}
	return p, phi, true
}

func (s *Sphere) fillEvent(p rmath.Pt3, phi rmath.Float, objRay rmath.Ray, t rmath.Float) SurfaceScatteringEvent {
	thetaRange := s.thetaMax - s.thetaMin
	theta := rmath.Acos(rmath.Clamp(p.Y/s.radius, -1, 1))

	u := phi / s.phiMax
	v := (theta - s.thetaMin) / thetaRange

	invZXRadius := 1 / rmath.Sqrt(p.Z*p.Z+p.X*p.X)
	cosPhi := p.Z * invZXRadius
	sinPhi := p.X * invZXRadius

	dpdu := rmath.Vec3{X: p.Z * s.phiMax, Y: 0, Z: -p.X * s.phiMax}
	dpdv := rmath.Vec3{X: p.Y * sinPhi, Y: -s.radius * rmath.Sin(theta), Z: p.Y * cosPhi}.Mul(thetaRange)

	d2pdu2 := rmath.Vec3{X: p.X, Y: 0, Z: p.Z}.Mul(-s.phiMax * s.phiMax)
	d2pdudv := rmath.Vec3{X: cosPhi, Y: 0, Z: -sinPhi}.Mul(thetaRange * s.phiMax * p.Y)
	d2pdv2 := rmath.Vec3{X: p.X, Y: p.Y, Z: p.Z}.Mul(-thetaRange * thetaRange)

	dndu, dndv := computeNormalDerivatives(dpdu, dpdv, d2pdu2, d2pdudv, d2pdv2)

	pointError := rmath.Vec3{X: rmath.Abs(p.X), Y: rmath.Abs(p.Y), Z: rmath.Abs(p.Z)}.Mul(rmath.GammaBound(5))

	return NewSurfaceScatteringEvent(p, pointError, rmath.Pt2{X: u, Y: v}, objRay.Direction.Negate(), dpdu, dpdv, dndu, dndv, objRay.Time, s)
}

func (s *Sphere) HasIntersection(ray rmath.Ray) bool {
	objRay, originErr, directionErr := s.worldToObject.Ray(ray)
	a, b, c := s.quadraticCoefficients(objRay.Origin, originErr, objRay.Direction, directionErr)
	t0, t1, ok := rmath.SolveQuadratic(a, b, c)
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
	if _, _, ok := s.projectHit(objRay, tHit.Value); ok {
		return true
	}
	if tHit.Value == t1.Value {
		return false
	}
	if t1.Upper > objRay.MaxDistance {
		return false
	}
	_, _, ok = s.projectHit(objRay, t1.Value)
	return ok
}

// Area is the full-sphere surface area scaled by the fraction the yMin/yMax
// clipping and phiMax actually expose; used by area lights to normalize
// their emitted-radiance/power relationship.
func (s *Sphere) Area() rmath.Float {
	return s.phiMax * s.radius * (s.yMax - s.yMin)
}

// SampleSurface uniformly samples a point on the (possibly partial) sphere
// by direct spherical-coordinate inversion, returning the world-space point
// and outward normal. Used by area lights, not by the core intersection
// path (§4.G).
func (s *Sphere) SampleSurface(u rmath.Pt2) (rmath.Pt3, rmath.Norm3) {
	// Equal y-slabs of a sphere have equal area, so y is drawn uniformly; phi
	// follows projectHit's convention (measured from +Z toward +X).
	theta := rmath.Acos(rmath.Clamp(rmath.Lerp(u.X, s.yMin, s.yMax)/s.radius, -1, 1))
	phi := u.Y * s.phiMax
	sinTheta := rmath.Sin(theta)
	p := rmath.Pt3{
		X: s.radius * sinTheta * rmath.Sin(phi),
		Y: s.radius * rmath.Cos(theta),
		Z: s.radius * sinTheta * rmath.Cos(phi),
	}
	n := rmath.NormalFromVector(p.ToVector().Normalize())
	if s.reverseOrientation {
		n = n.Negate()
	}
	return s.objectToWorld.Point(p), s.objectToWorld.Normal(n).Normalize()
}
