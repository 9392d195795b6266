// Package shape implements the core's analytic intersectable primitives
// (sphere, cylinder, disk) with conservative floating-point error bounds on
// the computed hit point, and the surface scattering event / differential
// geometry they fill in on a hit (§4.D).
//
// Grounded on original_source/RayImpact's Sphere.cpp, Cylinder.cpp, and
// Disk.cpp; SurfaceScatteringEvent itself is not present in the retrieval
// pack's filtered sources (only its call-site usage is), so its field set
// here is reconstructed directly from how Sphere.cpp populates and returns
// it.
package shape

import "rayimpact/rmath"

// Shape is the contract every intersectable primitive satisfies (§4.D).
type Shape interface {
	ObjectBounds() rmath.Bounds3
	WorldBounds() rmath.Bounds3

	// Intersect fills event and returns the hit distance (world space) and
	// true on a hit; it does not mutate ray.
	Intersect(ray rmath.Ray) (distance rmath.Float, event SurfaceScatteringEvent, hit bool)

	// HasIntersection is a cheaper boolean-only path for visibility rays.
	HasIntersection(ray rmath.Ray) bool

	ReverseOrientation() bool
	TransformSwapsHandedness() bool
}

// SurfaceScatteringEvent records everything the rest of the pipeline needs
// about a ray/surface hit: the hit point (with its conservative error
// bound), the local (u,v) parameterization, outgoing direction, and the
// differential geometry needed to build a shading frame and to estimate
// texture footprints.
type SurfaceScatteringEvent struct {
	Point      rmath.Pt3
	PointError rmath.Vec3
	UV         rmath.Pt2
	Wo         rmath.Vec3 // outgoing direction, i.e. -ray.Direction
	Normal     rmath.Norm3

	DPDU, DPDV     rmath.Vec3
	DNDU, DNDV     rmath.Norm3
	D2PDU2         rmath.Vec3
	D2PDUDV        rmath.Vec3
	D2PDV2         rmath.Vec3

	Time rmath.Float

	Shape Shape

	// Shading carries a possibly-perturbed second frame (bump mapping,
	// interpolated vertex normals for meshes) distinct from the true
	// geometric frame above; it starts out equal to the geometric frame.
	Shading struct {
		Normal     rmath.Norm3
		DPDU, DPDV rmath.Vec3
		DNDU, DNDV rmath.Norm3
	}

	// RayOffsets, when set, are used to compute the local texture-space
	// footprint via SurfaceDifferentials.
	HasRayOffsets bool
	DPDX, DPDY    rmath.Vec3
	DUDX, DVDX    rmath.Float
	DUDY, DVDY    rmath.Float
}

// NewSurfaceScatteringEvent builds an event with the geometric frame also
// installed as the (initial, unperturbed) shading frame, matching the
// constructor contract Sphere.cpp and friends rely on.
func NewSurfaceScatteringEvent(
	point rmath.Pt3, pointError rmath.Vec3, uv rmath.Pt2, wo rmath.Vec3,
	dpdu, dpdv rmath.Vec3, dndu, dndv rmath.Norm3, time rmath.Float, s Shape,
) SurfaceScatteringEvent {
	n := rmath.NormalFromVector(dpdu.Cross(dpdv)).Normalize()
	if s != nil && s.ReverseOrientation() != s.TransformSwapsHandedness() {
		n = rmath.Norm3{X: -n.X, Y: -n.Y, Z: -n.Z}
	}
	e := SurfaceScatteringEvent{
		Point: point, PointError: pointError, UV: uv, Wo: wo,
		Normal: n,
		DPDU:   dpdu, DPDV: dpdv, DNDU: dndu, DNDV: dndv,
		Time: time, Shape: s,
	}
	e.Shading.Normal = n
	e.Shading.DPDU = dpdu
	e.Shading.DPDV = dpdv
	e.Shading.DNDU = dndu
	e.Shading.DNDV = dndv
	return e
}

// TransformBy maps an object-space event into world space, the final step
// of every shape's Intersect (§4.D step 11).
func TransformBy(t rmath.Transform, e SurfaceScatteringEvent) SurfaceScatteringEvent {
	out := e
	out.Point = t.Point(e.Point)
	out.PointError = transformErrorVector(t, e.Point, e.PointError)
	out.Wo = t.Vector(e.Wo).Normalize()
	out.Normal = t.Normal(e.Normal).Normalize()
	out.DPDU = t.Vector(e.DPDU)
	out.DPDV = t.Vector(e.DPDV)
	out.DNDU = t.Normal(e.DNDU)
	out.DNDV = t.Normal(e.DNDV)
	out.Shading.Normal = t.Normal(e.Shading.Normal).Normalize()
	out.Shading.DPDU = t.Vector(e.Shading.DPDU)
	out.Shading.DPDV = t.Vector(e.Shading.DPDV)
	out.Shading.DNDU = t.Normal(e.Shading.DNDU)
	out.Shading.DNDV = t.Normal(e.Shading.DNDV)
	return out
}

func transformErrorVector(t rmath.Transform, p rmath.Pt3, err rmath.Vec3) rmath.Vec3 {
	_, baseErr := t.PointWithError(p)
	// The transformed point's own rounding error, plus the input error
	// propagated through the transform's absolute-value matrix (§4.A);
	// conservative addition is sufficient since both are already
	// one-sided-widened bounds.
	scaled, _ := t.VectorWithError(err)
	return rmath.Vec3{
		X: baseErr.X + rmath.Abs(scaled.X),
		Y: baseErr.Y + rmath.Abs(scaled.Y),
		Z: baseErr.Z + rmath.Abs(scaled.Z),
	}
}

// computeNormalDerivatives solves the Weingarten equations for the
// derivatives of the surface normal, given the first and second
// fundamental form quantities (standard differential-geometry technique;
// original_source calls this helper but the pack's filtered sources do not
// include its body, so this is a standard reconstruction, not a port).
func computeNormalDerivatives(dpdu, dpdv, d2pdu2, d2pdudv, d2pdv2 rmath.Vec3) (dndu, dndv rmath.Norm3) {
	E := dpdu.Dot(dpdu)
	F := dpdu.Dot(dpdv)
	G := dpdv.Dot(dpdv)
	n := dpdu.Cross(dpdv).Normalize()
	e := n.Dot(d2pdu2)
	f := n.Dot(d2pdudv)
	g := n.Dot(d2pdv2)

	invEGF2 := rmath.Float(1)
	denom := E*G - F*F
	if denom != 0 {
		invEGF2 = 1 / denom
	}

	dnduVec := dpdu.Mul((f*F - e*G) * invEGF2).Add(dpdv.Mul((e*F - f*E) * invEGF2))
	dndvVec := dpdu.Mul((g*F - f*G) * invEGF2).Add(dpdv.Mul((f*F - g*E) * invEGF2))
	return rmath.NormalFromVector(dnduVec), rmath.NormalFromVector(dndvVec)
}

// SurfaceDifferentials solves for the screen-space derivatives of (u,v) and
// of the world-space hit point, from the offset rays' intersections with
// the tangent plane at the primary hit (§4.D). Falls back to zero
// differentials when the 2x2 system is near-singular or no offsets were
// traced.
func SurfaceDifferentials(e *SurfaceScatteringEvent, r rmath.RayWithOffsets) {
	if !r.HasOffsets {
		e.HasRayOffsets = false
		return
	}
	e.HasRayOffsets = true

	n := e.Normal
	d := -(n.X*rmath.Float(e.Point.X) + n.Y*rmath.Float(e.Point.Y) + n.Z*rmath.Float(e.Point.Z))

	tx := -(n.X*rmath.Float(r.OriginX.X)+n.Y*rmath.Float(r.OriginX.Y)+n.Z*rmath.Float(r.OriginX.Z) + d) /
		(n.X*r.DirectionX.X + n.Y*r.DirectionX.Y + n.Z*r.DirectionX.Z)
	px := r.OriginX.Add(r.DirectionX.Mul(tx))

	ty := -(n.X*rmath.Float(r.OriginY.X)+n.Y*rmath.Float(r.OriginY.Y)+n.Z*rmath.Float(r.OriginY.Z) + d) /
		(n.X*r.DirectionY.X + n.Y*r.DirectionY.Y + n.Z*r.DirectionY.Z)
	py := r.OriginY.Add(r.DirectionY.Mul(ty))

	e.DPDX = px.Sub(e.Point)
	e.DPDY = py.Sub(e.Point)

	var axis0, axis1 int
	if rmath.Abs(n.X) > rmath.Abs(n.Y) && rmath.Abs(n.X) > rmath.Abs(n.Z) {
		axis0, axis1 = 1, 2
	} else if rmath.Abs(n.Y) > rmath.Abs(n.Z) {
		axis0, axis1 = 0, 2
	} else {
		axis0, axis1 = 0, 1
	}

	a := [2][2]rmath.Float{
		{e.DPDU.Component(axis0), e.DPDV.Component(axis0)},
		{e.DPDU.Component(axis1), e.DPDV.Component(axis1)},
	}
	bx := [2]rmath.Float{e.DPDX.Component(axis0), e.DPDX.Component(axis1)}
	by := [2]rmath.Float{e.DPDY.Component(axis0), e.DPDY.Component(axis1)}

	if dudx, dvdx, ok := solve2x2LinearSystem(a, bx); ok {
		e.DUDX, e.DVDX = dudx, dvdx
	}
	if dudy, dvdy, ok := solve2x2LinearSystem(a, by); ok {
		e.DUDY, e.DVDY = dudy, dvdy
	}
}

// solve2x2LinearSystem solves A*[x,y]^T = b, returning ok=false when the
// determinant magnitude is below 1e-10 (§4.D).
func solve2x2LinearSystem(a [2][2]rmath.Float, b [2]rmath.Float) (x, y rmath.Float, ok bool) {
	det := a[0][0]*a[1][1] - a[0][1]*a[1][0]
	if rmath.Abs(det) < 1e-10 {
		return 0, 0, false
	}
	invDet := 1 / det
	x = (a[1][1]*b[0] - a[0][1]*b[1]) * invDet
	y = (a[0][0]*b[1] - a[1][0]*b[0]) * invDet
	return x, y, true
}
