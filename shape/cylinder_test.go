package shape

import (
	"testing"

	"rayimpact/rmath"
)

func TestCylinderIntersectsAlongAxis(t *testing.T) {
	c := NewCylinder(rmath.IdentityTransform(), false, 1, -1, 1, 360)
	ray := rmath.NewRay(rmath.Pt3{X: 0, Y: 0, Z: -5}, rmath.Vec3{X: 0, Y: 0, Z: 1})

	dist, event, hit := c.Intersect(ray)
	if !hit {
		t.Fatalf("expected a hit")
	}
	if rmath.Abs(dist-4) > 1e-3 {
		t.Fatalf("distance = %v, want ~4", dist)
	}
	r := rmath.Sqrt(event.Point.X*event.Point.X + event.Point.Z*event.Point.Z)
	if rmath.Abs(r-1) > 1e-3 {
		t.Fatalf("hit point %+v not on the cylinder's radius", event.Point)
	}
}

func TestCylinderMissesBeyondYRange(t *testing.T) {
	c := NewCylinder(rmath.IdentityTransform(), false, 1, -1, 1, 360)
	ray := rmath.NewRay(rmath.Pt3{X: 0, Y: 5, Z: -5}, rmath.Vec3{X: 0, Y: 0, Z: 1})
	if _, _, hit := c.Intersect(ray); hit {
		t.Fatalf("expected a miss above yMax")
	}
}

func TestCylinderHasIntersectionAgreesWithIntersect(t *testing.T) {
	c := NewCylinder(rmath.IdentityTransform(), false, 1, -2, 2, 360)
	hitRay := rmath.NewRay(rmath.Pt3{X: 0, Y: 0, Z: -5}, rmath.Vec3{X: 0, Y: 0, Z: 1})
	missRay := rmath.NewRay(rmath.Pt3{X: 10, Y: 0, Z: -5}, rmath.Vec3{X: 0, Y: 0, Z: 1})

	_, _, hit := c.Intersect(hitRay)
	if hit != c.HasIntersection(hitRay) {
		t.Fatalf("hit/HasIntersection disagree on hitRay")
	}
	_, _, hit = c.Intersect(missRay)
	if hit != c.HasIntersection(missRay) {
		t.Fatalf("hit/HasIntersection disagree on missRay")
	}
}
