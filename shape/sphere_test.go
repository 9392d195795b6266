package shape

import (
	"testing"

	"rayimpact/rmath"
)

func TestSphereIntersectsAlongAxis(t *testing.T) {
	s := NewSphere(rmath.IdentityTransform(), false, 1, -1, 1, 360)
	ray := rmath.NewRay(rmath.Pt3{X: 0, Y: 0, Z: -5}, rmath.Vec3{X: 0, Y: 0, Z: 1})

	dist, event, hit := s.Intersect(ray)
	if !hit {
		t.Fatalf("expected a hit")
	}
	if rmath.Abs(dist-4) > 1e-3 {
		t.Fatalf("distance = %v, want ~4", dist)
	}
	if rmath.Abs(event.Point.Z-(-1)) > 1e-3 {
		t.Fatalf("hit point = %v, want z ~ -1", event.Point)
	}
}

func TestSphereMissesWhenRayPointsAway(t *testing.T) {
	s := NewSphere(rmath.IdentityTransform(), false, 1, -1, 1, 360)
	ray := rmath.NewRay(rmath.Pt3{X: 0, Y: 0, Z: -5}, rmath.Vec3{X: 0, Y: 0, Z: -1})

	if _, _, hit := s.Intersect(ray); hit {
		t.Fatalf("expected a miss")
	}
}

func TestSphereHasIntersectionAgreesWithIntersect(t *testing.T) {
	s := NewSphere(rmath.IdentityTransform(), false, 2, -2, 2, 360)
	hitRay := rmath.NewRay(rmath.Pt3{X: 0, Y: 0, Z: -5}, rmath.Vec3{X: 0, Y: 0, Z: 1})
	missRay := rmath.NewRay(rmath.Pt3{X: 10, Y: 10, Z: -5}, rmath.Vec3{X: 0, Y: 0, Z: 1})

	_, _, hit := s.Intersect(hitRay)
	if hit != s.HasIntersection(hitRay) {
		t.Fatalf("HasIntersection disagrees with Intersect on a hitting ray")
	}
	_, _, miss := s.Intersect(missRay)
	if miss != s.HasIntersection(missRay) {
		t.Fatalf("HasIntersection disagrees with Intersect on a missing ray")
	}
}

func TestSphereWorldBoundsContainsOrigin(t *testing.T) {
	xform := rmath.Translate(rmath.Vec3{X: 3, Y: 0, Z: 0})
	s := NewSphere(xform, false, 1, -1, 1, 360)
	b := s.WorldBounds()
	if !b.Contains(rmath.Pt3{X: 3, Y: 0, Z: 0}) {
		t.Fatalf("world bounds %v do not contain translated center", b)
	}
}

func TestDiskIntersectsAtHeight(t *testing.T) {
	d := NewDisk(rmath.IdentityTransform(), false, 2, 5, 0, 360)
	ray := rmath.NewRay(rmath.Pt3{X: 0, Y: 0, Z: 0}, rmath.Vec3{X: 0, Y: 1, Z: 0})
	dist, event, hit := d.Intersect(ray)
	if !hit {
		t.Fatalf("expected a hit")
	}
	if rmath.Abs(dist-2) > 1e-4 {
		t.Fatalf("distance = %v, want 2", dist)
	}
	if rmath.Abs(event.Point.Y-2) > 1e-4 {
		t.Fatalf("hit point y = %v, want 2", event.Point.Y)
	}
}

func TestDiskRejectsOutsideInnerRadius(t *testing.T) {
	d := NewDisk(rmath.IdentityTransform(), false, 0, 5, 2, 360)
	ray := rmath.NewRay(rmath.Pt3{X: 0, Y: 1, Z: 0}, rmath.Vec3{X: 0, Y: -1, Z: 0})
	if _, _, hit := d.Intersect(ray); hit {
		t.Fatalf("expected a miss inside the inner radius hole")
	}
}

func TestCylinderIntersectsSideways(t *testing.T) {
	c := NewCylinder(rmath.IdentityTransform(), false, 1, -2, 2, 360)
	ray := rmath.NewRay(rmath.Pt3{X: -5, Y: 0, Z: 0}, rmath.Vec3{X: 1, Y: 0, Z: 0})
	dist, event, hit := c.Intersect(ray)
	if !hit {
		t.Fatalf("expected a hit")
	}
	if rmath.Abs(dist-4) > 1e-3 {
		t.Fatalf("distance = %v, want 4", dist)
	}
	if rmath.Abs(event.Point.X-(-1)) > 1e-3 {
		t.Fatalf("hit point = %v, want x ~ -1", event.Point)
	}
}
