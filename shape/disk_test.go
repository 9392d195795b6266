package shape

import (
	"testing"

	"rayimpact/rmath"
)

// TestDiskAnnulusHitReportsExpectedUV is spec.md §8 S5: an annular half-disk
// (inner 0.5, outer 1.0, phiMax 180deg) hit at (0.75,0,0) reports u=0, v=0.5.
func TestDiskAnnulusHitReportsExpectedUV(t *testing.T) {
	d := NewDisk(rmath.IdentityTransform(), false, 0, 1.0, 0.5, 180)
	ray := rmath.NewRay(rmath.Pt3{X: 0.75, Y: 5, Z: 0}, rmath.Vec3{X: 0, Y: -1, Z: 0})

	_, event, hit := d.Intersect(ray)
	if !hit {
		t.Fatalf("expected a hit on the annulus")
	}
	if rmath.Abs(event.UV.X-0) > 1e-5 {
		t.Fatalf("u = %v, want ~0", event.UV.X)
	}
	if rmath.Abs(event.UV.Y-0.5) > 1e-5 {
		t.Fatalf("v = %v, want ~0.5", event.UV.Y)
	}
}

func TestDiskMissesInsideHole(t *testing.T) {
	d := NewDisk(rmath.IdentityTransform(), false, 0, 1.0, 0.5, 180)
	ray := rmath.NewRay(rmath.Pt3{X: 0.25, Y: 5, Z: 0}, rmath.Vec3{X: 0, Y: -1, Z: 0})
	if _, _, hit := d.Intersect(ray); hit {
		t.Fatalf("expected a miss inside the inner radius hole")
	}
}

func TestDiskMissesBeyondPhiMax(t *testing.T) {
	d := NewDisk(rmath.IdentityTransform(), false, 0, 1.0, 0.5, 180)
	ray := rmath.NewRay(rmath.Pt3{X: -0.75, Y: 5, Z: -0.1}, rmath.Vec3{X: 0, Y: -1, Z: 0})
	if _, _, hit := d.Intersect(ray); hit {
		t.Fatalf("expected a miss on the removed half of the disk")
	}
}

func TestDiskAreaMatchesAnnulusFormula(t *testing.T) {
	d := NewDisk(rmath.IdentityTransform(), false, 0, 1.0, 0.5, 180)
	want := rmath.Pi * 0.5 * (1.0*1.0 - 0.5*0.5)
	if rmath.Abs(d.Area()-want) > 1e-5 {
		t.Fatalf("Area() = %v, want %v", d.Area(), want)
	}
}

func TestDiskSampleSurfaceLiesInAnnulus(t *testing.T) {
	d := NewDisk(rmath.IdentityTransform(), false, 0, 1.0, 0.5, 360)
	for _, u := range []rmath.Pt2{{X: 0, Y: 0}, {X: 0.5, Y: 0.5}, {X: 1, Y: 1}, {X: 0.25, Y: 0.75}} {
		p, n := d.SampleSurface(u)
		r := rmath.Sqrt(p.X*p.X + p.Z*p.Z)
		if r < 0.5-1e-4 || r > 1.0+1e-4 {
			t.Fatalf("sampled radius %v outside [0.5,1.0]", r)
		}
		if rmath.Abs(n.Y-1) > 1e-5 {
			t.Fatalf("expected outward normal (0,1,0), got %+v", n)
		}
	}
}
