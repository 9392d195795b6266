package shape

import (
	"testing"

	"rayimpact/rmath"
)

func TestSphereAreaMatchesFullSphereFormula(t *testing.T) {
	s := NewSphere(rmath.IdentityTransform(), false, 2, -2, 2, 360)
	want := 4 * rmath.Pi * 2 * 2
	if rmath.Abs(s.Area()-want) > 1e-3 {
		t.Fatalf("Area() = %v, want %v", s.Area(), want)
	}
}

func TestSphereSampleSurfaceLiesOnSphere(t *testing.T) {
	s := NewSphere(rmath.Translate(rmath.Vec3{X: 1, Y: 2, Z: 3}), false, 2, -2, 2, 360)
	center := rmath.Pt3{X: 1, Y: 2, Z: 3}
	for _, u := range []rmath.Pt2{{X: 0, Y: 0}, {X: 0.25, Y: 0.5}, {X: 1, Y: 1}} {
		p, n := s.SampleSurface(u)
		r := p.Sub(center).Length()
		if rmath.Abs(r-2) > 1e-3 {
			t.Fatalf("sampled point %+v is not on the radius-2 sphere (r=%v)", p, r)
		}
		if rmath.Abs(n.Length()-1) > 1e-3 {
			t.Fatalf("sampled normal %+v is not unit length", n)
		}
	}
}
