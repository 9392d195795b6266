package light

import (
	"testing"

	"rayimpact/rmath"
	"rayimpact/spectrum"
)

type alwaysVisible struct{}

func (alwaysVisible) HasIntersection(rmath.Ray) bool { return false }

type alwaysBlocked struct{}

func (alwaysBlocked) HasIntersection(rmath.Ray) bool { return true }

func TestPointLightFallsOffWithInverseSquareDistance(t *testing.T) {
	p := NewPointLight(rmath.Pt3{X: 0, Y: 0, Z: 0}, spectrum.White)
	_, liNear, _, _ := p.SampleIncidentRadiance(rmath.Pt3{X: 1, Y: 0, Z: 0}, 0, rmath.Pt2{})
	_, liFar, _, _ := p.SampleIncidentRadiance(rmath.Pt3{X: 2, Y: 0, Z: 0}, 0, rmath.Pt2{})
	if rmath.Abs(liNear.R/liFar.R-4) > 1e-3 {
		t.Fatalf("expected 4x falloff at 2x distance, got ratio %v", liNear.R/liFar.R)
	}
}

func TestPointLightEmittedPowerIs4PiIntensity(t *testing.T) {
	p := NewPointLight(rmath.Pt3{}, spectrum.New(1, 1, 1))
	power := p.EmittedPower()
	want := 4 * rmath.Pi
	if rmath.Abs(power.R-want) > 1e-3 {
		t.Fatalf("power = %v, want %v", power.R, want)
	}
}

func TestSpotLightZeroOutsideCone(t *testing.T) {
	s := NewSpotLight(rmath.Pt3{}, rmath.Vec3{X: 0, Y: 0, Z: 1}, spectrum.White, 20, 10)
	_, li, _, _ := s.SampleIncidentRadiance(rmath.Pt3{X: 10, Y: 0, Z: 0}, 0, rmath.Pt2{})
	if !li.IsBlack() {
		t.Fatalf("expected zero radiance outside the spot cone, got %v", li)
	}
}

func TestSpotLightFullInsideInnerCone(t *testing.T) {
	s := NewSpotLight(rmath.Pt3{}, rmath.Vec3{X: 0, Y: 0, Z: 1}, spectrum.White, 20, 10)
	_, li, _, _ := s.SampleIncidentRadiance(rmath.Pt3{X: 0, Y: 0, Z: 5}, 0, rmath.Pt2{})
	if li.R < 0.99*(1.0/25.0) {
		t.Fatalf("expected near-full intensity inside inner cone, got %v", li.R)
	}
}

func TestVisibilityTesterRespectsOccluder(t *testing.T) {
	vis := VisibilityTester{From: rmath.Pt3{X: 0, Y: 0, Z: 0}, To: rmath.Pt3{X: 5, Y: 0, Z: 0}}
	if !vis.BeamIsUnobstructed(alwaysVisible{}) {
		t.Fatalf("expected beam unobstructed")
	}
	if vis.BeamIsUnobstructed(alwaysBlocked{}) {
		t.Fatalf("expected beam obstructed")
	}
}
