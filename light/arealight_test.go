package light

import (
	"testing"

	"rayimpact/rmath"
	"rayimpact/spectrum"
)

type diskShape struct {
	area   rmath.Float
	point  rmath.Pt3
	normal rmath.Norm3
}

func (d diskShape) Area() rmath.Float { return d.area }
func (d diskShape) SampleSurface(rmath.Pt2) (rmath.Pt3, rmath.Norm3) {
	return d.point, d.normal
}

func TestDiffuseAreaLightEmitsOnlyFromFrontFaceWhenOneSided(t *testing.T) {
	s := diskShape{area: 1, point: rmath.Pt3{}, normal: rmath.Norm3{Y: 1}}
	l := NewDiffuseAreaLight(s, spectrum.New(2, 2, 2), false)

	front := l.EmittedRadiance(rmath.Pt3{}, rmath.Norm3{Y: 1}, rmath.Vec3{Y: 1})
	if front.IsBlack() {
		t.Fatalf("expected emission leaving the front face")
	}
	back := l.EmittedRadiance(rmath.Pt3{}, rmath.Norm3{Y: 1}, rmath.Vec3{Y: -1})
	if !back.IsBlack() {
		t.Fatalf("expected no emission leaving the back face of a one-sided light")
	}
}

func TestDiffuseAreaLightTwoSidedEmitsBothWays(t *testing.T) {
	s := diskShape{area: 1, point: rmath.Pt3{}, normal: rmath.Norm3{Y: 1}}
	l := NewDiffuseAreaLight(s, spectrum.New(2, 2, 2), true)

	if l.EmittedRadiance(rmath.Pt3{}, rmath.Norm3{Y: 1}, rmath.Vec3{Y: -1}).IsBlack() {
		t.Fatalf("expected emission from both faces of a two-sided light")
	}
}

func TestDiffuseAreaLightEmittedPowerScalesWithAreaAndTwoSided(t *testing.T) {
	oneSided := NewDiffuseAreaLight(diskShape{area: 3, normal: rmath.Norm3{Y: 1}}, spectrum.New(1, 1, 1), false)
	twoSided := NewDiffuseAreaLight(diskShape{area: 3, normal: rmath.Norm3{Y: 1}}, spectrum.New(1, 1, 1), true)

	want := rmath.Pi * 3
	if rmath.Abs(oneSided.EmittedPower().R-want) > 1e-3 {
		t.Fatalf("one-sided power = %v, want %v", oneSided.EmittedPower().R, want)
	}
	if rmath.Abs(twoSided.EmittedPower().R-2*want) > 1e-3 {
		t.Fatalf("two-sided power = %v, want %v", twoSided.EmittedPower().R, 2*want)
	}
}

func TestDiffuseAreaLightSampleIncidentRadianceConvertsAreaPDFToSolidAngle(t *testing.T) {
	s := diskShape{area: 1, point: rmath.Pt3{X: 0, Y: 0, Z: -1}, normal: rmath.Norm3{Z: 1}}
	l := NewDiffuseAreaLight(s, spectrum.New(4, 4, 4), false)

	wi, li, pdf, _ := l.SampleIncidentRadiance(rmath.Pt3{X: 0, Y: 0, Z: 1}, 0, rmath.Pt2{})
	if li.IsBlack() {
		t.Fatalf("expected nonzero radiance toward a point the light faces")
	}
	if pdf <= 0 {
		t.Fatalf("expected a positive solid-angle pdf, got %v", pdf)
	}
	if rmath.Abs(wi.Z-(-1)) > 1e-3 {
		t.Fatalf("wi = %+v, want direction toward the light at -z", wi)
	}
}
