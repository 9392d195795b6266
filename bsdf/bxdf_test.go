package bsdf

import (
	"testing"

	"rayimpact/rmath"
	"rayimpact/spectrum"
)

func TestLambertianBRDFIsEnergyConserving(t *testing.T) {
	l := NewLambertianBRDF(spectrum.New(0.5, 0.5, 0.5))
	wo := rmath.Vec3{X: 0, Y: 0, Z: 1}
	samples := stratifiedUnitSquare(8, 8)
	reduced := l.Reduced(wo, samples)
	if reduced.MaxComponent() > 0.51 {
		t.Fatalf("reduced reflectance %v exceeds albedo", reduced)
	}
}

func TestLambertianBTDFSamplesOppositeHemisphere(t *testing.T) {
	l := NewLambertianBTDF(spectrum.White)
	wo := rmath.Vec3{X: 0, Y: 0, Z: 1}
	for _, u := range stratifiedUnitSquare(4, 4) {
		wi, _, pdf, _ := l.Sample(wo, u)
		if pdf == 0 {
			continue
		}
		if SameHemisphere(wo, wi) {
			t.Fatalf("expected wi %v in opposite hemisphere from wo %v", wi, wo)
		}
	}
}

func TestSpecularBRDFReflectsAboutNormal(t *testing.T) {
	s := NewSpecularBRDF(spectrum.White, PerfectReflector{})
	wo := rmath.Vec3{X: 0.3, Y: 0.4, Z: 0.866}
	wi, _, pdf, specular := s.Sample(wo, rmath.Pt2{})
	if !specular {
		t.Fatalf("expected specular sample flag")
	}
	if pdf != 1 {
		t.Fatalf("expected pdf=1 for a delta lobe, got %v", pdf)
	}
	if rmath.Abs(wi.X+wo.X) > 1e-5 || rmath.Abs(wi.Y+wo.Y) > 1e-5 || rmath.Abs(wi.Z-wo.Z) > 1e-5 {
		t.Fatalf("wi = %v, want mirror of wo = %v", wi, wo)
	}
}

func TestDielectricFresnelIsOneAtTotalInternalReflection(t *testing.T) {
	// Going from glass (1.5) to air (1.0) at a grazing angle should total-
	// internally-reflect.
	fr := DielectricFresnel(0.05, 1.5, 1.0)
	if fr < 0.99 {
		t.Fatalf("expected near-total internal reflection, got %v", fr)
	}
}

func TestDielectricFresnelAtNormalIncidenceMatchesClosedForm(t *testing.T) {
	etaO, etaI := rmath.Float(1.0), rmath.Float(1.5)
	fr := DielectricFresnel(1, etaO, etaI)
	want := (etaI - etaO) / (etaI + etaO)
	want = want * want
	if rmath.Abs(fr-want) > 1e-4 {
		t.Fatalf("fresnel at normal incidence = %v, want %v", fr, want)
	}
}

func TestBSDFEvaluateSumsMatchingComponents(t *testing.T) {
	b := &BSDF{
		GeometricNormal: rmath.Norm3{X: 0, Y: 0, Z: 1},
		shadingNormal:   rmath.Norm3{X: 0, Y: 0, Z: 1},
		tangent:         rmath.Vec3{X: 1, Y: 0, Z: 0},
		bitangent:       rmath.Vec3{X: 0, Y: 1, Z: 0},
		Eta:             1,
	}
	b.Add(NewLambertianBRDF(spectrum.New(0.2, 0.2, 0.2)))
	b.Add(NewLambertianBRDF(spectrum.New(0.1, 0.1, 0.1)))

	wo := rmath.Vec3{X: 0, Y: 0, Z: 1}
	wi := rmath.Vec3{X: 0, Y: 0, Z: 1}
	f := b.Evaluate(wo, wi, All)
	want := (rmath.Float(0.2) + 0.1) / rmath.Pi
	if rmath.Abs(f.R-want) > 1e-4 {
		t.Fatalf("evaluate = %v, want R ~ %v", f, want)
	}
}

func TestMicrofacetDistributionDIsNonNegative(t *testing.T) {
	sigma := RoughnessToDeviation(0.3)
	dist := NewTrowbridgeReitz(sigma, sigma)
	for _, u := range stratifiedUnitSquare(6, 6) {
		wh := dist.SampleWh(u)
		if dist.D(wh) < 0 {
			t.Fatalf("D(wh) = %v is negative", dist.D(wh))
		}
	}
}

func stratifiedUnitSquare(nx, ny int) []rmath.Pt2 {
	samples := make([]rmath.Pt2, 0, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			samples = append(samples, rmath.Pt2{
				X: (rmath.Float(i) + 0.5) / rmath.Float(nx),
				Y: (rmath.Float(j) + 0.5) / rmath.Float(ny),
			})
		}
	}
	return samples
}
