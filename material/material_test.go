package material

import (
	"testing"

	"rayimpact/bsdf"
	"rayimpact/rmath"
	"rayimpact/shape"
	"rayimpact/spectrum"
	"rayimpact/texture"
)

func flatEvent() *shape.SurfaceScatteringEvent {
	e := shape.NewSurfaceScatteringEvent(
		rmath.Pt3{X: 0, Y: 0, Z: 0}, rmath.Vec3{}, rmath.Pt2{X: 0.5, Y: 0.5},
		rmath.Vec3{X: 0, Y: 0, Z: 1},
		rmath.Vec3{X: 1, Y: 0, Z: 0}, rmath.Vec3{X: 0, Y: 1, Z: 0},
		rmath.Norm3{}, rmath.Norm3{}, 0, nil,
	)
	return &e
}

func TestMatteWithZeroSigmaUsesLambertian(t *testing.T) {
	m := NewMatte(texture.NewConstant(spectrum.New(0.5, 0.5, 0.5)), texture.NewConstant[rmath.Float](0), nil)
	event := flatEvent()
	b := m.ComputeScatteringFunctions(event, true)
	if len(b.Components()) != 1 {
		t.Fatalf("expected exactly one BXDF, got %d", len(b.Components()))
	}
	if _, ok := b.Components()[0].(*bsdf.LambertianBRDF); !ok {
		t.Fatalf("expected a LambertianBRDF, got %T", b.Components()[0])
	}
}

func TestMatteWithNonzeroSigmaUsesOrenNayar(t *testing.T) {
	m := NewMatte(texture.NewConstant(spectrum.New(0.5, 0.5, 0.5)), texture.NewConstant[rmath.Float](20), nil)
	event := flatEvent()
	b := m.ComputeScatteringFunctions(event, true)
	if _, ok := b.Components()[0].(*bsdf.OrenNayarBRDF); !ok {
		t.Fatalf("expected an OrenNayarBRDF, got %T", b.Components()[0])
	}
}

func TestGlassAllowsSingleSpecularBSDFWhenSmoothAndUnrestricted(t *testing.T) {
	g := NewGlass(
		texture.NewConstant(spectrum.White), texture.NewConstant(spectrum.White),
		texture.NewConstant[rmath.Float](0), texture.NewConstant[rmath.Float](0),
		texture.NewConstant[rmath.Float](1.5), false, nil,
	)
	event := flatEvent()
	b := g.ComputeScatteringFunctions(event, true)
	if len(b.Components()) != 1 {
		t.Fatalf("expected one combined SpecularBSDF, got %d components", len(b.Components()))
	}
	if _, ok := b.Components()[0].(*bsdf.SpecularBSDF); !ok {
		t.Fatalf("expected a SpecularBSDF, got %T", b.Components()[0])
	}
}

func TestGlassSplitsIntoTwoComponentsWhenMultipleLobesDisallowed(t *testing.T) {
	g := NewGlass(
		texture.NewConstant(spectrum.White), texture.NewConstant(spectrum.White),
		texture.NewConstant[rmath.Float](0), texture.NewConstant[rmath.Float](0),
		texture.NewConstant[rmath.Float](1.5), false, nil,
	)
	event := flatEvent()
	b := g.ComputeScatteringFunctions(event, false)
	if len(b.Components()) != 2 {
		t.Fatalf("expected SpecularBRDF + SpecularBTDF, got %d components", len(b.Components()))
	}
}

func TestMixedCombinesWeightedComponentsFromBothSubMaterials(t *testing.T) {
	a := NewMatte(texture.NewConstant(spectrum.New(1, 0, 0)), texture.NewConstant[rmath.Float](0), nil)
	b := NewMatte(texture.NewConstant(spectrum.New(0, 0, 1)), texture.NewConstant[rmath.Float](0), nil)
	mixed := NewMixed(a, b, texture.NewConstant[rmath.Float](0.5))

	event := flatEvent()
	result := mixed.ComputeScatteringFunctions(event, true)
	if len(result.Components()) != 2 {
		t.Fatalf("expected 2 scaled components, got %d", len(result.Components()))
	}
}
