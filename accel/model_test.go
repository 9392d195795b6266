package accel

import (
	"math/rand"
	"testing"

	"rayimpact/light"
	"rayimpact/material"
	"rayimpact/rmath"
	"rayimpact/shape"
	"rayimpact/spectrum"
	"rayimpact/texture"
)

func TestIntersectModelReturnsHitModelAndBindings(t *testing.T) {
	mat := material.NewMatte(texture.NewConstant(spectrum.New(0.5, 0.5, 0.5)), nil, nil)
	al := light.NewDiffuseAreaLight(shape.NewDisk(rmath.IdentityTransform(), false, 0, 1, 0, 360), spectrum.White, true)
	sphere := shape.NewSphere(rmath.IdentityTransform(), false, 1, -1, 1, 360)
	model := NewGeometricModel(sphere, &SurfaceBindings{Material: mat, AreaLight: al})

	bvh := Build([]Model{model}, 4, SplitSAH)
	ray := rmath.NewRay(rmath.Pt3{X: 0, Y: 0, Z: -5}, rmath.Vec3{X: 0, Y: 0, Z: 1})

	_, _, hitModel, hit := bvh.IntersectModel(ray)
	if !hit {
		t.Fatalf("expected a hit")
	}
	bindings := BindingsOf(hitModel)
	if bindings.Material != mat {
		t.Fatalf("expected the hit model's bound material to be recoverable")
	}
	if bindings.AreaLight != al {
		t.Fatalf("expected the hit model's bound area light to be recoverable")
	}
}

func TestBindingsOfZeroValueForUnboundModel(t *testing.T) {
	model := NewGeometricModel(shape.NewSphere(rmath.IdentityTransform(), false, 1, -1, 1, 360), nil)
	bindings := BindingsOf(model)
	if bindings.Material != nil || bindings.AreaLight != nil {
		t.Fatalf("expected zero-value bindings for a model with no payload, got %+v", bindings)
	}
}

// TestBVHMatchesBruteForceOverRandomSpheres is spec.md §8 S6: a SAH BVH over
// many randomly positioned spheres must agree with a brute-force linear scan
// on every reported nearest hit and hit distance.
func TestBVHMatchesBruteForceOverRandomSpheres(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 500
	models := make([]Model, n)
	for i := range models {
		p := rmath.Pt3{
			X: rmath.Float(rng.Float64()*40 - 20),
			Y: rmath.Float(rng.Float64()*40 - 20),
			Z: rmath.Float(rng.Float64()*40 - 20),
		}
		s := shape.NewSphere(rmath.Translate(p.ToVector()), false, 1, -1, 1, 360)
		models[i] = NewGeometricModel(s, nil)
	}
	bvh := Build(models, 4, SplitSAH)

	for i := 0; i < 200; i++ {
		origin := rmath.Pt3{
			X: rmath.Float(rng.Float64()*60 - 30),
			Y: rmath.Float(rng.Float64()*60 - 30),
			Z: rmath.Float(rng.Float64()*60 - 30),
		}
		dir := rmath.Vec3{
			X: rmath.Float(rng.Float64()*2 - 1),
			Y: rmath.Float(rng.Float64()*2 - 1),
			Z: rmath.Float(rng.Float64()*2 - 1),
		}.Normalize()
		ray := rmath.NewRay(origin, dir)

		bvhDist, _, bvhHit := bvh.Intersect(ray)

		bruteRay := rmath.NewRay(origin, dir)
		bruteHit := false
		var bruteDist rmath.Float
		for _, m := range models {
			d, _, ok := m.Intersect(bruteRay)
			if ok {
				bruteRay.MaxDistance = d
				bruteDist = d
				bruteHit = true
			}
		}

		if bvhHit != bruteHit {
			t.Fatalf("ray %d: bvh hit=%v, brute force hit=%v", i, bvhHit, bruteHit)
		}
		if bvhHit && rmath.Abs(bvhDist-bruteDist) > 1e-4 {
			t.Fatalf("ray %d: bvh distance=%v, brute force distance=%v", i, bvhDist, bruteDist)
		}
	}
}
