package accel

import (
	"testing"

	"rayimpact/rmath"
	"rayimpact/shape"
)

func sphereAt(center rmath.Pt3, radius rmath.Float) Model {
	return NewGeometricModel(shape.NewSphere(rmath.Translate(center.ToVector()), false, radius, -radius, radius, 360), nil)
}

func TestBVHEmptyAlwaysMisses(t *testing.T) {
	b := Build(nil, 4, SplitSAH)
	ray := rmath.NewRay(rmath.Pt3{X: 0, Y: 0, Z: -5}, rmath.Vec3{X: 0, Y: 0, Z: 1})
	if _, _, hit := b.Intersect(ray); hit {
		t.Fatalf("expected empty BVH to miss")
	}
	if b.HasIntersection(ray) {
		t.Fatalf("expected empty BVH HasIntersection to be false")
	}
	if b.WorldBounds().SurfaceArea() != 0 {
		t.Fatalf("expected empty BVH world bounds to be degenerate")
	}
}

func TestBVHFindsNearestAmongOverlapping(t *testing.T) {
	models := []Model{
		sphereAt(rmath.Pt3{X: 0, Y: 0, Z: 0}, 1),
		sphereAt(rmath.Pt3{X: 0, Y: 0, Z: 5}, 1),
		sphereAt(rmath.Pt3{X: 0, Y: 0, Z: 10}, 1),
		sphereAt(rmath.Pt3{X: 5, Y: 5, Z: 5}, 1),
	}
	for _, method := range []SplitMethod{SplitSAH, SplitMiddle, SplitEqualCounts} {
		b := Build(models, 1, method)
		ray := rmath.NewRay(rmath.Pt3{X: 0, Y: 0, Z: -20}, rmath.Vec3{X: 0, Y: 0, Z: 1})
		dist, event, hit := b.Intersect(ray)
		if !hit {
			t.Fatalf("method %v: expected a hit", method)
		}
		if rmath.Abs(dist-19) > 1e-2 {
			t.Fatalf("method %v: distance = %v, want ~19 (nearest sphere at z=0)", method, dist)
		}
		if rmath.Abs(event.Point.Z-(-1)) > 1e-2 {
			t.Fatalf("method %v: hit point z = %v, want ~-1", method, event.Point.Z)
		}
	}
}

func TestBVHHasIntersectionAgreesWithIntersect(t *testing.T) {
	models := []Model{
		sphereAt(rmath.Pt3{X: 0, Y: 0, Z: 0}, 1),
		sphereAt(rmath.Pt3{X: 4, Y: 0, Z: 0}, 1),
		sphereAt(rmath.Pt3{X: -4, Y: 0, Z: 0}, 1),
		sphereAt(rmath.Pt3{X: 0, Y: 4, Z: 0}, 1),
		sphereAt(rmath.Pt3{X: 0, Y: -4, Z: 0}, 1),
	}
	b := Build(models, 2, SplitSAH)

	hitRay := rmath.NewRay(rmath.Pt3{X: 0, Y: 0, Z: -10}, rmath.Vec3{X: 0, Y: 0, Z: 1})
	missRay := rmath.NewRay(rmath.Pt3{X: 100, Y: 100, Z: -10}, rmath.Vec3{X: 0, Y: 0, Z: 1})

	_, _, hit := b.Intersect(hitRay)
	if hit != b.HasIntersection(hitRay) {
		t.Fatalf("HasIntersection disagrees with Intersect on a hitting ray")
	}
	_, _, miss := b.Intersect(missRay)
	if miss != b.HasIntersection(missRay) {
		t.Fatalf("HasIntersection disagrees with Intersect on a missing ray")
	}
}

func TestBVHRespectsMaxModelsPerLeafUnderMiddleAndEqualCounts(t *testing.T) {
	models := make([]Model, 0, 20)
	for i := 0; i < 20; i++ {
		models = append(models, sphereAt(rmath.Pt3{X: rmath.Float(i) * 3, Y: 0, Z: 0}, 1))
	}
	for _, method := range []SplitMethod{SplitMiddle, SplitEqualCounts} {
		b := Build(models, 2, method)
		for _, node := range b.nodes {
			if node.numModels > 0 && node.numModels > 2 {
				t.Fatalf("method %v: leaf with %d models exceeds maxModelsPerLeaf=2", method, node.numModels)
			}
		}
	}
}

func TestBVHWorldBoundsCoversAllModels(t *testing.T) {
	models := []Model{
		sphereAt(rmath.Pt3{X: -10, Y: 0, Z: 0}, 1),
		sphereAt(rmath.Pt3{X: 10, Y: 0, Z: 0}, 1),
	}
	b := Build(models, 1, SplitSAH)
	wb := b.WorldBounds()
	if !wb.Contains(rmath.Pt3{X: -11, Y: 0, Z: 0}) || !wb.Contains(rmath.Pt3{X: 11, Y: 0, Z: 0}) {
		t.Fatalf("world bounds %v do not cover both spheres", wb)
	}
}
