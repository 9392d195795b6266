// Package integrator implements the outer sampling-loop render driver and
// the Whitted recursive integrator (§4.J). Grounded on the teacher's
// renderer/renderer.go render loop (a per-frame dispatch that acquires a
// frame, records commands, and submits — generalized here from a GPU
// command-buffer dispatch into a tile-parallel sampling dispatch) and, for
// the recursive shading math itself, original_source's integrator
// description in spec.md §4.J (no Whitted-integrator source file survived
// the retrieval filter, so the recursion structure below follows the spec
// prose directly).
package integrator

import (
	"rayimpact/accel"
	"rayimpact/light"
	"rayimpact/rmath"
	"rayimpact/spectrum"
)

// Scene couples the acceleration structure with the light list the
// integrator samples against; both are immutable once built and freely
// shared across worker goroutines (§5 "Scene, shapes, lights, materials,
// textures, BVH — Immutable after build — Freely shared").
type Scene struct {
	Accel  *accel.BVH
	Lights []light.Light
}

// Intersect finds the closest hit and the Model it belongs to, so the
// integrator can look up that model's material/area-light bindings.
func (s *Scene) Intersect(ray rmath.Ray) (distance rmath.Float, hit accel.ModelHit, ok bool) {
	dist, event, model, found := s.Accel.IntersectModel(ray)
	if !found {
		return 0, accel.ModelHit{}, false
	}
	return dist, accel.ModelHit{Event: event, Model: model, Bindings: accel.BindingsOf(model)}, true
}

// HasIntersection issues a boolean-only visibility query, the contract
// light.VisibilityTester.BeamIsUnobstructed expects of its Occluder.
func (s *Scene) HasIntersection(ray rmath.Ray) bool {
	return s.Accel.HasIntersection(ray)
}

// InfiniteLight is satisfied by lights with no finite geometric extent
// (environment/directional lights); the Whitted integrator sums their
// direction-dependent contribution when a ray leaves the scene with no hit
// (§4.J step 1). No concrete infinite light ships in this core (§1 excludes
// CIE spectral-table-driven environment maps), but the integrator honors the
// interface for any Light the scene supplies that implements it.
type InfiniteLight interface {
	light.Light
	EmittedRadianceFromDirection(ray rmath.Ray) spectrum.RGB
}
