// Package accel builds and traverses a bounding-volume hierarchy over the
// scene's models (§4.E). The BVH itself is new functionality beyond what the
// teacher repo does (the teacher brute-forces a linear scan with an AABB
// pre-test per editor/raycast.go); it follows the slab-test style of that
// scan, generalized into a proper tree per spec.md's BVH description.
package accel

import (
	"rayimpact/light"
	"rayimpact/material"
	"rayimpact/rmath"
	"rayimpact/shape"
)

// Model couples a Shape with the material/light bindings the integrator
// needs once it has a hit; the acceleration structure only cares about its
// bounds and intersection methods.
type Model interface {
	WorldBounds() rmath.Bounds3
	Intersect(ray rmath.Ray) (distance rmath.Float, event shape.SurfaceScatteringEvent, hit bool)
	HasIntersection(ray rmath.Ray) bool
}

// GeometricModel is the default Model: a Shape paired with an opaque
// "surface bindings" payload (material/area-light/medium references) that
// the BVH and integrator thread through without interpreting.
type GeometricModel struct {
	Shape    shape.Shape
	Bindings any
}

func NewGeometricModel(s shape.Shape, bindings any) *GeometricModel {
	return &GeometricModel{Shape: s, Bindings: bindings}
}

// SurfaceBindings is the concrete payload most GeometricModels carry in
// Bindings: the material the integrator builds a BSDF from, and, when the
// model's geometry is also a light, the area light it emits through. Kept
// here rather than in material or light so those packages stay independent
// of each other and of accel (§4.D "back-reference to the intersected
// Model", §4.J).
type SurfaceBindings struct {
	Material  material.Material
	AreaLight light.AreaLight
}

// BindingsOf type-asserts a Model's Bindings to *SurfaceBindings, returning
// the zero value if the model carries no (or a differently typed) payload.
func BindingsOf(m Model) SurfaceBindings {
	gm, ok := m.(*GeometricModel)
	if !ok {
		return SurfaceBindings{}
	}
	sb, ok := gm.Bindings.(*SurfaceBindings)
	if !ok || sb == nil {
		return SurfaceBindings{}
	}
	return *sb
}

func (m *GeometricModel) WorldBounds() rmath.Bounds3 { return m.Shape.WorldBounds() }

func (m *GeometricModel) Intersect(ray rmath.Ray) (rmath.Float, shape.SurfaceScatteringEvent, bool) {
	dist, event, hit := m.Shape.Intersect(ray)
	if !hit {
		return 0, shape.SurfaceScatteringEvent{}, false
	}
	return dist, event, true
}

func (m *GeometricModel) HasIntersection(ray rmath.Ray) bool {
	return m.Shape.HasIntersection(ray)
}

// ModelHit bundles an IntersectModel result for callers outside this
// package (the integrator) that need the Model alongside its event, plus
// its resolved SurfaceBindings, without repeating the type assertion.
type ModelHit struct {
	Event    shape.SurfaceScatteringEvent
	Model    Model
	Bindings SurfaceBindings
}
