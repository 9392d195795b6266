// Package texture provides the small generic texture contract the material
// layer samples ρ, roughness, and bump displacement from. The renderer core
// only requires a mapper that can fill a SurfaceScatteringEvent's texture
// coordinate and its screen-space derivatives (§6, "Texture mapper
// interface"); how a mapping projects onto parametric/spherical/planar UVs
// is an external concern. Grounded on the teacher's scene/texture.go (a
// flat RGBA8 texture asset), generalized into a generic sampling interface
// that also covers constant and procedurally-combined values.
package texture

import (
	"rayimpact/rmath"
	"rayimpact/shape"
)

// Texture evaluates to a value of type T at a surface-scattering event.
type Texture[T any] interface {
	Evaluate(event *shape.SurfaceScatteringEvent) T
}

// Constant always returns the same value, used for materials parameterised
// by a literal rather than an image or procedural texture.
type Constant[T any] struct {
	Value T
}

func NewConstant[T any](v T) Constant[T] { return Constant[T]{Value: v} }

func (c Constant[T]) Evaluate(*shape.SurfaceScatteringEvent) T { return c.Value }

// Scaled multiplies a scalar Texture's value by a constant factor, used for
// roughness/bump-magnitude tweaks without introducing a new asset.
type Scaled struct {
	Source Texture[rmath.Float]
	Factor rmath.Float
}

func NewScaled(source Texture[rmath.Float], factor rmath.Float) Scaled {
	return Scaled{Source: source, Factor: factor}
}

func (s Scaled) Evaluate(event *shape.SurfaceScatteringEvent) rmath.Float {
	return s.Source.Evaluate(event) * s.Factor
}

// Mixed linearly blends two textures of the same value type by a third,
// scalar-valued texture, used by the Mixed material to interpolate between
// two fully-built sub-appearances at the texel level.
type Mixed[T any] struct {
	A, B Texture[T]
	Amt  Texture[rmath.Float]
	lerp func(t rmath.Float, a, b T) T
}

func NewMixed[T any](a, b Texture[T], amt Texture[rmath.Float], lerp func(rmath.Float, T, T) T) Mixed[T] {
	return Mixed[T]{A: a, B: b, Amt: amt, lerp: lerp}
}

func (m Mixed[T]) Evaluate(event *shape.SurfaceScatteringEvent) T {
	t := m.Amt.Evaluate(event)
	return m.lerp(t, m.A.Evaluate(event), m.B.Evaluate(event))
}
