package shape

import "rayimpact/rmath"

// base holds the fields every concrete shape carries: its placement in the
// scene and the orientation-flip bookkeeping needed to pick the correct
// sign for the geometric normal (§4.D).
type base struct {
	objectToWorld, worldToObject rmath.Transform
	reverseOrientation           bool
}

func newBase(objectToWorld rmath.Transform, reverseOrientation bool) base {
	return base{
		objectToWorld:      objectToWorld,
		worldToObject:      objectToWorld.Inverted(),
		reverseOrientation: reverseOrientation,
	}
}

func (b base) ReverseOrientation() bool         { return b.reverseOrientation }
func (b base) TransformSwapsHandedness() bool   { return b.objectToWorld.SwapsHandedness() }
func (b base) worldBoundsFrom(obj rmath.Bounds3) rmath.Bounds3 {
	return b.objectToWorld.Bounds(obj)
}
