// Package film implements the sensor and image-reconstruction half of the
// core: the pixel-filter family, the Sensor that owns the final pixel
// array, and the per-tile SensorRegion that accumulates filtered sample
// contributions before being merged back (§4.H). Grounded on the original
// RayImpact Filter/BoxFilter/TriangleFilter/GaussianFilter and Sensor
// classes, carried across since the teacher repo renders directly to an
// OpenGL/Vulkan framebuffer rather than a reconstructed sensor image.
package film

import "rayimpact/rmath"

// Filter describes a pixel-reconstruction kernel: a radius of support and
// an evaluation function, assumed symmetric in x and y independently so a
// single precomputed quadrant suffices (§4.H "Filter table").
type Filter interface {
	Radius() rmath.Vec2
	Evaluate(p rmath.Pt2) rmath.Float
}

type baseFilter struct {
	radius rmath.Vec2
}

func (f baseFilter) Radius() rmath.Vec2 { return f.radius }

// BoxFilter weighs every sample within its support equally.
type BoxFilter struct{ baseFilter }

func NewBoxFilter(radius rmath.Vec2) *BoxFilter {
	return &BoxFilter{baseFilter{radius: radius}}
}

func (f *BoxFilter) Evaluate(rmath.Pt2) rmath.Float { return 1 }

// TriangleFilter falls off linearly from the center to zero at the radius.
type TriangleFilter struct{ baseFilter }

func NewTriangleFilter(radius rmath.Vec2) *TriangleFilter {
	return &TriangleFilter{baseFilter{radius: radius}}
}

func (f *TriangleFilter) Evaluate(p rmath.Pt2) rmath.Float {
	return rmath.Max(0, f.radius.X-rmath.Abs(p.X)) * rmath.Max(0, f.radius.Y-rmath.Abs(p.Y))
}

// GaussianFilter is a Gaussian lobe shifted down so it reaches zero at the
// edge of its support, avoiding a discontinuity there.
type GaussianFilter struct {
	baseFilter
	sharpness           rmath.Float
	edgeValueX, edgeValueY rmath.Float
}

func NewGaussianFilter(radius rmath.Vec2, sharpness rmath.Float) *GaussianFilter {
	return &GaussianFilter{
		baseFilter: baseFilter{radius: radius},
		sharpness:  sharpness,
		edgeValueX: rmath.Exp(-sharpness * radius.X * radius.X),
		edgeValueY: rmath.Exp(-sharpness * radius.Y * radius.Y),
	}
}

func (f *GaussianFilter) Evaluate(p rmath.Pt2) rmath.Float {
	gx := rmath.Max(0, rmath.Exp(-f.sharpness*p.X*p.X)-f.edgeValueX)
	gy := rmath.Max(0, rmath.Exp(-f.sharpness*p.Y*p.Y)-f.edgeValueY)
	return gx * gy
}
