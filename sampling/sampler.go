// Package sampling implements the sample generation contract consumed by
// the camera and integrator (§4.C): a Sampler hands out a deterministic,
// per-pixel stream of 1D/2D values plus fixed-size component arrays, and can
// be cloned for use by another worker goroutine.
//
// Grounded on original_source's RayImpact/Sampler.hpp, PixelSampler, and the
// three concrete samplers (StratifiedSampler, UniformSampler, RandomSampler);
// the RNG itself mirrors RandomNumberGenerator.hpp's std::mt19937 choice with
// the standard library's math/rand, since nothing in the example corpus
// pulls in a third-party RNG.
package sampling

import "rayimpact/rmath"

// Pixel is an integer pixel coordinate, distinct from rmath's floating-point
// Point2 since sampler bookkeeping is always done in discrete pixel space.
type Pixel struct {
	X, Y int
}

// CameraSample is what the camera consumes to generate one primary ray: a
// point on the sensor in continuous pixel space, a time for motion blur, and
// a point on the lens aperture (§4.C, §4.I).
type CameraSample struct {
	SensorPoint rmath.Pt2
	Time        rmath.Float
	LensPoint   rmath.Pt2
}

// Sampler is the contract every concrete sampler satisfies. Implementations
// are not safe for concurrent use; each worker goroutine owns its own clone
// (§2, §4.B "A Sampler is cloned per worker thread").
type Sampler interface {
	SamplesPerPixel() int

	// SetPixel binds the sampler to a pixel, resetting dimension counters
	// and (for PixelSampler-derived types) precomputing every sample's
	// stratified components.
	SetPixel(p Pixel)

	// BeginNextSample advances to the next sample for the current pixel,
	// returning false once SamplesPerPixel samples have been consumed.
	BeginNextSample() bool

	// BeginSampleIndex jumps directly to a given sample index.
	BeginSampleIndex(i int) bool

	Next1D() rmath.Float
	Next2D() rmath.Pt2

	// RequestArray1D/2D reserve a k-length component array per sample; must
	// be called before the first SetPixel.
	RequestArray1D(n int)
	RequestArray2D(n int)

	// Array1D/2D return this sample's slice for the next previously
	// requested array, in request order; nil once all requested arrays for
	// this sample have been consumed.
	Array1D(n int) []rmath.Float
	Array2D(n int) []rmath.Pt2

	GenerateCameraSample(p Pixel) CameraSample

	// Clone returns an independent sampler seeded from seed; a seed of 0
	// reseeds from OS entropy (mirroring cloned() with no argument).
	Clone(seed int64) Sampler
}
