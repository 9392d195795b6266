package sampling

import "rayimpact/rmath"

// RandomSampler draws every component independently from the RNG, with no
// stratification at all — the simplest baseline sampler. Grounded on
// original_source's RandomSampler.
type RandomSampler struct {
	pixelCore
}

func NewRandomSampler(n, nSampledDimensions int) *RandomSampler {
	return &RandomSampler{pixelCore: newPixelCore(n, nSampledDimensions)}
}

func (s *RandomSampler) SetPixel(p Pixel) {
	s.resetPixel(p)

	for _, comp := range s.components1D {
		for i := range comp {
			comp[i] = s.rng.uniformFloat()
		}
	}
	for _, comp := range s.components2D {
		for i := range comp {
			comp[i] = rmath.Pt2{X: s.rng.uniformFloat(), Y: s.rng.uniformFloat()}
		}
	}
	for _, arr := range s.arrays1D {
		for i := range arr {
			arr[i] = s.rng.uniformFloat()
		}
	}
	for _, arr := range s.arrays2D {
		for i := range arr {
			arr[i] = rmath.Pt2{X: s.rng.uniformFloat(), Y: s.rng.uniformFloat()}
		}
	}
}

func (s *RandomSampler) BeginNextSample() bool      { return s.beginNextSample() }
func (s *RandomSampler) BeginSampleIndex(i int) bool { return s.beginSampleIndex(i) }
func (s *RandomSampler) Next1D() rmath.Float         { return s.next1D() }
func (s *RandomSampler) Next2D() rmath.Pt2           { return s.next2D() }
func (s *RandomSampler) RequestArray1D(n int)        { s.requestArray1D(n) }
func (s *RandomSampler) RequestArray2D(n int)        { s.requestArray2D(n) }
func (s *RandomSampler) Array1D(n int) []rmath.Float { return s.array1D(n) }
func (s *RandomSampler) Array2D(n int) []rmath.Pt2   { return s.array2D(n) }

func (s *RandomSampler) GenerateCameraSample(p Pixel) CameraSample {
	return generateCameraSample(s.next2D, s.next1D, p)
}

func (s *RandomSampler) Clone(seed int64) Sampler {
	return &RandomSampler{pixelCore: s.clonedCore(seed)}
}
