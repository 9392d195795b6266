package sampling

import "rayimpact/rmath"

// StratifiedSampler places samples on an nx*ny jittered grid within each
// pixel and Latin-hypercube-stratifies any requested component arrays.
// Grounded on original_source's StratifiedSampler.
type StratifiedSampler struct {
	pixelCore
	nx, ny int
}

func NewStratifiedSampler(nx, ny, nSampledDimensions int) *StratifiedSampler {
	return &StratifiedSampler{
		pixelCore: newPixelCore(nx*ny, nSampledDimensions),
		nx:        nx, ny: ny,
	}
}

func (s *StratifiedSampler) SetPixel(p Pixel) {
	s.resetPixel(p)

	for i := range s.components1D {
		generateStratifiedSamples1D(s.components1D[i], s.rng)
		shuffleFloats(s.components1D[i], s.rng)
	}
	for i := range s.components2D {
		generateStratifiedSamples2D(s.components2D[i], s.nx, s.ny, s.rng)
		shufflePt2(s.components2D[i], s.rng)
	}
	for i, arr := range s.arrays1D {
		sz := s.sizes1D[i]
		for j := 0; j < s.samplesPerPixel; j++ {
			slice := arr[j*sz : (j+1)*sz]
			generateStratifiedSamples1D(slice, s.rng)
			shuffleFloats(slice, s.rng)
		}
	}
	for i, arr := range s.arrays2D {
		sz := s.sizes2D[i]
		for j := 0; j < s.samplesPerPixel; j++ {
			generateLatinHypercubeSamples2D(arr[j*sz:(j+1)*sz], s.rng)
		}
	}
}

func (s *StratifiedSampler) BeginNextSample() bool      { return s.beginNextSample() }
func (s *StratifiedSampler) BeginSampleIndex(i int) bool { return s.beginSampleIndex(i) }
func (s *StratifiedSampler) Next1D() rmath.Float         { return s.next1D() }
func (s *StratifiedSampler) Next2D() rmath.Pt2           { return s.next2D() }
func (s *StratifiedSampler) RequestArray1D(n int)        { s.requestArray1D(n) }
func (s *StratifiedSampler) RequestArray2D(n int)        { s.requestArray2D(n) }
func (s *StratifiedSampler) Array1D(n int) []rmath.Float { return s.array1D(n) }
func (s *StratifiedSampler) Array2D(n int) []rmath.Pt2   { return s.array2D(n) }

func (s *StratifiedSampler) GenerateCameraSample(p Pixel) CameraSample {
	return generateCameraSample(s.next2D, s.next1D, p)
}

func (s *StratifiedSampler) Clone(seed int64) Sampler {
	return &StratifiedSampler{pixelCore: s.clonedCore(seed), nx: s.nx, ny: s.ny}
}
