package sampling

import "rayimpact/rmath"

// UniformSampler places exactly one sample at the center of each cell of an
// nx*ny grid, with no jitter — useful for deterministic debug renders and as
// a baseline for comparing stratified/random variance. Grounded on
// original_source's UniformSampler.
type UniformSampler struct {
	pixelCore
	nx, ny int
}

func NewUniformSampler(nx, ny, nSampledDimensions int) *UniformSampler {
	return &UniformSampler{
		pixelCore: newPixelCore(nx*ny, nSampledDimensions),
		nx:        nx, ny: ny,
	}
}

func (s *UniformSampler) SetPixel(p Pixel) {
	s.resetPixel(p)

	sepX := rmath.Float(1) / rmath.Float(s.nx)
	sepY := rmath.Float(1) / rmath.Float(s.ny)
	sep := rmath.Float(1) / rmath.Float(s.samplesPerPixel)

	for _, comp := range s.components1D {
		for i := range comp {
			comp[i] = (rmath.Float(i) + 0.5) * sep
		}
	}
	for _, comp := range s.components2D {
		idx := 0
		for y := 0; y < s.ny; y++ {
			for x := 0; x < s.nx; x++ {
				comp[idx] = rmath.Pt2{X: (rmath.Float(x) + 0.5) * sepX, Y: (rmath.Float(y) + 0.5) * sepY}
				idx++
			}
		}
	}
	for i, arr := range s.arrays1D {
		sz := s.sizes1D[i]
		idx := 0
		for j := 0; j < s.samplesPerPixel; j++ {
			v := (rmath.Float(j) + 0.5) * sep
			for n := 0; n < sz; n++ {
				arr[idx] = v
				idx++
			}
		}
	}
	for i, arr := range s.arrays2D {
		sz := s.sizes2D[i]
		idx := 0
		for y := 0; y < s.ny; y++ {
			for x := 0; x < s.nx; x++ {
				v := rmath.Pt2{X: (rmath.Float(x) + 0.5) * sepX, Y: (rmath.Float(y) + 0.5) * sepY}
				for n := 0; n < sz; n++ {
					arr[idx] = v
					idx++
				}
			}
		}
	}
}

func (s *UniformSampler) BeginNextSample() bool      { return s.beginNextSample() }
func (s *UniformSampler) BeginSampleIndex(i int) bool { return s.beginSampleIndex(i) }
func (s *UniformSampler) Next1D() rmath.Float         { return s.next1D() }
func (s *UniformSampler) Next2D() rmath.Pt2           { return s.next2D() }
func (s *UniformSampler) RequestArray1D(n int)        { s.requestArray1D(n) }
func (s *UniformSampler) RequestArray2D(n int)        { s.requestArray2D(n) }
func (s *UniformSampler) Array1D(n int) []rmath.Float { return s.array1D(n) }
func (s *UniformSampler) Array2D(n int) []rmath.Pt2   { return s.array2D(n) }

func (s *UniformSampler) GenerateCameraSample(p Pixel) CameraSample {
	return generateCameraSample(s.next2D, s.next1D, p)
}

func (s *UniformSampler) Clone(seed int64) Sampler {
	return &UniformSampler{pixelCore: s.clonedCore(seed), nx: s.nx, ny: s.ny}
}
