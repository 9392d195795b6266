package sampling

import "rayimpact/rmath"

// pixelCore is the shared implementation behind every PixelSampler-derived
// concrete sampler: all of a pixel's samples are generated up front in
// setPixel, then handed out component-by-component (§4.C "PixelSampler:
// precomputes all samples for a pixel before use").
type pixelCore struct {
	base

	cur1DComponent int
	cur2DComponent int

	components1D [][]rmath.Float
	components2D [][]rmath.Pt2

	rng *rng
}

func newPixelCore(spp, nSampledDimensions int) pixelCore {
	pc := pixelCore{base: newBase(spp), rng: newRNG()}
	for i := 0; i < nSampledDimensions; i++ {
		pc.components1D = append(pc.components1D, make([]rmath.Float, spp))
		pc.components2D = append(pc.components2D, make([]rmath.Pt2, spp))
	}
	return pc
}

func (pc *pixelCore) resetPixel(p Pixel) {
	pc.base.resetPixel(p)
	pc.cur1DComponent = 0
	pc.cur2DComponent = 0
}

func (pc *pixelCore) beginNextSample() bool {
	pc.cur1DComponent = 0
	pc.cur2DComponent = 0
	return pc.advanceSample()
}

func (pc *pixelCore) beginSampleIndex(i int) bool {
	pc.cur1DComponent = 0
	pc.cur2DComponent = 0
	return pc.jumpToSample(i)
}

func (pc *pixelCore) next1D() rmath.Float {
	if pc.cur1DComponent < len(pc.components1D) {
		v := pc.components1D[pc.cur1DComponent][pc.currentPixelSampleIdx]
		pc.cur1DComponent++
		return v
	}
	return pc.rng.uniformFloat()
}

func (pc *pixelCore) next2D() rmath.Pt2 {
	if pc.cur2DComponent < len(pc.components2D) {
		v := pc.components2D[pc.cur2DComponent][pc.currentPixelSampleIdx]
		pc.cur2DComponent++
		return v
	}
	return rmath.Pt2{X: pc.rng.uniformFloat(), Y: pc.rng.uniformFloat()}
}

func (pc pixelCore) clonedCore(seed int64) pixelCore {
	cp := pc
	cp.base = pc.base.clone()
	cp.components1D = make([][]rmath.Float, len(pc.components1D))
	for i, c := range pc.components1D {
		cp.components1D[i] = append([]rmath.Float(nil), c...)
	}
	cp.components2D = make([][]rmath.Pt2, len(pc.components2D))
	for i, c := range pc.components2D {
		cp.components2D[i] = append([]rmath.Pt2(nil), c...)
	}
	if seed == 0 {
		cp.rng = newRNG()
	} else {
		cp.rng = newRNGWithSeed(seed)
	}
	return cp
}

func generateCameraSample(next2D func() rmath.Pt2, next1D func() rmath.Float, p Pixel) CameraSample {
	return CameraSample{
		SensorPoint: rmath.Pt2{X: rmath.Float(p.X), Y: rmath.Float(p.Y)}.Add(next2D()),
		Time:        next1D(),
		LensPoint:   next2D(),
	}
}

// generateStratifiedSamples1D fills samples with one jittered value per
// stratum of the unit interval (§4.C).
func generateStratifiedSamples1D(samples []rmath.Float, g *rng) {
	n := len(samples)
	sep := rmath.Float(1) / rmath.Float(n)
	for i := range samples {
		v := (rmath.Float(i) + g.uniformFloat()) * sep
		if v > oneMinusEpsilon {
			v = oneMinusEpsilon
		}
		samples[i] = v
	}
}

// generateStratifiedSamples2D treats the pixel as an nx*ny grid, placing one
// jittered sample per cell (§4.C).
func generateStratifiedSamples2D(samples []rmath.Pt2, nx, ny int, g *rng) {
	sepX := rmath.Float(1) / rmath.Float(nx)
	sepY := rmath.Float(1) / rmath.Float(ny)
	idx := 0
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			vx := (rmath.Float(x) + g.uniformFloat()) * sepX
			vy := (rmath.Float(y) + g.uniformFloat()) * sepY
			if vx > oneMinusEpsilon {
				vx = oneMinusEpsilon
			}
			if vy > oneMinusEpsilon {
				vy = oneMinusEpsilon
			}
			samples[idx] = rmath.Pt2{X: vx, Y: vy}
			idx++
		}
	}
}

// generateLatinHypercubeSamples2D stratifies each dimension independently
// then shuffles the per-dimension orderings, decorrelating the two axes
// (§4.C "arrays in 2D use Latin-hypercube construction").
func generateLatinHypercubeSamples2D(samples []rmath.Pt2, g *rng) {
	n := len(samples)
	sep := rmath.Float(1) / rmath.Float(n)
	for i := 0; i < n; i++ {
		x := (rmath.Float(i) + g.uniformFloat()) * sep
		y := (rmath.Float(i) + g.uniformFloat()) * sep
		if x > oneMinusEpsilon {
			x = oneMinusEpsilon
		}
		if y > oneMinusEpsilon {
			y = oneMinusEpsilon
		}
		samples[i] = rmath.Pt2{X: x, Y: y}
	}
	shuffleXs := make([]rmath.Float, n)
	shuffleYs := make([]rmath.Float, n)
	for i, s := range samples {
		shuffleXs[i] = s.X
		shuffleYs[i] = s.Y
	}
	shuffleFloats(shuffleXs, g)
	shuffleFloats(shuffleYs, g)
	for i := range samples {
		samples[i] = rmath.Pt2{X: shuffleXs[i], Y: shuffleYs[i]}
	}
}

// shuffleFloats performs a Fisher-Yates shuffle (§4.C "shuffle(array, rng)").
func shuffleFloats(values []rmath.Float, g *rng) {
	n := len(values)
	for i := 0; i < n; i++ {
		j := i + int(g.uniformUint32(uint32(n-i)))
		values[i], values[j] = values[j], values[i]
	}
}

func shufflePt2(values []rmath.Pt2, g *rng) {
	n := len(values)
	for i := 0; i < n; i++ {
		j := i + int(g.uniformUint32(uint32(n-i)))
		values[i], values[j] = values[j], values[i]
	}
}

const oneMinusEpsilon = rmath.Float(1) - 1.0/(1<<24)
