package sampling

import "rayimpact/rmath"

// primeTable supplies the base for each dimension's radical-inverse
// sequence; 16 dimensions comfortably covers camera (4) plus a handful of
// BSDF/light sampling dimensions before falling back to per-sample
// perturbation.
var primeTable = [...]uint32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53}

const arrayStartDimension = 5

// HaltonSampler realizes the GlobalSampler contract (§4.C): rather than
// precomputing a pixel's samples up front, it maps (pixel, pixel_sample_idx)
// to a monotonically increasing global sample index and reads
// dimension-indexed values out of a low-discrepancy (Halton/radical-inverse)
// sequence, so that samples for a single pixel are also well distributed
// against samples taken for every other pixel in the image. Array
// dimensions reserve a contiguous range starting at arrayStartDimension so
// that scalar next1D/next2D queries within a sample skip over them, mirroring
// original_source's GlobalSampler.
type HaltonSampler struct {
	base

	nextDimension        int
	currentGlobalIdx     int
	arrayEndDimension     int
	samplesPerPixelScale int // copy of spp; pixelToGlobalSampleIndex does not read it
}

func NewHaltonSampler(spp int) *HaltonSampler {
	return &HaltonSampler{base: newBase(spp), samplesPerPixelScale: spp}
}

func (h *HaltonSampler) pixelToGlobalSampleIndex(pixelSampleIdx int) int {
	// A simple (not maximally low-discrepancy) mapping: hash the pixel
	// coordinates and give each hash value its own run of samplesPerPixel
	// indices. The 32-bit hash and the final mod 2^40 are not collision-free,
	// so two pixels can share global indices.
	px := uint64(uint32(h.currentPixel.X))
	py := uint64(uint32(h.currentPixel.Y))
	pixelHash := (px*73856093 ^ py*19349663) & 0xFFFFFFFF
	return int((pixelHash*uint64(h.samplesPerPixel) + uint64(pixelSampleIdx)) % (1 << 40))
}

func (h *HaltonSampler) valueOfGlobalSampleDimension(globalIdx, dimension int) rmath.Float {
	base := primeTable[dimension%len(primeTable)]
	return radicalInverse(uint64(globalIdx), base)
}

// radicalInverse computes the base-b radical inverse of n, the classic
// low-discrepancy digit-reversal construction.
func radicalInverse(n uint64, base uint32) rmath.Float {
	invBase := 1.0 / float64(base)
	reversedDigits := uint64(0)
	invBaseN := 1.0
	for n > 0 {
		digit := n % uint64(base)
		reversedDigits = reversedDigits*uint64(base) + digit
		invBaseN *= invBase
		n /= uint64(base)
	}
	v := float64(reversedDigits) * invBaseN
	if v >= 1 {
		v = float64(oneMinusEpsilon)
	}
	return rmath.Float(v)
}

func (h *HaltonSampler) SetPixel(p Pixel) {
	h.resetPixel(p)
	h.nextDimension = 0
	h.currentGlobalIdx = h.pixelToGlobalSampleIndex(0)
	h.arrayEndDimension = arrayStartDimension + len(h.arrays1D) + 2*len(h.arrays2D)

	for arrayDim, arr := range h.arrays1D {
		sz := h.sizes1D[arrayDim]
		for i := 0; i < sz*h.samplesPerPixel; i++ {
			gIdx := h.pixelToGlobalSampleIndex(i)
			arr[i] = h.valueOfGlobalSampleDimension(gIdx, arrayStartDimension+arrayDim)
		}
	}
	dimension := arrayStartDimension + len(h.arrays1D)
	for arrayDim, arr := range h.arrays2D {
		sz := h.sizes2D[arrayDim]
		for i := 0; i < sz*h.samplesPerPixel; i++ {
			gIdx := h.pixelToGlobalSampleIndex(i)
			arr[i] = rmath.Pt2{
				X: h.valueOfGlobalSampleDimension(gIdx, dimension),
				Y: h.valueOfGlobalSampleDimension(gIdx, dimension+1),
			}
		}
		dimension += 2
	}
}

func (h *HaltonSampler) BeginNextSample() bool {
	h.nextDimension = 0
	h.currentGlobalIdx = h.pixelToGlobalSampleIndex(h.currentPixelSampleIdx + 1)
	return h.advanceSample()
}

func (h *HaltonSampler) BeginSampleIndex(i int) bool {
	h.nextDimension = 0
	h.currentGlobalIdx = h.pixelToGlobalSampleIndex(i)
	return h.jumpToSample(i)
}

func (h *HaltonSampler) Next1D() rmath.Float {
	if h.nextDimension >= arrayStartDimension && h.nextDimension < h.arrayEndDimension {
		h.nextDimension = h.arrayEndDimension
	}
	v := h.valueOfGlobalSampleDimension(h.currentGlobalIdx, h.nextDimension)
	h.nextDimension++
	return v
}

func (h *HaltonSampler) Next2D() rmath.Pt2 {
	if h.nextDimension+1 >= arrayStartDimension && h.nextDimension < h.arrayEndDimension {
		h.nextDimension = h.arrayEndDimension
	}
	v := rmath.Pt2{
		X: h.valueOfGlobalSampleDimension(h.currentGlobalIdx, h.nextDimension),
		Y: h.valueOfGlobalSampleDimension(h.currentGlobalIdx, h.nextDimension+1),
	}
	h.nextDimension += 2
	return v
}

func (h *HaltonSampler) RequestArray1D(n int) { h.requestArray1D(n) }
func (h *HaltonSampler) RequestArray2D(n int) { h.requestArray2D(n) }
func (h *HaltonSampler) Array1D(n int) []rmath.Float { return h.array1D(n) }
func (h *HaltonSampler) Array2D(n int) []rmath.Pt2   { return h.array2D(n) }

func (h *HaltonSampler) GenerateCameraSample(p Pixel) CameraSample {
	return generateCameraSample(h.Next2D, h.Next1D, p)
}

func (h *HaltonSampler) Clone(seed int64) Sampler {
	cp := &HaltonSampler{base: h.base.clone(), samplesPerPixelScale: h.samplesPerPixelScale}
	return cp
}
