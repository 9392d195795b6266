package sampling

import "rayimpact/rmath"

// base holds the bookkeeping shared by every sampler: the requested
// per-sample component arrays, and the cursor into them for the sample
// currently being drawn. Mirrors the non-virtual state of
// original_source's Sampler base class.
type base struct {
	samplesPerPixel int

	currentPixel          Pixel
	currentPixelSampleIdx int

	sizes1D []int
	sizes2D []int
	arrays1D [][]rmath.Float
	arrays2D [][]rmath.Pt2

	cur1D int
	cur2D int
}

func newBase(spp int) base {
	return base{samplesPerPixel: spp}
}

func (b *base) SamplesPerPixel() int { return b.samplesPerPixel }

func (b *base) requestArray1D(n int) {
	b.sizes1D = append(b.sizes1D, n)
	b.arrays1D = append(b.arrays1D, make([]rmath.Float, n*b.samplesPerPixel))
}

func (b *base) requestArray2D(n int) {
	b.sizes2D = append(b.sizes2D, n)
	b.arrays2D = append(b.arrays2D, make([]rmath.Pt2, n*b.samplesPerPixel))
}

func (b *base) resetPixel(p Pixel) {
	b.currentPixel = p
	b.currentPixelSampleIdx = 0
	b.cur1D = 0
	b.cur2D = 0
}

func (b *base) resetArrayCursors() {
	b.cur1D = 0
	b.cur2D = 0
}

func (b *base) advanceSample() bool {
	b.resetArrayCursors()
	b.currentPixelSampleIdx++
	return b.currentPixelSampleIdx < b.samplesPerPixel
}

func (b *base) jumpToSample(i int) bool {
	b.resetArrayCursors()
	b.currentPixelSampleIdx = i
	return b.currentPixelSampleIdx < b.samplesPerPixel
}

func (b *base) array1D(n int) []rmath.Float {
	if b.cur1D == len(b.arrays1D) {
		return nil
	}
	arr := b.arrays1D[b.cur1D]
	b.cur1D++
	sz := b.sizes1D[b.cur1D-1]
	start := b.currentPixelSampleIdx * sz
	_ = n
	return arr[start : start+sz]
}

func (b *base) array2D(n int) []rmath.Pt2 {
	if b.cur2D == len(b.arrays2D) {
		return nil
	}
	arr := b.arrays2D[b.cur2D]
	b.cur2D++
	sz := b.sizes2D[b.cur2D-1]
	start := b.currentPixelSampleIdx * sz
	_ = n
	return arr[start : start+sz]
}

func (b base) clone() base {
	cp := b
	cp.sizes1D = append([]int(nil), b.sizes1D...)
	cp.sizes2D = append([]int(nil), b.sizes2D...)
	cp.arrays1D = make([][]rmath.Float, len(b.arrays1D))
	for i, a := range b.arrays1D {
		cp.arrays1D[i] = append([]rmath.Float(nil), a...)
	}
	cp.arrays2D = make([][]rmath.Pt2, len(b.arrays2D))
	for i, a := range b.arrays2D {
		cp.arrays2D[i] = append([]rmath.Pt2(nil), a...)
	}
	return cp
}
