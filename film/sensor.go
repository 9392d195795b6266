package film

import (
	"sync"

	"rayimpact/rmath"
	"rayimpact/rparallel"
	"rayimpact/spectrum"
)

const filterTableWidth = 16

// PixelPoint is a discrete raster-space pixel coordinate.
type PixelPoint struct{ X, Y int }

// PixelBounds is a half-open rectangle of discrete pixel coordinates
// ([Min, Max) in both axes), the iteration space for sampling and for
// merging a SensorRegion back into a Sensor.
type PixelBounds struct{ Min, Max PixelPoint }

func (b PixelBounds) Width() int  { return b.Max.X - b.Min.X }
func (b PixelBounds) Height() int { return b.Max.Y - b.Min.Y }
func (b PixelBounds) Area() int   { return b.Width() * b.Height() }

func (b PixelBounds) Degenerate() bool { return b.Width() <= 0 || b.Height() <= 0 }

func (b PixelBounds) Intersect(o PixelBounds) PixelBounds {
	return PixelBounds{
		Min: PixelPoint{maxInt(b.Min.X, o.Min.X), maxInt(b.Min.Y, o.Min.Y)},
		Max: PixelPoint{minInt(b.Max.X, o.Max.X), minInt(b.Max.Y, o.Max.Y)},
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func ceilFloat(f rmath.Float) int { return int(rmath.Ceil(f)) }
func floorFloat(f rmath.Float) int { return int(rmath.Floor(f)) }

// pixel is the sensor's persistent per-pixel accumulator: tristimulus sums
// from filtered samples plus an independent, lock-free splat accumulator
// (§4.H "Splats").
type pixel struct {
	xyz                spectrum.XYZ
	sumOfFilterWeights rmath.Float
	splatX, splatY, splatZ rparallel.AtomicFloat
}

// Sensor owns the full output image and the reconstruction filter used to
// turn scattered radiance samples into pixel values (§4.H).
type Sensor struct {
	FullResolution  PixelPoint
	RasterCropWindow PixelBounds
	DiagonalExtent  rmath.Float
	Filter          Filter
	OutputFilename  string
	finalImageScale rmath.Float

	pixels      []pixel
	filterTable [filterTableWidth * filterTableWidth]rmath.Float

	mu sync.Mutex
}

// NewSensor builds a sensor for the given full resolution and an NDC-space
// crop window (each component in [0,1]), precomputing the filter lookup
// table over the filter's positive quadrant (§4.H "Filter table").
func NewSensor(resolution PixelPoint, cropWindow rmath.BoundingRectangle, filter Filter, diagonalExtentMeters rmath.Float, outputFilename string, finalImageScale rmath.Float) *Sensor {
	raster := PixelBounds{
		Min: PixelPoint{ceilFloat(rmath.Float(resolution.X) * cropWindow.Min.X), ceilFloat(rmath.Float(resolution.Y) * cropWindow.Min.Y)},
		Max: PixelPoint{ceilFloat(rmath.Float(resolution.X) * cropWindow.Max.X), ceilFloat(rmath.Float(resolution.Y) * cropWindow.Max.Y)},
	}

	s := &Sensor{
		FullResolution:   resolution,
		RasterCropWindow: raster,
		DiagonalExtent:   diagonalExtentMeters,
		Filter:           filter,
		OutputFilename:   outputFilename,
		finalImageScale:  finalImageScale,
		pixels:           make([]pixel, raster.Area()),
	}

	idxNorm := rmath.Float(1) / filterTableWidth
	idx := 0
	for j := 0; j < filterTableWidth; j++ {
		for i := 0; i < filterTableWidth; i++ {
			s.filterTable[idx] = filter.Evaluate(rmath.Pt2{
				X: (rmath.Float(i) + 0.5) * idxNorm * filter.Radius().X,
				Y: (rmath.Float(j) + 0.5) * idxNorm * filter.Radius().Y,
			})
			idx++
		}
	}
	return s
}

// SamplingBounds is the set of pixels that need to be sampled, the crop
// window expanded by the filter's radius so that edge pixels still collect
// contributions from samples taken just outside the crop window (§4.H
// "Sampling bounds").
func (s *Sensor) SamplingBounds() PixelBounds {
	r := s.Filter.Radius()
	return PixelBounds{
		Min: PixelPoint{
			floorFloat(rmath.Float(s.RasterCropWindow.Min.X) + 0.5 - r.X),
			floorFloat(rmath.Float(s.RasterCropWindow.Min.Y) + 0.5 - r.Y),
		},
		Max: PixelPoint{
			ceilFloat(rmath.Float(s.RasterCropWindow.Max.X) - 0.5 + r.X),
			ceilFloat(rmath.Float(s.RasterCropWindow.Max.Y) - 0.5 + r.Y),
		},
	}
}

// PhysicalExtent is a zero-centered rectangle (in meters) describing the
// sensor's physical size, derived from the diagonal extent and the aspect
// ratio of the full resolution. The cameras in this module size their screen
// window from the resolution alone and do not call it.
func (s *Sensor) PhysicalExtent() rmath.BoundingRectangle {
	aspect := rmath.Float(s.FullResolution.Y) / rmath.Float(s.FullResolution.X)
	x := rmath.Sqrt(s.DiagonalExtent * s.DiagonalExtent / (1 + aspect*aspect))
	y := x * aspect
	return rmath.BoundingRectangle{
		Min: rmath.Pt2{X: -0.5 * x, Y: -0.5 * y},
		Max: rmath.Pt2{X: 0.5 * x, Y: 0.5 * y},
	}
}

// SensorRegion carves out a SensorRegion covering the pixels that can be
// affected by samples taken within regionSamplingBounds (§4.H).
func (s *Sensor) SensorRegion(regionSamplingBounds PixelBounds) *SensorRegion {
	r := s.Filter.Radius()
	lower := PixelPoint{
		ceilFloat(rmath.Float(regionSamplingBounds.Min.X) - 0.5 - r.X),
		ceilFloat(rmath.Float(regionSamplingBounds.Min.Y) - 0.5 - r.Y),
	}
	upper := PixelPoint{
		floorFloat(rmath.Float(regionSamplingBounds.Max.X)-0.5+r.X) + 1,
		floorFloat(rmath.Float(regionSamplingBounds.Max.Y)-0.5+r.Y) + 1,
	}
	bounds := PixelBounds{Min: lower, Max: upper}.Intersect(s.RasterCropWindow)
	return newSensorRegion(bounds, r, s.filterTable[:])
}

func (s *Sensor) pixelIndex(p PixelPoint) int {
	width := s.RasterCropWindow.Width()
	return width*(p.Y-s.RasterCropWindow.Min.Y) + (p.X - s.RasterCropWindow.Min.X)
}

// MergeSensorRegion folds a finished region's filtered accumulators into the
// sensor's persistent pixel array under a single mutex acquisition, so the
// lock's hold time is amortised over every pixel in the region rather than
// paid once per pixel (§4.H "Sensor merge").
func (s *Sensor) MergeSensorRegion(region *SensorRegion) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for y := region.bounds.Min.Y; y < region.bounds.Max.Y; y++ {
		for x := region.bounds.Min.X; x < region.bounds.Max.X; x++ {
			p := PixelPoint{x, y}
			raw := region.rawPixel(p)
			dst := &s.pixels[s.pixelIndex(p)]

			dst.xyz = dst.xyz.Add(raw.receivedEnergy.ToXYZ())
			dst.sumOfFilterWeights += raw.sumOfFilterWeights
		}
	}
}

// AddSplat adds a scattered radiance contribution directly to a single
// pixel's atomic splat accumulator, bypassing the mutex-guarded merge path;
// used for contributions (e.g. light-tracing-style hits) whose target pixel
// is not known in advance and so cannot go through a SensorRegion (§4.H
// "Splats").
func (s *Sensor) AddSplat(samplePosition rmath.Pt2, radiance spectrum.RGB) {
	p := PixelPoint{int(samplePosition.X), int(samplePosition.Y)}
	if p.X < s.RasterCropWindow.Min.X || p.X >= s.RasterCropWindow.Max.X ||
		p.Y < s.RasterCropWindow.Min.Y || p.Y >= s.RasterCropWindow.Max.Y {
		return
	}
	xyz := radiance.ToXYZ()
	dst := &s.pixels[s.pixelIndex(p)]
	dst.splatX.Add(xyz.X)
	dst.splatY.Add(xyz.Y)
	dst.splatZ.Add(xyz.Z)
}

// ResolvePixel normalises one pixel by its accumulated filter-weight sum,
// adds in its scaled splat contribution, and converts XYZ to RGB, clamping
// negative components (which can arise from the colorimetric matrix on
// saturated inputs) to zero (§4.H "Writeout"). WriteImage calls this once
// per pixel; tests call it directly to check a scene's resolved radiance
// without going through a PFM round trip.
func (s *Sensor) ResolvePixel(p PixelPoint, splatScale rmath.Float) spectrum.RGB {
	px := s.pixels[s.pixelIndex(p)]

	color := spectrum.FromXYZ(px.xyz)
	if px.sumOfFilterWeights != 0 {
		norm := 1 / px.sumOfFilterWeights
		color = color.Scale(norm)
	}

	splat := spectrum.FromXYZ(spectrum.XYZ{
		X: px.splatX.Load(),
		Y: px.splatY.Load(),
		Z: px.splatZ.Load(),
	}).Scale(splatScale)

	return color.Add(splat).ClampZero()
}

// WriteImage resolves every pixel in the raster crop window and writes the
// result out as a PFM file (§4.H "Writeout").
func (s *Sensor) WriteImage(splatScale rmath.Float) error {
	width, height := s.RasterCropWindow.Width(), s.RasterCropWindow.Height()
	rgb := make([]rmath.Float, 3*width*height)

	idx := 0
	for y := s.RasterCropWindow.Min.Y; y < s.RasterCropWindow.Max.Y; y++ {
		for x := s.RasterCropWindow.Min.X; x < s.RasterCropWindow.Max.X; x++ {
			color := s.ResolvePixel(PixelPoint{x, y}, splatScale)
			rgb[3*idx+0] = color.R
			rgb[3*idx+1] = color.G
			rgb[3*idx+2] = color.B
			idx++
		}
	}

	return writePFM(s.OutputFilename, rgb, width, height, s.finalImageScale)
}

// rawPixel is a SensorRegion's working accumulator before merge: unlike the
// sensor's persistent pixel it carries the full RGB energy rather than XYZ,
// since the conversion to colorimetric tristimulus values only needs to
// happen once, at merge time.
type rawPixel struct {
	receivedEnergy    spectrum.RGB
	sumOfFilterWeights rmath.Float
}

// SensorRegion accumulates filter-weighted sample contributions for one
// rectangle of pixels, typically one render tile's worth, so that many
// goroutines can sample concurrently without contending on the sensor's
// mutex (§4.H "SensorRegion").
type SensorRegion struct {
	bounds             PixelBounds
	filterRadius       rmath.Vec2
	invFilterRadius    rmath.Vec2
	filterTable        []rmath.Float
	pixels             []rawPixel
}

func newSensorRegion(bounds PixelBounds, filterRadius rmath.Vec2, filterTable []rmath.Float) *SensorRegion {
	area := bounds.Area()
	if area < 0 {
		area = 0
	}
	return &SensorRegion{
		bounds:          bounds,
		filterRadius:    filterRadius,
		invFilterRadius: rmath.Vec2{X: 1 / filterRadius.X, Y: 1 / filterRadius.Y},
		filterTable:     filterTable,
		pixels:          make([]rawPixel, area),
	}
}

func (r *SensorRegion) PixelBounds() PixelBounds { return r.bounds }

func (r *SensorRegion) rawPixel(p PixelPoint) *rawPixel {
	width := r.bounds.Width()
	idx := width*(p.Y-r.bounds.Min.Y) + (p.X - r.bounds.Min.X)
	return &r.pixels[idx]
}

// AddSample distributes a single radiance sample's contribution across
// every pixel within the filter's support of it, weighting each by the
// filter evaluated at that pixel's offset from the sample, looked up from
// the precomputed table rather than evaluated directly (§4.H "addSample").
func (r *SensorRegion) AddSample(samplePosition rmath.Pt2, radiance spectrum.RGB, sampleWeight rmath.Float) {
	discrete := rmath.Pt2{X: samplePosition.X - 0.5, Y: samplePosition.Y - 0.5}

	lower := PixelPoint{
		ceilFloat(discrete.X - r.filterRadius.X),
		ceilFloat(discrete.Y - r.filterRadius.Y),
	}
	upper := PixelPoint{
		floorFloat(discrete.X+r.filterRadius.X) + 1,
		floorFloat(discrete.Y+r.filterRadius.Y) + 1,
	}
	lower = PixelPoint{maxInt(lower.X, r.bounds.Min.X), maxInt(lower.Y, r.bounds.Min.Y)}
	upper = PixelPoint{minInt(upper.X, r.bounds.Max.X), minInt(upper.Y, r.bounds.Max.Y)}
	if lower.X >= upper.X || lower.Y >= upper.Y {
		return
	}

	xCoords := make([]int, upper.X-lower.X)
	for x := lower.X; x < upper.X; x++ {
		coord := rmath.Abs(rmath.Float(x)-discrete.X) * r.invFilterRadius.X * filterTableWidth
		xCoords[x-lower.X] = minInt(int(rmath.Floor(coord)), filterTableWidth-1)
	}
	yCoords := make([]int, upper.Y-lower.Y)
	for y := lower.Y; y < upper.Y; y++ {
		coord := rmath.Abs(rmath.Float(y)-discrete.Y) * r.invFilterRadius.Y * filterTableWidth
		yCoords[y-lower.Y] = minInt(int(rmath.Floor(coord)), filterTableWidth-1)
	}

	for y := lower.Y; y < upper.Y; y++ {
		for x := lower.X; x < upper.X; x++ {
			tableIdx := filterTableWidth*yCoords[y-lower.Y] + xCoords[x-lower.X]
			weight := r.filterTable[tableIdx]

			px := r.rawPixel(PixelPoint{x, y})
			px.receivedEnergy = px.receivedEnergy.Add(radiance.Scale(sampleWeight * weight))
			px.sumOfFilterWeights += weight
		}
	}
}
