package film

import (
	"testing"

	"rayimpact/rmath"
	"rayimpact/spectrum"
)

func testCropSensor() *Sensor {
	return NewSensor(
		PixelPoint{X: 4, Y: 4},
		rmath.BoundingRectangle{Min: rmath.Pt2{X: 0, Y: 0}, Max: rmath.Pt2{X: 1, Y: 1}},
		NewBoxFilter(rmath.Vec2{X: 0.5, Y: 0.5}),
		35, "sensor_test.pfm", 1,
	)
}

func TestSamplingBoundsExpandsByFilterRadius(t *testing.T) {
	s := testCropSensor()
	b := s.SamplingBounds()
	if b.Min.X > 0 || b.Min.Y > 0 {
		t.Fatalf("expected sampling bounds to expand below the pixel bounds, got %+v", b)
	}
	if b.Max.X < 4 || b.Max.Y < 4 {
		t.Fatalf("expected sampling bounds to expand beyond the pixel bounds, got %+v", b)
	}
}

func TestSensorRegionAddSampleThenMergeReconstructsConstantRadiance(t *testing.T) {
	s := testCropSensor()
	region := s.SensorRegion(s.SamplingBounds())

	radiance := spectrum.New(1, 1, 1)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			region.AddSample(rmath.Pt2{X: rmath.Float(x) + 0.5, Y: rmath.Float(y) + 0.5}, radiance, 1)
		}
	}
	s.MergeSensorRegion(region)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			rgb := s.ResolvePixel(PixelPoint{X: x, Y: y}, 0)
			if rmath.Abs(rgb.R-1) > 1e-3 || rmath.Abs(rgb.G-1) > 1e-3 || rmath.Abs(rgb.B-1) > 1e-3 {
				t.Fatalf("pixel (%d,%d) = %+v, want (1,1,1)", x, y, rgb)
			}
		}
	}
}

func TestResolvePixelIsZeroWithoutContribution(t *testing.T) {
	s := testCropSensor()
	rgb := s.ResolvePixel(PixelPoint{X: 0, Y: 0}, 0)
	if rgb.R != 0 || rgb.G != 0 || rgb.B != 0 {
		t.Fatalf("expected a black pixel with no samples, got %+v", rgb)
	}
}

func TestAddSplatAccumulatesAtAffectedPixel(t *testing.T) {
	s := testCropSensor()
	s.AddSplat(rmath.Pt2{X: 2, Y: 2}, spectrum.New(3, 3, 3))
	s.AddSplat(rmath.Pt2{X: 2, Y: 2}, spectrum.New(1, 1, 1))

	rgb := s.ResolvePixel(PixelPoint{X: 2, Y: 2}, 1)
	if rgb.R < 3.9 || rgb.R > 4.1 {
		t.Fatalf("splat accumulation R = %v, want ~4", rgb.R)
	}
}

func TestAddSplatOutsideBoundsIsIgnored(t *testing.T) {
	s := testCropSensor()
	s.AddSplat(rmath.Pt2{X: -5, Y: -5}, spectrum.New(9, 9, 9))
	rgb := s.ResolvePixel(PixelPoint{X: 0, Y: 0}, 1)
	if rgb.R != 0 {
		t.Fatalf("expected an out-of-bounds splat to be dropped, got R=%v", rgb.R)
	}
}

func TestPixelBoundsAreaAndDegenerate(t *testing.T) {
	b := PixelBounds{Min: PixelPoint{X: 0, Y: 0}, Max: PixelPoint{X: 4, Y: 4}}
	if b.Area() != 16 {
		t.Fatalf("Area() = %v, want 16", b.Area())
	}
	if b.Degenerate() {
		t.Fatalf("expected a non-degenerate bounds")
	}
	empty := PixelBounds{Min: PixelPoint{X: 4, Y: 4}, Max: PixelPoint{X: 0, Y: 0}}
	if !empty.Degenerate() {
		t.Fatalf("expected an inverted bounds to be degenerate")
	}
}
