package sampling

import (
	"math"
	"testing"

	"rayimpact/rmath"
)

func TestBeginNextSampleExhaustsAfterN(t *testing.T) {
	const n = 16
	s := NewRandomSampler(n, 2)
	s.SetPixel(Pixel{X: 3, Y: 4})

	trueCount := 0
	for s.BeginNextSample() {
		trueCount++
	}
	if trueCount != n-1 {
		t.Fatalf("BeginNextSample returned true %d times, want %d", trueCount, n-1)
	}
}

func TestStratifiedSamplesStayInUnitInterval(t *testing.T) {
	s := NewStratifiedSampler(4, 4, 3)
	s.SetPixel(Pixel{})
	for {
		v := s.Next1D()
		if v < 0 || v >= 1 {
			t.Fatalf("Next1D = %v, want [0,1)", v)
		}
		p := s.Next2D()
		if p.X < 0 || p.X >= 1 || p.Y < 0 || p.Y >= 1 {
			t.Fatalf("Next2D = %v, want [0,1)^2", p)
		}
		if !s.BeginNextSample() {
			break
		}
	}
}

func TestCameraSampleIncludesPixelOffset(t *testing.T) {
	s := NewRandomSampler(4, 2)
	px := Pixel{X: 10, Y: 20}
	s.SetPixel(px)
	cs := s.GenerateCameraSample(px)
	if cs.SensorPoint.X < 10 || cs.SensorPoint.X >= 11 {
		t.Fatalf("SensorPoint.X = %v, want in [10,11)", cs.SensorPoint.X)
	}
	if cs.SensorPoint.Y < 20 || cs.SensorPoint.Y >= 21 {
		t.Fatalf("SensorPoint.Y = %v, want in [20,21)", cs.SensorPoint.Y)
	}
}

func TestConcentricDiskSamplePreservesDensity(t *testing.T) {
	const bins = 10
	const n = 200000
	hist := make([]int, bins)
	g := newRNGWithSeed(42)
	for i := 0; i < n; i++ {
		u := rmath.Pt2{X: g.uniformFloat(), Y: g.uniformFloat()}
		d := ConcentricDiskSample(u)
		r := math.Hypot(float64(d.X), float64(d.Y))
		bin := int(r * bins)
		if bin >= bins {
			bin = bins - 1
		}
		hist[bin]++
	}
	// Expected density in bin i is proportional to (r_i+1)^2 - r_i^2, i.e.
	// linearly increasing with bin index; check monotonic, not a hard bound.
	for i := 1; i < bins; i++ {
		if hist[i] < hist[i-1]/2 {
			t.Fatalf("density not increasing with radius: hist=%v", hist)
		}
	}
}
