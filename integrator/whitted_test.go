package integrator_test

import (
	"math"
	"testing"

	"rayimpact/film"
	"rayimpact/integrator"
	"rayimpact/internal/testscenes"
	"rayimpact/rmath"
	"rayimpact/rparallel"
)

func TestWhittedS1SphereCenterLitCornersMiss(t *testing.T) {
	s := testscenes.NewS1Scene()
	pool := rparallel.NewPool(1)
	defer pool.Close()

	if err := integrator.Render(pool, s.Integrator, s.Camera, s.Sampler, s.Scene, 0); err != nil {
		t.Fatalf("Render: %v", err)
	}

	sensor := s.Camera.Sensor()
	center := sensor.ResolvePixel(film.PixelPoint{X: 5, Y: 5}, 0)
	if center.R <= 0.3 || center.G <= 0.3 || center.B <= 0.3 {
		t.Fatalf("expected center pixel > 0.3 per channel, got %+v", center)
	}

	corners := []film.PixelPoint{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}}
	for _, p := range corners {
		c := sensor.ResolvePixel(p, 0)
		if c.R != 0 || c.G != 0 || c.B != 0 {
			t.Fatalf("expected corner %+v to be exactly black, got %+v", p, c)
		}
	}
}

func TestWhittedS4ConstantInfiniteLightReconstructsExactly(t *testing.T) {
	filters := []film.Filter{
		film.NewBoxFilter(filterRadius()),
		film.NewTriangleFilter(filterRadius()),
		film.NewGaussianFilter(filterRadius(), 2),
	}
	pool := rparallel.NewPool(1)
	defer pool.Close()

	for _, f := range filters {
		s := testscenes.NewS4Scene(f)
		if err := integrator.Render(pool, s.Integrator, s.Camera, s.Sampler, s.Scene, 0); err != nil {
			t.Fatalf("Render: %v", err)
		}
		sensor := s.Camera.Sensor()
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				c := sensor.ResolvePixel(film.PixelPoint{X: x, Y: y}, 0)
				if math.Abs(float64(c.R)-1) > 1e-6 || math.Abs(float64(c.G)-1) > 1e-6 || math.Abs(float64(c.B)-1) > 1e-6 {
					t.Fatalf("pixel (%d,%d): expected (1,1,1), got %+v", x, y, c)
				}
			}
		}
	}
}

func filterRadius() rmath.Vec2 { return rmath.Vec2{X: 2, Y: 2} }
