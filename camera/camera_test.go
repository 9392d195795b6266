package camera

import (
	"testing"

	"rayimpact/film"
	"rayimpact/rmath"
	"rayimpact/sampling"
)

func testSensor() *film.Sensor {
	return film.NewSensor(
		film.PixelPoint{X: 64, Y: 64},
		rmath.BoundingRectangle{Min: rmath.Pt2{X: 0, Y: 0}, Max: rmath.Pt2{X: 1, Y: 1}},
		film.NewBoxFilter(rmath.Vec2{X: 0.5, Y: 0.5}),
		35, "camera_test.pfm", 1,
	)
}

// TestRasterToCameraRoundTripsThroughCameraToRaster is spec.md §8 invariant
// 10: raster_to_camera ∘ camera_to_raster == identity on Point3.
func TestRasterToCameraRoundTripsThroughCameraToRaster(t *testing.T) {
	anim := rmath.NewAnimatedTransform(rmath.IdentityTransform(), 0, rmath.IdentityTransform(), 0)
	cam := NewPerspectiveCamera(anim, 0, 1, testSensor(), nil, 60*rmath.Pi/180, 0, 1e6, 1e-2, 1000)

	cameraToRaster := cam.screenToRaster.Compose(cam.cameraToScreen)
	raster := rmath.Pt3{X: 10, Y: 20, Z: 0}
	pCamera := cam.rasterToCamera.Point(raster)
	pRasterAgain := cameraToRaster.Point(pCamera)

	if rmath.Abs(pRasterAgain.X-raster.X) > 1e-4 || rmath.Abs(pRasterAgain.Y-raster.Y) > 1e-4 {
		t.Fatalf("round trip = %+v, want %+v", pRasterAgain, raster)
	}
}

func TestPerspectiveCameraGeneratesNormalizedRayDirection(t *testing.T) {
	anim := rmath.NewAnimatedTransform(rmath.IdentityTransform(), 0, rmath.IdentityTransform(), 0)
	cam := NewPerspectiveCamera(anim, 0, 1, testSensor(), nil, 60*rmath.Pi/180, 0, 1e6, 1e-2, 1000)

	sample := sampling.CameraSample{SensorPoint: rmath.Pt2{X: 32, Y: 32}, Time: 0, LensPoint: rmath.Pt2{}}
	ray, weight := cam.GenerateRay(sample)
	if weight != 1 {
		t.Fatalf("expected weight 1, got %v", weight)
	}
	if rmath.Abs(ray.Direction.Length()-1) > 1e-4 {
		t.Fatalf("expected a normalized ray direction, got length %v", ray.Direction.Length())
	}
}

func TestGenerateRayWithOffsetsSetsHasOffsets(t *testing.T) {
	anim := rmath.NewAnimatedTransform(rmath.IdentityTransform(), 0, rmath.IdentityTransform(), 0)
	cam := NewPerspectiveCamera(anim, 0, 1, testSensor(), nil, 60*rmath.Pi/180, 0, 1e6, 1e-2, 1000)

	sample := sampling.CameraSample{SensorPoint: rmath.Pt2{X: 32, Y: 32}, Time: 0, LensPoint: rmath.Pt2{}}
	rwo, _ := cam.GenerateRayWithOffsets(sample)
	if !rwo.HasOffsets {
		t.Fatalf("expected HasOffsets to be true")
	}
	if rwo.DirectionX == rwo.Direction && rwo.OriginX == rwo.Origin {
		t.Fatalf("expected the x-offset ray to differ from the primary ray")
	}
}

func TestOrthographicCameraRayDirectionIsConstant(t *testing.T) {
	anim := rmath.NewAnimatedTransform(rmath.IdentityTransform(), 0, rmath.IdentityTransform(), 0)
	cam := NewOrthographicCamera(anim, 0, 1, testSensor(), nil, 0, 1e6, 1e-2, 1000)

	s1 := sampling.CameraSample{SensorPoint: rmath.Pt2{X: 10, Y: 10}}
	s2 := sampling.CameraSample{SensorPoint: rmath.Pt2{X: 50, Y: 50}}
	r1, _ := cam.GenerateRay(s1)
	r2, _ := cam.GenerateRay(s2)
	if r1.Direction != r2.Direction {
		t.Fatalf("expected a constant ray direction for an orthographic camera, got %+v and %+v", r1.Direction, r2.Direction)
	}
	if r1.Origin == r2.Origin {
		t.Fatalf("expected distinct ray origins at distinct sensor points")
	}
}
