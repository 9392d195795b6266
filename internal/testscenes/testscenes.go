// Package testscenes builds the concrete end-to-end scenarios of spec.md
// §8 (S1-S6) directly against the core's constructors, bypassing scenefile
// since these are fixed, in-process fixtures rather than text-format scene
// files. Each builder returns just enough of the render graph for its test
// to drive.
package testscenes

import (
	"rayimpact/accel"
	"rayimpact/camera"
	"rayimpact/film"
	"rayimpact/integrator"
	"rayimpact/light"
	"rayimpact/material"
	"rayimpact/rmath"
	"rayimpact/sampling"
	"rayimpact/shape"
	"rayimpact/spectrum"
	"rayimpact/texture"
)

// perspectiveCamera builds a pinhole ProjectiveCamera looking from eye
// toward target, with a sensor of the given resolution and filter.
func perspectiveCamera(eye, target rmath.Vec3, fovRadians rmath.Float, sensor *film.Sensor) camera.Camera {
	cameraToWorld := rmath.LookAt(eye, target, rmath.Vec3{Y: 1})
	anim := rmath.NewAnimatedTransform(cameraToWorld, 0, cameraToWorld, 0)
	return camera.NewPerspectiveCamera(anim, 0, 1, sensor, nil, fovRadians, 0, 1e6, 1e-3, 1000)
}

func boxSensor(width, height int, filterRadius rmath.Float) *film.Sensor {
	return film.NewSensor(
		film.PixelPoint{X: width, Y: height},
		rmath.BoundingRectangle{Min: rmath.Pt2{X: 0, Y: 0}, Max: rmath.Pt2{X: 1, Y: 1}},
		film.NewBoxFilter(rmath.Vec2{X: filterRadius, Y: filterRadius}),
		35, "testscene.pfm", 1,
	)
}

// S1Scene is spec.md §8 S1: a unit sphere lit by one point light, viewed
// through an 11x11 box-filtered perspective camera.
type S1Scene struct {
	Scene    *integrator.Scene
	Camera   camera.Camera
	Sampler  sampling.Sampler
	Integrator integrator.Integrator
}

func NewS1Scene() S1Scene {
	sensor := boxSensor(11, 11, 0.5)
	cam := perspectiveCamera(rmath.Vec3{Z: 3}, rmath.Vec3{}, 45*rmath.Pi/180, sensor)

	mat := material.NewMatte(texture.NewConstant(spectrum.New(0.8, 0.8, 0.8)), nil, nil)
	sphere := shape.NewSphere(rmath.IdentityTransform(), false, 1, -1, 1, 360)
	model := accel.NewGeometricModel(sphere, &accel.SurfaceBindings{Material: mat})

	pl := light.NewPointLight(rmath.Pt3{X: 2, Y: 2, Z: 2}, spectrum.New(10, 10, 10))

	bvh := accel.Build([]accel.Model{model}, 4, accel.SplitSAH)
	return S1Scene{
		Scene:      &integrator.Scene{Accel: bvh, Lights: []light.Light{pl}},
		Camera:     cam,
		Sampler:    sampling.NewStratifiedSampler(1, 1, 4),
		Integrator: integrator.NewWhittedIntegrator(5),
	}
}

// S2Scene is spec.md §8 S2: two perfectly-specular mirror planes facing
// each other at z=+-1, with a diffuse emissive disk at x=0, exercising
// depth-gated recursion termination.
type S2Scene struct {
	Scene      *integrator.Scene
	Camera     camera.Camera
	Sampler    sampling.Sampler
	Integrator integrator.Integrator
}

func NewS2Scene() S2Scene {
	sensor := boxSensor(9, 9, 0.5)
	cam := perspectiveCamera(rmath.Vec3{Z: 4}, rmath.Vec3{}, 50*rmath.Pi/180, sensor)

	mirrorBSDFMaterial := material.NewGlass(
		texture.NewConstant(spectrum.White), texture.NewConstant(spectrum.Black),
		texture.NewConstant[rmath.Float](0), texture.NewConstant[rmath.Float](0),
		texture.NewConstant[rmath.Float](1), false, nil,
	)

	frontMirror := shape.NewDisk(rmath.Translate(rmath.Vec3{Z: -1}), false, 0, 5, 0, 360)
	backMirror := shape.NewDisk(rmath.Translate(rmath.Vec3{Z: 1}).Compose(rmath.RotateAxis(rmath.Vec3{Y: 1}, rmath.Pi)), false, 0, 5, 0, 360)

	emitterShape := shape.NewDisk(rmath.IdentityTransform(), false, 0, 0.2, 0, 360)
	emitter := light.NewDiffuseAreaLight(emitterShape, spectrum.New(4, 4, 4), true)

	models := []accel.Model{
		accel.NewGeometricModel(frontMirror, &accel.SurfaceBindings{Material: mirrorBSDFMaterial}),
		accel.NewGeometricModel(backMirror, &accel.SurfaceBindings{Material: mirrorBSDFMaterial}),
		accel.NewGeometricModel(emitterShape, &accel.SurfaceBindings{Material: mirrorBSDFMaterial, AreaLight: emitter}),
	}
	bvh := accel.Build(models, 2, accel.SplitSAH)
	return S2Scene{
		Scene:      &integrator.Scene{Accel: bvh, Lights: []light.Light{emitter}},
		Camera:     cam,
		Sampler:    sampling.NewStratifiedSampler(2, 2, 4),
		Integrator: integrator.NewWhittedIntegrator(5),
	}
}

// S3Scene is spec.md §8 S3: a glass sphere of eta=1.5 in front of a red
// matte plane, exercising refraction and total internal reflection.
type S3Scene struct {
	Scene      *integrator.Scene
	Camera     camera.Camera
	Integrator integrator.Integrator
}

func NewS3Scene() S3Scene {
	sensor := boxSensor(11, 11, 0.5)
	cam := perspectiveCamera(rmath.Vec3{Z: 5}, rmath.Vec3{}, 40*rmath.Pi/180, sensor)

	glass := material.NewGlass(
		texture.NewConstant(spectrum.White), texture.NewConstant(spectrum.White),
		texture.NewConstant[rmath.Float](0), texture.NewConstant[rmath.Float](0),
		texture.NewConstant[rmath.Float](1.5), false, nil,
	)
	redMatte := material.NewMatte(texture.NewConstant(spectrum.New(0.8, 0.1, 0.1)), nil, nil)

	sphere := shape.NewSphere(rmath.IdentityTransform(), false, 1, -1, 1, 360)
	plane := shape.NewDisk(rmath.Translate(rmath.Vec3{Z: -3}).Compose(rmath.RotateAxis(rmath.Vec3{X: 1}, rmath.Pi/2)), false, 0, 10, 0, 360)

	models := []accel.Model{
		accel.NewGeometricModel(sphere, &accel.SurfaceBindings{Material: glass}),
		accel.NewGeometricModel(plane, &accel.SurfaceBindings{Material: redMatte}),
	}
	bvh := accel.Build(models, 2, accel.SplitSAH)
	return S3Scene{
		Scene:      &integrator.Scene{Accel: bvh},
		Camera:     cam,
		Integrator: integrator.NewWhittedIntegrator(5),
	}
}

// InfiniteWhiteLight is a constant-radiance environment used by S4: every
// ray that escapes the scene reports radiance 1 in every channel.
type InfiniteWhiteLight struct {
	radiance spectrum.RGB
}

func NewInfiniteWhiteLight(radiance spectrum.RGB) *InfiniteWhiteLight { return &InfiniteWhiteLight{radiance: radiance} }

func (l *InfiniteWhiteLight) SampleIncidentRadiance(p rmath.Pt3, time rmath.Float, u rmath.Pt2) (rmath.Vec3, spectrum.RGB, rmath.Float, light.VisibilityTester) {
	return rmath.Vec3{Y: 1}, l.radiance, 1, light.VisibilityTester{}
}

func (l *InfiniteWhiteLight) EmittedPower() spectrum.RGB { return l.radiance }

func (l *InfiniteWhiteLight) EmittedRadianceFromDirection(ray rmath.Ray) spectrum.RGB { return l.radiance }

// S4Scene is spec.md §8 S4: an empty scene lit only by a constant-radiance
// infinite light, sampled with a 4x4 stratified sampler; every filter
// should reconstruct exactly (1,1,1).
type S4Scene struct {
	Scene      *integrator.Scene
	Camera     camera.Camera
	Sampler    sampling.Sampler
	Integrator integrator.Integrator
}

func NewS4Scene(filter film.Filter) S4Scene {
	sensor := film.NewSensor(
		film.PixelPoint{X: 8, Y: 8},
		rmath.BoundingRectangle{Min: rmath.Pt2{X: 0, Y: 0}, Max: rmath.Pt2{X: 1, Y: 1}},
		filter, 35, "s4.pfm", 1,
	)
	cam := perspectiveCamera(rmath.Vec3{Z: 3}, rmath.Vec3{}, 50*rmath.Pi/180, sensor)
	bvh := accel.Build(nil, 4, accel.SplitSAH)
	infinite := NewInfiniteWhiteLight(spectrum.White)
	return S4Scene{
		Scene:      &integrator.Scene{Accel: bvh, Lights: []light.Light{infinite}},
		Camera:     cam,
		Sampler:    sampling.NewStratifiedSampler(4, 4, 4),
		Integrator: integrator.NewWhittedIntegrator(1),
	}
}

// NewS5Disk is spec.md §8 S5: an annular half-disk, inner radius 0.5, outer
// radius 1.0, phiMax 180 degrees, axis-aligned at the origin.
func NewS5Disk() shape.Shape {
	return shape.NewDisk(rmath.IdentityTransform(), false, 0, 1.0, 0.5, 180)
}

// NewS6Spheres is spec.md §8 S6: n randomly positioned, unit-radius spheres
// for a BVH-vs-brute-force traversal comparison. The caller supplies the
// positions, drawn from its own seeded source, so the test stays
// deterministic across runs.
func NewS6Spheres(positions []rmath.Pt3) []accel.Model {
	models := make([]accel.Model, len(positions))
	for i, p := range positions {
		s := shape.NewSphere(rmath.Translate(p.ToVector()), false, 1, -1, 1, 360)
		models[i] = accel.NewGeometricModel(s, nil)
	}
	return models
}
