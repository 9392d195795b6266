package scenefile

import (
	"testing"

	"rayimpact/rmath"
	"rayimpact/sampling"
	"rayimpact/spectrum"
)

func buildSmokeScene(b *Builder) {
	b.SetFilter("box", NewParameterSet())

	sensorParams := NewParameterSet()
	sensorParams.SetInt("xresolution", 16)
	sensorParams.SetInt("yresolution", 16)
	b.SetCameraSensor(sensorParams, "")

	b.UseWorldToCamera(rmath.LookAt(rmath.Vec3{Z: 5}, rmath.Vec3{}, rmath.Vec3{Y: 1}).Inverted())
	cameraParams := NewParameterSet()
	cameraParams.SetFloat("fov", 45)
	b.SetCamera("perspective", cameraParams)

	b.SetSampler("stratified", NewParameterSet())
	b.SetIntegrator("whitted", NewParameterSet())

	b.BeginSceneDescription()

	matteParams := NewParameterSet()
	matteParams.SetRGB("reflectance", spectrum.New(0.7, 0.7, 0.7))
	b.UseMaterial("", "matte", matteParams)
	b.CreateModel("sphere", NewParameterSet())

	lightParams := NewParameterSet()
	lightParams.SetPoint3("from", rmath.Pt3{X: 3, Y: 3, Z: 3})
	lightParams.SetRGB("intensity", spectrum.New(25, 25, 25))
	b.CreateLight("point", lightParams)
}

func TestEndSceneDescriptionProducesARenderableScene(t *testing.T) {
	b := NewBuilder()
	buildSmokeScene(b)
	built := b.EndSceneDescription()

	if built.Scene == nil || built.Scene.Accel == nil {
		t.Fatalf("expected a built acceleration structure")
	}
	if len(built.Scene.Lights) != 1 {
		t.Fatalf("expected 1 light, got %d", len(built.Scene.Lights))
	}
	if built.Camera == nil {
		t.Fatalf("expected a camera")
	}
	if built.Sampler == nil {
		t.Fatalf("expected a sampler")
	}
	if built.Integrator == nil {
		t.Fatalf("expected an integrator")
	}
}

func TestEndSceneDescriptionDefaultsSamplerAndIntegratorWhenUnset(t *testing.T) {
	b := NewBuilder()
	b.SetFilter("box", NewParameterSet())
	sensorParams := NewParameterSet()
	b.SetCameraSensor(sensorParams, "")
	b.UseWorldToCamera(rmath.IdentityTransform())
	b.SetCamera("perspective", NewParameterSet())
	b.BeginSceneDescription()

	built := b.EndSceneDescription()
	if built.Sampler == nil {
		t.Fatalf("expected a default sampler to be substituted")
	}
	if _, ok := built.Sampler.(*sampling.StratifiedSampler); !ok {
		t.Fatalf("expected the default sampler to be a stratified sampler, got %T", built.Sampler)
	}
	if built.Integrator == nil {
		t.Fatalf("expected a default integrator to be substituted")
	}
}

func TestUnknownSamplerKindSubstitutesStratified(t *testing.T) {
	b := NewBuilder()
	b.SetSampler("nonexistent", NewParameterSet())
	if _, ok := b.sampler.(*sampling.StratifiedSampler); !ok {
		t.Fatalf("expected an unknown sampler kind to substitute a stratified sampler, got %T", b.sampler)
	}
}

func TestUnknownModelKindIsIgnored(t *testing.T) {
	b := NewBuilder()
	b.BeginSceneDescription()
	b.CreateModel("teapot", NewParameterSet())
	if len(b.models) != 0 {
		t.Fatalf("expected an unknown shape kind to add no model, got %d", len(b.models))
	}
}

func TestBeginEndObjectDefersModelsUntilInstanced(t *testing.T) {
	b := NewBuilder()
	b.BeginSceneDescription()

	b.BeginObject("blob")
	b.CreateModel("sphere", NewParameterSet())
	b.EndObject()

	if len(b.models) != 0 {
		t.Fatalf("expected no top-level models while recording an object, got %d", len(b.models))
	}

	b.CreateObjectInstance("blob")
	if len(b.models) != 1 {
		t.Fatalf("expected the instanced object's model to appear at top level, got %d", len(b.models))
	}

	b.CreateObjectInstance("blob")
	if len(b.models) != 2 {
		t.Fatalf("expected a second instance to add a second model, got %d", len(b.models))
	}
}

func TestAreaLightBindsToNextModelOnly(t *testing.T) {
	b := NewBuilder()
	b.BeginSceneDescription()

	lightParams := NewParameterSet()
	lightParams.SetRGB("L", spectrum.New(5, 5, 5))
	b.CreateLight("area", lightParams)
	b.CreateModel("disk", NewParameterSet())
	b.CreateModel("sphere", NewParameterSet())

	if len(b.lights) != 1 {
		t.Fatalf("expected exactly one area light to be created, got %d", len(b.lights))
	}
	if len(b.models) != 2 {
		t.Fatalf("expected both models to be created, got %d", len(b.models))
	}
}
