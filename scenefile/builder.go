package scenefile

import (
	"github.com/google/uuid"

	"rayimpact/accel"
	"rayimpact/camera"
	"rayimpact/film"
	"rayimpact/integrator"
	"rayimpact/light"
	"rayimpact/material"
	"rayimpact/rlog"
	"rayimpact/rmath"
	"rayimpact/sampling"
	"rayimpact/shape"
	"rayimpact/spectrum"
	"rayimpact/texture"
)

// graphicsState is the current-transformation-matrix/material/area-light
// state the transformation and assembly statements mutate, mirroring the
// original scene-description graphics-state stack (§6 "transformation
// management").
type graphicsState struct {
	ctm                rmath.Transform
	reverseOrientation bool
	material           material.Material
	areaLightEmit      *spectrum.RGB // non-nil between "area light" CreateLight and the next CreateModel
	areaLightTwoSided  bool
}

// object is a named, recorded group of models built between BeginObject and
// EndObject, instantiable (repeatedly, at different transforms) via
// CreateObjectInstance (§6).
type object struct {
	id     uuid.UUID
	models []accel.Model
}

// Builder implements the statement set of §6 as Go methods instead of a
// parsed grammar: UseIdentity/UseTranslation/ApplyRotation/UseWorldToCamera
// for transformation management; DefineTexture/DefineMaterial/UseMaterial/
// CreateLight/CreateModel/BeginObject/EndObject/CreateObjectInstance for
// scene assembly; SetAccelerationStructure/SetSampler/SetFilter/SetCamera/
// SetCameraSensor/SetIntegrator for render configuration. An external front
// end (not part of this core) would parse the text format and call these in
// order; internal/testscenes calls them directly to build the §8 end-to-end
// scenarios.
type Builder struct {
	stateStack []graphicsState
	state      graphicsState

	textures  map[string]texture.Texture[rmath.Float]
	rgbTex    map[string]texture.Texture[spectrum.RGB]
	materials map[string]material.Material

	models []accel.Model
	lights []light.Light

	recordingObject *object
	objects         map[string]*object

	splitMethod      accel.SplitMethod
	maxModelsPerLeaf int

	sampler  sampling.Sampler
	filter   film.Filter
	cam      camera.Camera
	sensor   *film.Sensor
	integ    integrator.Integrator
	worldToCamera rmath.Transform
}

// NewBuilder starts a Builder with the identity CTM and the library's
// conventional defaults (SAH BVH, 4 models/leaf, box filter, 16 spp
// stratified sampler, Whitted integrator at depth 5) — every default is
// overridable by the corresponding Set statement before
// BeginSceneDescription/EndSceneDescription.
func NewBuilder() *Builder {
	return &Builder{
		state:            graphicsState{ctm: rmath.IdentityTransform()},
		textures:         map[string]texture.Texture[rmath.Float]{},
		rgbTex:           map[string]texture.Texture[spectrum.RGB]{},
		materials:        map[string]material.Material{},
		objects:          map[string]*object{},
		splitMethod:      accel.SplitSAH,
		maxModelsPerLeaf: 4,
		filter:           film.NewBoxFilter(rmath.Vec2{X: 0.5, Y: 0.5}),
	}
}

// --- Transformation management (§6) ---

func (b *Builder) UseIdentity() { b.state.ctm = rmath.IdentityTransform() }

func (b *Builder) UseTranslation(delta rmath.Vec3) {
	b.state.ctm = b.state.ctm.Compose(rmath.Translate(delta))
}

func (b *Builder) ApplyRotation(angleDegrees rmath.Float, axis rmath.Vec3) {
	b.state.ctm = b.state.ctm.Compose(rmath.RotateAxis(axis, angleDegrees*rmath.Pi/180))
}

func (b *Builder) UseWorldToCamera(t rmath.Transform) {
	b.worldToCamera = t
	b.state.ctm = t
}

func (b *Builder) pushGraphicsState() { b.stateStack = append(b.stateStack, b.state) }
func (b *Builder) popGraphicsState() {
	n := len(b.stateStack)
	b.state, b.stateStack = b.stateStack[n-1], b.stateStack[:n-1]
}

// --- Scene assembly (§6) ---

// DefineTexture binds name to a scalar texture built from kind/params. Known
// kinds: "constant", "scaled". Unknown kinds log a warning and bind a
// constant-zero texture, per §7's "missing scene objects" policy.
func (b *Builder) DefineTexture(name, kind string, params *ParameterSet) {
	switch kind {
	case "constant":
		b.textures[name] = texture.NewConstant(params.FindFloat("value", 0))
	case "scaled":
		src, ok := b.textures[params.FindString("texture", "")]
		if !ok {
			rlog.Warn("DefineTexture %q: unknown source texture, using constant 0", name)
			src = texture.NewConstant[rmath.Float](0)
		}
		b.textures[name] = texture.NewScaled(src, params.FindFloat("scale", 1))
	default:
		rlog.Warn("DefineTexture %q: %v, substituting constant 0", name, &UnknownKindError{"DefineTexture", kind})
		b.textures[name] = texture.NewConstant[rmath.Float](0)
	}
}

// DefineRGBTexture is DefineTexture's spectrum-valued counterpart (the
// original's ParamSet admits both scalar- and spectrum-typed textures under
// the same statement name; kept distinct here since Go generics can't
// overload on return type).
func (b *Builder) DefineRGBTexture(name, kind string, params *ParameterSet) {
	switch kind {
	case "constant":
		b.rgbTex[name] = texture.NewConstant(params.FindRGB("value", spectrum.White))
	default:
		rlog.Warn("DefineRGBTexture %q: %v, substituting constant black", name, &UnknownKindError{"DefineRGBTexture", kind})
		b.rgbTex[name] = texture.NewConstant(spectrum.Black)
	}
}

func (b *Builder) rgbTexOrConstant(params *ParameterSet, name string, def spectrum.RGB) texture.Texture[spectrum.RGB] {
	if t, ok := b.rgbTex[params.FindString(name, "")]; ok {
		return t
	}
	return texture.NewConstant(params.FindRGB(name, def))
}

func (b *Builder) floatTexOrConstant(params *ParameterSet, name string, def rmath.Float) texture.Texture[rmath.Float] {
	if t, ok := b.textures[params.FindString(name, "")]; ok {
		return t
	}
	return texture.NewConstant(params.FindFloat(name, def))
}

// DefineMaterial builds and binds a named material (§6, §4.F). Known kinds:
// "matte", "plastic", "glass", "mixed".
func (b *Builder) DefineMaterial(name, kind string, params *ParameterSet) {
	b.materials[name] = b.buildMaterial(kind, params)
}

// UseMaterial sets the graphics state's current material, either by name
// (previously defined with DefineMaterial) or inline (kind != "").
func (b *Builder) UseMaterial(name, kind string, params *ParameterSet) {
	if kind != "" {
		b.state.material = b.buildMaterial(kind, params)
		return
	}
	m, ok := b.materials[name]
	if !ok {
		rlog.Warn("UseMaterial %q: unknown material, substituting matte grey", name)
		m = material.NewMatte(texture.NewConstant(spectrum.New(0.5, 0.5, 0.5)), nil, nil)
	}
	b.state.material = m
}

func (b *Builder) buildMaterial(kind string, params *ParameterSet) material.Material {
	bump := texture.Texture[rmath.Float](nil)
	if name := params.FindString("bumpmap", ""); name != "" {
		bump = b.textures[name]
	}
	switch kind {
	case "matte":
		return material.NewMatte(
			b.rgbTexOrConstant(params, "reflectance", spectrum.New(0.5, 0.5, 0.5)),
			b.floatTexOrConstant(params, "sigma", 0),
			bump,
		)
	case "plastic":
		return material.NewPlastic(
			b.rgbTexOrConstant(params, "diffuse", spectrum.New(0.25, 0.25, 0.25)),
			b.rgbTexOrConstant(params, "glossy", spectrum.New(0.25, 0.25, 0.25)),
			b.floatTexOrConstant(params, "roughness", 0.1),
			params.FindBool("remaproughness", true),
			bump,
		)
	case "glass":
		return material.NewGlass(
			b.rgbTexOrConstant(params, "reflectance", spectrum.White),
			b.rgbTexOrConstant(params, "transmittance", spectrum.White),
			b.floatTexOrConstant(params, "uroughness", 0),
			b.floatTexOrConstant(params, "vroughness", 0),
			b.floatTexOrConstant(params, "eta", 1.5),
			params.FindBool("remaproughness", true),
			bump,
		)
	case "mixed":
		a, aok := b.materials[params.FindString("namedmaterial1", "")]
		c, cok := b.materials[params.FindString("namedmaterial2", "")]
		if !aok || !cok {
			rlog.Warn("DefineMaterial mixed: unknown sub-material, substituting matte grey for missing side")
		}
		if !aok {
			a = material.NewMatte(texture.NewConstant(spectrum.New(0.5, 0.5, 0.5)), nil, nil)
		}
		if !cok {
			c = material.NewMatte(texture.NewConstant(spectrum.New(0.5, 0.5, 0.5)), nil, nil)
		}
		return material.NewMixed(a, c, b.floatTexOrConstant(params, "amount", 0.5))
	default:
		rlog.Warn("DefineMaterial: %v, substituting matte grey", &UnknownKindError{"DefineMaterial", kind})
		return material.NewMatte(texture.NewConstant(spectrum.New(0.5, 0.5, 0.5)), nil, nil)
	}
}

// CreateLight adds a light built from kind/params at the current CTM. Known
// kinds: "point", "spot", "area" (the latter sets the graphics-state area-
// light emission consumed by the next CreateModel rather than adding a
// standalone light).
func (b *Builder) CreateLight(kind string, params *ParameterSet) {
	switch kind {
	case "point":
		l := light.NewPointLight(b.state.ctm.Point(params.FindPoint3("from", rmath.Pt3{})), params.FindRGB("intensity", spectrum.White))
		b.lights = append(b.lights, l)
	case "spot":
		l := light.NewSpotLight(
			b.state.ctm.Point(params.FindPoint3("from", rmath.Pt3{})),
			b.state.ctm.Vector(params.FindVector3("direction", rmath.Vec3{Z: -1})),
			params.FindRGB("intensity", spectrum.White),
			params.FindFloat("coneangle", 30),
			params.FindFloat("conedeltaangle", 5),
		)
		b.lights = append(b.lights, l)
	case "area":
		emit := params.FindRGB("L", spectrum.White)
		b.state.areaLightEmit = &emit
		b.state.areaLightTwoSided = params.FindBool("twosided", false)
	default:
		rlog.Warn("CreateLight: %v, statement ignored", &UnknownKindError{"CreateLight", kind})
	}
}

// CreateModel builds a shape from kind/params at the current CTM, binding
// the current material and (if CreateLight "area" primed it) an area light,
// and adds it either to the scene or to the object currently being recorded
// between BeginObject/EndObject.
func (b *Builder) CreateModel(kind string, params *ParameterSet) {
	s := b.buildShape(kind, params)
	if s == nil {
		return
	}

	bindings := &accel.SurfaceBindings{Material: b.state.material}
	if b.state.areaLightEmit != nil {
		if sampleable, ok := s.(light.AreaSampleableShape); ok {
			al := light.NewDiffuseAreaLight(sampleable, *b.state.areaLightEmit, b.state.areaLightTwoSided)
			bindings.AreaLight = al
			b.lights = append(b.lights, al)
		} else {
			rlog.Warn("CreateModel %q: area light bound to a shape with no surface-sampling support, emission dropped", kind)
		}
		b.state.areaLightEmit = nil
	}

	m := accel.NewGeometricModel(s, bindings)
	if b.recordingObject != nil {
		b.recordingObject.models = append(b.recordingObject.models, m)
	} else {
		b.models = append(b.models, m)
	}
}

func (b *Builder) buildShape(kind string, params *ParameterSet) shape.Shape {
	switch kind {
	case "sphere":
		r := params.FindFloat("radius", 1)
		return shape.NewSphere(b.state.ctm, b.state.reverseOrientation, r,
			params.FindFloat("yMin", -r), params.FindFloat("yMax", r), params.FindFloat("phiMax", 360))
	case "disk":
		return shape.NewDisk(b.state.ctm, b.state.reverseOrientation,
			params.FindFloat("height", 0), params.FindFloat("radius", 1),
			params.FindFloat("innerRadius", 0), params.FindFloat("phiMax", 360))
	case "cylinder":
		r := params.FindFloat("radius", 1)
		return shape.NewCylinder(b.state.ctm, b.state.reverseOrientation, r,
			params.FindFloat("yMin", -1), params.FindFloat("yMax", 1), params.FindFloat("phiMax", 360))
	default:
		rlog.Warn("CreateModel: %v, statement ignored", &UnknownKindError{"CreateModel", kind})
		return nil
	}
}

// BeginObject starts recording models into a named, reusable object
// definition; CreateModel calls until the matching EndObject are diverted
// into it instead of the top-level scene (§6 "BeginObject/EndObject").
func (b *Builder) BeginObject(name string) {
	b.recordingObject = &object{id: uuid.New()}
	b.objects[name] = b.recordingObject
}

func (b *Builder) EndObject() { b.recordingObject = nil }

// CreateObjectInstance adds every model recorded under name to the scene
// (§6 "CreateObjectInstance"). The models are added as they were recorded:
// the current CTM is not applied, so every instance sits where the object's
// models were built, and an instance carries no identity of its own.
func (b *Builder) CreateObjectInstance(name string) {
	obj, ok := b.objects[name]
	if !ok {
		rlog.Warn("CreateObjectInstance %q: unknown object, statement ignored", name)
		return
	}
	b.models = append(b.models, obj.models...)
}

// --- Render configuration (§6) ---

func (b *Builder) SetAccelerationStructure(kind string, params *ParameterSet) {
	switch kind {
	case "sah":
		b.splitMethod = accel.SplitSAH
	case "middle":
		b.splitMethod = accel.SplitMiddle
	case "equalcounts":
		b.splitMethod = accel.SplitEqualCounts
	case "hlbvh":
		b.splitMethod = accel.SplitHLBVH
	default:
		rlog.Warn("SetAccelerationStructure: %v, keeping the current split method", &UnknownKindError{"SetAccelerationStructure", kind})
	}
	b.maxModelsPerLeaf = params.FindInt("maxmodelsperleaf", b.maxModelsPerLeaf)
}

func (b *Builder) SetSampler(kind string, params *ParameterSet) {
	spp := params.FindInt("pixelsamples", 16)
	switch kind {
	case "stratified":
		nx := params.FindInt("xsamples", 4)
		ny := params.FindInt("ysamples", 4)
		b.sampler = sampling.NewStratifiedSampler(nx, ny, params.FindInt("dimensions", 4))
	case "uniform":
		nx := params.FindInt("xsamples", 4)
		ny := params.FindInt("ysamples", 4)
		b.sampler = sampling.NewUniformSampler(nx, ny, params.FindInt("dimensions", 4))
	case "random":
		b.sampler = sampling.NewRandomSampler(spp, params.FindInt("dimensions", 4))
	case "halton":
		b.sampler = sampling.NewHaltonSampler(spp)
	default:
		rlog.Warn("SetSampler: %v, substituting a 4x4 stratified sampler", &UnknownKindError{"SetSampler", kind})
		b.sampler = sampling.NewStratifiedSampler(4, 4, 4)
	}
}

func (b *Builder) SetFilter(kind string, params *ParameterSet) {
	radius := rmath.Vec2{X: params.FindFloat("xradius", 2), Y: params.FindFloat("yradius", 2)}
	switch kind {
	case "box":
		b.filter = film.NewBoxFilter(radius)
	case "triangle":
		b.filter = film.NewTriangleFilter(radius)
	case "gaussian":
		b.filter = film.NewGaussianFilter(radius, params.FindFloat("alpha", 2))
	default:
		rlog.Warn("SetFilter: %v, substituting a box filter", &UnknownKindError{"SetFilter", kind})
		b.filter = film.NewBoxFilter(rmath.Vec2{X: 0.5, Y: 0.5})
	}
}

// SetCameraSensor builds the Sensor the camera will render into; must be
// called before SetCamera (which needs the sensor's resolution to derive
// its default screen window).
func (b *Builder) SetCameraSensor(params *ParameterSet, outputOverride string) {
	resolution := film.PixelPoint{X: params.FindInt("xresolution", 256), Y: params.FindInt("yresolution", 256)}
	crop := rmath.BoundingRectangle{Min: rmath.Pt2{X: 0, Y: 0}, Max: rmath.Pt2{X: 1, Y: 1}}
	output := params.FindString("filename", "out.pfm")
	if outputOverride != "" {
		output = outputOverride
	}
	b.sensor = film.NewSensor(resolution, crop, b.filter, params.FindFloat("diagonal", 35), output, params.FindFloat("scale", 1))
}

func (b *Builder) SetCamera(kind string, params *ParameterSet) {
	camToWorld := rmath.NewAnimatedTransform(b.worldToCamera.Inverted(), 0, b.worldToCamera.Inverted(), 0)
	shutterOpen, shutterClose := params.FindFloat("shutteropen", 0), params.FindFloat("shutterclose", 0)
	lensRadius := params.FindFloat("lensradius", 0)
	focalDistance := params.FindFloat("focaldistance", 1e6)

	switch kind {
	case "orthographic":
		b.cam = camera.NewOrthographicCamera(camToWorld, shutterOpen, shutterClose, b.sensor, nil, lensRadius, focalDistance, 1e-2, 1000)
	case "perspective":
		fov := params.FindFloat("fov", 90) * rmath.Pi / 180
		b.cam = camera.NewPerspectiveCamera(camToWorld, shutterOpen, shutterClose, b.sensor, nil, fov, lensRadius, focalDistance, 1e-2, 1000)
	default:
		rlog.Warn("SetCamera: %v, substituting a 90 degree perspective camera", &UnknownKindError{"SetCamera", kind})
		b.cam = camera.NewPerspectiveCamera(camToWorld, shutterOpen, shutterClose, b.sensor, nil, rmath.PiOverTwo, 0, 1e6, 1e-2, 1000)
	}
}

func (b *Builder) SetIntegrator(kind string, params *ParameterSet) {
	switch kind {
	case "whitted":
		b.integ = integrator.NewWhittedIntegrator(params.FindInt("maxdepth", 5))
	default:
		rlog.Warn("SetIntegrator: %v, substituting the Whitted integrator at depth 5", &UnknownKindError{"SetIntegrator", kind})
		b.integ = integrator.NewWhittedIntegrator(5)
	}
}

// BeginSceneDescription resets the assembly lists; paired with
// EndSceneDescription, which finalizes the scene (§6).
func (b *Builder) BeginSceneDescription() {
	b.models = nil
	b.lights = nil
}

// Built is everything EndSceneDescription assembles: the BVH-backed scene,
// ready to drive integrator.Render.
type Built struct {
	Scene    *integrator.Scene
	Camera   camera.Camera
	Sampler  sampling.Sampler
	Integrator integrator.Integrator
}

// EndSceneDescription builds the BVH over every recorded model and returns
// the assembled renderable scene (§6 "EndSceneDescription").
func (b *Builder) EndSceneDescription() Built {
	if b.sampler == nil {
		b.sampler = sampling.NewStratifiedSampler(4, 4, 4)
	}
	if b.integ == nil {
		b.integ = integrator.NewWhittedIntegrator(5)
	}
	bvh := accel.Build(b.models, b.maxModelsPerLeaf, b.splitMethod)
	return Built{
		Scene:      &integrator.Scene{Accel: bvh, Lights: b.lights},
		Camera:     b.cam,
		Sampler:    b.sampler,
		Integrator: b.integ,
	}
}
