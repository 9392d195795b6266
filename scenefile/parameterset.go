// Package scenefile is the core's external-collaborator boundary for scene
// description (§6 "Scene description (consumed)"): a typed parameter bag
// plus the factory statements the spec names, with no grammar or parser —
// parsing the "FunctionName [arg...] \"type name\" value" text format is
// explicitly out of scope (§1, §4 non-goals) and left to whatever front end
// drives these statements. Grounded on the teacher's scene/scene.go (a
// struct-literal scene assembly API: AddObject/AddLight/SetCamera), this
// generalizes that flat assembly surface into the statement set §6 lists
// (UseIdentity, DefineMaterial, CreateLight, CreateModel,
// BeginObject/EndObject/CreateObjectInstance, SetSampler, ...).
package scenefile

import (
	"fmt"

	"rayimpact/rmath"
	"rayimpact/spectrum"
)

// ParameterSet is the typed parameter bag every statement carries beyond its
// positional arguments (§6: "named parameters of the form \"type name\"
// value_or_array"). Every FindXxx lookup returns the first element or a
// default, matching how materials/lights/textures in the original consume a
// ParamSet; FindFloatArray is the only whole-array accessor.
type ParameterSet struct {
	bools    map[string][]bool
	ints     map[string][]int
	floats   map[string][]rmath.Float
	strings  map[string][]string
	points2  map[string][]rmath.Pt2
	vectors2 map[string][]rmath.Vec2
	points3  map[string][]rmath.Pt3
	vectors3 map[string][]rmath.Vec3
	normals3 map[string][]rmath.Norm3
	rgbs     map[string][]spectrum.RGB
}

// NewParameterSet returns an empty parameter set ready for SetXxx calls.
func NewParameterSet() *ParameterSet {
	return &ParameterSet{
		bools:    map[string][]bool{},
		ints:     map[string][]int{},
		floats:   map[string][]rmath.Float{},
		strings:  map[string][]string{},
		points2:  map[string][]rmath.Pt2{},
		vectors2: map[string][]rmath.Vec2{},
		points3:  map[string][]rmath.Pt3{},
		vectors3: map[string][]rmath.Vec3{},
		normals3: map[string][]rmath.Norm3{},
		rgbs:     map[string][]spectrum.RGB{},
	}
}

func (p *ParameterSet) SetBool(name string, v ...bool)           { p.bools[name] = v }
func (p *ParameterSet) SetInt(name string, v ...int)             { p.ints[name] = v }
func (p *ParameterSet) SetFloat(name string, v ...rmath.Float)   { p.floats[name] = v }
func (p *ParameterSet) SetString(name string, v ...string)       { p.strings[name] = v }
func (p *ParameterSet) SetPoint2(name string, v ...rmath.Pt2)    { p.points2[name] = v }
func (p *ParameterSet) SetVector2(name string, v ...rmath.Vec2)  { p.vectors2[name] = v }
func (p *ParameterSet) SetPoint3(name string, v ...rmath.Pt3)    { p.points3[name] = v }
func (p *ParameterSet) SetVector3(name string, v ...rmath.Vec3)  { p.vectors3[name] = v }
func (p *ParameterSet) SetNormal3(name string, v ...rmath.Norm3) { p.normals3[name] = v }
func (p *ParameterSet) SetRGB(name string, v ...spectrum.RGB)    { p.rgbs[name] = v }

func (p *ParameterSet) FindBool(name string, def bool) bool {
	if v, ok := p.bools[name]; ok && len(v) > 0 {
		return v[0]
	}
	return def
}

func (p *ParameterSet) FindInt(name string, def int) int {
	if v, ok := p.ints[name]; ok && len(v) > 0 {
		return v[0]
	}
	return def
}

func (p *ParameterSet) FindFloat(name string, def rmath.Float) rmath.Float {
	if v, ok := p.floats[name]; ok && len(v) > 0 {
		return v[0]
	}
	return def
}

func (p *ParameterSet) FindFloatArray(name string) []rmath.Float { return p.floats[name] }

func (p *ParameterSet) FindString(name, def string) string {
	if v, ok := p.strings[name]; ok && len(v) > 0 {
		return v[0]
	}
	return def
}

func (p *ParameterSet) FindPoint3(name string, def rmath.Pt3) rmath.Pt3 {
	if v, ok := p.points3[name]; ok && len(v) > 0 {
		return v[0]
	}
	return def
}

func (p *ParameterSet) FindVector3(name string, def rmath.Vec3) rmath.Vec3 {
	if v, ok := p.vectors3[name]; ok && len(v) > 0 {
		return v[0]
	}
	return def
}

func (p *ParameterSet) FindNormal3(name string, def rmath.Norm3) rmath.Norm3 {
	if v, ok := p.normals3[name]; ok && len(v) > 0 {
		return v[0]
	}
	return def
}

func (p *ParameterSet) FindRGB(name string, def spectrum.RGB) spectrum.RGB {
	if v, ok := p.rgbs[name]; ok && len(v) > 0 {
		return v[0]
	}
	return def
}

// UnknownKindError is returned by a factory when a statement names a kind
// this core does not implement (§7 "Missing scene objects at lookup: log a
// warning, substitute a default, continue" — the caller is expected to log
// via rlog.Warn and substitute before continuing, this error only reports
// the lookup failure).
type UnknownKindError struct {
	Statement, Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("scenefile: %s: unknown kind %q", e.Statement, e.Kind)
}
