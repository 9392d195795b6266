package integrator

import (
	"rayimpact/accel"
	"rayimpact/bsdf"
	"rayimpact/rlog"
	"rayimpact/rmath"
	"rayimpact/rparallel"
	"rayimpact/sampling"
	"rayimpact/shape"
	"rayimpact/spectrum"
)

// Integrator is the open, plugin-like contract the render loop drives once
// per camera sample (§9 "trait-object style interfaces where the set is
// open and plugin-like: materials, integrators").
type Integrator interface {
	IncidentRadiance(ray rmath.RayWithOffsets, scene *Scene, sampler sampling.Sampler, arena *rparallel.Arena, depth int) spectrum.RGB
}

// WhittedIntegrator implements the recursive Whitted-style estimator of
// §4.J: direct lighting against every light in the scene, plus recursive
// specular reflection/transmission up to MaxDepth.
type WhittedIntegrator struct {
	MaxDepth int
}

func NewWhittedIntegrator(maxDepth int) *WhittedIntegrator {
	return &WhittedIntegrator{MaxDepth: maxDepth}
}

// IncidentRadiance implements §4.J's incidentRadiance(ray, scene, sampler,
// alloc, depth) in full. arena is accepted per the spec's signature (the
// region allocator BSDFs would be built in); this core's BSDF.New performs a
// small fixed-size heap allocation rather than routing through arena, since
// Go's GC already gives the per-sample lifetime discipline the arena exists
// to approximate in the original (§4.B).
func (w *WhittedIntegrator) IncidentRadiance(ray rmath.RayWithOffsets, scene *Scene, sampler sampling.Sampler, arena *rparallel.Arena, depth int) spectrum.RGB {
	_, hit, found := scene.Intersect(ray.Ray)
	if !found {
		sum := spectrum.Black
		for _, l := range scene.Lights {
			if il, ok := l.(InfiniteLight); ok {
				sum = sum.Add(il.EmittedRadianceFromDirection(ray.Ray))
			}
		}
		return sum
	}

	event := hit.Event
	if hit.Bindings.Material == nil {
		return emittedRadiance(hit, event.Wo)
	}

	b := hit.Bindings.Material.ComputeScatteringFunctions(&event, false)

	radiance := emittedRadiance(hit, event.Wo)
	radiance = radiance.Add(directLighting(scene, &event, b, sampler))

	if depth+1 < w.MaxDepth {
		radiance = radiance.Add(w.specularReflect(ray, &event, b, scene, sampler, arena, depth))
		radiance = radiance.Add(w.specularTransmit(ray, &event, b, scene, sampler, arena, depth))
	}

	return clampNaN(radiance)
}

// emittedRadiance returns the hit surface's own emission toward w, when the
// model doubles as an area light (§4.J step 3).
func emittedRadiance(hit accel.ModelHit, w rmath.Vec3) spectrum.RGB {
	if hit.Bindings.AreaLight == nil {
		return spectrum.Black
	}
	return hit.Bindings.AreaLight.EmittedRadiance(hit.Event.Point, hit.Event.Normal, w)
}

// directLighting implements §4.J step 4: for each light, sample one incident
// direction, skip zero-contribution samples, and add the unoccluded
// estimator f*Li*|cosTheta|/pdf.
func directLighting(scene *Scene, event *shape.SurfaceScatteringEvent, b *bsdf.BSDF, sampler sampling.Sampler) spectrum.RGB {
	sum := spectrum.Black
	wo := event.Wo
	shadingNormal := rmath.Vec3{X: event.Shading.Normal.X, Y: event.Shading.Normal.Y, Z: event.Shading.Normal.Z}

	for _, l := range scene.Lights {
		wi, li, pdf, vis := l.SampleIncidentRadiance(event.Point, event.Time, sampler.Next2D())
		if pdf == 0 || li.IsBlack() {
			continue
		}
		f := b.Evaluate(wo, wi, bsdf.All)
		if f.IsBlack() {
			continue
		}
		if !vis.BeamIsUnobstructed(scene) {
			continue
		}
		cosTheta := rmath.Abs(wi.Dot(shadingNormal))
		sum = sum.Add(f.Mul(li).Scale(cosTheta / pdf))
	}
	return sum
}

// specularReflect implements §4.J step 5's reflected term: sample the BSDF
// restricted to the specular-reflection lobe and recurse.
func (w *WhittedIntegrator) specularReflect(ray rmath.RayWithOffsets, event *shape.SurfaceScatteringEvent, b *bsdf.BSDF, scene *Scene, sampler sampling.Sampler, arena *rparallel.Arena, depth int) spectrum.RGB {
	return w.traceSpecular(ray, event, b, scene, sampler, arena, depth, bsdf.Reflection|bsdf.Specular)
}

// specularTransmit is specularReflect's transmissive counterpart.
func (w *WhittedIntegrator) specularTransmit(ray rmath.RayWithOffsets, event *shape.SurfaceScatteringEvent, b *bsdf.BSDF, scene *Scene, sampler sampling.Sampler, arena *rparallel.Arena, depth int) spectrum.RGB {
	return w.traceSpecular(ray, event, b, scene, sampler, arena, depth, bsdf.Transmission|bsdf.Specular)
}

func (w *WhittedIntegrator) traceSpecular(ray rmath.RayWithOffsets, event *shape.SurfaceScatteringEvent, b *bsdf.BSDF, scene *Scene, sampler sampling.Sampler, arena *rparallel.Arena, depth int, typ bsdf.Type) spectrum.RGB {
	wo := event.Wo
	wi, f, pdf, _ := b.Sample(wo, sampler.Next2D(), typ)
	if pdf == 0 || f.IsBlack() {
		return spectrum.Black
	}
	shadingNormal := rmath.Vec3{X: event.Shading.Normal.X, Y: event.Shading.Normal.Y, Z: event.Shading.Normal.Z}
	cosTheta := rmath.Abs(wi.Dot(shadingNormal))

	rd := rmath.NewRay(offsetOrigin(event, wi), wi)
	rd.Time = event.Time
	recursiveRay := rmath.RayWithOffsets{Ray: rd}

	li := w.IncidentRadiance(recursiveRay, scene, sampler, arena, depth+1)
	return f.Mul(li).Scale(cosTheta / pdf)
}

// offsetOrigin nudges the recursive ray's origin along the geometric normal
// by the hit point's conservative error bound, the standard self-
// intersection-avoidance technique the conservative-float error model
// exists to support (§4.A, §4.D).
func offsetOrigin(event *shape.SurfaceScatteringEvent, direction rmath.Vec3) rmath.Pt3 {
	n := rmath.Vec3{X: event.Normal.X, Y: event.Normal.Y, Z: event.Normal.Z}
	if n.Dot(direction) < 0 {
		n = n.Negate()
	}
	eps := rmath.Abs(event.PointError.X) + rmath.Abs(event.PointError.Y) + rmath.Abs(event.PointError.Z)
	return event.Point.Add(n.Mul(eps))
}

// clampNaN implements §4.J's fatal-condition handling: a NaN anywhere in the
// accumulated radiance is clamped to zero with a diagnostic, rather than
// allowed to poison the image (§7 "Spurious NaNs in spectra are clamped to
// zero... with a one-per-pixel diagnostic").
func clampNaN(c spectrum.RGB) spectrum.RGB {
	if c.HasNaN() {
		rlog.Warn("NaN radiance contribution clamped to zero")
		return spectrum.Black
	}
	return c
}
