// Command rayimpact is the CLI surface of §6: one positional scene-file
// argument plus --threads/--verbosity/--output, wiring rconfig.Parse through
// to a rendered PFM image.
//
// The statement-oriented scene-description grammar (§6 "Scene description
// (consumed)") is an explicit non-goal of this core (§1) — it is the job of
// an external front end to tokenize a scene file and drive scenefile.Builder
// with the resulting statements. This binary stands in for that front end
// with a single built-in scene (the statement sequence a real parser would
// produce for it), so the CLI path from flags to a written image is
// exercised end to end without inventing a grammar.
package main

import (
	"fmt"
	"os"

	"rayimpact/integrator"
	"rayimpact/rconfig"
	"rayimpact/rlog"
	"rayimpact/rmath"
	"rayimpact/rparallel"
	"rayimpact/scenefile"
	"rayimpact/spectrum"
)

func main() {
	cfg, err := rconfig.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	rlog.SetVerbosity(cfg.Verbosity)

	if _, err := os.Stat(cfg.SceneFile); err != nil {
		rlog.Severe("scene file %q: %v", cfg.SceneFile, err)
		os.Exit(1)
	}

	built := buildDefaultScene(cfg.Output)

	pool := rparallel.NewPool(cfg.Threads)
	defer pool.Close()

	rlog.Info("rendering %q with %d worker threads", cfg.SceneFile, pool.NumThreads())
	if err := integrator.Render(pool, built.Integrator, built.Camera, built.Sampler, built.Scene, 0); err != nil {
		rlog.Severe("render %q: %v", cfg.SceneFile, err)
		os.Exit(1)
	}
}

// buildDefaultScene drives scenefile.Builder through the statement sequence
// a parser would emit for a single sphere lit by one point light — the
// built-in stand-in scene described above.
func buildDefaultScene(outputOverride string) scenefile.Built {
	b := scenefile.NewBuilder()

	filterParams := scenefile.NewParameterSet()
	b.SetFilter("box", filterParams)

	sensorParams := scenefile.NewParameterSet()
	sensorParams.SetInt("xresolution", 256)
	sensorParams.SetInt("yresolution", 256)
	b.SetCameraSensor(sensorParams, outputOverride)

	cameraToWorld := rmath.LookAt(rmath.Vec3{Z: 5}, rmath.Vec3{}, rmath.Vec3{Y: 1})
	b.UseWorldToCamera(cameraToWorld.Inverted())
	cameraParams := scenefile.NewParameterSet()
	cameraParams.SetFloat("fov", 45)
	b.SetCamera("perspective", cameraParams)

	samplerParams := scenefile.NewParameterSet()
	samplerParams.SetInt("xsamples", 4)
	samplerParams.SetInt("ysamples", 4)
	b.SetSampler("stratified", samplerParams)

	integratorParams := scenefile.NewParameterSet()
	integratorParams.SetInt("maxdepth", 5)
	b.SetIntegrator("whitted", integratorParams)

	b.BeginSceneDescription()

	matteParams := scenefile.NewParameterSet()
	matteParams.SetRGB("reflectance", spectrum.New(0.7, 0.7, 0.7))
	b.UseMaterial("", "matte", matteParams)

	sphereParams := scenefile.NewParameterSet()
	b.CreateModel("sphere", sphereParams)

	lightParams := scenefile.NewParameterSet()
	lightParams.SetPoint3("from", rmath.Pt3{X: 3, Y: 3, Z: 3})
	lightParams.SetRGB("intensity", spectrum.New(25, 25, 25))
	b.CreateLight("point", lightParams)

	return b.EndSceneDescription()
}
