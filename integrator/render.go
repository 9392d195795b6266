package integrator

import (
	"rayimpact/camera"
	"rayimpact/film"
	"rayimpact/rlog"
	"rayimpact/rmath"
	"rayimpact/rparallel"
	"rayimpact/sampling"
	"rayimpact/spectrum"
)

// tileSize is the fixed 16x16 pixel tile the outer loop partitions the
// sensor's sampling bounds into (§4.J "Partition into 16x16 pixel tiles").
const tileSize = 16

// Render drives the full outer sampling loop of §4.J: it determines the
// sensor's sampling bounds, partitions them into 16x16 tiles, runs a 2D
// parallel-for over the tile grid via pool (each worker owning its own
// arena and a sampler clone seeded deterministically from the tile
// coordinates), and finally writes the image. splatScale is forwarded to
// film.Sensor.WriteImage unchanged (0 if the scene uses no splatting
// technique).
func Render(pool *rparallel.Pool, integ Integrator, cam camera.Camera, baseSampler sampling.Sampler, scene *Scene, splatScale rmath.Float) error {
	sensor := cam.Sensor()
	samplingBounds := sensor.SamplingBounds()

	nTilesX := (samplingBounds.Width() + tileSize - 1) / tileSize
	nTilesY := (samplingBounds.Height() + tileSize - 1) / tileSize

	rlog.Info("rendering %dx%d pixels across %dx%d tiles", samplingBounds.Width(), samplingBounds.Height(), nTilesX, nTilesY)

	pool.ParallelFor2D(int64(nTilesX), int64(nTilesY), func(tileX, tileY int64) {
		renderTile(int(tileX), int(tileY), nTilesX, integ, cam, baseSampler, scene, sensor, samplingBounds)
	})

	rlog.Info("render complete, writing image")
	return sensor.WriteImage(splatScale)
}

// renderTile implements one 2D parallel-for body (§4.J step 3): a
// thread-local arena, a deterministically-seeded sampler clone, a
// SensorRegion sized to this tile, and a per-pixel sampling loop merged back
// into the sensor on completion.
func renderTile(tileX, tileY, nTilesX int, integ Integrator, cam camera.Camera, baseSampler sampling.Sampler, scene *Scene, sensor *film.Sensor, samplingBounds film.PixelBounds) {
	arena := rparallel.NewArena()
	seed := int64(tileY)*int64(nTilesX) + int64(tileX)
	sampler := baseSampler.Clone(seed)

	x0 := samplingBounds.Min.X + tileX*tileSize
	y0 := samplingBounds.Min.Y + tileY*tileSize
	x1 := minInt(x0+tileSize, samplingBounds.Max.X)
	y1 := minInt(y0+tileSize, samplingBounds.Max.Y)
	tileBounds := film.PixelBounds{Min: film.PixelPoint{X: x0, Y: y0}, Max: film.PixelPoint{X: x1, Y: y1}}
	if tileBounds.Degenerate() {
		return
	}

	region := sensor.SensorRegion(tileBounds)
	spp := sampler.SamplesPerPixel()
	invSqrtSPP := 1 / rmath.Sqrt(rmath.Float(spp))

	for y := tileBounds.Min.Y; y < tileBounds.Max.Y; y++ {
		for x := tileBounds.Min.X; x < tileBounds.Max.X; x++ {
			sampler.SetPixel(sampling.Pixel{X: x, Y: y})
			for {
				cs := sampler.GenerateCameraSample(sampling.Pixel{X: x, Y: y})
				ray, rayWeight := cam.GenerateRayWithOffsets(cs)
				ray.ScaleDifferentials(invSqrtSPP)

				radiance := spectrum.Black
				if rayWeight > 0 {
					radiance = integ.IncidentRadiance(ray, scene, sampler, arena, 0)
				}
				region.AddSample(cs.SensorPoint, radiance, rayWeight)
				arena.Reset()

				if !sampler.BeginNextSample() {
					break
				}
			}
		}
	}

	sensor.MergeSensorRegion(region)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
