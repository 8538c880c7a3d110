// Package minirt distributes per-pixel rendering across a fixed pool of
// worker goroutines.
//
// # Overview
//
// minirt does not know how to render a pixel. The caller supplies a pure
// RenderFunc and an immutable scene value; minirt decides which worker
// computes which pixel and collects the results in a preallocated Image.
//
// # Quick Start
//
//	import "github.com/gogpu/minirt"
//
//	opts := minirt.DefaultOptions()
//	opts.Workers = 8
//
//	res, err := minirt.Render(opts, myScene, func(s Scene, x, y, samples int) minirt.Color {
//	    return s.Shade(x, y, samples)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res.Image.Save("raytracing.jpg")
//
// # Strategies
//
// StrategyDynamic splits the image into square tiles and feeds them to the
// workers through a shared blocking queue. Each worker stops after it pops
// its own stop job. Tiles are consumed in FIFO order, so slow tiles do not
// hold up the other workers.
//
// StrategyStatic gives each worker one contiguous band of rows when it is
// spawned. There is no coordination at all until the final join.
//
// # Edges
//
// With EdgeCrop (the default) the grid uses plain integer division: pixels
// past the last full tile, and rows past the last full band, are not
// rendered and stay black. EdgeCover renders partial edge tiles and spreads
// remainder rows, so the whole image is produced.
//
// # Snapshots
//
// Every worker owns a private copy of the scene, made when the worker is
// spawned. If the scene type implements Cloner the copy is deep; otherwise it
// is a plain value copy.
package minirt
