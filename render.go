package minirt

import (
	"fmt"
	"time"

	"github.com/gogpu/minirt/internal/parallel"
)

// RenderFunc computes the color of pixel (x, y) of scene using samples
// samples. It must be deterministic and free of side effects; it is called
// concurrently from every worker, each with its own copy of scene.
type RenderFunc[S any] func(scene S, x, y, samples int) Color

// Cloner is implemented by scene types that hold references (slices, maps,
// pointers). Render calls Clone once per worker so that no two workers share
// any part of the scene.
type Cloner[S any] interface {
	Clone() S
}

// RunStats describes a completed render.
type RunStats struct {
	Strategy Strategy
	Edges    EdgePolicy
	Workers  int

	// Items is the number of tiles (dynamic) or row bands (static).
	Items int

	// Stops is the number of termination markers; Pushed and Popped count
	// queue traffic. All three are zero for the static strategy.
	Stops  int
	Pushed int
	Popped int

	// WorkerItems[i] is the number of Work Items completed by worker i.
	WorkerItems []int

	// Pixels is the number of pixels rendered.
	Pixels int

	// Elapsed is the wall time from the first spawn to the join.
	Elapsed time.Duration
}

// Result is the outcome of a successful render.
type Result struct {
	Image *Image
	Stats RunStats
}

// Render computes every pixel addressed by opts using fn and returns the
// populated image.
//
// The image is allocated before any worker starts. Each worker receives a
// private snapshot of scene. Render returns only after every worker has
// exited, so the image is complete and safe to read. If any worker fails the
// whole render fails and no image is returned.
func Render[S any](opts Options, scene S, fn RenderFunc[S]) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, fmt.Errorf("minirt: nil render function")
	}

	log := Logger().With("strategy", opts.Strategy.String(), "workers", opts.Workers)
	if n := opts.Uncovered(); n > 0 {
		log.Warn("resolution does not divide evenly; remainder pixels stay black",
			"width", opts.Width, "height", opts.Height, "tile", opts.TileSize,
			"edges", opts.Edges.String(), "uncovered", n)
	}

	img := NewImage(opts.Width, opts.Height)
	samples := opts.Samples

	var snapshotTime time.Duration
	spawn := func(id int) parallel.PixelFunc {
		start := time.Now()
		snap := snapshot(scene)
		snapshotTime += time.Since(start)
		return func(x, y int) {
			img.Set(x, y, fn(snap, x, y, samples))
		}
	}

	d := parallel.NewDispatcher(opts.Workers, log)
	log.Info("render started", "width", opts.Width, "height", opts.Height, "samples", samples)

	start := time.Now()
	var (
		st  parallel.Stats
		err error
	)
	switch opts.Strategy {
	case StrategyStatic:
		ranges := parallel.PartitionRows(opts.Height, opts.Workers, opts.Edges)
		st, err = d.RunRows(ranges, opts.Width, spawn)
	default:
		grid := parallel.NewTileGrid(opts.Width, opts.Height, opts.TileSize, opts.Edges)
		st, err = d.RunTiles(grid, spawn)
	}
	elapsed := time.Since(start)

	if err != nil {
		log.Error("render failed", "err", err)
		return nil, fmt.Errorf("minirt: render: %w", err)
	}

	log.Debug("scene snapshots", "total", snapshotTime)
	log.Info("render finished", "elapsed", elapsed, "pixels", st.Pixels)

	return &Result{
		Image: img,
		Stats: RunStats{
			Strategy:    opts.Strategy,
			Edges:       opts.Edges,
			Workers:     st.Workers,
			Items:       st.Items,
			Stops:       st.Stops,
			Pushed:      st.Pushed,
			Popped:      st.Popped,
			WorkerItems: st.WorkerItems,
			Pixels:      st.Pixels,
			Elapsed:     elapsed,
		},
	}, nil
}

// snapshot returns a worker-private copy of scene.
func snapshot[S any](scene S) S {
	if c, ok := any(scene).(Cloner[S]); ok {
		return c.Clone()
	}
	return scene
}
