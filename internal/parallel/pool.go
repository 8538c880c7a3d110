package parallel

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrWorkerPanic is wrapped by the error returned when a worker or its
// spawner panics.
var ErrWorkerPanic = errors.New("parallel: worker panicked")

// PixelFunc renders the pixel at (x, y) and stores the result.
type PixelFunc func(x, y int)

// Spawner builds the PixelFunc owned by worker id.
//
// It is called once per worker on the dispatching goroutine, before any work
// is handed out, so per-worker state such as a scene snapshot is created at
// spawn time and released when the worker exits.
type Spawner func(id int) PixelFunc

// Stats describes one completed run.
type Stats struct {
	// Workers is the number of worker goroutines.
	Workers int

	// Items is the number of Work Items issued: tiles for the dynamic
	// strategy, row ranges for the static strategy.
	Items int

	// Stops is the number of termination markers enqueued (dynamic only).
	Stops int

	// Pushed and Popped count JobQueue traffic (dynamic only).
	Pushed int
	Popped int

	// WorkerItems[i] is the number of Work Items worker i completed.
	WorkerItems []int

	// Pixels is the number of pixels addressed by the issued items.
	Pixels int
}

// Dispatcher runs renders on a fixed pool of worker goroutines.
//
// Every Run call spawns its own workers and joins them before returning, so
// all writes made through the PixelFuncs are visible to the caller once Run
// returns.
type Dispatcher struct {
	workers int
	log     *slog.Logger
}

// NewDispatcher creates a dispatcher with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used. A nil logger discards
// all output.
func NewDispatcher(workers int, log *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{workers: workers, log: log}
}

// Workers returns the number of workers per run.
func (d *Dispatcher) Workers() int {
	return d.workers
}

// RunTiles renders every tile of grid using the dynamic strategy.
//
// All workers are spawned and block on the shared JobQueue. The tiles are
// then pushed in grid order, followed by one stop job per worker. A worker
// exits on the first stop job it pops, so each worker consumes exactly one.
func (d *Dispatcher) RunTiles(grid *TileGrid, spawn Spawner) (Stats, error) {
	pixels, err := d.spawnAll(spawn)
	if err != nil {
		return Stats{}, err
	}

	tiles := grid.Tiles()
	queue := NewJobQueue(len(tiles) + d.workers)
	counts := make([]int, d.workers)

	var g errgroup.Group
	for id, px := range pixels {
		g.Go(func() (err error) {
			defer recoverWorker(id, &err)
			for {
				job := queue.Pop()
				if job.IsStop() {
					d.log.Debug("worker stopped", "worker", id, "tiles", counts[id])
					return nil
				}
				fillRect(grid.Bounds(job.Tile), px)
				counts[id]++
			}
		})
	}

	for _, t := range tiles {
		queue.Push(t)
	}
	queue.PushStop(d.workers)

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	covered := grid.Covered()
	return Stats{
		Workers:     d.workers,
		Items:       len(tiles),
		Stops:       d.workers,
		Pushed:      queue.Pushed(),
		Popped:      queue.Popped(),
		WorkerItems: counts,
		Pixels:      covered.Dx() * covered.Dy(),
	}, nil
}

// RunRows renders width×range pixels for every range using the static
// strategy. Worker i owns ranges[i]; the dispatcher's worker count is
// ignored and len(ranges) workers are spawned.
func (d *Dispatcher) RunRows(ranges []RowRange, width int, spawn Spawner) (Stats, error) {
	n := len(ranges)
	pixels, err := spawnN(n, spawn)
	if err != nil {
		return Stats{}, err
	}

	counts := make([]int, n)

	var g errgroup.Group
	for id, px := range pixels {
		r := ranges[id]
		g.Go(func() (err error) {
			defer recoverWorker(id, &err)
			fillRect(r.Rect(width), px)
			counts[id] = 1
			d.log.Debug("worker stopped", "worker", id, "rows", r.Len())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	return Stats{
		Workers:     n,
		Items:       n,
		WorkerItems: counts,
		Pixels:      CoveredRows(ranges) * max(width, 0),
	}, nil
}

// spawnAll builds one PixelFunc per worker.
func (d *Dispatcher) spawnAll(spawn Spawner) ([]PixelFunc, error) {
	return spawnN(d.workers, spawn)
}

// spawnN builds n PixelFuncs. No goroutine is started until every spawner
// call has succeeded.
func spawnN(n int, spawn Spawner) (pixels []PixelFunc, err error) {
	pixels = make([]PixelFunc, n)
	for id := range pixels {
		func() {
			defer recoverWorker(id, &err)
			pixels[id] = spawn(id)
		}()
		if err != nil {
			return nil, fmt.Errorf("spawn: %w", err)
		}
		if pixels[id] == nil {
			return nil, fmt.Errorf("spawn: worker %d: nil pixel func", id)
		}
	}
	return pixels, nil
}

// fillRect calls px for every pixel of r, row by row.
func fillRect(r image.Rectangle, px PixelFunc) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			px(x, y)
		}
	}
}

// recoverWorker turns a panic in worker id into an error.
func recoverWorker(id int, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: worker %d: %v", ErrWorkerPanic, id, r)
	}
}
