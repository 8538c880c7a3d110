package minirt

import (
	"errors"
	"fmt"

	"github.com/gogpu/minirt/internal/parallel"
)

// Validation errors returned (wrapped) by Options.Validate.
var (
	ErrInvalidResolution = errors.New("minirt: resolution must be positive")
	ErrInvalidSamples    = errors.New("minirt: sample count must be positive")
	ErrInvalidWorkers    = errors.New("minirt: worker count must be positive")
	ErrInvalidTileSize   = errors.New("minirt: tile size must be positive")
	ErrUnknownStrategy   = errors.New("minirt: unknown strategy")
	ErrUnknownEdgePolicy = errors.New("minirt: unknown edge policy")
)

// Default values used by DefaultOptions.
const (
	DefaultWidth    = 600
	DefaultHeight   = 600
	DefaultSamples  = 1
	DefaultWorkers  = 1
	DefaultTileSize = 20
)

// Strategy selects how work is distributed over the workers.
type Strategy uint8

const (
	// StrategyDynamic feeds square tiles through a shared blocking queue.
	StrategyDynamic Strategy = iota

	// StrategyStatic assigns one contiguous band of rows per worker at spawn.
	StrategyStatic
)

// String returns the config name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyDynamic:
		return "dynamic"
	case StrategyStatic:
		return "static"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	switch s {
	case StrategyDynamic, StrategyStatic:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, uint8(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
// The names "queue" and "rows" are accepted as aliases.
func (s *Strategy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "dynamic", "queue", "":
		*s = StrategyDynamic
	case "static", "rows":
		*s = StrategyStatic
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, string(text))
	}
	return nil
}

// EdgePolicy decides whether remainder pixels are rendered.
// See parallel.EdgeCrop and parallel.EdgeCover.
type EdgePolicy = parallel.EdgePolicy

const (
	// EdgeCrop leaves pixels past the last full tile or row band black.
	EdgeCrop = parallel.EdgeCrop

	// EdgeCover renders every pixel.
	EdgeCover = parallel.EdgeCover
)

// Options configures one render.
type Options struct {
	// Width and Height are the image resolution in pixels.
	Width  int
	Height int

	// Samples is passed through to the RenderFunc for every pixel.
	Samples int

	// Workers is the number of worker goroutines.
	Workers int

	// TileSize is the tile edge length of the dynamic strategy.
	TileSize int

	Strategy Strategy
	Edges    EdgePolicy
}

// DefaultOptions returns a 600×600, single-sample, single-worker dynamic
// render with 20-pixel tiles and cropped edges.
func DefaultOptions() Options {
	return Options{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Samples:  DefaultSamples,
		Workers:  DefaultWorkers,
		TileSize: DefaultTileSize,
		Strategy: StrategyDynamic,
		Edges:    EdgeCrop,
	}
}

// Validate checks the options. Errors wrap one of the Err* sentinels.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, o.Width, o.Height)
	}
	if o.Samples <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSamples, o.Samples)
	}
	if o.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, o.Workers)
	}
	switch o.Strategy {
	case StrategyDynamic:
		if o.TileSize <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidTileSize, o.TileSize)
		}
	case StrategyStatic:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownStrategy, uint8(o.Strategy))
	}
	if o.Edges != EdgeCrop && o.Edges != EdgeCover {
		return fmt.Errorf("%w: %d", ErrUnknownEdgePolicy, uint8(o.Edges))
	}
	return nil
}

// Uncovered returns the number of pixels the options leave unrendered.
// It is zero under EdgeCover and under EdgeCrop when the resolution divides
// evenly into tiles (dynamic) or worker bands (static).
func (o Options) Uncovered() int {
	total := o.Width * o.Height
	switch o.Strategy {
	case StrategyStatic:
		rows := parallel.CoveredRows(parallel.PartitionRows(o.Height, o.Workers, o.Edges))
		return total - rows*o.Width
	default:
		r := parallel.NewTileGrid(o.Width, o.Height, o.TileSize, o.Edges).Covered()
		return total - r.Dx()*r.Dy()
	}
}
