// Package parallel provides the work distribution layer for minirt.
//
// A render is split into independent Work Items that are handed to a fixed
// pool of worker goroutines. Two strategies are supported:
//
//   - Dynamic: the canvas is divided into square tiles which are pushed onto a
//     shared JobQueue, followed by one stop job per worker. Workers pop tiles
//     until they observe their stop job.
//   - Static: the canvas rows are split into one contiguous RowRange per
//     worker at spawn time. Workers never coordinate after that.
//
// Both strategies write into a caller-owned buffer through a PixelFunc. The
// buffer is never locked: correctness relies on the Work Items of a run being
// pairwise disjoint, which TileGrid and PartitionRows guarantee.
//
// Thread safety: TileGrid and RowRange values are immutable. JobQueue is safe
// for concurrent use. A Dispatcher may run one render at a time per call.
package parallel

import "image"

// Tile is a dynamic Work Item: the column and row index of a square tile.
// It is resolved to pixels through the TileGrid that produced it.
type Tile struct {
	// X is the tile column index (0-based).
	X int

	// Y is the tile row index (0-based).
	Y int
}

// RowRange is a static Work Item: the half-open span of rows [Start, End).
type RowRange struct {
	Start int
	End   int
}

// Len returns the number of rows in the range.
func (r RowRange) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Rect returns the pixel rectangle covered by the range on a canvas of the
// given width.
func (r RowRange) Rect(width int) image.Rectangle {
	if r.Len() == 0 || width <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(0, r.Start, width, r.End)
}
