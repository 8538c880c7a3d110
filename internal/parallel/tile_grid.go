package parallel

import "image"

// TileGrid is the block geometry of the dynamic strategy.
//
// The canvas is divided into square tiles of edge length size. Under EdgeCrop
// the grid is ⌊width/size⌋ × ⌊height/size⌋ and pixels past the last full tile
// on either axis are not addressed by any tile. Under EdgeCover the grid is
// rounded up and edge tiles are clipped to the canvas.
//
// A TileGrid is immutable after construction and safe for concurrent use.
type TileGrid struct {
	width  int
	height int
	size   int
	policy EdgePolicy

	// cols and rows are the grid dimensions in tiles.
	cols int
	rows int
}

// NewTileGrid creates the tile geometry for a width×height canvas.
// Non-positive dimensions or size produce an empty grid.
func NewTileGrid(width, height, size int, policy EdgePolicy) *TileGrid {
	g := &TileGrid{policy: policy}
	if width <= 0 || height <= 0 || size <= 0 {
		return g
	}

	g.width = width
	g.height = height
	g.size = size

	if policy == EdgeCover {
		g.cols = (width + size - 1) / size
		g.rows = (height + size - 1) / size
	} else {
		g.cols = width / size
		g.rows = height / size
	}
	return g
}

// Width returns the canvas width in pixels.
func (g *TileGrid) Width() int { return g.width }

// Height returns the canvas height in pixels.
func (g *TileGrid) Height() int { return g.height }

// TileSize returns the tile edge length in pixels.
func (g *TileGrid) TileSize() int { return g.size }

// Policy returns the edge policy the grid was built with.
func (g *TileGrid) Policy() EdgePolicy { return g.policy }

// Cols returns the number of tile columns.
func (g *TileGrid) Cols() int { return g.cols }

// Rows returns the number of tile rows.
func (g *TileGrid) Rows() int { return g.rows }

// TileCount returns the total number of tiles.
func (g *TileGrid) TileCount() int { return g.cols * g.rows }

// Tiles enumerates every tile in dispatch order: column-major, so all tiles
// of column 0 come first, then column 1, and so on.
func (g *TileGrid) Tiles() []Tile {
	tiles := make([]Tile, 0, g.TileCount())
	for tx := range g.cols {
		for ty := range g.rows {
			tiles = append(tiles, Tile{X: tx, Y: ty})
		}
	}
	return tiles
}

// Bounds returns the pixel rectangle of a tile in canvas space.
// Edge tiles are clipped to the canvas; tiles outside the grid are empty.
func (g *TileGrid) Bounds(t Tile) image.Rectangle {
	if t.X < 0 || t.X >= g.cols || t.Y < 0 || t.Y >= g.rows {
		return image.Rectangle{}
	}
	r := image.Rect(t.X*g.size, t.Y*g.size, (t.X+1)*g.size, (t.Y+1)*g.size)
	return r.Intersect(image.Rect(0, 0, g.width, g.height))
}

// Covered returns the pixel rectangle addressed by the union of all tiles.
// It equals the full canvas unless the policy is EdgeCrop and a dimension is
// not a multiple of the tile size.
func (g *TileGrid) Covered() image.Rectangle {
	if g.TileCount() == 0 {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, min(g.cols*g.size, g.width), min(g.rows*g.size, g.height))
}
