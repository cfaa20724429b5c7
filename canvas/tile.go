// Package canvas assembles rendered pixels into region tiles and world-spanning images.
package canvas

import (
	"image"
	"image/color"

	"github.com/maxsupermanhd/WorldRaster/primitives"
)

const TileSize = primitives.RegionBlocks

// Tile is a fixed 512x512 image of a single region, owned by one goroutine
type Tile struct {
	Loc     primitives.RegionLocation
	img     *image.RGBA
	written image.Rectangle
}

func NewTile(loc primitives.RegionLocation) *Tile {
	return &Tile{
		Loc: loc,
		img: image.NewRGBA(image.Rect(0, 0, TileSize, TileSize)),
	}
}

// Set writes pixel of world block column x, z
func (t *Tile) Set(x, z int, c color.RGBA) {
	t.img.SetRGBA(primitives.FloorMod(x, TileSize), primitives.FloorMod(z, TileSize), c)
	t.written = t.written.Union(image.Rect(x, z, x+1, z+1))
}

// Written is the smallest rectangle in world coordinates covering every Set
func (t *Tile) Written() image.Rectangle {
	return t.written
}

// Bounds of the tile region in world coordinates
func (t *Tile) Bounds() image.Rectangle {
	return image.Rect(0, 0, TileSize, TileSize).Add(image.Pt(t.Loc.X*TileSize, t.Loc.Z*TileSize))
}

func (t *Tile) Image() *image.RGBA {
	return t.img
}
