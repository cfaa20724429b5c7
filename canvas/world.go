package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/maxsupermanhd/WorldRaster/primitives"
)

// World is a canvas in world block coordinates that grows to fit whatever is drawn on it.
// Safe for concurrent use.
type World struct {
	mu  sync.Mutex
	img *image.RGBA
}

func NewWorld() *World {
	return &World{}
}

// must hold mu
func (w *World) grow(r image.Rectangle) {
	if w.img == nil {
		w.img = image.NewRGBA(r)
		return
	}
	if r.In(w.img.Rect) {
		return
	}
	n := image.NewRGBA(w.img.Rect.Union(r))
	draw.Draw(n, w.img.Rect, w.img, w.img.Rect.Min, draw.Src)
	w.img = n
}

// Set grows canvas to include x, z and writes the pixel.
// Transparent colors never overwrite already drawn pixels.
func (w *World) Set(x, z int, c color.RGBA) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.grow(image.Rect(x, z, x+1, z+1))
	if c.A == 0 {
		return
	}
	w.img.SetRGBA(x, z, c)
}

// Insert composites written part of the tile over the canvas
func (w *World) Insert(t *Tile) {
	r := t.Written().Intersect(t.Bounds())
	if r.Empty() {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.grow(r)
	sp := image.Pt(primitives.FloorMod(r.Min.X, TileSize), primitives.FloorMod(r.Min.Y, TileSize))
	draw.Draw(w.img, r, t.Image(), sp, draw.Over)
}

// Bounds is empty until something is drawn
func (w *World) Bounds() image.Rectangle {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.img == nil {
		return image.Rectangle{}
	}
	return w.img.Rect
}

// Image returns the canvas itself, it must not be drawn on while in use
func (w *World) Image() *image.RGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.img == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	return w.img
}
