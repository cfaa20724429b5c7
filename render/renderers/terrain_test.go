package renderers_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/maxsupermanhd/WorldRaster/chunkStorage"
	"github.com/maxsupermanhd/WorldRaster/primitives"
	"github.com/maxsupermanhd/WorldRaster/render"
	"github.com/maxsupermanhd/WorldRaster/render/renderers"
	"github.com/maxsupermanhd/WorldRaster/render/rendertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	stone      = rendertest.B("stone")
	stoneDark  = render.StoneGray.Tinted(render.TintDark)
	stoneFlat  = render.StoneGray.Tinted(render.TintNormal)
	stoneLight = render.StoneGray.Tinted(render.TintLight)
)

func newRenderer(t *testing.T) *renderers.TerrainRenderer {
	t.Helper()
	table, err := render.DefaultColorTable()
	require.NoError(t, err)
	return renderers.NewTerrainRenderer(table, render.DefaultShadingPolicy())
}

func pixel(img *image.RGBA, x, z int) color.RGBA {
	return img.RGBAAt(primitives.FloorMod(x, 512), primitives.FloorMod(z, 512))
}

func TestRegionBoundaryShading(t *testing.T) {
	r := newRenderer(t)
	north := rendertest.NewRegion(0, 0)
	north.Flat(3, 31, 66, stone)
	south := rendertest.NewRegion(0, 1)
	south.Flat(3, 0, 64, stone)

	tile, drawn, err := r.RenderRegion(context.Background(), south, north)
	require.NoError(t, err)
	assert.Equal(t, 1, drawn)
	img := tile.Image()
	for x := 48; x < 64; x++ {
		assert.Equal(t, stoneDark, pixel(img, x, 512), "x %d", x)
		assert.Equal(t, stoneFlat, pixel(img, x, 513), "x %d", x)
	}
	assert.Equal(t, image.Rect(48, 512, 64, 528), tile.Written())

	// nothing to the north
	tile, _, err = r.RenderRegion(context.Background(), south, nil)
	require.NoError(t, err)
	assert.Equal(t, stoneFlat, pixel(tile.Image(), 50, 512))

	// previous region of the group is not adjacent
	far := rendertest.NewRegion(0, -1)
	far.Flat(3, 31, 66, stone)
	tile, _, err = r.RenderRegion(context.Background(), south, far)
	require.NoError(t, err)
	assert.Equal(t, stoneFlat, pixel(tile.Image(), 50, 512))
}

func TestChunkRowShading(t *testing.T) {
	r := newRenderer(t)
	reg := rendertest.NewRegion(-1, -1)
	reg.Flat(0, 0, 70, stone)
	reg.Flat(0, 1, 68, stone)
	reg.Flat(1, 1, 72, stone)
	tile, drawn, err := r.RenderRegion(context.Background(), reg, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, drawn)
	img := tile.Image()
	// chunk -32,-31 sits below chunk -32,-32
	x0, z1 := -32*16, -31*16
	assert.Equal(t, stoneDark, pixel(img, x0+5, z1))
	assert.Equal(t, stoneFlat, pixel(img, x0+5, z1+1))
	// chunk -31,-31 has nothing to the north
	assert.Equal(t, stoneFlat, pixel(img, x0+16+5, z1))
	// missing chunks stay transparent
	assert.Equal(t, color.RGBA{}, pixel(img, x0+16+5, z1-1))
	assert.Equal(t, stoneFlat, pixel(img, x0, z1-16))
}

func TestReliefAcrossBlocks(t *testing.T) {
	r := newRenderer(t)
	reg := rendertest.NewRegion(0, 0)
	col := reg.Flat(0, 0, 64, stone)
	col.Set(4, 65, 4, stone)
	tile, _, err := r.RenderRegion(context.Background(), reg, nil)
	require.NoError(t, err)
	assert.Equal(t, stoneLight, pixel(tile.Image(), 4, 4))
	assert.Equal(t, stoneDark, pixel(tile.Image(), 4, 5))
	assert.Equal(t, stoneFlat, pixel(tile.Image(), 4, 6))
}

func TestColumnDecodeError(t *testing.T) {
	r := newRenderer(t)
	broken := errors.New("broken palette")
	reg := rendertest.NewRegion(2, -3)
	reg.Flat(0, 0, 64, stone)
	reg.Fail(2*32+4, -3*32+7, broken)
	_, _, err := r.RenderRegion(context.Background(), reg, nil)
	var cde *chunkStorage.ColumnDecodeError
	require.ErrorAs(t, err, &cde)
	assert.Equal(t, primitives.RegionLocation{X: 2, Z: -3}, cde.Region)
	assert.Equal(t, primitives.ChunkLocation{X: 68, Z: -89}, cde.Chunk)
	assert.ErrorIs(t, err, broken)
}

func TestBrokenNorthRegionIsIgnored(t *testing.T) {
	r := newRenderer(t)
	north := rendertest.NewRegion(0, 0)
	north.Fail(3, 31, errors.New("broken"))
	south := rendertest.NewRegion(0, 1)
	south.Flat(3, 0, 64, stone)
	tile, _, err := r.RenderRegion(context.Background(), south, north)
	require.NoError(t, err)
	assert.Equal(t, stoneFlat, pixel(tile.Image(), 50, 512))
}

func TestRenderCancelled(t *testing.T) {
	r := newRenderer(t)
	reg := rendertest.NewRegion(0, 0)
	reg.Flat(0, 0, 64, stone)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := r.RenderRegion(ctx, reg, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
