package render_test

import (
	"testing"

	"github.com/maxsupermanhd/WorldRaster/render"
	"github.com/maxsupermanhd/WorldRaster/render/rendertest"
	"github.com/stretchr/testify/assert"
)

func TestWaterTint(t *testing.T) {
	for _, tc := range []struct {
		depth, bx, bz int
		want          render.Tint
	}{
		{1, 0, 0, render.TintLight},
		{2, 1, 0, render.TintLight},
		{3, 0, 0, render.TintLight},
		{3, 1, 0, render.TintNormal},
		{4, 2, 2, render.TintLight},
		{4, 2, 3, render.TintNormal},
		{5, 1, 0, render.TintNormal},
		{6, 0, 0, render.TintNormal},
		{7, 0, 0, render.TintNormal},
		{7, 0, 1, render.TintDark},
		{9, 5, 5, render.TintNormal},
		{9, 5, 4, render.TintDark},
		{10, 0, 0, render.TintDark},
		{40, 3, 0, render.TintDark},
	} {
		assert.Equal(t, tc.want, render.WaterTint(tc.depth, tc.bx, tc.bz), "%+v", tc)
	}
}

func TestReliefTint(t *testing.T) {
	assert.Equal(t, render.TintDark, render.ReliefTint(63, 65))
	assert.Equal(t, render.TintNormal, render.ReliefTint(64, 64))
	assert.Equal(t, render.TintLight, render.ReliefTint(66, 64))
}

func waterColumn(depth int, below render.Block) *rendertest.Column {
	col := rendertest.NewColumn(0, 0, -64).Set(0, 50, 0, below)
	for y := 51; y < 51+depth; y++ {
		col.Set(0, y, 0, B("water", "level", "0"))
	}
	return col
}

func TestWaterDepth(t *testing.T) {
	table := defaultTable(t)
	policy := render.DefaultShadingPolicy()
	col := waterColumn(4, B("stone"))
	assert.Equal(t, 4, render.WaterDepth(col, 0, 0, 54, table, policy))

	col = waterColumn(4, B("othermod:thing"))
	assert.Equal(t, 4, render.WaterDepth(col, 0, 0, 54, table, policy))

	col = waterColumn(3, B("oak_stairs", "waterlogged", "true")).Set(0, 49, 0, B("water"))
	assert.Equal(t, 5, render.WaterDepth(col, 0, 0, 53, table, policy))
	assert.Equal(t, 3, render.WaterDepth(col, 0, 0, 53, table, render.ShadingPolicy{CountWaterlogged: false}))

	// ocean floor section not loaded
	col = rendertest.NewColumn(0, 0, -64).Floor(48, B("water")).Floor(47, B("water"))
	col.Unload(47 >> 4)
	assert.Equal(t, 1, render.WaterDepth(col, 0, 0, 48, table, policy))

	// water down to the floor
	col = rendertest.NewColumn(0, 0, 0).Floor(0, B("water")).Floor(1, B("water"))
	assert.Equal(t, 2, render.WaterDepth(col, 0, 0, 1, table, policy))
}

func TestShadeWater(t *testing.T) {
	table := defaultTable(t)
	policy := render.DefaultShadingPolicy()
	col := waterColumn(12, B("stone"))
	c, y := render.ResolveColumn(col, 0, 0, col.SurfaceY(0, 0), table)
	assert.Equal(t, render.WaterBlue, c)
	assert.Equal(t, render.TintDark, render.Shade(col, 0, 0, c, y, nil, table, policy))

	col = waterColumn(1, B("stone"))
	c, y = render.ResolveColumn(col, 0, 0, col.SurfaceY(0, 0), table)
	assert.Equal(t, render.TintLight, render.Shade(col, 0, 0, c, y, nil, table, policy))
}

func TestShadeRelief(t *testing.T) {
	table := defaultTable(t)
	policy := render.DefaultShadingPolicy()
	col := rendertest.NewColumn(0, 0, -64).Floor(64, B("grass_block"))
	col.Set(3, 65, 4, B("stone"))
	col.Set(8, 63, 8, B("air")).Set(8, 64, 8, B("air")).Set(8, 63, 8, B("stone"))
	col.Surface[8][8] = 63

	shade := func(bx, bz int, north render.ChunkColumn) render.Tint {
		c, y := render.ResolveColumn(col, bx, bz, col.SurfaceY(bx, bz), table)
		return render.Shade(col, bx, bz, c, y, north, table, policy)
	}
	assert.Equal(t, render.TintDark, shade(3, 5, nil))
	assert.Equal(t, render.TintLight, shade(3, 4, nil))
	assert.Equal(t, render.TintNormal, shade(6, 6, nil))
	assert.Equal(t, render.TintDark, shade(8, 8, nil))
	assert.Equal(t, render.TintLight, shade(8, 9, nil))
}

func TestShadeNorthChunk(t *testing.T) {
	table := defaultTable(t)
	policy := render.DefaultShadingPolicy()
	col := rendertest.NewColumn(0, 1, -64).Floor(64, B("stone"))
	higher := rendertest.NewColumn(0, 0, -64).Floor(66, B("stone"))
	lower := rendertest.NewColumn(0, 0, -64).Floor(60, B("stone"))
	empty := rendertest.NewColumn(0, 0, -64).Floor(70, B("othermod:thing"))

	assert.Equal(t, render.TintDark, render.Shade(col, 5, 0, render.StoneGray, 64, higher, table, policy))
	assert.Equal(t, render.TintLight, render.Shade(col, 5, 0, render.StoneGray, 64, lower, table, policy))
	assert.Equal(t, render.TintNormal, render.Shade(col, 5, 0, render.StoneGray, 64, empty, table, policy))
	assert.Equal(t, render.TintNormal, render.Shade(col, 5, 0, render.StoneGray, 64, nil, table, policy))
	// north chunk is irrelevant away from the chunk edge
	assert.Equal(t, render.TintNormal, render.Shade(col, 5, 1, render.StoneGray, 64, higher, table, policy))
}

func TestShadeClear(t *testing.T) {
	table := defaultTable(t)
	col := rendertest.NewColumn(0, 0, -64)
	higher := rendertest.NewColumn(0, -1, -64).Floor(66, B("stone"))
	assert.Equal(t, render.TintNormal, render.Shade(col, 0, 0, render.Clear, -64, higher, table, render.DefaultShadingPolicy()))
}
