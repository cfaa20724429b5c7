package render_test

import (
	"testing"

	"github.com/maxsupermanhd/WorldRaster/render"
	"github.com/maxsupermanhd/WorldRaster/render/rendertest"
	"github.com/stretchr/testify/assert"
)

var B = rendertest.B

func TestResolveSkipsUnknownBlocks(t *testing.T) {
	table := defaultTable(t)
	col := rendertest.NewColumn(0, 0, -64).
		Set(2, 65, 3, B("stone")).
		Set(2, 70, 3, B("othermod:mystery_block"))
	c, y := render.ResolveColumn(col, 2, 3, col.SurfaceY(2, 3), table)
	assert.Equal(t, render.StoneGray, c)
	assert.Equal(t, 65, y)
}

func TestResolveSkipsUnloadedSections(t *testing.T) {
	table := defaultTable(t)
	col := rendertest.NewColumn(0, 0, -64).
		Set(0, 10, 0, B("sand")).
		Set(0, 100, 0, B("stone")).
		Unload(100 >> 4)
	c, y := render.ResolveColumn(col, 0, 0, 120, table)
	assert.Equal(t, render.PaleYellow, c)
	assert.Equal(t, 10, y)
}

func TestResolveFloor(t *testing.T) {
	table := defaultTable(t)
	col := rendertest.NewColumn(0, 0, -64).Set(0, 30, 0, B("air"))
	c, y := render.ResolveColumn(col, 0, 0, 40, table)
	assert.Equal(t, render.Clear, c)
	assert.Equal(t, -64, y)

	c, y = render.ResolveColumn(col, 0, 0, -70, table)
	assert.Equal(t, render.Clear, c)
	assert.Equal(t, -70, y)

	_, ok := render.SurfaceY(col, 0, 0, table)
	assert.False(t, ok)
}

func TestResolveBedParts(t *testing.T) {
	table := defaultTable(t)
	col := rendertest.NewColumn(0, 0, -64).
		Floor(64, B("stone")).
		Set(4, 65, 4, B("red_bed", "part", "head", "facing", "east", "occupied", "false")).
		Set(3, 65, 4, B("red_bed", "part", "foot", "facing", "east", "occupied", "false"))
	c, y := render.ResolveColumn(col, 4, 4, col.SurfaceY(4, 4), table)
	assert.Equal(t, render.WhiteGray, c)
	assert.Equal(t, 65, y)
	c, _ = render.ResolveColumn(col, 3, 4, col.SurfaceY(3, 4), table)
	assert.Equal(t, render.Red, c)
	c, y = render.ResolveColumn(col, 5, 4, col.SurfaceY(5, 4), table)
	assert.Equal(t, render.StoneGray, c)
	assert.Equal(t, 64, y)
}

func TestResolveRules(t *testing.T) {
	table := defaultTable(t)
	col := rendertest.NewColumn(0, 0, -64).
		Floor(60, B("dirt")).
		Set(0, 61, 0, B("wheat", "age", "7")).
		Set(1, 61, 0, B("wheat", "age", "3")).
		Set(2, 61, 0, B("oak_log", "axis", "y")).
		Set(3, 61, 0, B("oak_log", "axis", "z")).
		Set(4, 61, 0, B("glass_pane", "waterlogged", "false")).
		Set(5, 61, 0, B("glass_pane", "waterlogged", "true"))
	for bx, want := range []render.MapColor{
		render.Yellow, render.DarkGreen, render.OakTan, render.SpruceBrown, render.DirtBrown, render.WaterBlue,
	} {
		c, _ := render.ResolveColumn(col, bx, 0, col.SurfaceY(bx, 0), table)
		assert.Equal(t, want, c, "column %d", bx)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	table := defaultTable(t)
	col := rendertest.NewColumn(0, 0, -64).
		Floor(62, B("water", "level", "0")).
		Set(7, 63, 7, B("lily_pad"))
	for bx := 0; bx < 16; bx++ {
		for bz := 0; bz < 16; bz++ {
			c1, y1 := render.ResolveColumn(col, bx, bz, 80, table)
			c2, y2 := render.ResolveColumn(col, bx, bz, 80, table)
			assert.Equal(t, c1, c2)
			assert.Equal(t, y1, y2)
		}
	}
	c, y := render.ResolveColumn(col, 7, 7, 80, table)
	assert.Equal(t, render.DarkGreen, c)
	assert.Equal(t, 63, y)
}

func TestSurfaceYUsesHeightmap(t *testing.T) {
	table := defaultTable(t)
	col := rendertest.NewColumn(0, 0, -64).
		Set(0, 40, 0, B("stone")).
		Set(0, 50, 0, B("stone"))
	// stale heightmap below the top block
	col.Surface[0][0] = 45
	y, ok := render.SurfaceY(col, 0, 0, table)
	assert.True(t, ok)
	assert.Equal(t, 40, y)
}
