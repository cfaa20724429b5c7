package renderers

import (
	"context"

	"github.com/maxsupermanhd/WorldRaster/canvas"
	"github.com/maxsupermanhd/WorldRaster/chunkStorage"
	"github.com/maxsupermanhd/WorldRaster/primitives"
	"github.com/maxsupermanhd/WorldRaster/render"
)

// TerrainRenderer draws regions from above, one pixel per block column
type TerrainRenderer struct {
	table  render.ColorTable
	policy render.ShadingPolicy
}

func NewTerrainRenderer(table render.ColorTable, policy render.ShadingPolicy) *TerrainRenderer {
	return &TerrainRenderer{
		table:  table,
		policy: policy,
	}
}

// RenderRegion draws every present chunk of cur onto a new tile and returns
// it with the number of chunks drawn. prev is the region rendered before cur
// in the same east-west group, its southern chunk row shades cur's northern
// edge when prev lies directly to the north. First broken chunk aborts the
// region with *chunkStorage.ColumnDecodeError.
func (r *TerrainRenderer) RenderRegion(ctx context.Context, cur, prev chunkStorage.Region) (*canvas.Tile, int, error) {
	loc := cur.Location()
	tile := canvas.NewTile(loc)
	baseX, baseZ := loc.X*primitives.RegionChunks, loc.Z*primitives.RegionChunks
	var north [primitives.RegionChunks]render.ChunkColumn
	if prev != nil && prev.Location() == loc.North() {
		for rx := range north {
			// prev already reported its own broken chunks
			col, err := prev.ChunkColumn(baseX+rx, baseZ-1)
			if err == nil {
				north[rx] = col
			}
		}
	}
	drawn := 0
	for rz := 0; rz < primitives.RegionChunks; rz++ {
		if err := ctx.Err(); err != nil {
			return nil, drawn, err
		}
		var row [primitives.RegionChunks]render.ChunkColumn
		for rx := 0; rx < primitives.RegionChunks; rx++ {
			cx, cz := baseX+rx, baseZ+rz
			col, err := cur.ChunkColumn(cx, cz)
			if err != nil {
				return nil, drawn, &chunkStorage.ColumnDecodeError{
					Region: loc,
					Chunk:  primitives.ChunkLocation{X: cx, Z: cz},
					Err:    err,
				}
			}
			if col == nil {
				continue
			}
			row[rx] = col
			r.renderChunk(tile, col, cx, cz, north[rx])
			drawn++
		}
		north = row
	}
	return tile, drawn, nil
}

func (r *TerrainRenderer) renderChunk(tile *canvas.Tile, col render.ChunkColumn, cx, cz int, north render.ChunkColumn) {
	for bz := 0; bz < primitives.ChunkBlocks; bz++ {
		for bx := 0; bx < primitives.ChunkBlocks; bx++ {
			c, y := render.ResolveColumn(col, bx, bz, col.SurfaceY(bx, bz), r.table)
			t := render.Shade(col, bx, bz, c, y, north, r.table, r.policy)
			tile.Set(cx*primitives.ChunkBlocks+bx, cz*primitives.ChunkBlocks+bz, c.Tinted(t))
		}
	}
}
