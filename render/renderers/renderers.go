package renderers

import (
	"github.com/maxsupermanhd/WorldRaster/render"
	"github.com/maxsupermanhd/lac"
)

// ConstructRenderer builds terrain renderer from the render config subtree
func ConstructRenderer(cfg *lac.ConfSubtree) (*TerrainRenderer, error) {
	table, err := render.LoadColorTable(cfg.GetDSString("", "colors_path"))
	if err != nil {
		return nil, err
	}
	policy := render.DefaultShadingPolicy()
	policy.CountWaterlogged = cfg.GetDSBool(policy.CountWaterlogged, "water", "count_waterlogged")
	return NewTerrainRenderer(table, policy), nil
}
