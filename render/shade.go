package render

type ShadingPolicy struct {
	// waterlogged blocks of any color extend water depth
	CountWaterlogged bool
}

func DefaultShadingPolicy() ShadingPolicy {
	return ShadingPolicy{CountWaterlogged: true}
}

// WaterDepth counts water blocks from stopY (inclusive) downwards
func WaterDepth(col ChunkColumn, bx, bz, stopY int, table ColorTable, policy ShadingPolicy) int {
	depth := 0
	for y := stopY; y >= col.MinY(); y-- {
		b, ok := BlockAt(col, bx, y, bz)
		if !ok {
			break
		}
		r, ok := table.Lookup(b.Name)
		if !ok {
			break
		}
		if r.Select(b.Properties) != WaterBlue && !(policy.CountWaterlogged && b.Properties["waterlogged"] == "true") {
			break
		}
		depth++
	}
	return depth
}

// WaterTint dithers between bands on a checkerboard of (bx+bz) parity
func WaterTint(depth, bx, bz int) Tint {
	even := (bx+bz)%2 == 0
	switch {
	case depth <= 2:
		return TintLight
	case depth <= 4:
		if even {
			return TintLight
		}
		return TintNormal
	case depth <= 6:
		return TintNormal
	case depth <= 9:
		if even {
			return TintNormal
		}
		return TintDark
	default:
		return TintDark
	}
}

// ReliefTint compares own height with the one to the north
func ReliefTint(own, neighbor int) Tint {
	switch {
	case own < neighbor:
		return TintDark
	case own > neighbor:
		return TintLight
	default:
		return TintNormal
	}
}

// Shade picks tint for column bx, bz that resolved to c at stopY.
// north is the chunk column directly to the north of col and may be nil,
// it is only consulted for bz == 0.
func Shade(col ChunkColumn, bx, bz int, c MapColor, stopY int, north ChunkColumn, table ColorTable, policy ShadingPolicy) Tint {
	switch c {
	case Clear:
		return TintNormal
	case WaterBlue:
		return WaterTint(WaterDepth(col, bx, bz, stopY, table, policy), bx, bz)
	}
	neighbor := stopY
	if bz > 0 {
		if y, ok := SurfaceY(col, bx, bz-1, table); ok {
			neighbor = y
		}
	} else if north != nil {
		if y, ok := SurfaceY(north, bx, 15, table); ok {
			neighbor = y
		}
	}
	return ReliefTint(stopY, neighbor)
}
