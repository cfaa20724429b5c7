package render

// ResolveColumn scans column at bx, bz from topY down to the floor and returns
// the first non-Clear map color together with the Y it was found at.
// Unloaded sections and blocks missing from the table are see-through.
// When nothing is found color is Clear and Y is the last examined one.
func ResolveColumn(col ChunkColumn, bx, bz, topY int, table ColorTable) (MapColor, int) {
	minY := col.MinY()
	last := topY
	for y := topY; y >= minY; y-- {
		last = y
		s, ok := col.SectionAt(floorDiv16(y))
		if !ok || s == nil {
			// jump to the bottom of the section, loop decrement moves below it
			y &^= 15
			if y < minY {
				y = minY
			}
			last = y
			continue
		}
		c, ok := table.Color(s.Block(bx, y&15, bz))
		if !ok || c == Clear {
			continue
		}
		return c, y
	}
	return Clear, last
}

// SurfaceY is height-only variant of ResolveColumn starting at the column heightmap
func SurfaceY(col ChunkColumn, bx, bz int, table ColorTable) (int, bool) {
	c, y := ResolveColumn(col, bx, bz, col.SurfaceY(bx, bz), table)
	if c == Clear {
		return 0, false
	}
	return y, true
}
