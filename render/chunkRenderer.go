package render

// Block is a single block state as stored in a section palette
type Block struct {
	Name       string
	Properties map[string]string
}

// Property returns block property value and whether it is set at all
func (b Block) Property(name string) (string, bool) {
	v, ok := b.Properties[name]
	return v, ok
}

// Section is a loaded 16x16x16 slice of a chunk column
type Section interface {
	// coordinates are relative to the section, 0..15
	Block(x, y, z int) Block
}

// ChunkColumn is a vertical stack of sections with a cached surface heightmap.
type ChunkColumn interface {
	// absolute chunk coordinates
	Pos() (cx, cz int)
	// lowest stored block Y
	MinY() int
	// maximum occupied Y from the WORLD_SURFACE heightmap (or fallback plane)
	SurfaceY(bx, bz int) int
	// section containing blocks chunkY*16 .. chunkY*16+15, false if not loaded
	SectionAt(chunkY int) (Section, bool)
}

// BlockAt looks up block at column-relative x, z and absolute y.
// Returns false if section holding y is not loaded.
func BlockAt(col ChunkColumn, bx, y, bz int) (Block, bool) {
	s, ok := col.SectionAt(floorDiv16(y))
	if !ok || s == nil {
		return Block{}, false
	}
	return s.Block(bx, y&15, bz), true
}

func floorDiv16(y int) int {
	return y >> 4
}
