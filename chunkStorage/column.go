package chunkStorage

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/Tnze/go-mc/level"
	"github.com/maxsupermanhd/WorldRaster/render"
)

const (
	// used when chunk carries no WORLD_SURFACE heightmap
	FallbackSurfaceY = 320

	heightmapEntries = 16 * 16
	sectionBlocks    = 16 * 16 * 16
	minBlockBits     = 4
)

// Column is a decoded chunk column ready for rendering
type Column struct {
	cx, cz   int
	minY     int
	surface  []int
	sections map[int]*Section
}

// Section is a decoded block palette with per-block palette indexes
type Section struct {
	palette []render.Block
	// nil when palette has a single entry
	indexes []uint16
}

func (s *Section) Block(x, y, z int) render.Block {
	if s.indexes == nil {
		return s.palette[0]
	}
	return s.palette[s.indexes[y*256+z*16+x]]
}

// DecodeColumn is DecodeChunk followed by NewColumn
func DecodeColumn(d []byte) (*Column, error) {
	c, err := DecodeChunk(d)
	if err != nil {
		return nil, err
	}
	return NewColumn(c)
}

func NewColumn(c *Chunk) (*Column, error) {
	ret := &Column{
		cx:       int(c.XPos),
		cz:       int(c.ZPos),
		minY:     int(c.YPos) * 16,
		sections: make(map[int]*Section, len(c.Sections)),
	}
	if len(c.Heightmaps.WorldSurface) > 0 {
		s, err := decodeHeightmap(c.Heightmaps.WorldSurface, ret.minY, sectionsHeight(c))
		if err != nil {
			return nil, err
		}
		ret.surface = s
	}
	for i := range c.Sections {
		cs := &c.Sections[i]
		if len(cs.BlockStates.Palette) == 0 {
			continue
		}
		s, err := decodeSection(cs)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", cs.Y, err)
		}
		ret.sections[int(cs.Y)] = s
	}
	return ret, nil
}

func (c *Column) Pos() (int, int) {
	return c.cx, c.cz
}

func (c *Column) MinY() int {
	return c.minY
}

func (c *Column) SurfaceY(bx, bz int) int {
	if c.surface == nil {
		return FallbackSurfaceY
	}
	return c.surface[bz*16+bx]
}

func (c *Column) SectionAt(chunkY int) (render.Section, bool) {
	s, ok := c.sections[chunkY]
	if !ok {
		return nil, false
	}
	return s, true
}

// BlockNames lists distinct block identifiers present in section palettes
func (c *Column) BlockNames() []string {
	seen := map[string]struct{}{}
	for _, s := range c.sections {
		for _, b := range s.palette {
			seen[b.Name] = struct{}{}
		}
	}
	ret := make([]string, 0, len(seen))
	for n := range seen {
		ret = append(ret, n)
	}
	sort.Strings(ret)
	return ret
}

func storageLongs(bits, length int) int {
	perLong := 64 / bits
	return (length + perLong - 1) / perLong
}

// sectionsHeight is world height covered by the chunk sections, 0 without sections
func sectionsHeight(c *Chunk) int {
	if len(c.Sections) == 0 {
		return 0
	}
	top := int(c.Sections[0].Y)
	for _, s := range c.Sections[1:] {
		top = max(top, int(s.Y))
	}
	return (top+1)*16 - int(c.YPos)*16
}

// heightmapBits picks entry width by data length, lengths shared by several
// widths (11 and 12, 13 to 16) are resolved with world height
func heightmapBits(longs, height int) (int, error) {
	candidates := []int{}
	for i := 1; i <= 32; i++ {
		if storageLongs(i, heightmapEntries) == longs {
			candidates = append(candidates, i)
		}
	}
	switch {
	case len(candidates) == 0:
		return 0, fmt.Errorf("heightmap of %d longs does not hold %d entries", longs, heightmapEntries)
	case len(candidates) == 1:
		return candidates[0], nil
	}
	if height > 0 {
		// values go up to height inclusive
		want := bits.Len(uint(height))
		for _, b := range candidates {
			if b == want {
				return b, nil
			}
		}
	}
	return 0, fmt.Errorf("heightmap of %d longs fits %d to %d bit entries, world height %d matches none", longs, candidates[0], candidates[len(candidates)-1], height)
}

func decodeHeightmap(data []uint64, minY, height int) ([]int, error) {
	b, err := heightmapBits(len(data), height)
	if err != nil {
		return nil, err
	}
	bs := level.NewBitStorage(b, heightmapEntries, data)
	ret := make([]int, heightmapEntries)
	for i := range ret {
		// stored value is one above the highest occupied block
		ret[i] = bs.Get(i) - 1 + minY
	}
	return ret, nil
}

func decodeSection(cs *ChunkSection) (*Section, error) {
	ret := &Section{palette: make([]render.Block, len(cs.BlockStates.Palette))}
	for i, v := range cs.BlockStates.Palette {
		ret.palette[i].Name = v.Name
		if v.Properties.Data != nil {
			props := map[string]string{}
			if err := v.Properties.Unmarshal(&props); err != nil {
				return nil, fmt.Errorf("properties of %s: %w", v.Name, err)
			}
			ret.palette[i].Properties = props
		}
	}
	if len(ret.palette) == 1 {
		return ret, nil
	}
	b := bits.Len(uint(len(ret.palette) - 1))
	if b < minBlockBits {
		b = minBlockBits
	}
	if want := storageLongs(b, sectionBlocks); len(cs.BlockStates.Data) != want {
		return nil, fmt.Errorf("block states have %d longs, %d expected for palette of %d", len(cs.BlockStates.Data), want, len(ret.palette))
	}
	bs := level.NewBitStorage(b, sectionBlocks, cs.BlockStates.Data)
	ret.indexes = make([]uint16, sectionBlocks)
	for i := range ret.indexes {
		p := bs.Get(i)
		if p >= len(ret.palette) {
			return nil, fmt.Errorf("block %d references palette entry %d of %d", i, p, len(ret.palette))
		}
		ret.indexes[i] = uint16(p)
	}
	return ret, nil
}
