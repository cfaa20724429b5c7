// Package rendertest provides in-memory chunk columns and regions for tests.
package rendertest

import (
	"sort"
	"strings"

	"github.com/maxsupermanhd/WorldRaster/render"
)

// B builds a block from name and property key, value pairs
func B(name string, kv ...string) render.Block {
	b := render.Block{Name: name}
	if len(kv) > 0 {
		b.Properties = map[string]string{}
		for i := 0; i+1 < len(kv); i += 2 {
			b.Properties[kv[i]] = kv[i+1]
		}
	}
	if !strings.Contains(name, ":") {
		b.Name = "minecraft:" + name
	}
	return b
}

var Air = B("air")

// Section is sparse, unset blocks are air
type Section struct {
	layers [16]*render.Block
	blocks map[int]render.Block
}

func NewSection() *Section {
	return &Section{blocks: map[int]render.Block{}}
}

func (s *Section) Block(x, y, z int) render.Block {
	if b, ok := s.blocks[y*256+z*16+x]; ok {
		return b
	}
	if l := s.layers[y]; l != nil {
		return *l
	}
	return Air
}

func (s *Section) Set(x, y, z int, b render.Block) {
	s.blocks[y*256+z*16+x] = b
}

// Layer fills whole y layer of the section
func (s *Section) Layer(y int, b render.Block) {
	s.layers[y] = &b
	for i := y * 256; i < (y+1)*256; i++ {
		delete(s.blocks, i)
	}
}

// Column is a mutable render.ChunkColumn, surface follows the highest Set
type Column struct {
	CX, CZ   int
	Min      int
	Surface  [16][16]int
	Sections map[int]*Section
}

func NewColumn(cx, cz, minY int) *Column {
	c := &Column{CX: cx, CZ: cz, Min: minY, Sections: map[int]*Section{}}
	for x := range c.Surface {
		for z := range c.Surface[x] {
			c.Surface[x][z] = minY - 1
		}
	}
	return c
}

func (c *Column) Pos() (int, int) {
	return c.CX, c.CZ
}

func (c *Column) MinY() int {
	return c.Min
}

func (c *Column) SurfaceY(bx, bz int) int {
	return c.Surface[bx][bz]
}

func (c *Column) SectionAt(chunkY int) (render.Section, bool) {
	s, ok := c.Sections[chunkY]
	if !ok {
		return nil, false
	}
	return s, true
}

// Set places block at column-relative x, z and absolute y, loading section if needed
func (c *Column) Set(bx, y, bz int, b render.Block) *Column {
	s, ok := c.Sections[y>>4]
	if !ok {
		s = NewSection()
		c.Sections[y>>4] = s
	}
	s.Set(bx, y&15, bz, b)
	if b.Name != Air.Name && y > c.Surface[bx][bz] {
		c.Surface[bx][bz] = y
	}
	return c
}

// Stack sets blocks from y upwards
func (c *Column) Stack(bx, y, bz int, blocks ...render.Block) *Column {
	for i, b := range blocks {
		c.Set(bx, y+i, bz, b)
	}
	return c
}

// Floor fills whole layer y with b
func (c *Column) Floor(y int, b render.Block) *Column {
	s, ok := c.Sections[y>>4]
	if !ok {
		s = NewSection()
		c.Sections[y>>4] = s
	}
	s.Layer(y&15, b)
	if b.Name == Air.Name {
		return c
	}
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			if y > c.Surface[x][z] {
				c.Surface[x][z] = y
			}
		}
	}
	return c
}

// Unload drops section chunkY
func (c *Column) Unload(chunkY int) *Column {
	delete(c.Sections, chunkY)
	return c
}

// BlockNames lists distinct identifiers set in loaded sections, air included
func (c *Column) BlockNames() []string {
	seen := map[string]bool{}
	for _, s := range c.Sections {
		seen[Air.Name] = true
		for _, l := range s.layers {
			if l != nil {
				seen[l.Name] = true
			}
		}
		for _, b := range s.blocks {
			seen[b.Name] = true
		}
	}
	ret := make([]string, 0, len(seen))
	for n := range seen {
		ret = append(ret, n)
	}
	sort.Strings(ret)
	return ret
}
