package primitives

import "fmt"

const (
	// chunks per region side
	RegionChunks = 32
	// blocks per chunk side
	ChunkBlocks = 16
	// blocks per region side
	RegionBlocks = RegionChunks * ChunkBlocks
)

type RegionLocation struct {
	X, Z int
}

func (r RegionLocation) String() string {
	return fmt.Sprintf("[%d, %d]", r.X, r.Z)
}

// North returns location of the region directly to the north (Z-1)
func (r RegionLocation) North() RegionLocation {
	return RegionLocation{X: r.X, Z: r.Z - 1}
}

// Less orders by X then Z
func (r RegionLocation) Less(o RegionLocation) bool {
	if r.X != o.X {
		return r.X < o.X
	}
	return r.Z < o.Z
}

// ChunkLocation is absolute chunk position
type ChunkLocation struct {
	X, Z int
}

func (c ChunkLocation) String() string {
	return fmt.Sprintf("{%dx %dz}", c.X, c.Z)
}

func (c ChunkLocation) Region() RegionLocation {
	return RegionLocation{X: FloorDiv(c.X, RegionChunks), Z: FloorDiv(c.Z, RegionChunks)}
}

// InRegion returns chunk position relative to its region
func (c ChunkLocation) InRegion() (int, int) {
	return FloorMod(c.X, RegionChunks), FloorMod(c.Z, RegionChunks)
}

func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func FloorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
