package rendertest

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/maxsupermanhd/WorldRaster/chunkStorage"
	"github.com/maxsupermanhd/WorldRaster/primitives"
	"github.com/maxsupermanhd/WorldRaster/render"
)

// Region is an in-memory chunkStorage.Region
type Region struct {
	Loc     primitives.RegionLocation
	Columns map[primitives.ChunkLocation]render.ChunkColumn
	Errs    map[primitives.ChunkLocation]error
	Closed  atomic.Int32
}

var _ chunkStorage.Region = (*Region)(nil)

func NewRegion(x, z int) *Region {
	return &Region{
		Loc:     primitives.RegionLocation{X: x, Z: z},
		Columns: map[primitives.ChunkLocation]render.ChunkColumn{},
		Errs:    map[primitives.ChunkLocation]error{},
	}
}

// Add places column at its own position
func (r *Region) Add(cols ...render.ChunkColumn) *Region {
	for _, c := range cols {
		cx, cz := c.Pos()
		r.Columns[primitives.ChunkLocation{X: cx, Z: cz}] = c
	}
	return r
}

// Fail makes chunk at cx, cz return err when decoded
func (r *Region) Fail(cx, cz int, err error) *Region {
	r.Errs[primitives.ChunkLocation{X: cx, Z: cz}] = err
	return r
}

// Flat adds a column at region-relative rcx, rcz filled with b at layer y
func (r *Region) Flat(rcx, rcz, y int, b render.Block) *Column {
	c := NewColumn(r.Loc.X*primitives.RegionChunks+rcx, r.Loc.Z*primitives.RegionChunks+rcz, -64)
	c.Floor(y, b)
	r.Add(c)
	return c
}

func (r *Region) Location() primitives.RegionLocation {
	return r.Loc
}

func (r *Region) Chunks() []primitives.ChunkLocation {
	ret := []primitives.ChunkLocation{}
	for k := range r.Columns {
		ret = append(ret, k)
	}
	for k := range r.Errs {
		if _, ok := r.Columns[k]; !ok {
			ret = append(ret, k)
		}
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Z != ret[j].Z {
			return ret[i].Z < ret[j].Z
		}
		return ret[i].X < ret[j].X
	})
	return ret
}

func (r *Region) ChunkColumn(cx, cz int) (render.ChunkColumn, error) {
	l := primitives.ChunkLocation{X: cx, Z: cz}
	if l.Region() != r.Loc {
		return nil, fmt.Errorf("chunk %s is outside of region %s", l, r.Loc)
	}
	if err, ok := r.Errs[l]; ok {
		return nil, err
	}
	c, ok := r.Columns[l]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *Region) Close() error {
	r.Closed.Add(1)
	return nil
}

// Storage is an in-memory chunkStorage.RegionStorage
type Storage struct {
	mu       sync.Mutex
	regions  map[primitives.RegionLocation]*Region
	openErrs map[primitives.RegionLocation]error
	vanished map[primitives.RegionLocation]bool
	opened   []primitives.RegionLocation
	ListErr  error
}

var _ chunkStorage.RegionStorage = (*Storage)(nil)

func NewStorage(regions ...*Region) *Storage {
	s := &Storage{
		regions:  map[primitives.RegionLocation]*Region{},
		openErrs: map[primitives.RegionLocation]error{},
		vanished: map[primitives.RegionLocation]bool{},
	}
	for _, r := range regions {
		s.regions[r.Loc] = r
	}
	return s
}

// FailOpen lists region at x, z but fails to open it with err
func (s *Storage) FailOpen(x, z int, err error) *Storage {
	s.openErrs[primitives.RegionLocation{X: x, Z: z}] = err
	return s
}

// Vanish lists region at x, z that is gone by the time it is opened
func (s *Storage) Vanish(x, z int) *Storage {
	s.vanished[primitives.RegionLocation{X: x, Z: z}] = true
	return s
}

func (s *Storage) ListRegions() ([]primitives.RegionLocation, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	ret := []primitives.RegionLocation{}
	for k := range s.regions {
		ret = append(ret, k)
	}
	for k := range s.openErrs {
		if _, ok := s.regions[k]; !ok {
			ret = append(ret, k)
		}
	}
	for k := range s.vanished {
		if _, ok := s.regions[k]; !ok {
			ret = append(ret, k)
		}
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Less(ret[j])
	})
	return ret, nil
}

func (s *Storage) OpenRegion(loc primitives.RegionLocation) (chunkStorage.Region, error) {
	s.mu.Lock()
	s.opened = append(s.opened, loc)
	s.mu.Unlock()
	if err, ok := s.openErrs[loc]; ok {
		return nil, &chunkStorage.RegionDecodeError{Region: loc, Err: err}
	}
	if r, ok := s.regions[loc]; ok && !s.vanished[loc] {
		return r, nil
	}
	return nil, fmt.Errorf("%w: %s", chunkStorage.ErrRegionNotFound, loc)
}

// Opened returns regions in the order they were opened
func (s *Storage) Opened() []primitives.RegionLocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]primitives.RegionLocation(nil), s.opened...)
}
