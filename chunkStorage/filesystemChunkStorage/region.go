package filesystemChunkStorage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Tnze/go-mc/save/region"
	"github.com/hashicorp/go-multierror"
	"github.com/maxsupermanhd/WorldRaster/chunkStorage"
	"github.com/maxsupermanhd/WorldRaster/primitives"
	"github.com/maxsupermanhd/WorldRaster/render"
)

var (
	regionFnameRegexp = regexp.MustCompile(`^r\.(-?\d+)\.(-?\d+)\.mca$`)
)

func (s *FilesystemChunkStorage) getRegionPath(loc primitives.RegionLocation) string {
	return path.Join(s.RegionFolder(), fmt.Sprintf("r.%d.%d.mca", loc.X, loc.Z))
}

func ExtractRegionPath(fname string, xx, zz *int) bool {
	r := regionFnameRegexp.FindAllStringSubmatch(fname, -1)
	if len(r) != 1 {
		return false
	}
	if len(r[0]) != 3 {
		return false
	}
	var err error
	var x, z int
	x, err = strconv.Atoi(r[0][1])
	if err != nil {
		return false
	}
	z, err = strconv.Atoi(r[0][2])
	if err != nil {
		return false
	}
	if xx != nil {
		*xx = x
	}
	if zz != nil {
		*zz = z
	}
	return true
}

// ListRegions returns coordinates of region files sorted by X then Z,
// missing region folder is an empty world and not an error
func (s *FilesystemChunkStorage) ListRegions() ([]primitives.RegionLocation, error) {
	d, err := os.ReadDir(s.RegionFolder())
	if err != nil {
		if os.IsNotExist(err) {
			return []primitives.RegionLocation{}, nil
		}
		return nil, err
	}
	ret := []primitives.RegionLocation{}
	for _, i := range d {
		if i.IsDir() {
			continue
		}
		var loc primitives.RegionLocation
		if ExtractRegionPath(i.Name(), &loc.X, &loc.Z) {
			ret = append(ret, loc)
		}
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Less(ret[j])
	})
	return ret, nil
}

func (s *FilesystemChunkStorage) OpenRegion(loc primitives.RegionLocation) (chunkStorage.Region, error) {
	p := s.getRegionPath(loc)
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", chunkStorage.ErrRegionNotFound, p)
		}
		return nil, &chunkStorage.RegionDecodeError{Region: loc, Err: err}
	}
	reg, err := region.Open(p)
	if err != nil {
		return nil, &chunkStorage.RegionDecodeError{Region: loc, Err: err}
	}
	return &Region{loc: loc, reg: reg}, nil
}

// Region is an opened .mca file
type Region struct {
	loc primitives.RegionLocation
	reg *region.Region
}

func (r *Region) Location() primitives.RegionLocation {
	return r.loc
}

func (r *Region) Chunks() []primitives.ChunkLocation {
	ret := []primitives.ChunkLocation{}
	for z := 0; z < primitives.RegionChunks; z++ {
		for x := 0; x < primitives.RegionChunks; x++ {
			if r.reg.ExistSector(x, z) {
				ret = append(ret, primitives.ChunkLocation{
					X: r.loc.X*primitives.RegionChunks + x,
					Z: r.loc.Z*primitives.RegionChunks + z,
				})
			}
		}
	}
	return ret
}

// ChunkColumn decodes chunk at absolute cx, cz. Chunks that are not stored or
// whose generation is not finished are returned as nil without error.
func (r *Region) ChunkColumn(cx, cz int) (render.ChunkColumn, error) {
	loc := primitives.ChunkLocation{X: cx, Z: cz}
	if loc.Region() != r.loc {
		return nil, fmt.Errorf("chunk %s is outside of region %s", loc, r.loc)
	}
	x, z := loc.InRegion()
	if !r.reg.ExistSector(x, z) {
		return nil, nil
	}
	d, err := r.reg.ReadSector(x, z)
	if err != nil {
		return nil, err
	}
	c, err := chunkStorage.DecodeChunk(d)
	if err != nil {
		return nil, err
	}
	if !c.IsFull() {
		return nil, nil
	}
	col, err := chunkStorage.NewColumn(c)
	if err != nil {
		return nil, err
	}
	return col, nil
}

func (r *Region) Close() error {
	return r.reg.Close()
}

// countChunks sums occupied header entries of every region file, regions are read concurrently
func (s *FilesystemChunkStorage) countChunks() (uint64, error) {
	regions, err := s.ListRegions()
	if err != nil {
		return 0, err
	}
	var (
		wg       sync.WaitGroup
		total    atomic.Int64
		errs     *multierror.Error
		errsLock sync.Mutex
	)
	for _, loc := range regions {
		wg.Add(1)
		go func(fname string) {
			defer wg.Done()
			n, err := CountRegionChunks(fname)
			if err != nil {
				errsLock.Lock()
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", fname, err))
				errsLock.Unlock()
				return
			}
			total.Add(int64(n))
		}(s.getRegionPath(loc))
	}
	wg.Wait()
	return uint64(total.Load()), errs.ErrorOrNil()
}

// CountRegionChunks counts chunks with a location entry in the region header.
// Missing or truncated files hold no chunks.
func CountRegionChunks(fname string) (int, error) {
	f, err := os.Open(fname)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	defer f.Close()
	var locations [primitives.RegionChunks * primitives.RegionChunks]uint32
	err = binary.Read(f, binary.BigEndian, &locations)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	count := 0
	for _, l := range locations {
		// upper 3 bytes are sector offset, lowest is sector count
		if l>>8 != 0 {
			count++
		}
	}
	return count, nil
}

func (s *FilesystemChunkStorage) regionsSize() (uint64, error) {
	regions, err := s.ListRegions()
	if err != nil {
		return 0, err
	}
	var (
		total uint64
		errs  *multierror.Error
	)
	for _, loc := range regions {
		fi, err := os.Stat(s.getRegionPath(loc))
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		total += uint64(fi.Size())
	}
	return total, errs.ErrorOrNil()
}
