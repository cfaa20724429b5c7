// Command blockfinder scans a world for block identifiers, by default the ones
// missing from the color table, and reports how many chunks contain each.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/maxsupermanhd/WorldRaster/chunkStorage"
	"github.com/maxsupermanhd/WorldRaster/chunkStorage/filesystemChunkStorage"
	"github.com/maxsupermanhd/WorldRaster/primitives"
	"github.com/maxsupermanhd/WorldRaster/render"
	"github.com/shirou/gopsutil/cpu"
)

var (
	worldPath  = flag.String("world", "", "World directory")
	dname      = flag.String("dimension", "overworld", "Dimension")
	colorsPath = flag.String("colors", "", "Color table to check against, embedded one if empty")
	match      = flag.String("match", "", "Report blocks containing this instead of blocks without color")
	outfname   = flag.String("out", "", "Filename for writing results to, stdout if empty")
	threadsnum = flag.Int("threads", 0, "Thread count, logical CPU count if not positive")
)

func must(err error) {
	if err != nil {
		log.Fatalln(err)
	}
}

type blockLister interface {
	BlockNames() []string
}

// Finding is a block identifier and number of chunks it appears in
type Finding struct {
	Name   string
	Chunks int
}

type scanner struct {
	storage chunkStorage.RegionStorage
	filter  func(name string) bool
	chunks  atomic.Int64
	mu      sync.Mutex
	found   map[string]int
	errs    *multierror.Error
}

func (s *scanner) fail(err error) {
	s.mu.Lock()
	s.errs = multierror.Append(s.errs, err)
	s.mu.Unlock()
}

func (s *scanner) worker(jobs <-chan primitives.RegionLocation, wg *sync.WaitGroup) {
	defer wg.Done()
	for loc := range jobs {
		r, err := s.storage.OpenRegion(loc)
		if err != nil {
			s.fail(err)
			continue
		}
		local := map[string]int{}
		for _, c := range r.Chunks() {
			col, err := r.ChunkColumn(c.X, c.Z)
			if err != nil {
				s.fail(&chunkStorage.ColumnDecodeError{Region: loc, Chunk: c, Err: err})
				continue
			}
			s.chunks.Add(1)
			bl, ok := col.(blockLister)
			if !ok {
				continue
			}
			for _, n := range bl.BlockNames() {
				if s.filter(n) {
					local[n]++
				}
			}
		}
		if err := r.Close(); err != nil {
			log.Printf("Failed to close region %s: %v", loc, err)
		}
		s.mu.Lock()
		for k, v := range local {
			s.found[k] += v
		}
		s.mu.Unlock()
	}
}

// scan walks every chunk of storage, broken regions and chunks are
// collected and do not stop the scan
func scan(storage chunkStorage.RegionStorage, filter func(string) bool, threads int) ([]Finding, error) {
	regions, err := storage.ListRegions()
	if err != nil {
		return nil, err
	}
	s := &scanner{storage: storage, filter: filter, found: map[string]int{}}
	jobs := make(chan primitives.RegionLocation)
	wg := new(sync.WaitGroup)
	for w := 0; w < threads; w++ {
		wg.Add(1)
		go s.worker(jobs, wg)
	}
	starttime := time.Now()
	prevtime := time.Now()
	for i, loc := range regions {
		jobs <- loc
		if time.Since(prevtime) > 1*time.Second {
			log.Printf("Processed %6d regions of %6d (%06.2f%%), %d chunks",
				i, len(regions), float32(i)/float32(len(regions))*100, s.chunks.Load())
			prevtime = time.Now()
		}
	}
	close(jobs)
	wg.Wait()
	log.Printf("Processed %d regions (%d chunks) in %s", len(regions), s.chunks.Load(), time.Since(starttime).Round(time.Second))

	ret := make([]Finding, 0, len(s.found))
	for k, v := range s.found {
		ret = append(ret, Finding{Name: k, Chunks: v})
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Chunks != ret[j].Chunks {
			return ret[i].Chunks > ret[j].Chunks
		}
		return ret[i].Name < ret[j].Name
	})
	return ret, s.errs.ErrorOrNil()
}

func main() {
	flag.Parse()
	if *worldPath == "" {
		log.Fatalln("World directory not set")
	}
	storage, err := filesystemChunkStorage.NewFilesystemChunkStorage(*worldPath, *dname)
	must(err)
	filter := func(n string) bool {
		return strings.Contains(n, *match)
	}
	if *match == "" {
		table, err := render.LoadColorTable(*colorsPath)
		must(err)
		filter = func(n string) bool {
			_, ok := table.Lookup(n)
			return !ok
		}
	}
	threads := *threadsnum
	if threads <= 0 {
		threads, err = cpu.Counts(true)
		must(err)
	}
	found, err := scan(storage, filter, threads)
	if err != nil {
		log.Printf("Scan finished with errors: %v", err)
	}
	out := os.Stdout
	if *outfname != "" {
		out, err = os.Create(*outfname)
		must(err)
		defer out.Close()
	}
	for _, f := range found {
		fmt.Fprintf(out, "%8d %s\n", f.Chunks, f.Name)
	}
}
