package dispatchers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/maxsupermanhd/WorldRaster/canvas"
	"github.com/maxsupermanhd/WorldRaster/chunkStorage"
	"github.com/maxsupermanhd/WorldRaster/primitives"
	"golang.org/x/sync/errgroup"
)

type RegionRenderer interface {
	RenderRegion(ctx context.Context, cur, prev chunkStorage.Region) (*canvas.Tile, int, error)
}

type OutputMode int

const (
	// r.X.Z.png per region
	OutputTiles OutputMode = iota
	// single world.png
	OutputWorld
)

func ParseOutputMode(s string) (OutputMode, error) {
	switch s {
	case "", "tiles":
		return OutputTiles, nil
	case "world":
		return OutputWorld, nil
	default:
		return OutputTiles, fmt.Errorf("unknown output mode %q", s)
	}
}

const (
	WorldImageName         = "world.png"
	WorldOverviewImageName = "world_overview.png"
)

type Options struct {
	OutputDir string
	Mode      OutputMode
	// render workers, values below 1 mean 1
	Threads int
	// longest side of world overview, 0 disables it
	OverviewSize uint
}

type Stats struct {
	Regions int64
	Chunks  int64
}

type renderTask struct {
	ctx       context.Context
	cur, prev chunkStorage.Region
	result    chan error
}

// RegionDispatcher renders every region of a storage.
// Regions sharing X coordinate form a group processed in ascending Z order so
// each region can borrow the southern edge of the one before it, groups run
// concurrently and share a fixed pool of render workers.
type RegionDispatcher struct {
	storage    chunkStorage.RegionStorage
	renderer   RegionRenderer
	opts       Options
	l          *log.Logger
	tasks      chan renderTask
	regionErrs *KeyedErrors
	columnErrs *KeyedErrors
	world      *canvas.World
	regions    atomic.Int64
	chunks     atomic.Int64
}

func NewRegionDispatcher(storage chunkStorage.RegionStorage, renderer RegionRenderer, opts Options, logger *log.Logger) *RegionDispatcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.Threads < 1 {
		opts.Threads = 1
	}
	return &RegionDispatcher{
		storage:    storage,
		renderer:   renderer,
		opts:       opts,
		l:          logger,
		tasks:      make(chan renderTask),
		regionErrs: NewKeyedErrors(),
		columnErrs: NewKeyedErrors(),
		world:      canvas.NewWorld(),
	}
}

// groupRegions splits regions by X, groups are ordered by X and regions inside by Z
func groupRegions(regions []primitives.RegionLocation) [][]primitives.RegionLocation {
	byX := map[int][]primitives.RegionLocation{}
	for _, r := range regions {
		byX[r.X] = append(byX[r.X], r)
	}
	xs := make([]int, 0, len(byX))
	for x := range byX {
		xs = append(xs, x)
	}
	sort.Ints(xs)
	ret := make([][]primitives.RegionLocation, 0, len(xs))
	for _, x := range xs {
		g := byX[x]
		sort.Slice(g, func(i, j int) bool {
			return g[i].Z < g[j].Z
		})
		ret = append(ret, g)
	}
	return ret
}

// Run blocks until every region is processed or a fatal error happens.
// Fatal errors are returned as is and leave no world image, otherwise the
// world image is saved and region open errors take precedence over broken
// chunk errors, both as *AggregateError.
func (d *RegionDispatcher) Run(ctx context.Context) error {
	regions, err := d.storage.ListRegions()
	if err != nil {
		return fmt.Errorf("failed to get list of regions: %w", err)
	}
	groups := groupRegions(regions)
	d.l.Printf("Rendering %d regions in %d groups with %d workers", len(regions), len(groups), d.opts.Threads)

	var wg sync.WaitGroup
	closeChan := make(chan struct{})
	closeFn := sync.OnceFunc(func() {
		close(closeChan)
	})
	wg.Add(d.opts.Threads)
	for i := 0; i < d.opts.Threads; i++ {
		go func() {
			d.workerRender(closeChan)
			wg.Done()
		}()
	}
	defer func() {
		closeFn()
		wg.Wait()
	}()

	g, gctx := errgroup.WithContext(ctx)
	for _, group := range groups {
		group := group
		g.Go(func() error {
			return d.processGroup(gctx, group)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// world image holds every region that rendered, recorded failures are only missing from it
	if d.opts.Mode == OutputWorld {
		if err := d.saveWorld(); err != nil {
			return err
		}
	}
	if err := d.regionErrs.Err(); err != nil {
		return err
	}
	return d.columnErrs.Err()
}

func (d *RegionDispatcher) processGroup(ctx context.Context, group []primitives.RegionLocation) error {
	var prev chunkStorage.Region
	closePrev := func() {
		if prev == nil {
			return
		}
		if err := prev.Close(); err != nil {
			d.l.Printf("Failed to close region %s: %v", prev.Location(), err)
		}
	}
	defer closePrev()
	for _, loc := range group {
		if err := ctx.Err(); err != nil {
			return err
		}
		cur, err := d.storage.OpenRegion(loc)
		if err != nil {
			if errors.Is(err, chunkStorage.ErrRegionNotFound) {
				return err
			}
			d.l.Printf("Failed to open region %s, skipping rest of column %d: %v", loc, loc.X, err)
			d.regionErrs.Set(loc, err)
			return nil
		}
		err = d.submit(ctx, cur, prev)
		closePrev()
		prev = cur
		if err != nil {
			var cde *chunkStorage.ColumnDecodeError
			if !errors.As(err, &cde) {
				return err
			}
			d.l.Printf("Region %s not saved: %v", loc, err)
			d.columnErrs.Set(loc, err)
		}
	}
	return nil
}

// submit hands region to a render worker and waits for it to finish,
// regions stay in use until then even if ctx is cancelled
func (d *RegionDispatcher) submit(ctx context.Context, cur, prev chunkStorage.Region) error {
	res := make(chan error, 1)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case d.tasks <- renderTask{ctx: ctx, cur: cur, prev: prev, result: res}:
	}
	return <-res
}

func (d *RegionDispatcher) workerRender(close <-chan struct{}) {
	for {
		select {
		case <-close:
			return
		case t := <-d.tasks:
			t.result <- d.render(t)
		}
	}
}

func (d *RegionDispatcher) render(t renderTask) error {
	if err := t.ctx.Err(); err != nil {
		return err
	}
	loc := t.cur.Location()
	d.l.Printf("processing region %d, %d", loc.X, loc.Z)
	tile, chunks, err := d.renderer.RenderRegion(t.ctx, t.cur, t.prev)
	if err != nil {
		return err
	}
	if err := t.ctx.Err(); err != nil {
		return err
	}
	switch d.opts.Mode {
	case OutputWorld:
		d.world.Insert(tile)
	default:
		p := path.Join(d.opts.OutputDir, fmt.Sprintf("r.%d.%d.png", loc.X, loc.Z))
		if err := canvas.SavePNG(tile.Image(), p); err != nil {
			return fmt.Errorf("failed to save region %s image: %w", loc, err)
		}
	}
	d.regions.Add(1)
	d.chunks.Add(int64(chunks))
	return nil
}

func (d *RegionDispatcher) saveWorld() error {
	b := d.world.Bounds()
	if b.Empty() {
		d.l.Println("Nothing was drawn, not saving world image")
		return nil
	}
	img := d.world.Image()
	p := path.Join(d.opts.OutputDir, WorldImageName)
	d.l.Printf("Saving %dx%d world image to %s", b.Dx(), b.Dy(), p)
	if err := canvas.SavePNG(img, p); err != nil {
		return fmt.Errorf("failed to save world image: %w", err)
	}
	if d.opts.OverviewSize == 0 {
		return nil
	}
	p = path.Join(d.opts.OutputDir, WorldOverviewImageName)
	if err := canvas.SavePNG(canvas.Overview(img, d.opts.OverviewSize), p); err != nil {
		return fmt.Errorf("failed to save world overview: %w", err)
	}
	return nil
}

func (d *RegionDispatcher) Stats() Stats {
	return Stats{
		Regions: d.regions.Load(),
		Chunks:  d.chunks.Load(),
	}
}

// RegionErrors returns nil or *AggregateError of regions that could not be opened
func (d *RegionDispatcher) RegionErrors() error {
	return d.regionErrs.Err()
}

// ColumnErrors returns nil or *AggregateError of regions with broken chunks
func (d *RegionDispatcher) ColumnErrors() error {
	return d.columnErrs.Err()
}

func (d *RegionDispatcher) World() *canvas.World {
	return d.world
}
