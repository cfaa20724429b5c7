/*
	WorldRaster, top-down map renderer for block game worlds
	Copyright (C) 2022 Maxim Zhuchkov

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.

	Contact me via mail: q3.max.2011@yandex.ru or Discord: MaX#6717
*/

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"time"

	"github.com/maxsupermanhd/WorldRaster/chunkStorage/filesystemChunkStorage"
	"github.com/maxsupermanhd/WorldRaster/render/dispatchers"
	"github.com/maxsupermanhd/WorldRaster/render/renderers"

	humanize "github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shirou/gopsutil/mem"
)

var (
	BuildTime  = "00000000.000000"
	CommitHash = "0000000"
	GoVersion  = "0.0"
	GitTag     = "0.0"
)

type cliFlags struct {
	config    string
	out       string
	world     bool
	dimension string
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Println("Failed to load .env: " + err.Error())
	}
	var f cliFlags
	flag.StringVar(&f.config, "config", "", "config file (default $"+configEnvName+" or "+defaultConfigPath+")")
	flag.StringVar(&f.out, "out", "", "output directory, overrides output.dir")
	flag.BoolVar(&f.world, "world", false, "draw everything onto a single world image")
	flag.StringVar(&f.dimension, "dimension", "", "dimension to render, overrides dimension")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <world directory>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	os.Exit(run(flag.Arg(0), f))
}

func run(worldPath string, f cliFlags) int {
	cfg, err := loadConfig(configPath(f.config))
	if err != nil {
		log.Println("Error loading config file: " + err.Error())
		return 1
	}
	runID := uuid.New()
	setupLogging(cfg, runID)
	buildinfo, ok := debug.ReadBuildInfo()
	if ok {
		GoVersion = buildinfo.GoVersion
	}
	log.Println()
	log.Println("WorldRaster is starting up...")
	log.Printf("Built %s, Ver %s (%s) with %s, run %s", BuildTime, GitTag, CommitHash, GoVersion, runID)
	if virtmem, err := mem.VirtualMemory(); err == nil {
		log.Printf("Host memory %s total, %s available", humanize.Bytes(virtmem.Total), humanize.Bytes(virtmem.Available))
	}

	opts, err := dispatcherOptions(cfg, f)
	if err != nil {
		log.Println("Bad output config: " + err.Error())
		return 1
	}
	dimension := f.dimension
	if dimension == "" {
		dimension = cfg.GetDSString("overworld", "dimension")
	}
	storage, err := filesystemChunkStorage.NewFilesystemChunkStorage(worldPath, dimension)
	if err != nil {
		log.Println("Failed to open world: " + err.Error())
		return 1
	}
	if name, err := storage.LevelName(); err == nil {
		log.Printf("World %q, dimension %s", name, storage.Dimension)
	} else {
		log.Printf("World at %s has no readable level.dat (%v), dimension %s", worldPath, err, storage.Dimension)
	}
	if dims, err := storage.ListDimensions(); err == nil {
		log.Printf("Dimensions present: %s", strings.Join(dims, ", "))
	}
	if total, err := storage.GetChunksCount(); err == nil {
		log.Printf("Dimension holds %s chunks", humanize.Comma(int64(total)))
	} else {
		log.Println("Failed to count chunks: " + err.Error())
	}

	renderer, err := renderers.ConstructRenderer(cfg.SubTree("render"))
	if err != nil {
		log.Println("Failed to load color table: " + err.Error())
		return 1
	}
	err = os.MkdirAll(opts.OutputDir, 0764)
	if err != nil {
		log.Println("Failed to create output directory: " + err.Error())
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	started := time.Now()
	d := dispatchers.NewRegionDispatcher(storage, renderer, opts, log.Default())
	err = d.Run(ctx)
	stats := d.Stats()
	size, sizeErr := storage.GetChunksSize()
	if sizeErr != nil {
		log.Println("Failed to measure region files: " + sizeErr.Error())
	}
	log.Printf("Rendered %s regions (%s chunks, %s of region data) in %s",
		humanize.Comma(stats.Regions), humanize.Comma(stats.Chunks), humanize.Bytes(size),
		time.Since(started).Round(time.Millisecond))
	if err != nil {
		logCollected("Unreadable region", d.RegionErrors())
		logCollected("Broken chunks in region", d.ColumnErrors())
		log.Println("Rendering failed: " + err.Error())
		return 1
	}
	return 0
}

func logCollected(what string, err error) {
	var agg *dispatchers.AggregateError
	if !errors.As(err, &agg) {
		return
	}
	for _, e := range agg.Errors {
		log.Printf("%s %s: %v", what, e.Region, e.Err)
	}
}
