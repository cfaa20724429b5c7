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
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/maxsupermanhd/WorldRaster/render/dispatchers"
	"github.com/maxsupermanhd/lac"
	"github.com/shirou/gopsutil/cpu"
)

const (
	configEnvName     = "WORLDRASTER_CONFIG"
	defaultConfigPath = "config.json"
)

// configPath picks flag value, then environment, then default
func configPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv(configEnvName); p != "" {
		return p
	}
	return defaultConfigPath
}

// loadConfig reads JSON config, missing file means every key takes its default
func loadConfig(path string) (*lac.Conf, error) {
	cfg, err := lac.FromFileJSON(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Config %s not found, using defaults", path)
		return lac.NewConf(), nil
	}
	return cfg, err
}

func dispatcherOptions(cfg *lac.Conf, f cliFlags) (dispatchers.Options, error) {
	opts := dispatchers.Options{
		OutputDir: f.out,
		Threads:   renderThreads(cfg.GetDSInt(0, "render", "threads")),
	}
	if opts.OutputDir == "" {
		opts.OutputDir = cfg.GetDSString("out", "output", "dir")
	}
	if f.world {
		opts.Mode = dispatchers.OutputWorld
	} else {
		m, err := dispatchers.ParseOutputMode(cfg.GetDSString("tiles", "output", "mode"))
		if err != nil {
			return opts, err
		}
		opts.Mode = m
	}
	overview := cfg.GetDSInt(0, "output", "overview_size")
	if overview < 0 {
		return opts, fmt.Errorf("negative output.overview_size %d", overview)
	}
	opts.OverviewSize = uint(overview)
	return opts, nil
}

// renderThreads falls back to logical CPU count when configured value is not positive
func renderThreads(configured int) int {
	if configured > 0 {
		return configured
	}
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		log.Printf("Failed to count CPUs (%v), rendering with a single worker", err)
		return 1
	}
	return n
}
