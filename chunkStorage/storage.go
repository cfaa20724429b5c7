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

package chunkStorage

import (
	"errors"
	"fmt"

	"github.com/maxsupermanhd/WorldRaster/primitives"
	"github.com/maxsupermanhd/WorldRaster/render"
)

var ErrRegionNotFound = errors.New("region not found")

// RegionDecodeError is returned when region container can not be opened or parsed
type RegionDecodeError struct {
	Region primitives.RegionLocation
	Err    error
}

func (e *RegionDecodeError) Error() string {
	return fmt.Sprintf("failed to open region %s: %v", e.Region, e.Err)
}

func (e *RegionDecodeError) Unwrap() error {
	return e.Err
}

// ColumnDecodeError is returned when one chunk column inside a region is broken
type ColumnDecodeError struct {
	Region primitives.RegionLocation
	Chunk  primitives.ChunkLocation
	Err    error
}

func (e *ColumnDecodeError) Error() string {
	return fmt.Sprintf("failed to decode chunk %s of region %s: %v", e.Chunk, e.Region, e.Err)
}

func (e *ColumnDecodeError) Unwrap() error {
	return e.Err
}

// Region is an opened region, only used by one goroutine at a time.
type Region interface {
	Location() primitives.RegionLocation
	// present chunks ordered by Z then X
	Chunks() []primitives.ChunkLocation
	// absolute chunk coordinates, nil column and nil error if chunk is absent
	ChunkColumn(cx, cz int) (render.ChunkColumn, error)
	Close() error
}

// RegionStorage is a source of regions of a single dimension.
type RegionStorage interface {
	ListRegions() ([]primitives.RegionLocation, error)
	// ErrRegionNotFound if listed region is gone
	OpenRegion(loc primitives.RegionLocation) (Region, error)
}

// StorageStats is optionally implemented by storages that can report their size
type StorageStats interface {
	GetChunksCount() (uint64, error)
	GetChunksSize() (uint64, error)
}
