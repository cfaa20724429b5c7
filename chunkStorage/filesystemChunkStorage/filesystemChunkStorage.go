package filesystemChunkStorage

import (
	"fmt"
	"os"

	"github.com/maxsupermanhd/WorldRaster/chunkStorage"
)

// FilesystemChunkStorage reads regions of one dimension straight from a world save directory
type FilesystemChunkStorage struct {
	Root      string
	Dimension string
}

var (
	_ chunkStorage.RegionStorage = (*FilesystemChunkStorage)(nil)
	_ chunkStorage.StorageStats  = (*FilesystemChunkStorage)(nil)
)

func NewFilesystemChunkStorage(root, dimension string) (*FilesystemChunkStorage, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("specified root %s points to file, not directory with world", root)
	}
	dim, err := NormalizeDimension(dimension)
	if err != nil {
		return nil, err
	}
	return &FilesystemChunkStorage{
		Root:      root,
		Dimension: dim,
	}, nil
}

// GetChunksCount is the number of chunks stored in region files of the dimension
func (s *FilesystemChunkStorage) GetChunksCount() (uint64, error) {
	return s.countChunks()
}

// GetChunksSize is the total size of region files of the dimension in bytes
func (s *FilesystemChunkStorage) GetChunksSize() (uint64, error) {
	return s.regionsSize()
}
