package filesystemChunkStorage

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/Tnze/go-mc/save"
	"github.com/klauspost/compress/gzip"
)

const levelFileName = "level.dat"

// LevelName reads world name from level.dat, empty if there is no level.dat
func (s *FilesystemChunkStorage) LevelName() (string, error) {
	f, err := os.Open(path.Join(s.Root, levelFileName))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer f.Close()
	gf, err := gzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", levelFileName, err)
	}
	defer gf.Close()
	d, err := save.ReadLevel(gf)
	if err != nil {
		return "", fmt.Errorf("%s: %w", levelFileName, err)
	}
	return d.Data.LevelName, nil
}
