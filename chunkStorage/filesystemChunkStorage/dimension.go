package filesystemChunkStorage

import (
	"fmt"
	"os"
	"path"
	"strings"
)

const (
	DimensionOverworld = "overworld"
	DimensionNether    = "the_nether"
	DimensionEnd       = "the_end"
)

// NormalizeDimension accepts vanilla dimension names with or without
// namespace and custom namespace:name dimensions
func NormalizeDimension(d string) (string, error) {
	switch d {
	case "", DimensionOverworld, "minecraft:overworld":
		return DimensionOverworld, nil
	case DimensionNether, "minecraft:the_nether", "nether":
		return DimensionNether, nil
	case DimensionEnd, "minecraft:the_end", "end":
		return DimensionEnd, nil
	}
	ns, name, ok := strings.Cut(d, ":")
	if !ok {
		ns, name = "minecraft", d
	}
	if ns == "" || name == "" || strings.ContainsAny(d, `/\`) || strings.Contains(d, "..") {
		return "", fmt.Errorf("invalid dimension name %q", d)
	}
	return ns + ":" + name, nil
}

// from Path getSaveDirectory(RegistryKey<World> worldRef, Path worldDirectory)
func getRegionFolder(root, dimension string) string {
	switch dimension {
	case DimensionOverworld:
		return path.Join(root, "region")
	case DimensionEnd:
		return path.Join(root, "DIM1", "region")
	case DimensionNether:
		return path.Join(root, "DIM-1", "region")
	default:
		ns, name, _ := strings.Cut(dimension, ":")
		return path.Join(root, "dimensions", ns, name, "region")
	}
}

func (s *FilesystemChunkStorage) RegionFolder() string {
	return getRegionFolder(s.Root, s.Dimension)
}

func dirExists(p string) bool {
	fi, err := os.Stat(p)
	if err == nil {
		return fi.IsDir()
	} else {
		return false
	}
}

// ListDimensions returns dimensions that have a region folder in the world
func (s *FilesystemChunkStorage) ListDimensions() ([]string, error) {
	dims := []string{}
	for _, d := range []string{DimensionOverworld, DimensionNether, DimensionEnd} {
		if dirExists(getRegionFolder(s.Root, d)) {
			dims = append(dims, d)
		}
	}
	nss, err := os.ReadDir(path.Join(s.Root, "dimensions"))
	if err != nil {
		if os.IsNotExist(err) {
			return dims, nil
		}
		return dims, err
	}
	for _, ns := range nss {
		if !ns.IsDir() {
			continue
		}
		names, err := os.ReadDir(path.Join(s.Root, "dimensions", ns.Name()))
		if err != nil {
			return dims, err
		}
		for _, n := range names {
			d := ns.Name() + ":" + n.Name()
			if n.IsDir() && dirExists(getRegionFolder(s.Root, d)) {
				dims = append(dims, d)
			}
		}
	}
	return dims, nil
}
