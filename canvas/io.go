package canvas

import (
	"image"
	"image/png"
	"os"
	"path"

	"github.com/nfnt/resize"
)

// SavePNG writes img to storePath creating parent directories
func SavePNG(img image.Image, storePath string) error {
	err := os.MkdirAll(path.Dir(storePath), 0764)
	if err != nil {
		return err
	}
	file, err := os.Create(storePath)
	if err != nil {
		return err
	}
	err = png.Encode(file, img)
	if err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Overview downscales img to fit maxSize keeping aspect ratio, smaller images are returned as is
func Overview(img image.Image, maxSize uint) image.Image {
	return resize.Thumbnail(maxSize, maxSize, img, resize.NearestNeighbor)
}
