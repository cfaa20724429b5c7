package chunkStorage

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/Tnze/go-mc/nbt"
	"github.com/Tnze/go-mc/save"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// compression byte preceding chunk NBT in region sectors
const (
	CompressionGzip byte = 1
	CompressionZlib byte = 2
	CompressionNone byte = 3
	CompressionLZ4  byte = 4

	compressionExternal byte = 128
)

var (
	ErrEmptyChunk          = errors.New("empty chunk data")
	ErrUnknownCompression  = errors.New("unknown compression")
	ErrExternalChunkStored = errors.New("chunk is stored in external .mcc file")
)

// Chunk is the subset of chunk NBT needed to draw it from above
type Chunk struct {
	XPos       int32          `nbt:"xPos"`
	YPos       int32          `nbt:"yPos"`
	ZPos       int32          `nbt:"zPos"`
	Status     string         `nbt:"Status"`
	Heightmaps Heightmaps     `nbt:"Heightmaps"`
	Sections   []ChunkSection `nbt:"sections"`
}

// IsFull reports whether generation of the chunk is finished,
// chunks without a status are taken as finished
func (c *Chunk) IsFull() bool {
	switch c.Status {
	case "", "full", "minecraft:full":
		return true
	default:
		return false
	}
}

type Heightmaps struct {
	WorldSurface []uint64 `nbt:"WORLD_SURFACE"`
}

type ChunkSection struct {
	Y           int8        `nbt:"Y"`
	BlockStates BlockStates `nbt:"block_states"`
}

type BlockStates struct {
	Palette []save.BlockState `nbt:"palette"`
	Data    []uint64          `nbt:"data"`
}

// DecodeChunk decompresses and parses chunk sector payload (compression byte first)
func DecodeChunk(d []byte) (*Chunk, error) {
	if len(d) < 1 {
		return nil, ErrEmptyChunk
	}
	if d[0]&compressionExternal != 0 {
		return nil, ErrExternalChunkStored
	}
	var r io.Reader = bytes.NewReader(d[1:])
	var err error
	switch d[0] {
	case CompressionGzip:
		r, err = gzip.NewReader(r)
	case CompressionZlib:
		r, err = zlib.NewReader(r)
	case CompressionNone:
	default:
		err = fmt.Errorf("%w %d", ErrUnknownCompression, d[0])
	}
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompressing chunk: %w", err)
	}
	ret := &Chunk{}
	if err := nbt.Unmarshal(raw, ret); err != nil {
		return nil, fmt.Errorf("parsing chunk nbt: %w", err)
	}
	return ret, nil
}
