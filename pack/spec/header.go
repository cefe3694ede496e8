package spec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
)

type Compression uint8

const (
	CompressionUnknown Compression = iota
	CompressionNone
	CompressionGzip
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// Header is the fixed-size record at the start of a pack file. Offsets are
// absolute; the tile directory addresses tiles relative to TileDataOffset.
type Header struct {
	HeaderMagic         uint64
	MetadataOffset      uint64
	MetadataLength      uint64
	DirectoryOffset     uint64
	DirectoryLength     uint64
	TileDataOffset      uint64
	TileDataLength      uint64
	TileEntriesCount    uint64
	TileContentsCount   uint64
	GridMinX            int32
	GridMinY            int32
	GridWidth           uint32
	GridHeight          uint32
	InternalCompression Compression
	TileCompression     Compression
}

const (
	headerMagic     uint64 = 0x7473615262694C // "LibRast"
	headerMagicMask uint64 = 1<<56 - 1
	HeaderMagicV1   uint64 = headerMagic | (0x01 << 56)

	HeaderLength = 90
)

var ErrInvalidHeader = errors.New("invalid file header")
var ErrInvalidVersion = errors.New("invalid version")

// Grid returns the tile index range covered by the directory.
func (h *Header) Grid() image.Rectangle {
	minX, minY := int(h.GridMinX), int(h.GridMinY)
	return image.Rect(minX, minY, minX+int(h.GridWidth), minY+int(h.GridHeight))
}

func (h *Header) SetGrid(grid image.Rectangle) {
	h.GridMinX = int32(grid.Min.X)
	h.GridMinY = int32(grid.Min.Y)
	h.GridWidth = uint32(grid.Dx())
	h.GridHeight = uint32(grid.Dy())
}

func SerializeHeader(header *Header) []byte {
	var buffer bytes.Buffer
	writer := bufio.NewWriter(&buffer)
	binary.Write(writer, binary.LittleEndian, header)
	writer.Flush()
	return buffer.Bytes()
}

func DeserializeHeader(buffer []byte) (*Header, error) {
	header := Header{}
	if err := binary.Read(bytes.NewReader(buffer), binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	if header.HeaderMagic&headerMagicMask != headerMagic {
		return nil, ErrInvalidHeader
	}
	if header.HeaderMagic != HeaderMagicV1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, header.HeaderMagic>>56)
	}
	return &header, nil
}
