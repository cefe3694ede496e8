// Package index provides a flat binary index of tile locations, meant to be
// read by tools that address tile payloads in an archive file directly.
package index

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/eak1mov/go-libraster/tile"
)

var ErrInvalidIndex = errors.New("libraster: invalid index data")

// Item maps a tile to its payload location. Records are little-endian and
// fixed-size.
type Item struct {
	X      int32
	Y      int32
	Length uint32
	Offset uint64
}

func NewItem(tileID tile.ID, location tile.Location) Item {
	return Item{
		X:      int32(tileID.X),
		Y:      int32(tileID.Y),
		Length: uint32(location.Length),
		Offset: location.Offset,
	}
}

func (i Item) TileID() tile.ID {
	return tile.ID{X: int(i.X), Y: int(i.Y)}
}

func (i Item) TileLocation() tile.Location {
	return tile.Location{Offset: i.Offset, Length: uint64(i.Length)}
}

// Collect reads the locations of every tile in r.
func Collect(r tile.LocationVisitor) ([]Item, error) {
	items := make([]Item, 0)
	err := r.VisitLocations(func(tileID tile.ID, location tile.Location) error {
		items = append(items, NewItem(tileID, location))
		return nil
	})
	return items, err
}

func WriteAll(items []Item, writer io.Writer) error {
	return binary.Write(writer, binary.LittleEndian, items)
}

func ReadAll(indexData []byte) ([]Item, error) {
	itemSize := binary.Size(Item{})
	if len(indexData)%itemSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrInvalidIndex, len(indexData), itemSize)
	}
	items := make([]Item, len(indexData)/itemSize)

	if err := binary.Read(bytes.NewReader(indexData), binary.LittleEndian, items); err != nil {
		return nil, err
	}

	return items, nil
}
