// Package tile provides the tile archive interfaces shared by the storage
// packages. Archives store opaque tile payloads keyed by grid index.
package tile

import "fmt"

// ID is the index of a tile in an image's tile grid.
type ID struct {
	X int
	Y int
}

func (t ID) String() string {
	return fmt.Sprintf("%d/%d", t.X, t.Y)
}

// Writer defines an interface for writing tiles to an archive.
type Writer interface {
	// WriteTile writes a single tile to the archive.
	WriteTile(tileID ID, tileData []byte) error

	// Finalize completes the writing process: flushes buffers, writes header and indices.
	// It must be called before closing the Writer.
	Finalize() error
}

type Reader interface {
	// ReadTile reads a single tile from the archive.
	// It returns the tile data or an error if the tile cannot be read.
	// If the tile does not exist, it returns an empty slice with no error.
	ReadTile(tileID ID) ([]byte, error)
}

type Visitor interface {
	// VisitTiles visits all tiles in the archive, calling the visitor for each.
	// It returns an error if visiting fails.
	// Order of tiles, upfront cpu and memory consumption are implementation-defined.
	VisitTiles(visitor func(ID, []byte) error) error
}

// MetadataReader is implemented by archives that store image metadata next
// to the tiles.
type MetadataReader interface {
	ReadMetadata() ([]byte, error)
}

// Location represents the absolute location of tile data inside an archive file.
type Location struct {
	Offset uint64
	Length uint64
}

type LocationReader interface {
	ReadLocation(tileID ID) (Location, error)
}

type LocationVisitor interface {
	VisitLocations(visitor func(ID, Location) error) error
}
