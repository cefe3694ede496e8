// Package pack reads and writes raster tile archives in a single file.
//
// A pack file holds a fixed header, the image metadata, tile payloads and a
// compressed directory that maps Hilbert curve codes over the tile grid to
// payload locations. Runs of tiles sharing a payload take one directory
// entry.
package pack

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/eak1mov/go-libraster/pack/spec"
	"github.com/eak1mov/go-libraster/tile"
)

// FileAccessFunc reads length bytes at offset.
type FileAccessFunc = func(offset, length uint64) ([]byte, error)

// Reader implements tile.Reader, tile.Visitor and tile.LocationReader for
// pack files. The directory is read once when the Reader is created.
type Reader struct {
	fileAccess FileAccessFunc
	fileCloser func() error
	header     *spec.Header
	curve      *tile.Curve // nil for an empty archive
	entries    []spec.Entry
}

var (
	_ tile.Reader          = (*Reader)(nil)
	_ tile.Visitor         = (*Reader)(nil)
	_ tile.MetadataReader  = (*Reader)(nil)
	_ tile.LocationReader  = (*Reader)(nil)
	_ tile.LocationVisitor = (*Reader)(nil)
)

// NewFileReader opens the pack file at filePath.
//
// The returned Reader must be closed after use.
func NewFileReader(filePath string) (*Reader, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	fileAccess := func(offset uint64, length uint64) ([]byte, error) {
		buffer := make([]byte, length)
		if _, err := file.ReadAt(buffer, int64(offset)); err != nil {
			return nil, err
		}
		return buffer, nil
	}
	r, err := newReader(fileAccess, file.Close)
	if err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

func NewReader(fileAccess FileAccessFunc) (*Reader, error) {
	return newReader(fileAccess, func() error { return nil })
}

func newReader(fileAccess FileAccessFunc, fileCloser func() error) (*Reader, error) {
	headerData, err := fileAccess(0, spec.HeaderLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", spec.ErrInvalidHeader, err)
	}
	header, err := spec.DeserializeHeader(headerData)
	if err != nil {
		return nil, err
	}

	r := &Reader{fileAccess: fileAccess, fileCloser: fileCloser, header: header}

	dirCompressed, err := fileAccess(header.DirectoryOffset, header.DirectoryLength)
	if err != nil {
		return nil, err
	}
	dirData, err := spec.Decompress(dirCompressed, header.InternalCompression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", spec.ErrInvalidDirectory, err)
	}
	if r.entries, err = spec.DeserializeDirectory(dirData); err != nil {
		return nil, err
	}

	if len(r.entries) > 0 {
		if r.curve, err = tile.NewCurve(header.Grid()); err != nil {
			return nil, fmt.Errorf("%w: %w", spec.ErrInvalidHeader, err)
		}
	}
	return r, nil
}

func (r *Reader) Close() error {
	return r.fileCloser()
}

func (r *Reader) Header() spec.Header {
	return *r.header
}

// Grid returns the range of tile indices present in the archive.
func (r *Reader) Grid() image.Rectangle {
	return r.header.Grid()
}

func (r *Reader) ReadMetadata() ([]byte, error) {
	return r.fileAccess(r.header.MetadataOffset, r.header.MetadataLength)
}

func (r *Reader) location(entry spec.Entry) tile.Location {
	return tile.Location{
		Offset: r.header.TileDataOffset + entry.Offset,
		Length: uint64(entry.Length),
	}
}

// ReadLocation returns where the stored payload of a tile lies in the file,
// or the zero Location if the tile is absent.
func (r *Reader) ReadLocation(tileID tile.ID) (tile.Location, error) {
	if r.curve == nil {
		return tile.Location{}, nil
	}
	code, err := r.curve.Encode(tileID)
	if errors.Is(err, tile.ErrOutOfGrid) {
		return tile.Location{}, nil
	}
	if err != nil {
		return tile.Location{}, err
	}
	entry, found := spec.FindEntry(r.entries, code)
	if !found {
		return tile.Location{}, nil
	}
	return r.location(entry), nil
}

func (r *Reader) readPayload(location tile.Location) ([]byte, error) {
	payload, err := r.fileAccess(location.Offset, location.Length)
	if err != nil {
		return nil, err
	}
	return spec.Decompress(payload, r.header.TileCompression)
}

func (r *Reader) ReadTile(tileID tile.ID) ([]byte, error) {
	location, err := r.ReadLocation(tileID)
	if err != nil {
		return nil, err
	}
	if location.Length == 0 {
		return make([]byte, 0), nil
	}
	return r.readPayload(location)
}

// VisitLocations visits tiles in curve order.
func (r *Reader) VisitLocations(visitor func(tile.ID, tile.Location) error) error {
	for _, entry := range r.entries {
		location := r.location(entry)
		for i := range uint64(entry.RunLength) {
			tileID, err := r.curve.Decode(entry.TileCode + i)
			if err != nil {
				return err
			}
			if err := visitor(tileID, location); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Reader) VisitTiles(visitor func(tile.ID, []byte) error) error {
	return r.VisitLocations(func(tileID tile.ID, location tile.Location) error {
		tileData, err := r.readPayload(location)
		if err != nil {
			return err
		}
		return visitor(tileID, tileData)
	})
}
