package pack

import (
	"bufio"
	"cmp"
	"crypto/md5"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/eak1mov/go-libraster/pack/spec"
	"github.com/eak1mov/go-libraster/tile"
)

var ErrDuplicateTile = errors.New("libraster: tile written twice")

// Writer implements tile.Writer interface for pack files.
type Writer struct {
	logger *slog.Logger
	file   *os.File
	header spec.Header

	tileWriter *bufio.Writer
	tileOffset uint64

	tiles     []placement
	locations map[[16]byte]int // hash -> placement index
}

// placement records where the payload of a tile went. Codes are assigned
// at Finalize, once the grid is known.
type placement struct {
	tileID tile.ID
	offset uint64
	length uint32
}

type writerConfig struct {
	Metadata        []byte
	Logger          *slog.Logger
	TileCompression spec.Compression
}

type WriterOption func(*writerConfig)

func WithMetadata(metadata []byte) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// WithTileCompression sets how tile payloads are stored. The default is
// spec.CompressionGzip.
func WithTileCompression(compression spec.Compression) WriterOption {
	return func(c *writerConfig) { c.TileCompression = compression }
}

// NewWriter creates a pack file at filePath. Identical payloads are stored
// once.
func NewWriter(filePath string, opts ...WriterOption) (w *Writer, err error) {
	config := writerConfig{
		Logger:          slog.New(slog.DiscardHandler),
		TileCompression: spec.CompressionGzip,
	}
	for _, opt := range opts {
		opt(&config)
	}
	if _, err := spec.Compress(nil, config.TileCompression); err != nil {
		return nil, err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			file.Close()
		}
	}()

	header := spec.Header{
		HeaderMagic:         spec.HeaderMagicV1,
		InternalCompression: spec.CompressionGzip,
		TileCompression:     config.TileCompression,
	}
	offset := uint64(spec.HeaderLength)

	if _, err = file.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, err
	}
	if _, err = file.Write(config.Metadata); err != nil {
		return nil, err
	}
	header.MetadataOffset = offset
	header.MetadataLength = uint64(len(config.Metadata))
	header.TileDataOffset = offset + header.MetadataLength

	return &Writer{
		logger:     config.Logger,
		file:       file,
		header:     header,
		tileWriter: bufio.NewWriter(file),
		locations:  make(map[[16]byte]int),
	}, nil
}

func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	if len(tileData) == 0 {
		return nil
	}

	digest := md5.Sum(tileData)
	if idx, exists := w.locations[digest]; exists {
		w.tiles = append(w.tiles, placement{tileID, w.tiles[idx].offset, w.tiles[idx].length})
		return nil
	}

	payload, err := spec.Compress(tileData, w.header.TileCompression)
	if err != nil {
		return err
	}
	if _, err := w.tileWriter.Write(payload); err != nil {
		return err
	}

	w.locations[digest] = len(w.tiles)
	w.tiles = append(w.tiles, placement{tileID, w.tileOffset, uint32(len(payload))})
	w.tileOffset += uint64(len(payload))
	return nil
}

// directory assigns curve codes to the written tiles and returns the sorted,
// compacted entries.
func (w *Writer) directory() ([]spec.Entry, error) {
	grid := image.Rectangle{}
	for _, t := range w.tiles {
		grid = grid.Union(image.Rect(t.tileID.X, t.tileID.Y, t.tileID.X+1, t.tileID.Y+1))
	}
	w.header.SetGrid(grid)
	if len(w.tiles) == 0 {
		return nil, nil
	}

	curve, err := tile.NewCurve(grid)
	if err != nil {
		return nil, err
	}
	entries := make([]spec.Entry, 0, len(w.tiles))
	for _, t := range w.tiles {
		code, err := curve.Encode(t.tileID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, spec.Entry{TileCode: code, Offset: t.offset, Length: t.length, RunLength: 1})
	}

	slices.SortFunc(entries, func(a, b spec.Entry) int {
		return cmp.Compare(a.TileCode, b.TileCode)
	})
	for i := 1; i < len(entries); i++ {
		if entries[i].TileCode == entries[i-1].TileCode {
			tileID, _ := curve.Decode(entries[i].TileCode)
			return nil, fmt.Errorf("%w: %v", ErrDuplicateTile, tileID)
		}
	}
	return spec.CompactEntries(entries), nil
}

func (w *Writer) Finalize() error {
	if w.tileWriter == nil {
		panic("libraster: finalize called twice")
	}

	w.logger.Debug("libraster: flush")
	if err := w.tileWriter.Flush(); err != nil {
		return err
	}
	w.header.TileDataLength = w.tileOffset
	w.tileWriter = nil

	w.logger.Debug("libraster: build directory", "tiles", len(w.tiles))
	entries, err := w.directory()
	if err != nil {
		return err
	}
	w.header.TileEntriesCount = uint64(len(entries))
	w.header.TileContentsCount = uint64(len(w.locations))

	w.logger.Debug("libraster: write directory", "entries", len(entries))
	directory, err := spec.Compress(spec.SerializeDirectory(entries), w.header.InternalCompression)
	if err != nil {
		return err
	}
	if _, err := w.file.Write(directory); err != nil {
		return err
	}
	w.header.DirectoryOffset = w.header.TileDataOffset + w.header.TileDataLength
	w.header.DirectoryLength = uint64(len(directory))

	w.logger.Debug("libraster: write header")
	if _, err := w.file.WriteAt(spec.SerializeHeader(&w.header), 0); err != nil {
		return err
	}

	if err := w.file.Close(); err != nil {
		return err
	}
	w.file = nil

	w.logger.Debug("libraster: done!")
	return nil
}

func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}
