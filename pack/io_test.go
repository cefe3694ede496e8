package pack_test

import (
	"context"
	"errors"
	"image"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/eak1mov/go-libraster/internal"
	"github.com/eak1mov/go-libraster/iterator"
	"github.com/eak1mov/go-libraster/pack"
	"github.com/eak1mov/go-libraster/pack/spec"
	"github.com/eak1mov/go-libraster/raster"
	"github.com/eak1mov/go-libraster/store"
	"github.com/eak1mov/go-libraster/tile"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var testTiles = map[tile.ID][]byte{
	{X: -2, Y: 1}: []byte("tile-2/1"),
	{X: -1, Y: 1}: []byte("shared"),
	{X: 0, Y: 1}:  []byte("shared"),
	{X: 1, Y: 1}:  []byte("shared"),
	{X: 3, Y: 2}:  []byte("tile3/2"),
	{X: 0, Y: 4}:  []byte("shared"),
}

func writeTestPack(t *testing.T, opts ...pack.WriterOption) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), "tiles.pack")
	writer, err := pack.NewWriter(filePath, opts...)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	defer writer.Close()

	for _, tileID := range slices.SortedFunc(maps.Keys(testTiles), func(a, b tile.ID) int { return a.X - b.X }) {
		if err := writer.WriteTile(tileID, testTiles[tileID]); err != nil {
			t.Fatalf("WriteTile(%v) failed: %v", tileID, err)
		}
	}
	if err := writer.WriteTile(tile.ID{X: 5, Y: 5}, nil); err != nil {
		t.Fatalf("WriteTile(empty) failed: %v", err)
	}
	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	return filePath
}

func TestWriterReader(t *testing.T) {
	for _, tc := range []struct {
		Name        string
		Compression spec.Compression
	}{
		{Name: "None", Compression: spec.CompressionNone},
		{Name: "Gzip", Compression: spec.CompressionGzip},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			writerMetadata := []byte(`{"foo":"bar"}`)
			filePath := writeTestPack(t, pack.WithMetadata(writerMetadata), pack.WithTileCompression(tc.Compression))

			reader, err := pack.NewFileReader(filePath)
			if err != nil {
				t.Fatalf("NewFileReader failed: %v", err)
			}
			defer reader.Close()

			header := reader.Header()
			require.Equal(t, tc.Compression, header.TileCompression)
			require.Equal(t, uint64(3), header.TileContentsCount)
			require.Equal(t, image.Rect(-2, 1, 4, 5), reader.Grid())

			readerMetadata, err := reader.ReadMetadata()
			if err != nil {
				t.Fatalf("ReadMetadata failed: %v", err)
			}
			if got, want := readerMetadata, writerMetadata; !cmp.Equal(got, want) {
				t.Errorf("ReadMetadata data mismatch")
			}

			if got, want := maps.Collect(tile.IterTiles(reader)), testTiles; !cmp.Equal(got, want) {
				t.Errorf("VisitTiles data mismatch")
			}

			for tileID, want := range testTiles {
				got, err := reader.ReadTile(tileID)
				if err != nil {
					t.Fatalf("ReadTile(%v) failed: %v", tileID, err)
				}
				if !cmp.Equal(got, want) {
					t.Errorf("ReadTile(%v) = %q, want = %q", tileID, got, want)
				}
			}

			for _, tileID := range []tile.ID{{X: 0, Y: 2}, {X: 5, Y: 5}, {X: -100, Y: 0}} {
				tileData, err := reader.ReadTile(tileID)
				if err != nil {
					t.Errorf("ReadTile(%v) failed: %v", tileID, err)
				}
				if len(tileData) != 0 {
					t.Errorf("ReadTile(%v) expected empty tile, got: %v bytes", tileID, len(tileData))
				}
			}
		})
	}
}

func TestLocations(t *testing.T) {
	reader, err := pack.NewFileReader(writeTestPack(t, pack.WithTileCompression(spec.CompressionNone)))
	require.NoError(t, err)
	defer reader.Close()

	locations := maps.Collect(tile.IterLocations(reader))
	require.Len(t, locations, len(testTiles))

	shared := locations[tile.ID{X: 0, Y: 1}]
	require.Equal(t, uint64(len("shared")), shared.Length)
	for _, tileID := range []tile.ID{{X: -1, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 4}} {
		require.Equal(t, shared, locations[tileID])
	}

	for tileID, want := range locations {
		got, err := reader.ReadLocation(tileID)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	missing, err := reader.ReadLocation(tile.ID{X: 3, Y: 1})
	require.NoError(t, err)
	require.Equal(t, tile.Location{}, missing)
}

func TestEmptyPack(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "empty.pack")
	writer, err := pack.NewWriter(filePath)
	require.NoError(t, err)
	require.NoError(t, writer.Finalize())
	require.NoError(t, writer.Close())

	reader, err := pack.NewFileReader(filePath)
	require.NoError(t, err)
	defer reader.Close()

	require.True(t, reader.Grid().Empty())
	require.Empty(t, maps.Collect(tile.IterTiles(reader)))

	tileData, err := reader.ReadTile(tile.ID{})
	require.NoError(t, err)
	require.Empty(t, tileData)
}

func TestDuplicateTile(t *testing.T) {
	writer, err := pack.NewWriter(filepath.Join(t.TempDir(), "dup.pack"))
	require.NoError(t, err)
	defer writer.Close()

	require.NoError(t, writer.WriteTile(tile.ID{X: 1, Y: 1}, []byte("a")))
	require.NoError(t, writer.WriteTile(tile.ID{X: 1, Y: 1}, []byte("b")))
	err = writer.Finalize()
	require.Truef(t, errors.Is(err, pack.ErrDuplicateTile), "%v", err)
}

func TestReaderErrors(t *testing.T) {
	data, err := os.ReadFile(writeTestPack(t))
	require.NoError(t, err)

	access := func(data []byte) pack.FileAccessFunc {
		return func(offset, length uint64) ([]byte, error) {
			if offset+length > uint64(len(data)) {
				return nil, errors.New("out of range")
			}
			return data[offset : offset+length], nil
		}
	}

	reader, err := pack.NewReader(access(data))
	require.NoError(t, err)
	tileData, err := reader.ReadTile(tile.ID{X: 3, Y: 2})
	require.NoError(t, err)
	require.Equal(t, testTiles[tile.ID{X: 3, Y: 2}], tileData)

	_, err = pack.NewReader(access(data[:10]))
	require.Truef(t, errors.Is(err, spec.ErrInvalidHeader), "%v", err)

	corrupt := slices.Clone(data)
	header, err := spec.DeserializeHeader(corrupt[:spec.HeaderLength])
	require.NoError(t, err)
	corrupt[header.DirectoryOffset] ^= 0xff
	_, err = pack.NewReader(access(corrupt))
	require.Truef(t, errors.Is(err, spec.ErrInvalidDirectory), "%v", err)

	_, err = pack.NewFileReader(filepath.Join(t.TempDir(), "missing.pack"))
	require.Truef(t, errors.Is(err, os.ErrNotExist), "%v", err)
}

func TestSaveOpenArchive(t *testing.T) {
	img := internal.NewTestImage(t, raster.TypeUShort, "component")
	metadata, err := store.MetadataOf(img).Marshal()
	require.NoError(t, err)

	filePath := filepath.Join(t.TempDir(), "image.pack")
	writer, err := pack.NewWriter(filePath, pack.WithMetadata(metadata))
	require.NoError(t, err)
	defer writer.Close()
	require.NoError(t, store.Save(context.Background(), img, writer))

	reader, err := pack.NewFileReader(filePath)
	require.NoError(t, err)
	defer reader.Close()
	require.Equal(t, img.TileRange(), reader.Grid())

	stored, err := store.OpenArchive(reader)
	require.NoError(t, err)

	got := make(map[image.Point][]int)
	for p, pixel := range iterator.Pixels(stored, iterator.All) {
		got[p] = slices.Clone(pixel)
	}
	want := make(map[image.Point][]int)
	for p, pixel := range iterator.Pixels(img, iterator.All) {
		want[p] = slices.Clone(pixel)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stored image mismatch (-want+got):\n%v", diff)
	}
}
