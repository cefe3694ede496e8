package dir_test

import (
	"context"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/eak1mov/go-libraster/dir"
	"github.com/eak1mov/go-libraster/internal"
	"github.com/eak1mov/go-libraster/iterator"
	"github.com/eak1mov/go-libraster/raster"
	"github.com/eak1mov/go-libraster/store"
	"github.com/eak1mov/go-libraster/tile"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestWriterReader(t *testing.T) {
	rootDir := t.TempDir()
	pattern := filepath.Join(rootDir, "tiles (1)", "{x}", "{y}.tile")

	tiles := map[tile.ID][]byte{
		{X: 0, Y: 0}:   []byte("tile00"),
		{X: 1, Y: 1}:   []byte("tile11"),
		{X: -3, Y: 0}:  []byte("tile-30"),
		{X: 6, Y: -12}: []byte("tile6-12"),
	}
	writerMetadata := []byte(`{"foo":"bar"}`)

	writer, err := dir.NewWriter(pattern, dir.WithMetadata(writerMetadata))
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	for tileID, tileData := range tiles {
		if err := writer.WriteTile(tileID, tileData); err != nil {
			t.Errorf("WriteTile(%v) failed: %v", tileID, err)
		}
	}

	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	reader, err := dir.NewReader(pattern)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	readerMetadata, err := reader.ReadMetadata()
	if err != nil {
		t.Fatalf("ReadMetadata failed: %v", err)
	}
	if got, want := readerMetadata, writerMetadata; !cmp.Equal(got, want) {
		t.Errorf("ReadMetadata = %q, want = %q", got, want)
	}

	if got, want := maps.Collect(tile.IterTiles(reader)), tiles; !cmp.Equal(got, want) {
		t.Errorf("VisitTiles data mismatch")
	}

	for tileID, tileData := range tiles {
		data, err := reader.ReadTile(tileID)
		if err != nil {
			t.Errorf("ReadTile(%v) failed: %v", tileID, err)
			continue
		}
		if !cmp.Equal(data, tileData) {
			t.Errorf("ReadTile data mismatch for %v", tileID)
		}
	}

	tileData, err := reader.ReadTile(tile.ID{X: 9, Y: 9})
	if err != nil {
		t.Errorf("ReadTile(missing tile) failed: %v", err)
	}
	if len(tileData) != 0 {
		t.Errorf("ReadTile(missing tile) expected empty tile, got: %v bytes", len(tileData))
	}
}

func TestInvalidPattern(t *testing.T) {
	for _, pattern := range []string{"tiles/{x}.tile", "tiles/{y}/{z}.tile", ""} {
		_, err := dir.NewWriter(pattern)
		require.Truef(t, errors.Is(err, dir.ErrInvalidPattern), "%v", err)
		_, err = dir.NewReader(pattern)
		require.Truef(t, errors.Is(err, dir.ErrInvalidPattern), "%v", err)
	}
}

func TestForeignFiles(t *testing.T) {
	rootDir := t.TempDir()
	pattern := filepath.Join(rootDir, "{x}_{y}.tile")

	require.NoError(t, os.WriteFile(filepath.Join(rootDir, "1_2.tile"), []byte("tile"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(rootDir, "notes.txt"), []byte("notes"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(rootDir, "a_2.tile"), []byte("bad"), 0644))

	reader, err := dir.NewReader(pattern)
	require.NoError(t, err)

	tiles := maps.Collect(tile.IterTiles(reader))
	require.Equal(t, map[tile.ID][]byte{{X: 1, Y: 2}: []byte("tile")}, tiles)

	metadata, err := reader.ReadMetadata()
	require.NoError(t, err)
	require.Empty(t, metadata)
}

func TestSaveOpenArchive(t *testing.T) {
	img := internal.NewTestImage(t, raster.TypeByte, "offset")
	metadata, err := store.MetadataOf(img).Marshal()
	require.NoError(t, err)

	pattern := filepath.Join(t.TempDir(), "{y}", "{x}.tile")
	writer, err := dir.NewWriter(pattern, dir.WithMetadata(metadata))
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), img, writer))

	reader, err := dir.NewReader(pattern)
	require.NoError(t, err)
	stored, err := store.OpenArchive(reader)
	require.NoError(t, err)

	require.Len(t, slices.Collect(maps.Keys(maps.Collect(tile.IterTiles(reader)))), 12)

	want := iterator.NewRandom(img, iterator.All)
	defer want.Done()
	pixel := make([]int, 3)
	for p, got := range iterator.Pixels(stored, iterator.All) {
		require.Equalf(t, want.Pixel(p.X, p.Y, pixel), got, "pixel %v", p)
	}
}
