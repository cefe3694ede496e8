package store

import (
	"context"
	"fmt"

	"github.com/eak1mov/go-libraster/iterator"
	"github.com/eak1mov/go-libraster/raster"
	"github.com/eak1mov/go-libraster/tile"
	"golang.org/x/sync/errgroup"
)

type encodedTile struct {
	tileID tile.ID
	data   []byte
	err    error
}

// tileReader is implemented by images that report tile read failures as
// errors, such as *Image.
type tileReader interface {
	ReadTile(tileID tile.ID) (*raster.Raster, error)
}

func readTile(img raster.Image, tileID tile.ID) (*raster.Raster, error) {
	if r, ok := img.(tileReader); ok {
		return r.ReadTile(tileID)
	}
	return img.Tile(tileID.X, tileID.Y), nil
}

func encodeTile(img raster.Image, metadata Metadata, tileID tile.ID) encodedTile {
	r, err := readTile(img, tileID)
	if err != nil {
		return encodedTile{tileID: tileID, err: err}
	}
	data, err := metadata.EncodeTile(r)
	if err != nil {
		return encodedTile{tileID: tileID, err: fmt.Errorf("libraster: encode tile %v: %w", tileID, err)}
	}
	return encodedTile{tileID: tileID, data: data}
}

// Save writes every tile of img to w in Hilbert curve order and finalizes
// the archive. The archive's metadata must be set up by the caller, usually
// from MetadataOf(img).
func Save(ctx context.Context, img raster.Image, w tile.Writer, opts ...Option) error {
	config := newConfig(opts)
	metadata := MetadataOf(img)
	workers := max(config.Workers, 1)

	curve, err := tile.NewCurve(metadata.TileRange())
	if err != nil {
		return err
	}
	total := metadata.TileRange().Dx() * metadata.TileRange().Dy()

	// Encoding runs on the workers; writing stays in curve order.
	g, ctx := errgroup.WithContext(ctx)
	results := make(chan chan encodedTile, workers)

	g.Go(func() error {
		defer close(results)

		var encoders errgroup.Group
		encoders.SetLimit(workers)
		defer encoders.Wait()

		for tileID := range curve.IDs() {
			if err := ctx.Err(); err != nil {
				return err
			}
			result := make(chan encodedTile, 1)
			select {
			case results <- result:
			case <-ctx.Done():
				return ctx.Err()
			}
			encoders.Go(func() error {
				result <- encodeTile(img, metadata, tileID)
				return nil
			})
		}
		return nil
	})

	g.Go(func() error {
		done := 0
		for result := range results {
			var encoded encodedTile
			select {
			case encoded = <-result:
			case <-ctx.Done():
				return ctx.Err()
			}
			if encoded.err != nil {
				return encoded.err
			}
			if err := w.WriteTile(encoded.tileID, encoded.data); err != nil {
				return err
			}
			done++
			if config.Progress != nil {
				config.Progress(done, total)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	config.Logger.Debug("libraster: tiles written", "count", total)
	return w.Finalize()
}

// Load copies img into an in-memory image with the same geometry.
func Load(img raster.Image, opts ...Option) (*raster.TiledImage, error) {
	config := newConfig(opts)

	out, err := raster.NewTiledImage(img.Bounds(), img.TileLayout(), img.SampleModel(),
		raster.WithLogger(config.Logger))
	if err != nil {
		return nil, err
	}

	src := iterator.NewRect(img, iterator.All)
	defer src.Done()
	dst := iterator.NewWritableRect(out, iterator.All)
	defer dst.Done()

	pixel := make([]float64, img.SampleModel().NumBands())
	for !src.FinishedLines() {
		src.StartPixels()
		dst.StartPixels()
		for !src.FinishedPixels() {
			dst.SetPixelDouble(src.PixelDouble(pixel))
			src.NextPixel()
			dst.NextPixel()
		}
		src.NextLine()
		dst.NextLine()
	}
	return out, nil
}
