package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/eak1mov/go-libraster/store"
	"github.com/eak1mov/go-libraster/tile"
	"github.com/google/subcommands"
)

type infoCmd struct {
	inputFormat string
	inputPath   string
}

func (c *infoCmd) Name() string     { return "info" }
func (c *infoCmd) Synopsis() string { return "print raster geometry and tile usage" }
func (c *infoCmd) Usage() string {
	return "rasterutils info -i <path> [-if <format>]\n"
}
func (c *infoCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input path")
	f.StringVar(&c.inputFormat, "if", "", "Input format ("+formatsHelp+")")
}

type tileUsage struct {
	Tiles    int
	Payloads int
	Bytes    uint64
}

// usage counts stored tiles. Archives exposing locations also report how
// many distinct payloads back them.
func usage(reader archiveReader) (tileUsage, error) {
	result := tileUsage{}
	if visitor, ok := reader.(tile.LocationVisitor); ok {
		seen := make(map[tile.Location]bool)
		err := visitor.VisitLocations(func(_ tile.ID, location tile.Location) error {
			result.Tiles++
			if !seen[location] {
				seen[location] = true
				result.Payloads++
				result.Bytes += location.Length
			}
			return nil
		})
		return result, err
	}
	err := reader.VisitTiles(func(_ tile.ID, tileData []byte) error {
		result.Tiles++
		result.Payloads++
		result.Bytes += uint64(len(tileData))
		return nil
	})
	return result, err
}

func (c *infoCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	reader, err := openReader(c.inputFormat, c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	data, err := reader.ReadMetadata()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	metadata, err := store.ParseMetadata(data)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	u, err := usage(reader)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	tileRange := metadata.TileRange()
	fmt.Printf("bounds:    %v\n", metadata.Bounds)
	fmt.Printf("samples:   %d x %v, %s\n", metadata.NumBands, metadata.DataType, metadata.Layout)
	fmt.Printf("tiles:     %dx%d, grid offset (%d, %d)\n",
		metadata.Tiles.TileWidth, metadata.Tiles.TileHeight, metadata.Tiles.GridXOffset, metadata.Tiles.GridYOffset)
	fmt.Printf("grid:      %v, %d tiles\n", tileRange, tileRange.Dx()*tileRange.Dy())
	fmt.Printf("stored:    %d tiles, %d payloads, %d bytes\n", u.Tiles, u.Payloads, u.Bytes)

	return subcommands.ExitSuccess
}
