package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/eak1mov/go-libraster/store"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type importCmd struct {
	inputPath    string
	outputFormat string
	outputPath   string
	tileSize     int
	banded       bool
	workers      int
}

func (c *importCmd) Name() string     { return "import" }
func (c *importCmd) Synopsis() string { return "create tiled raster from an image file" }
func (c *importCmd) Usage() string {
	return "rasterutils import -i <image> -o <path> [-of <format> -tile <size> -banded -j <workers>]\n"
}
func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input image path (png, jpeg, gif, tiff, bmp, webp)")
	f.StringVar(&c.outputPath, "o", "", "Output path")
	f.StringVar(&c.outputFormat, "of", "", "Output format ("+formatsHelp+")")
	f.IntVar(&c.tileSize, "tile", 256, "Tile width and height")
	f.BoolVar(&c.banded, "banded", false, "Store each band as a separate plane")
	f.IntVar(&c.workers, "j", 4, "Number of tiles encoded in parallel")
}

func (c *importCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	file, err := os.Open(c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	src, format, err := image.Decode(file)
	if err != nil {
		log.Println("failed to decode image:", err)
		return subcommands.ExitFailure
	}
	slog.Debug("libraster: decoded image", "format", format, "bounds", src.Bounds())

	img, err := rasterize(src, c.tileSize, c.banded)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	metadata, err := store.MetadataOf(img).Marshal()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	writer, err := openWriter(c.outputFormat, c.outputPath, metadata)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := writer.(io.Closer); ok {
		defer closer.Close()
	}

	tileRange := img.TileRange()
	bar := progressbar.New(tileRange.Dx() * tileRange.Dy())
	err = store.Save(ctx, img, writer,
		store.WithWorkers(c.workers),
		store.WithLogger(slog.Default()),
		store.WithProgress(func(done, _ int) { bar.Set(done) }),
	)
	bar.Finish()
	fmt.Println()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
