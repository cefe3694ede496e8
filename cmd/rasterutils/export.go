package main

import (
	"context"
	"flag"
	"image"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/eak1mov/go-libraster/store"
	"github.com/google/subcommands"
	"golang.org/x/image/draw"
)

type exportCmd struct {
	inputFormat string
	inputPath   string
	outputPath  string
	width       int
}

func (c *exportCmd) Name() string     { return "export" }
func (c *exportCmd) Synopsis() string { return "render tiled raster to a PNG image" }
func (c *exportCmd) Usage() string {
	return "rasterutils export -i <path> -o <image> [-if <format> -width <pixels>]\n"
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input path")
	f.StringVar(&c.inputFormat, "if", "", "Input format ("+formatsHelp+")")
	f.StringVar(&c.outputPath, "o", "", "Output PNG path")
	f.IntVar(&c.width, "width", 0, "Scale output to this width, keeping aspect ratio")
}

// scale resizes img to width pixels wide. Non-positive widths return img.
func scale(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	if width <= 0 || width == bounds.Dx() || bounds.Empty() {
		return img
	}
	height := max(1, bounds.Dy()*width/bounds.Dx())
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), img, bounds, draw.Src, nil)
	return out
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	reader, err := openReader(c.inputFormat, c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	img, err := store.OpenArchive(reader, store.WithLogger(slog.Default()))
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	out, err := toImage(img)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	file, err := os.Create(c.outputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	if err := png.Encode(file, scale(out, c.width)); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if err := file.Close(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
