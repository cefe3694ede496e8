package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"log"

	"github.com/eak1mov/go-libraster/iterator"
	"github.com/eak1mov/go-libraster/store"
	"github.com/google/subcommands"
)

type statsCmd struct {
	inputFormat string
	inputPath   string
	rect        string
}

func (c *statsCmd) Name() string     { return "stats" }
func (c *statsCmd) Synopsis() string { return "print per-band sample statistics" }
func (c *statsCmd) Usage() string {
	return "rasterutils stats -i <path> [-if <format> -rect <x0,y0,x1,y1>]\n"
}
func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input path")
	f.StringVar(&c.inputFormat, "if", "", "Input format ("+formatsHelp+")")
	f.StringVar(&c.rect, "rect", "", "Region to measure, defaults to the whole image")
}

func parseRect(value string) (image.Rectangle, error) {
	if value == "" {
		return iterator.All, nil
	}
	var x0, y0, x1, y1 int
	if _, err := fmt.Sscanf(value, "%d,%d,%d,%d", &x0, &y0, &x1, &y1); err != nil {
		return image.Rectangle{}, fmt.Errorf("invalid rect %q: %w", value, err)
	}
	return image.Rect(x0, y0, x1, y1), nil
}

func (c *statsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	rect, err := parseRect(c.rect)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	reader, err := openReader(c.inputFormat, c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	img, err := store.OpenArchive(reader)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	stats := computeStats(img, rect)
	if stats == nil {
		fmt.Printf("no pixels in %v\n", rect.Intersect(img.Bounds()))
		return subcommands.ExitSuccess
	}

	fmt.Printf("%-6s %14s %14s %14s\n", "band", "min", "max", "mean")
	for b, s := range stats {
		fmt.Printf("%-6d %14g %14g %14g\n", b, s.Min, s.Max, s.Mean)
	}

	return subcommands.ExitSuccess
}
