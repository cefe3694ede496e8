package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/eak1mov/go-libraster/index"
	"github.com/eak1mov/go-libraster/tile"
	"github.com/google/subcommands"
)

type exportIndexCmd struct {
	inputFormat     string
	inputPath       string
	outputIndexPath string
}

func (c *exportIndexCmd) Name() string     { return "export_index" }
func (c *exportIndexCmd) Synopsis() string { return "export tile locations of an archive file" }
func (c *exportIndexCmd) Usage() string {
	return "rasterutils export_index -i <path> -o <path> [-if <format>]\n"
}
func (c *exportIndexCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input file path")
	f.StringVar(&c.inputFormat, "if", "", "Input file format (pack)")
	f.StringVar(&c.outputIndexPath, "o", "", "Output index file path")
}

func (c *exportIndexCmd) export(reader tile.LocationVisitor) error {
	items, err := index.Collect(reader)
	if err != nil {
		return err
	}

	file, err := os.Create(c.outputIndexPath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := index.WriteAll(items, writer); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	return file.Close()
}

func (c *exportIndexCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	reader, err := openReader(c.inputFormat, c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	visitor, ok := reader.(tile.LocationVisitor)
	if !ok {
		log.Printf("format %q does not expose tile locations", deduceFormat(c.inputFormat, c.inputPath))
		return subcommands.ExitFailure
	}

	if err := c.export(visitor); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	fmt.Println("index written to", c.outputIndexPath)
	return subcommands.ExitSuccess
}
