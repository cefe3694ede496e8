package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/eak1mov/go-libraster/db"
	"github.com/eak1mov/go-libraster/dir"
	"github.com/eak1mov/go-libraster/pack"
	"github.com/eak1mov/go-libraster/tile"
)

const formatsHelp = "pack, db, dir"

type archiveReader interface {
	tile.Reader
	tile.Visitor
	tile.MetadataReader
}

func deduceFormat(format, filePath string) string {
	if format != "" {
		return format
	}
	switch {
	case strings.HasSuffix(filePath, ".pack"):
		return "pack"
	case strings.HasSuffix(filePath, ".db"), strings.HasSuffix(filePath, ".sqlite"):
		return "db"
	}
	return "dir"
}

func openReader(format, filePath string) (archiveReader, error) {
	switch deduceFormat(format, filePath) {
	case "pack":
		return pack.NewFileReader(filePath)
	case "db":
		return db.NewReader(filePath)
	case "dir":
		return dir.NewReader(filePath)
	}
	return nil, fmt.Errorf("invalid input format: %q", format)
}

func openWriter(format, filePath string, metadata []byte) (tile.Writer, error) {
	switch deduceFormat(format, filePath) {
	case "pack":
		return pack.NewWriter(filePath, pack.WithMetadata(metadata), pack.WithLogger(slog.Default()))
	case "db":
		return db.NewWriter(filePath, db.WithMetadata(metadata), db.WithLogger(slog.Default()))
	case "dir":
		return dir.NewWriter(filePath, dir.WithMetadata(metadata))
	}
	return nil, fmt.Errorf("invalid output format: %q", format)
}
