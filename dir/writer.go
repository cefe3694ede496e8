package dir

import (
	"os"
	"path/filepath"

	"github.com/eak1mov/go-libraster/tile"
)

// Writer implements tile.Writer interface for tile directories.
type Writer struct {
	filePattern string
	metadata    []byte
}

type writerConfig struct {
	Metadata []byte
}

type WriterOption func(*writerConfig)

// WithMetadata sets the contents of the metadata file written by Finalize.
func WithMetadata(metadata []byte) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

// NewWriter creates a new Writer for the given file pattern (e.g. "/home/user/tiles/{x}/{y}.tile").
func NewWriter(filePattern string, opts ...WriterOption) (*Writer, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}
	config := writerConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	return &Writer{filePattern, config.Metadata}, nil
}

func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	filePath := formatPattern(w.filePattern, tileID)

	dirPath := filepath.Dir(filePath)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return err
	}

	return os.WriteFile(filePath, tileData, 0644)
}

func (w *Writer) Finalize() error {
	if w.metadata == nil {
		return nil
	}
	root := rootDir(w.filePattern)
	if err := os.MkdirAll(root, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(root, MetadataFile), w.metadata, 0644)
}
