package db

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/eak1mov/go-libraster/tile"
)

// Writer implements tile.Writer interface for SQLite tile databases.
type Writer struct {
	db     *sql.DB
	stmt   *sql.Stmt
	logger *slog.Logger
}

type writerConfig struct {
	Metadata   []byte
	Attributes map[string]string
	Logger     *slog.Logger
}

type WriterOption func(*writerConfig)

// WithMetadata sets the image metadata returned by Reader.ReadMetadata.
func WithMetadata(metadata []byte) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

// WithAttributes adds free-form name/value pairs to the metadata table.
func WithAttributes(attributes map[string]string) WriterOption {
	return func(c *writerConfig) { c.Attributes = attributes }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new Writer for writing to a database file.
// It applies given options and initializes database for writing tiles.
func NewWriter(filePath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	var err error
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	_, err = db.Exec(`
		CREATE TABLE metadata (name TEXT, value TEXT);
		CREATE TABLE tiles (
			tile_x INTEGER,
			tile_y INTEGER,
			tile_data BLOB
		);
	`)
	if err != nil {
		return nil, err
	}

	if config.Metadata != nil {
		_, err = db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", metadataName, string(config.Metadata))
		if err != nil {
			return nil, err
		}
	}
	for k, v := range config.Attributes {
		_, err = db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v)
		if err != nil {
			return nil, err
		}
	}

	stmt, err := db.Prepare("INSERT INTO tiles (tile_x, tile_y, tile_data) VALUES (?, ?, ?)")
	if err != nil {
		return nil, err
	}

	return &Writer{db, stmt, config.Logger}, nil
}

func (w *Writer) Close() error {
	return errors.Join(w.stmt.Close(), w.db.Close())
}

func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	_, err := w.stmt.Exec(tileID.X, tileID.Y, tileData)
	return err
}

// Finalize builds the tile index. It fails if a tile was written twice.
func (w *Writer) Finalize() error {
	w.logger.Debug("libraster: creating index")
	_, err := w.db.Exec("CREATE UNIQUE INDEX tile_index ON tiles (tile_x, tile_y)")
	if err != nil {
		return err
	}

	w.logger.Debug("libraster: done!")
	return nil
}
