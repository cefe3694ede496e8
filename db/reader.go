// Package db provides API for reading and writing raster tiles in a SQLite
// database with a metadata(name, value) table and a tiles(tile_x, tile_y,
// tile_data) table.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/eak1mov/go-libraster/tile"
)

// metadataName is the metadata row holding the image metadata document.
const metadataName = "raster"

// Reader implements tile.Reader interface for SQLite tile databases.
type Reader struct {
	db   *sql.DB
	stmt *sql.Stmt
}

var (
	_ tile.Reader         = (*Reader)(nil)
	_ tile.Visitor        = (*Reader)(nil)
	_ tile.MetadataReader = (*Reader)(nil)
)

// NewReader creates a new Reader for the given database file path.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}

	stmt, err := db.Prepare("SELECT tile_data FROM tiles WHERE tile_x = ? AND tile_y = ?")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Reader{db: db, stmt: stmt}, nil
}

func (r *Reader) Close() error {
	return errors.Join(r.stmt.Close(), r.db.Close())
}

// ReadMetadata returns the image metadata document, or an empty slice if
// the database has none.
func (r *Reader) ReadMetadata() ([]byte, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM metadata WHERE name = ?", metadataName).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return make([]byte, 0), nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// ReadAttributes returns every metadata row except the image metadata.
func (r *Reader) ReadAttributes() (map[string]string, error) {
	attributes := make(map[string]string)

	rows, err := r.db.Query("SELECT name, value FROM metadata WHERE name != ?", metadataName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		attributes[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return attributes, nil
}

func (r *Reader) ReadTile(tileID tile.ID) ([]byte, error) {
	var tileData []byte
	if err := r.stmt.QueryRow(tileID.X, tileID.Y).Scan(&tileData); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return make([]byte, 0), nil
		}
		return nil, err
	}

	return tileData, nil
}

func (r *Reader) VisitTiles(visitor func(tile.ID, []byte) error) error {
	rows, err := r.db.Query("SELECT tile_x, tile_y, tile_data FROM tiles")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tileID tile.ID
		var tileData []byte

		if err := rows.Scan(&tileID.X, &tileID.Y, &tileData); err != nil {
			return err
		}

		if err := visitor(tileID, tileData); err != nil {
			return err
		}
	}

	return rows.Err()
}
