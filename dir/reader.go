package dir

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/eak1mov/go-libraster/tile"
)

// Reader implements tile.Reader interface for tile directories.
type Reader struct {
	filePattern string
	rootDir     string
	pathRegexp  *regexp.Regexp
}

var (
	_ tile.Reader         = (*Reader)(nil)
	_ tile.Visitor        = (*Reader)(nil)
	_ tile.MetadataReader = (*Reader)(nil)
)

// NewReader creates a new Reader for the given file pattern (e.g. "/home/user/tiles/{x}/{y}.tile").
func NewReader(filePattern string) (*Reader, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}
	pathRegex, err := compilePattern(filePattern)
	if err != nil {
		return nil, err
	}
	return &Reader{filePattern, rootDir(filePattern), pathRegex}, nil
}

// ReadMetadata returns the contents of the metadata file, or an empty slice
// if there is none.
func (r *Reader) ReadMetadata() ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(r.rootDir, MetadataFile))
	if os.IsNotExist(err) {
		return make([]byte, 0), nil
	}
	return data, err
}

func (r *Reader) ReadTile(tileID tile.ID) ([]byte, error) {
	filePath := formatPattern(r.filePattern, tileID)
	tileData, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return make([]byte, 0), nil
	}
	if err != nil {
		return nil, err
	}
	return tileData, nil
}

// VisitTiles visits files under the pattern's root directory that match the
// pattern. Other files are ignored.
func (r *Reader) VisitTiles(visitor func(tile.ID, []byte) error) error {
	return filepath.WalkDir(r.rootDir, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		matches := r.pathRegexp.FindStringSubmatch(filePath)
		if matches == nil {
			return nil
		}

		x, err := strconv.Atoi(matches[r.pathRegexp.SubexpIndex("x")])
		if err != nil {
			return nil
		}
		y, err := strconv.Atoi(matches[r.pathRegexp.SubexpIndex("y")])
		if err != nil {
			return nil
		}

		tileData, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}

		return visitor(tile.ID{X: x, Y: y}, tileData)
	})
}
