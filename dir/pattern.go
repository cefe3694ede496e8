// Package dir provides API for reading and writing raster tiles as
// individual files with paths like "/root/{x}/{y}.tile". Image metadata is
// kept in a metadata.json file in the pattern's root directory.
package dir

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/eak1mov/go-libraster/tile"
)

var ErrInvalidPattern = errors.New("libraster: invalid file pattern")

const MetadataFile = "metadata.json"

func validatePattern(pattern string) error {
	for _, p := range []string{"{x}", "{y}"} {
		if !strings.Contains(pattern, p) {
			return fmt.Errorf("%w: placeholder %v not found", ErrInvalidPattern, p)
		}
	}
	return nil
}

func formatPattern(pattern string, tileID tile.ID) string {
	result := pattern
	result = strings.ReplaceAll(result, "{x}", fmt.Sprintf("%d", tileID.X))
	result = strings.ReplaceAll(result, "{y}", fmt.Sprintf("%d", tileID.Y))
	return result
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	regexPattern := regexp.QuoteMeta(pattern)
	regexPattern = strings.ReplaceAll(regexPattern, `\{x\}`, `(?P<x>-?\d+)`)
	regexPattern = strings.ReplaceAll(regexPattern, `\{y\}`, `(?P<y>-?\d+)`)
	pathRegex, err := regexp.Compile("^" + regexPattern + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return pathRegex, nil
}

// rootDir returns the deepest directory shared by every path the pattern
// can produce.
func rootDir(pattern string) string {
	path0 := formatPattern(pattern, tile.ID{X: 0, Y: 0})
	path1 := formatPattern(pattern, tile.ID{X: 1, Y: 1})
	for path0 != path1 {
		path0 = filepath.Dir(path0)
		path1 = filepath.Dir(path1)
	}
	return path0
}
