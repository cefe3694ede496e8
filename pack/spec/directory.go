package spec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

var ErrInvalidDirectory = errors.New("invalid tile directory")

// Entry maps a run of consecutive curve codes to one tile payload.
type Entry struct {
	TileCode  uint64
	Offset    uint64 // relative to the tile data section
	Length    uint32
	RunLength uint32
}

// SerializeDirectory encodes entries sorted by TileCode as uvarint columns:
// code deltas, run lengths, lengths, then offsets where zero marks a payload
// that directly follows the previous one.
func SerializeDirectory(entries []Entry) []byte {
	buffer := binary.AppendUvarint(nil, uint64(len(entries)))

	lastCode := uint64(0)
	for _, entry := range entries {
		buffer = binary.AppendUvarint(buffer, entry.TileCode-lastCode)
		lastCode = entry.TileCode
	}
	for _, entry := range entries {
		buffer = binary.AppendUvarint(buffer, uint64(entry.RunLength))
	}
	for _, entry := range entries {
		buffer = binary.AppendUvarint(buffer, uint64(entry.Length))
	}
	for i, entry := range entries {
		if i > 0 && entry.Offset == entries[i-1].Offset+uint64(entries[i-1].Length) {
			buffer = binary.AppendUvarint(buffer, 0)
		} else {
			buffer = binary.AppendUvarint(buffer, entry.Offset+1)
		}
	}
	return buffer
}

func DeserializeDirectory(data []byte) ([]Entry, error) {
	reader := bytes.NewReader(data)

	var err error
	next := func() uint64 {
		if err != nil {
			return 0
		}
		var value uint64
		value, err = binary.ReadUvarint(reader)
		return value
	}

	count := next()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDirectory, err)
	}
	// every entry takes at least four bytes
	if count > uint64(len(data))/4 {
		return nil, fmt.Errorf("%w: %d entries in %d bytes", ErrInvalidDirectory, count, len(data))
	}

	entries := make([]Entry, count)
	code := uint64(0)
	for i := range entries {
		code += next()
		entries[i].TileCode = code
	}
	for i := range entries {
		entries[i].RunLength = uint32(next())
	}
	for i := range entries {
		entries[i].Length = uint32(next())
	}
	for i := range entries {
		value := next()
		if value == 0 && i > 0 {
			entries[i].Offset = entries[i-1].Offset + uint64(entries[i-1].Length)
		} else {
			entries[i].Offset = value - 1
		}
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDirectory, err)
	}
	return entries, nil
}

// CompactEntries merges entries with consecutive codes that share a payload
// into runs. Entries must be sorted by TileCode.
func CompactEntries(entries []Entry) []Entry {
	if len(entries) == 0 {
		return entries
	}
	last := 0
	for _, entry := range entries[1:] {
		run := &entries[last]
		if entry.Offset == run.Offset && entry.TileCode == run.TileCode+uint64(run.RunLength) {
			run.RunLength++
			continue
		}
		last++
		entries[last] = entry
	}
	return entries[:last+1]
}

// FindEntry returns the entry whose run covers tileCode.
func FindEntry(entries []Entry, tileCode uint64) (Entry, bool) {
	idx := sort.Search(len(entries), func(i int) bool {
		return entries[i].TileCode > tileCode
	})
	if idx == 0 {
		return Entry{}, false
	}
	entry := entries[idx-1]
	if tileCode >= entry.TileCode+uint64(entry.RunLength) {
		return Entry{}, false
	}
	return entry, true
}
