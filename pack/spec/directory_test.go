package spec_test

import (
	"errors"
	"testing"

	"github.com/eak1mov/go-libraster/pack/spec"
	gcmp "github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDirectorySerializer(t *testing.T) {
	for name, entries := range map[string][]spec.Entry{
		"empty": {},
		"single": {
			{TileCode: 7, Offset: 0, Length: 10, RunLength: 1},
		},
		"contiguous": {
			{TileCode: 0, Offset: 0, Length: 10, RunLength: 1},
			{TileCode: 1, Offset: 10, Length: 20, RunLength: 3},
			{TileCode: 9, Offset: 30, Length: 5, RunLength: 1},
		},
		"shared": {
			{TileCode: 0, Offset: 0, Length: 10, RunLength: 2},
			{TileCode: 2, Offset: 10, Length: 10, RunLength: 1},
			{TileCode: 3, Offset: 0, Length: 10, RunLength: 1},
			{TileCode: 1000, Offset: 10, Length: 10, RunLength: 1},
		},
	} {
		t.Run(name, func(t *testing.T) {
			deserialized, err := spec.DeserializeDirectory(spec.SerializeDirectory(entries))
			if err != nil {
				t.Fatalf("DeserializeDirectory failed: %v", err)
			}
			if diff := gcmp.Diff(entries, deserialized); diff != "" {
				t.Errorf("DeserializeDirectory(SerializeDirectory(input)) mismatch (-want+got):\n%v", diff)
			}
		})
	}
}

func TestDirectoryErrors(t *testing.T) {
	for _, data := range [][]byte{
		{},
		{0xff},
		{100, 1, 1, 1, 1},
		spec.SerializeDirectory([]spec.Entry{{TileCode: 1, Length: 1, RunLength: 1}, {TileCode: 2, Length: 1, RunLength: 1}})[:6],
	} {
		_, err := spec.DeserializeDirectory(data)
		require.Truef(t, errors.Is(err, spec.ErrInvalidDirectory), "%v", err)
	}
}

func TestCompactEntries(t *testing.T) {
	entries := []spec.Entry{
		{TileCode: 0, Offset: 0, Length: 4, RunLength: 1},
		{TileCode: 1, Offset: 0, Length: 4, RunLength: 1},
		{TileCode: 2, Offset: 0, Length: 4, RunLength: 1},
		{TileCode: 3, Offset: 4, Length: 4, RunLength: 1},
		{TileCode: 5, Offset: 4, Length: 4, RunLength: 1},
		{TileCode: 6, Offset: 0, Length: 4, RunLength: 1},
	}
	want := []spec.Entry{
		{TileCode: 0, Offset: 0, Length: 4, RunLength: 3},
		{TileCode: 3, Offset: 4, Length: 4, RunLength: 1},
		{TileCode: 5, Offset: 4, Length: 4, RunLength: 1},
		{TileCode: 6, Offset: 0, Length: 4, RunLength: 1},
	}
	if diff := gcmp.Diff(want, spec.CompactEntries(entries)); diff != "" {
		t.Errorf("CompactEntries mismatch (-want+got):\n%v", diff)
	}
	require.Empty(t, spec.CompactEntries(nil))
}

func TestFindEntry(t *testing.T) {
	entries := []spec.Entry{
		{TileCode: 2, Offset: 0, Length: 4, RunLength: 3},
		{TileCode: 8, Offset: 4, Length: 4, RunLength: 1},
	}
	for _, tc := range []struct {
		code  uint64
		found bool
		want  spec.Entry
	}{
		{code: 0, found: false},
		{code: 2, found: true, want: entries[0]},
		{code: 4, found: true, want: entries[0]},
		{code: 5, found: false},
		{code: 8, found: true, want: entries[1]},
		{code: 9, found: false},
	} {
		got, found := spec.FindEntry(entries, tc.code)
		require.Equalf(t, tc.found, found, "code %d", tc.code)
		require.Equalf(t, tc.want, got, "code %d", tc.code)
	}
}
