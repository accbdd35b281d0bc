//go:build unix

package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenMapsWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	content := []byte("%PDF-1.7 mapped content")
	require.NoError(t, os.WriteFile(path, content, 0644))

	f, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, content, f.Bytes())
	require.Equal(t, int64(len(content)), f.Size)

	require.NoError(t, f.Close())
	require.Nil(t, f.Bytes())
	require.NoError(t, f.Close())
}

func TestOpenRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := Open(path)
	require.ErrorIs(t, err, ErrEmpty)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
