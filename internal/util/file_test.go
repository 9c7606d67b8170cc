package util

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateArchive(t *testing.T) {
	out := filepath.Join(t.TempDir(), "book.zip")

	err := CreateArchive([]ArchiveEntry{
		{Name: "0003_c.html", Data: []byte("<p>c</p>")},
		{Name: "0001_a.html", Data: []byte("<p>a</p>")},
	}, out)
	require.NoError(t, err)

	r, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.File, 2)
	assert.Equal(t, "0001_a.html", r.File[0].Name)
	assert.Equal(t, "0003_c.html", r.File[1].Name)

	f, err := r.File[1].Open()
	require.NoError(t, err)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "<p>c</p>", string(b))
}

func TestCreateArchiveBadPath(t *testing.T) {
	err := CreateArchive(nil, filepath.Join(t.TempDir(), "missing", "x.zip"))
	assert.Error(t, err)
}

func TestRemovePartial(t *testing.T) {
	p := filepath.Join(t.TempDir(), "partial.epub")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0644))

	RemovePartial(p)
	_, err := os.Stat(p)
	assert.True(t, os.IsNotExist(err))

	RemovePartial(p)
}
