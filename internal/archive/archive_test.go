package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basel-ax/cursorsmith/internal/domain"
)

func loadingAndTyping() domain.CursorSet {
	var set domain.CursorSet
	set[domain.VariantLoading] = &domain.ProcessedImage{Variant: domain.VariantLoading, PNG: []byte("loading-png")}
	set[domain.VariantTyping] = &domain.ProcessedImage{Variant: domain.VariantTyping, PNG: []byte("typing-png")}
	return set
}

func TestWriteZipPopulatedSlotsOnly(t *testing.T) {
	var buf bytes.Buffer
	ok, err := WriteZip(&buf, loadingAndTyping())
	require.NoError(t, err)
	require.True(t, ok)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	contents := map[string]string{}
	var names []string
	for _, f := range zr.File {
		assert.Equal(t, FolderName, path.Dir(f.Name))
		names = append(names, path.Base(f.Name))

		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		contents[path.Base(f.Name)] = string(data)
	}
	sort.Strings(names)

	assert.Equal(t, []string{"loading.png", "typing.png"}, names)
	assert.Equal(t, "loading-png", contents["loading.png"])
	assert.Equal(t, "typing-png", contents["typing.png"])
}

func TestWriteZipEmptySetIsNoOp(t *testing.T) {
	var buf bytes.Buffer
	ok, err := WriteZip(&buf, domain.CursorSet{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, buf.Len())

	data, err := Bytes(domain.CursorSet{})
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSaveZip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	p, err := SaveZip(dir, BundleName, domain.CursorSet{})
	require.NoError(t, err)
	assert.Empty(t, p)
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	p, err = SaveZip(dir, BundleName, loadingAndTyping())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pixel-cursor-set.zip"), p)
	zr, err := zip.OpenReader(p)
	require.NoError(t, err)
	assert.Len(t, zr.File, 2)
	require.NoError(t, zr.Close())
}

func TestSaveSingle(t *testing.T) {
	dir := t.TempDir()
	img := &domain.ProcessedImage{Variant: domain.VariantPointing, PNG: []byte("pointing-png")}

	p, err := SaveSingle(dir, img)
	require.NoError(t, err)
	assert.Equal(t, "cursor-pointing.png", filepath.Base(p))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []byte("pointing-png"), data)

	_, err = SaveSingle(dir, nil)
	assert.Error(t, err)
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "loading.png", FileName(domain.VariantLoading))
	assert.Equal(t, "cursor-typing.png", SingleFileName(domain.VariantTyping))
}
