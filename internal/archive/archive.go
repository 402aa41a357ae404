// Package archive packages cursor sets for download.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/basel-ax/cursorsmith/internal/domain"
)

const (
	// FolderName is the directory every file of the bundle is placed in
	FolderName = "pixel-cursor-set"

	// BundleName is the default file name of the bundle
	BundleName = FolderName + ".zip"
)

// FileName returns the in-archive name of a variant, e.g. "loading.png"
func FileName(v domain.Variant) string {
	return v.String() + ".png"
}

// SingleFileName returns the standalone download name of a variant, e.g. "cursor-loading.png"
func SingleFileName(v domain.Variant) string {
	return "cursor-" + v.String() + ".png"
}

// WriteZip writes every populated slot of set to w as a zip bundle.
// An empty set writes nothing and returns false.
func WriteZip(w io.Writer, set domain.CursorSet) (bool, error) {
	if set.Empty() {
		return false, nil
	}

	zw := zip.NewWriter(w)
	for _, v := range domain.Variants() {
		img := set.Get(v)
		if img == nil {
			continue
		}
		f, err := zw.Create(FolderName + "/" + FileName(v))
		if err != nil {
			return false, fmt.Errorf("failed to create %s: %w", FileName(v), err)
		}
		if _, err := f.Write(img.PNG); err != nil {
			return false, fmt.Errorf("failed to write %s: %w", FileName(v), err)
		}
	}

	if err := zw.Close(); err != nil {
		return false, fmt.Errorf("failed to close zip writer: %w", err)
	}
	return true, nil
}

// Bytes returns the zip bundle for set, or nil when the set is empty
func Bytes(set domain.CursorSet) ([]byte, error) {
	var buf bytes.Buffer
	ok, err := WriteZip(&buf, set)
	if err != nil || !ok {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveZip writes the bundle to dir/name and returns its path.
// An empty set creates no file and returns an empty path.
func SaveZip(dir, name string, set domain.CursorSet) (string, error) {
	data, err := Bytes(set)
	if err != nil {
		return "", err
	}
	if data == nil {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}
	return path, nil
}

// SaveSingle writes one image to dir as cursor-<variant>.png and returns its path
func SaveSingle(dir string, img *domain.ProcessedImage) (string, error) {
	if img == nil {
		return "", fmt.Errorf("no image to save")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, SingleFileName(img.Variant))
	if err := os.WriteFile(path, img.PNG, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", SingleFileName(img.Variant), err)
	}
	return path, nil
}
