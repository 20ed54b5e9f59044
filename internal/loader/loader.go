// Package loader handles ROM file loading operations.
package loader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

var (
	errEmptyArchive = errors.New("archive contains no files")
	errEmptyROM     = errors.New("ROM is empty")
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a ROM file and returns the program image. Files with a
// .zip or .7z extension return the first file of the archive, .gz files
// are decompressed, all other files are returned as is.
func (l *Loader) Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	data, err = l.LoadFromBytes(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("loading file %s: %w", path, err)
	}
	return data, nil
}

// LoadFromBytes returns the program image of the file content, the
// extension selects the decompression.
func (l *Loader) LoadFromBytes(data []byte, ext string) ([]byte, error) {
	var err error

	switch strings.ToLower(ext) {
	case ".zip":
		data, err = unzip(data)
	case ".7z":
		data, err = un7z(data)
	case ".gz":
		data, err = gunzip(data)
	}
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, errEmptyROM
	}
	return data, nil
}

func unzip(data []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening zip archive: %w", err)
	}

	for _, file := range r.File {
		if file.FileInfo().IsDir() {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("opening zip entry %s: %w", file.Name, err)
		}
		return readAndClose(rc, file.Name)
	}
	return nil, errEmptyArchive
}

func un7z(data []byte) ([]byte, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening 7z archive: %w", err)
	}

	for _, file := range r.File {
		if file.FileInfo().IsDir() {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("opening 7z entry %s: %w", file.Name, err)
		}
		return readAndClose(rc, file.Name)
	}
	return nil, errEmptyArchive
}

func gunzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	return readAndClose(r, "gzip stream")
}

func readAndClose(rc io.ReadCloser, name string) ([]byte, error) {
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", name, err)
	}
	return data, nil
}
