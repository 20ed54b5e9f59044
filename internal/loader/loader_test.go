package loader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

var testROM = []byte{0x60, 0x99, 0x12, 0x02}

//nolint:funlen // test functions can be long
func TestLoad(t *testing.T) {
	t.Run("load raw file", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.ch8", testROM)

		data, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, testROM, data)
	})

	t.Run("load file without extension", func(t *testing.T) {
		tmpFile := createTempFile(t, "test", testROM)

		data, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, testROM, data)
	})

	t.Run("load zip archive", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		_, err := zw.Create("roms/")
		assert.NoError(t, err)
		w, err := zw.Create("roms/test.ch8")
		assert.NoError(t, err)
		_, err = w.Write(testROM)
		assert.NoError(t, err)
		assert.NoError(t, zw.Close())

		tmpFile := createTempFile(t, "test.zip", buf.Bytes())

		data, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, testROM, data)
	})

	t.Run("load gzip file", func(t *testing.T) {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		_, err := gw.Write(testROM)
		assert.NoError(t, err)
		assert.NoError(t, gw.Close())

		tmpFile := createTempFile(t, "test.ch8.GZ", buf.Bytes())

		data, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, testROM, data)
	})

	t.Run("error on empty zip archive", func(t *testing.T) {
		var buf bytes.Buffer
		assert.NoError(t, zip.NewWriter(&buf).Close())

		tmpFile := createTempFile(t, "empty.zip", buf.Bytes())

		_, err := New().Load(tmpFile)
		assert.True(t, errors.Is(err, errEmptyArchive))
	})

	t.Run("error on invalid 7z archive", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.7z", testROM)

		_, err := New().Load(tmpFile)
		assert.Error(t, err)
	})

	t.Run("error on invalid gzip file", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.gz", testROM)

		_, err := New().Load(tmpFile)
		assert.Error(t, err)
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, "empty.ch8", nil)

		_, err := New().Load(tmpFile)
		assert.True(t, errors.Is(err, errEmptyROM))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New().Load("/nonexistent/file.ch8")
		assert.Error(t, err)
	})
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
