package fileutils_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/bank-insights/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.txt")))
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nonexistent")))

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))
	assert.False(t, fileutils.DirectoryExists(testFile))
}

func TestEnsureDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	newDir := filepath.Join(tmpDir, "new", "nested", "dir")
	require.NoError(t, fileutils.EnsureDirectoryExists(newDir))
	assert.True(t, fileutils.DirectoryExists(newDir))

	assert.NoError(t, fileutils.EnsureDirectoryExists(tmpDir))
	assert.NoError(t, fileutils.EnsureDirectoryExists(""))
}

func TestReadFile(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("hello world"), 0600))

	data, err := fileutils.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	_, err = fileutils.ReadFile(filepath.Join(tmpDir, "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "reports", "report.json")

	require.NoError(t, fileutils.WriteFile(target, []byte(`{"a":1}`), 0644))
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	require.NoError(t, fileutils.WriteFile(target, []byte(`{"a":2}`), 0644))
	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestWriteFile_FailsWhenParentIsAFile(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	err := fileutils.WriteFile(filepath.Join(blocker, "report.json"), []byte("{}"), 0644)
	assert.Error(t, err)
}

func TestCreateFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "exports", "operations.csv")

	file, err := fileutils.CreateFile(path)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	assert.True(t, fileutils.FileExists(path))
}

func TestTimestampedName(t *testing.T) {
	at := time.Date(2024, time.March, 5, 7, 8, 9, 0, time.UTC)
	assert.Equal(t, "report_20240305_070809.json", fileutils.TimestampedName("report", "json", at))
}
