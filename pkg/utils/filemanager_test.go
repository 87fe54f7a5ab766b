package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileLossy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.edi")
	require.NoError(t, os.WriteFile(path, []byte("BGM+241+DOC1'"), 0644))

	content, err := ReadFileLossy(path)
	require.NoError(t, err)
	assert.Equal(t, "BGM+241+DOC1'", content)
}

func TestReadFileLossyReplacesInvalidBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.edi")
	// 0xFC is "ü" in Latin-1, invalid as a standalone UTF-8 byte.
	require.NoError(t, os.WriteFile(path, []byte("NAD+SU+X++M\xfcLLER'"), 0644))

	content, err := ReadFileLossy(path)
	require.NoError(t, err)
	assert.Equal(t, "NAD+SU+X++M�LLER'", content)
}

func TestReadFileLossyMissingFile(t *testing.T) {
	_, err := ReadFileLossy(filepath.Join(t.TempDir(), "absent.edi"))
	assert.Error(t, err)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)

	// Idempotent on an existing directory.
	assert.NoError(t, EnsureDir(dir))
}

func TestMoveFile(t *testing.T) {
	srcDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "archive")
	srcPath := filepath.Join(srcDir, "in.edi")
	require.NoError(t, os.WriteFile(srcPath, []byte("content"), 0644))

	destPath, err := MoveFile(srcPath, destDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(destDir, "in.edi"), destPath)
	assert.NoFileExists(t, srcPath)

	moved, err := os.ReadFile(destPath)
	require.NoError(t, err)
	assert.Equal(t, "content", string(moved))
}

func TestMoveFileMissingSource(t *testing.T) {
	_, err := MoveFile(filepath.Join(t.TempDir(), "absent.edi"), t.TempDir())
	assert.Error(t, err)
}

func TestExpandOutputName(t *testing.T) {
	name := ExpandOutputName("{stem}_{dialect}", "/inbox/CMI_0042.edi", "cummins", ".txt")
	assert.Equal(t, "CMI_0042_cummins.txt", name)
}

func TestExpandOutputNameUUIDIsUnique(t *testing.T) {
	first := ExpandOutputName("{uuid}", "in.edi", "minebea", ".xlsx")
	second := ExpandOutputName("{uuid}", "in.edi", "minebea", ".xlsx")

	assert.NotEqual(t, first, second)
	assert.Len(t, first, 36+len(".xlsx"))
}
