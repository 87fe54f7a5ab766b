// =============================================================================
// EDI DELFOR Converter - File Management Utilities
// =============================================================================
//
// Shared file-handling helpers used by the converter pipeline:
//   - permissive interchange reading (invalid byte sequences are replaced,
//     never fatal)
//   - archive moves that survive cross-device renames
//   - output file naming with placeholder expansion
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// READING
// =============================================================================

// ReadFileLossy reads a file as UTF-8 text, substituting the Unicode
// replacement character for invalid byte sequences instead of failing.
// Partner systems occasionally emit legacy-encoded address bytes; a garbled
// character in a name must not abort the whole conversion. Only I/O errors
// are surfaced.
func ReadFileLossy(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

// =============================================================================
// DIRECTORIES AND MOVES
// =============================================================================

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// MoveFile moves a file to a destination directory, keeping its base name.
// A plain rename is attempted first; when the archive directory lives on a
// different filesystem the move falls back to copy-and-delete.
func MoveFile(srcPath, destDir string) (string, error) {
	if err := EnsureDir(destDir); err != nil {
		return "", err
	}

	destPath := filepath.Join(destDir, filepath.Base(srcPath))

	if err := os.Rename(srcPath, destPath); err == nil {
		return destPath, nil
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to open source: %w", err)
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination: %w", err)
	}

	if _, err := io.Copy(dest, src); err != nil {
		dest.Close()
		return "", fmt.Errorf("failed to copy file: %w", err)
	}
	if err := dest.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize destination: %w", err)
	}

	if err := os.Remove(srcPath); err != nil {
		return "", fmt.Errorf("failed to remove source after copy: %w", err)
	}

	return destPath, nil
}

// =============================================================================
// OUTPUT NAMING
// =============================================================================

// ExpandOutputName expands an output-name format into a concrete file name.
//
// PLACEHOLDERS:
//   {uuid}    - A random UUID
//   {stem}    - The input file name without its extension
//   {dialect} - The dialect name
//
// The extension (with leading dot) is appended to the expanded name.
func ExpandOutputName(format, inputPath, dialectName, extension string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	name := format
	name = strings.ReplaceAll(name, "{uuid}", uuid.NewString())
	name = strings.ReplaceAll(name, "{stem}", stem)
	name = strings.ReplaceAll(name, "{dialect}", dialectName)

	return name + extension
}
