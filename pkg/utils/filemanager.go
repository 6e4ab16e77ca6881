// =============================================================================
// EDI 834 Generator - File Manager Utility
// =============================================================================
//
// File-system helpers for the CLI layer: directory management, atomic-ish
// output writing (full content only, never partial), and output file naming
// with placeholder expansion.
//
// NAMING PLACEHOLDERS:
//   {uuid}      - a random UUID
//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteFile writes content to path, creating the parent directory when
// needed. Callers must pass fully assembled content: nothing is streamed,
// so a failed run never leaves a partial artifact behind.
func WriteFile(path, content string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// GenerateOutputName expands the {uuid} and {timestamp} placeholders in a
// file-name pattern and guarantees the given extension.
func GenerateOutputName(pattern, extension string) string {
	name := pattern
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))

	if extension != "" && filepath.Ext(name) != extension {
		name += extension
	}
	return name
}

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
