package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type Storage struct{}

// ReadText loads a file as UTF-8 text.
func (s *Storage) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading file: %w", err)
	}
	return string(data), nil
}

// WriteText overwrites a file with new text content.
func (s *Storage) WriteText(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

// SaveImage writes image bytes to path, creating intermediate directories.
// An existing file is overwritten.
func (s *Storage) SaveImage(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

// ListHTMLFiles returns the HTML files directly inside root, sorted.
// It does not recurse; a missing root is an error.
func (s *Storage) ListHTMLFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s/ directory not found", root)
	}

	files, err := filepath.Glob(filepath.Join(root, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to list HTML files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

func (s *Storage) HasFile(path string) bool {
	return fileExists(path)
}
