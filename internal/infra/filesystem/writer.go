package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter writes structured documents to disk, creating parent directories.
type FileWriter struct{}

func NewWriter() *FileWriter {
	return &FileWriter{}
}

// WriteJSON writes data as indented JSON to the specified path
func (w *FileWriter) WriteJSON(path string, data any) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, append(content, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
