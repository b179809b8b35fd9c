package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"airbnb-rooms-scraper/models"
	"airbnb-rooms-scraper/utils"
)

// JSONWriter writes the records as one indented JSON array and the failures
// to a companion "<name>.failures.json" file.
type JSONWriter struct {
	filePath string
	logger   *utils.Logger
}

// NewJSONWriter creates a new JSONWriter
func NewJSONWriter(filePath string, logger *utils.Logger) *JSONWriter {
	return &JSONWriter{filePath: filePath, logger: logger}
}

// FailuresPath returns where the failures of a run written to path go.
func FailuresPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".failures" + ext
}

func (w *JSONWriter) Save(_ context.Context, _ string, result *models.BatchResult) error {
	if err := writeJSON(w.filePath, result.Successes); err != nil {
		return err
	}
	w.logger.Info("Records written to: %s (%d records)", w.filePath, len(result.Successes))

	failuresPath := FailuresPath(w.filePath)
	if err := writeJSON(failuresPath, result.Failures); err != nil {
		return err
	}
	if len(result.Failures) > 0 {
		w.logger.Warn("Failures written to: %s (%d failures)", failuresPath, len(result.Failures))
	}
	return nil
}

func (w *JSONWriter) Close() error { return nil }

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	// replace atomically
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}
