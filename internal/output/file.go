package output

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jakopako/sessionscraper/internal/types"
)

// FileWriter represents a writer that writes to a file
type FileWriter struct {
	*WriterConfig
	logger *slog.Logger
}

// NewFileWriter returns a new FileWriter
func NewFileWriter(wc *WriterConfig) (*FileWriter, error) {
	if wc.FilePath == "" {
		return nil, errors.New("filepath needs to be specified for the FileWriter")
	}

	dir := filepath.Dir(wc.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return &FileWriter{
		WriterConfig: wc,
		logger:       slog.With(slog.String("writer", string(FILE_WRITER_TYPE))),
	}, nil
}

func (w *FileWriter) Write(result *types.Result) error {
	b, err := encodeResult(result)
	if err != nil {
		return err
	}
	if err := os.WriteFile(w.FilePath, b, 0644); err != nil {
		return fmt.Errorf("error while writing result to file: %w", err)
	}
	w.logger.Info(fmt.Sprintf("wrote result to file %s", w.FilePath))
	return nil
}
