package output

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jakopako/sessionscraper/internal/types"
)

// StdoutWriter represents a writer that writes to stdout
type StdoutWriter struct {
	out    io.Writer
	logger *slog.Logger
}

// NewStdoutWriter returns a new StdoutWriter
func NewStdoutWriter(wc *WriterConfig, out io.Writer) *StdoutWriter {
	return &StdoutWriter{
		out:    out,
		logger: slog.With(slog.String("writer", string(STDOUT_WRITER_TYPE))),
	}
}

func (w *StdoutWriter) Write(result *types.Result) error {
	b, err := encodeResult(result)
	if err != nil {
		return err
	}
	if _, err := w.out.Write(b); err != nil {
		return fmt.Errorf("error while writing result: %w", err)
	}
	w.logger.Debug(fmt.Sprintf("wrote result (success=%t)", result.Success))
	return nil
}
