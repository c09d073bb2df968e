// Package output provides the interface and configuration and implementation for writers
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jakopako/sessionscraper/internal/types"
)

// Writer defines the interface for all writers that are responsible
// for writing the result document of a run to a specific output.
type Writer interface {
	Write(result *types.Result) error
}

// WriterConfig defines the necessary paramters to make a new writer
// which is responsible for writing the result document to a specific output
// eg. stdout.
type WriterConfig struct {
	Type     WriterType `yaml:"type" env:"SESSIONSCRAPER_WRITER_TYPE" env-default:"stdout"`
	FilePath string     `yaml:"filepath" env:"SESSIONSCRAPER_WRITER_FILEPATH"`
	Uri      string     `yaml:"uri" env:"SESSIONSCRAPER_WRITER_URI"`
	User     string     `yaml:"user" env:"WRITER_USER"`         // we want to be able to pass credentials via env vars
	Password string     `yaml:"password" env:"WRITER_PASSWORD"` // we want to be able to pass credentials via env vars
}

// WriterType encapsulates the type of a writer
// See below constants for possible types
type WriterType string

const (
	STDOUT_WRITER_TYPE WriterType = "stdout"
	FILE_WRITER_TYPE   WriterType = "file"
	API_WRITER_TYPE    WriterType = "api"
)

// NewWriter returns a new writer depending on the writer type. stdout is
// where the StdoutWriter writes to.
func NewWriter(wc *WriterConfig, stdout io.Writer) (Writer, error) {
	switch wc.Type {
	case STDOUT_WRITER_TYPE, "":
		return NewStdoutWriter(wc, stdout), nil
	case FILE_WRITER_TYPE:
		return NewFileWriter(wc)
	case API_WRITER_TYPE:
		return NewAPIWriter(wc)
	default:
		return nil, fmt.Errorf("writer of type '%s' not implemented", wc.Type)
	}
}

// encodeResult returns the pretty-printed result document followed by a
// newline. HTML characters are not escaped.
func encodeResult(result *types.Result) ([]byte, error) {
	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(result); err != nil {
		return nil, fmt.Errorf("error while encoding result: %w", err)
	}

	var indentBuffer bytes.Buffer
	if err := json.Indent(&indentBuffer, buffer.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("error while indenting json: %w", err)
	}
	return indentBuffer.Bytes(), nil
}
