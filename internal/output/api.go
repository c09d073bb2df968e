package output

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jakopako/sessionscraper/internal/types"
)

// APIWriter represents a writer that posts the result document to an api.
type APIWriter struct {
	*WriterConfig
	client *resty.Client
	logger *slog.Logger
}

// NewAPIWriter returns a new APIWriter
func NewAPIWriter(wc *WriterConfig) (*APIWriter, error) {
	if wc.Uri == "" {
		return nil, errors.New("uri needs to be specified for the APIWriter")
	}
	client := resty.New().
		SetTimeout(60*time.Second).
		SetHeader("Content-Type", "application/json").
		SetDisableWarn(true)
	if wc.User != "" {
		client.SetBasicAuth(wc.User, wc.Password)
	}
	return &APIWriter{
		WriterConfig: wc,
		client:       client,
		logger:       slog.With(slog.String("writer", string(API_WRITER_TYPE))),
	}, nil
}

func (w *APIWriter) Write(result *types.Result) error {
	b, err := encodeResult(result)
	if err != nil {
		return err
	}
	res, err := w.client.R().SetBody(b).Post(w.Uri)
	if err != nil {
		return fmt.Errorf("error while sending post request: %w", err)
	}
	if res.StatusCode() >= 300 {
		return fmt.Errorf("error while posting result. Status Code: %d Response: %s", res.StatusCode(), res.String())
	}
	w.logger.Info(fmt.Sprintf("posted result to %s", w.Uri))
	return nil
}
