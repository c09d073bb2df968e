package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"github.com/jakopako/sessionscraper/internal/log"
	"github.com/jakopako/sessionscraper/internal/utils"
)

// writeHTMLToFile stores a fetched page in dir for later inspection.
// Failures are logged, never returned.
func writeHTMLToFile(ctx context.Context, urlStr, content, dir string) {
	logger := log.LoggerFromContext(ctx)
	host := "page"
	if u, err := url.Parse(urlStr); err == nil && u.Host != "" {
		host = u.Host
	}
	name, err := utils.RandomString(host)
	if err != nil {
		logger.Warn(fmt.Sprintf("failed to generate debug file name: %v", err))
		return
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Warn(fmt.Sprintf("failed to create debug directory: %v", err))
			return
		}
	}
	filename := filepath.Join(dir, fmt.Sprintf("%s.html", name))
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		logger.Warn(fmt.Sprintf("failed to write html to file: %v", err))
		return
	}
	logger.Debug(fmt.Sprintf("wrote html of %s to file %s", urlStr, filename))
}

// restyLogger routes resty's own log output through slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...), slog.String("resty_level", "error"))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...), slog.String("resty_level", "warn"))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

// instrumentClient logs every exchange of the client. Nothing is logged
// unless debug logging is enabled.
func instrumentClient(client *resty.Client) {
	// transport errors are reported in the result document, resty must
	// not print them on its own
	client.SetLogger(restyLogger{logger: slog.Default().With(slog.String("component", "resty"))})
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		log.LoggerFromContext(req.Context()).Debug("start request",
			slog.String("method", req.Method),
			slog.String("url", req.URL),
		)
		return nil
	})
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		log.LoggerFromContext(res.Request.Context()).Debug("request succeeded",
			slog.String("method", res.Request.Method),
			slog.String("url", res.Request.URL),
			slog.Int("status", res.StatusCode()),
			slog.Duration("duration", res.Time()),
			slog.String("body", utils.ShortenString(res.String(), 200)),
		)
		return nil
	})
	client.OnError(func(req *resty.Request, err error) {
		log.LoggerFromContext(req.Context()).Debug("request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL),
			slog.String("err", err.Error()),
		)
	})
}
