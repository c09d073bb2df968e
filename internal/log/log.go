package log

import (
	"context"
	"io"
	"log/slog"
)

// Debug enables debug logging and the dumping of fetched pages.
var Debug bool

type loggerCtxKey struct{}

// InitializeDefaultLogger installs a text logger writing to w as the
// default slog logger. Standard output is reserved for the result
// document, so callers pass stderr here.
func InitializeDefaultLogger(w io.Writer) {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: GetLogLevel()}))
	slog.SetDefault(logger)
}

func GetLogLevel() slog.Level {
	if Debug {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
