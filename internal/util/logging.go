package util

import (
	"context"
	"fmt"
	"log/slog"
)

type loggerKey struct{}

// WithLogger : кладёт логгер запроса в контекст
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// Logger : достаёт логгер из контекста (или slog.Default())
func Logger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}

// LogError : пишет ошибку в лог и возвращает её обёрнутой сообщением
func LogError(ctx context.Context, message string, err error) error {
	Logger(ctx).Error(message, slog.String("err", fmt.Sprint(err)))
	return fmt.Errorf("%s: %w", message, err)
}
