package clientip

import (
	"context"
	"log/slog"
)

// LoggerExtractor adds "client_ip" to log records of requests that passed
// through Middleware.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if ip := FromContext(ctx); ip != "" {
			return slog.String("client_ip", ip), true
		}
		return slog.Attr{}, false
	}
}
