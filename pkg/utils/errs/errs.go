package errs

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs err and reports it to Sentry. Sentry capture is a no-op until
// sentry.Init has been called.
func Handle(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	attrs := []any{slog.Any("error", err)}
	if gerr := goerr.Unwrap(err); gerr != nil {
		for k, v := range gerr.Values() {
			attrs = append(attrs, slog.Any(k, v))
		}
	}
	ctxlog.From(ctx).Error(msg, attrs...)

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("message", msg)
	})
	if evID := hub.CaptureException(err); evID != nil {
		ctxlog.From(ctx).Info("error reported to sentry", "event_id", *evID)
	}
}
