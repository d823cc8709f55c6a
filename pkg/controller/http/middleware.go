package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
	"github.com/m-mizutani/prbuild/pkg/domain/model"
	"github.com/m-mizutani/prbuild/pkg/utils/errs"
)

// LoggingMiddleware returns a middleware that logs HTTP requests and puts a
// request-scoped logger into the request context
func LoggingMiddleware(ctx context.Context) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			logger := ctxlog.From(ctx).With("request_id", middleware.GetReqID(r.Context()))
			r = r.WithContext(ctxlog.With(r.Context(), logger))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("HTTP request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"duration_ms", time.Since(start).Milliseconds(),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// SignatureMiddleware rejects requests whose body is not signed with the
// webhook secret in X-Hub-Signature. The body is restored for next.
func SignatureMiddleware(auth interfaces.Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(r.Body)
			_ = r.Body.Close()
			if err != nil {
				writeError(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
				return
			}

			if err := auth.Authenticate(ctx, body, r.Header.Get("X-Hub-Signature")); err != nil {
				handleError(ctx, w, err)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

// statusCodeOf maps the error taxonomy to HTTP status codes
func statusCodeOf(err error) int {
	switch {
	case goerr.HasTag(err, model.ErrTagAuthentication):
		return http.StatusUnauthorized
	case goerr.HasTag(err, model.ErrTagNotBuildable):
		return http.StatusUnprocessableEntity
	case goerr.HasTag(err, model.ErrTagInvalidRequest):
		return http.StatusBadRequest
	case goerr.HasTag(err, model.ErrTagBuildStart),
		goerr.HasTag(err, model.ErrTagBuildLookup),
		goerr.HasTag(err, model.ErrTagStatusPublish):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleError logs err, reports server-side failures, and writes the response
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusCodeOf(err)

	switch {
	case status >= http.StatusInternalServerError:
		errs.Handle(ctx, "Failed to process request", err)
	case status == http.StatusUnprocessableEntity:
		ctxlog.From(ctx).Info("Ignoring event that is not buildable", "reason", err.Error())
	default:
		ctxlog.From(ctx).Warn("Request rejected", "error", err)
	}

	writeError(ctx, w, err, status)
}

// writeError writes an error response
func writeError(ctx context.Context, w http.ResponseWriter, err error, status int) {
	writeJSON(ctx, w, status, map[string]string{
		"error": err.Error(),
	})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}
