package clog

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ChiOption configures SlogChiMiddleware.
type ChiOption func(*chiConfig)

type chiConfig struct {
	skip func(r *http.Request) bool
}

// SkipChiRequests suppresses the access line for requests skip accepts.
func SkipChiRequests(skip func(r *http.Request) bool) ChiOption {
	return func(cfg *chiConfig) {
		cfg.skip = skip
	}
}

// SlogChiMiddleware opens a log scope per request and writes one access line
// once the handler returns, at a level chosen by the response status.
func SlogChiMiddleware(opts ...ChiOption) func(http.Handler) http.Handler {
	var cfg chiConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ctx := NewScope(r.Context())
			SetAll(ctx, map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
			})
			next.ServeHTTP(ww, r.WithContext(ctx))
			if cfg.skip != nil && cfg.skip(r) {
				return
			}

			attrs := map[string]any{
				"status":        ww.Status(),
				"bytes_written": ww.BytesWritten(),
				"duration":      time.Since(start),
			}
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if pattern := rc.RoutePattern(); pattern != "" {
					attrs["route"] = pattern
				}
			}
			SetAll(ctx, attrs)
			slog.Log(ctx, LevelForStatus(ww.Status()), http.StatusText(ww.Status()))
		})
	}
}
