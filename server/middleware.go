package server

import (
	"log/slog"
	"net/http"
	"time"
)

// Middleware wraps an [http.Handler] to run logic before or after it.
type Middleware func(next http.Handler) http.Handler

// wrap applies middlewares so they run in the order given.
func wrap(next http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		next = middlewares[i](next)
	}
	return next
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(statusCode int) {
	w.ResponseWriter.WriteHeader(statusCode)
	w.statusCode = statusCode
}

// LoggingMiddleware logs the status code, method, path, and duration of every request.
func LoggingMiddleware(logger *slog.Logger, level slog.Level) Middleware {
	if logger == nil {
		panic("nil logger")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{w, http.StatusOK}
			start := time.Now()
			defer func() {
				logger.LogAttrs(r.Context(), level, "Request handled",
					slog.Int("statusCode", sw.statusCode),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Duration("duration", time.Since(start)),
				)
			}()
			next.ServeHTTP(sw, r)
		})
	}
}

// RecoveryMiddleware turns a panic in a handler into a 500 response.
// A synchronous subscriber that panics unwinds through the bus into the handler, and ends up here.
func RecoveryMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		panic("nil logger")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("Recovered from panic", "path", r.URL.Path, "panic", rec)
					w.WriteHeader(http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
