// Package reqlog logs one line per HTTP request with zap.
package reqlog

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Middleware logs method, path, status, size, duration and request id.
// 5xx responses log at error level, 4xx at warn, everything else at info.
func Middleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				fields := []zap.Field{
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", status),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				}
				switch {
				case status >= 500:
					log.Error("http request", fields...)
				case status >= 400:
					log.Warn("http request", fields...)
				default:
					log.Info("http request", fields...)
				}
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
