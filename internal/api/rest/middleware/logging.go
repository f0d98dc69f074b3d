package middleware

import (
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/middleware"
	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/metrics"
)

// RequestLogger logs every request and records its status class.
type RequestLogger struct {
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewRequestLogger initializes a RequestLogger object.
func NewRequestLogger(log *zap.Logger, m *metrics.Metrics) *RequestLogger {
	return &RequestLogger{log: log, metrics: m}
}

// Handle serves as a middleware handler implementing request logging.
func (rl *RequestLogger) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		rl.metrics.ObserveResponse(r.Method, status, elapsed.Seconds())
		rl.log.Info("request served",
			zap.String("requestId", chiMiddleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("host", r.Host),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", elapsed),
		)
	})
}
