package middleware

import (
	"net/http"
	"time"

	"github.com/openvenue/wayfinder/pkg/logging"
)

// statusResponseWriter captures the response status for the access log
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Logging creates middleware that logs HTTP requests with timing information.
// It uses the request ID from context if available.
func Logging(log logging.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	accessLog := log.With(logging.Component("http"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapper, r)

			fields := []logging.Field{
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", wrapper.statusCode),
				logging.Latency(time.Since(start)),
			}
			if id := GetRequestID(r); id != "" {
				fields = append(fields, logging.RequestID(id))
			}

			accessLog.Info("request handled", fields...)
		})
	}
}
