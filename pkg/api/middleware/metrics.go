package middleware

import (
	"net/http"
	"strconv"
	"time"
)

// Recorder receives per-request HTTP measurements. *metrics.Registry
// satisfies it; tests substitute fakes.
type Recorder interface {
	RecordHTTPRequest(method, path, status string, duration time.Duration)
	RecordResponseSize(method, path string, size float64)
	IncHTTPRequestsInFlight()
	DecHTTPRequestsInFlight()
}

// observedWriter captures the status code and body size on the way out. A
// Write before any WriteHeader counts as an implicit 200.
type observedWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *observedWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *observedWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Metrics instruments every request with duration, status and response
// size, plus an in-flight gauge. A nil recorder leaves the chain
// untouched.
func Metrics(rec Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rec == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec.IncHTTPRequestsInFlight()
			defer rec.DecHTTPRequestsInFlight()

			ow := &observedWriter{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(ow, r)

			if ow.status == 0 {
				ow.status = http.StatusOK
			}
			rec.RecordHTTPRequest(r.Method, r.URL.Path, strconv.Itoa(ow.status), time.Since(start))
			rec.RecordResponseSize(r.Method, r.URL.Path, float64(ow.bytes))
		})
	}
}
