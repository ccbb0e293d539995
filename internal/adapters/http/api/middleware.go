package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/rankr/pkg/metrics"
)

// MetricsMiddleware records request count, latency and failures for endpoint.
// Failures are labelled with the API error code when the handler wrote one.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		durationMs := float64(time.Since(start).Microseconds()) / 1000
		metrics.RecordHTTPRequest(endpoint, r.Method, strconv.Itoa(rec.status), durationMs)
		if rec.status >= http.StatusBadRequest {
			metrics.RecordHTTPError(endpoint, r.Method, rec.errorType(), severity(rec.status))
		}
	}
}

// statusRecorder captures the status and API error code of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	code   string
}

func (rw *statusRecorder) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *statusRecorder) setErrorCode(code string) { rw.code = code }

// errorType prefers the API error code and falls back to the status class.
func (rw *statusRecorder) errorType() string {
	if rw.code != "" {
		return rw.code
	}
	switch {
	case rw.status >= http.StatusInternalServerError:
		return "server_error"
	case rw.status == http.StatusNotFound:
		return "not_found"
	case rw.status == http.StatusMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "client_error"
	}
}

// severity ranks failures: 409s are ordinary voter races, 5xx need attention.
func severity(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "high"
	case status == http.StatusConflict:
		return "low"
	default:
		return "medium"
	}
}

// errorCodeSetter is implemented by statusRecorder; writeError reports through it.
type errorCodeSetter interface {
	setErrorCode(code string)
}
