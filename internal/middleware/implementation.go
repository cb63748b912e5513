package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akolanti/GoPDFChat/internal/metrics"
	"github.com/akolanti/GoPDFChat/pkg/logger_i"
)

const TraceHeader = "X-Trace-Id"

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

// Wrap runs the trace and rate limit steps before next and records request metrics.
func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := metrics.NewHttpStatusRecorder(w)
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
		} else {
			next(rec, re.req)
		}

		status := strconv.Itoa(rec.Status)
		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, status).Inc()
		metrics.CaptureRequestMetrics(status, time.Since(start))
		re.logger.Info("Request served", "method", r.Method, "path", r.URL.Path, "status", rec.Status, "duration", time.Since(start))
	}
}

func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re = injectTrace(re)
	if re.badRequest.isBadRequest {
		return re
	}
	return rateLimiter(re)
}
