package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"shareit/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SharerUserHeader identifies the acting user on every call that needs one.
const SharerUserHeader = "X-Sharer-User-Id"

const requestIDHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs every request with its duration and status, tags it
// with a request id, and feeds the Prometheus request counter.
func loggingMiddleware(logger *zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		metrics.IncHTTP(r.URL.Path, recorder.status)
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", requestID).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// userID reads the acting user from the X-Sharer-User-Id header.
func userID(r *http.Request) (int64, error) {
	raw := r.Header.Get(SharerUserHeader)
	if raw == "" {
		return 0, fmt.Errorf("%s header is required", SharerUserHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%s header must be a positive integer", SharerUserHeader)
	}
	return id, nil
}

// pathID parses the {id}-style path value named by key.
func pathID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(key), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s in path", key)
	}
	return id, nil
}
