package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type apiError struct {
	Error     string `json:"error"`
	ErrorCode int    `json:"errorCode"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Error: msg, ErrorCode: status})
}

// relay copies an upstream reply to the client unchanged.
func relay(w http.ResponseWriter, resp *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

func (s *Server) upstreamError(w http.ResponseWriter, err error) {
	s.logger.Error().Err(err).Msg("Upstream request failed")
	writeError(w, http.StatusBadGateway, "server is unavailable")
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
