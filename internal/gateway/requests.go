package gateway

import (
	"encoding/json"
	"net/http"
	"strings"
)

type requestPayload struct {
	Description *string `json:"description"`
}

func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var p requestPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Description == nil || strings.TrimSpace(*p.Description) == "" {
		writeError(w, http.StatusBadRequest, "description must not be blank")
		return
	}

	resp, err := s.client.Post(r.Context(), "/requests", uid, p)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}

func (s *Server) handleOwnRequests(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.client.Get(r.Context(), "/requests", uid)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}

func (s *Server) handleAllRequests(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.client.GetCached(r.Context(), "/requests/all", uid)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.client.Get(r.Context(), "/requests/"+formatID(id), 0)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}
