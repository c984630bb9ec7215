package gateway

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

type itemPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"requestId,omitempty"`
}

type commentPayload struct {
	Text *string `json:"text"`
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var p itemPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
		writeError(w, http.StatusBadRequest, "name must not be blank")
		return
	}
	if p.Description == nil || strings.TrimSpace(*p.Description) == "" {
		writeError(w, http.StatusBadRequest, "description must not be blank")
		return
	}
	if p.Available == nil {
		writeError(w, http.StatusBadRequest, "available must be set")
		return
	}

	resp, err := s.client.Post(r.Context(), "/items", uid, p)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.client.Get(r.Context(), "/items", uid)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}

func (s *Server) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if strings.TrimSpace(text) == "" {
		// No point asking the server for nothing.
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}

	resp, err := s.client.GetCached(r.Context(), "/items/search?text="+url.QueryEscape(text), 0)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.client.Get(r.Context(), "/items/"+formatID(id), 0)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var p itemPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.client.Patch(r.Context(), "/items/"+formatID(id), uid, p)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var p commentPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Text == nil || strings.TrimSpace(*p.Text) == "" {
		writeError(w, http.StatusBadRequest, "text must not be blank")
		return
	}

	resp, err := s.client.Post(r.Context(), "/items/"+formatID(id)+"/comment", uid, p)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}
