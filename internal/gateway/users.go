package gateway

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
)

type userPayload struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var p userPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
		writeError(w, http.StatusBadRequest, "name must not be blank")
		return
	}
	if p.Email == nil || strings.TrimSpace(*p.Email) == "" {
		writeError(w, http.StatusBadRequest, "email must not be blank")
		return
	}
	if !validEmail(*p.Email) {
		writeError(w, http.StatusBadRequest, "email is not valid")
		return
	}

	resp, err := s.client.Post(r.Context(), "/users", 0, p)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.client.Get(r.Context(), "/users/"+formatID(id), 0)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var p userPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Email != nil && !validEmail(*p.Email) {
		writeError(w, http.StatusBadRequest, "email is not valid")
		return
	}

	resp, err := s.client.Patch(r.Context(), "/users/"+formatID(id), 0, p)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.client.Delete(r.Context(), "/users/"+formatID(id), 0)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}
