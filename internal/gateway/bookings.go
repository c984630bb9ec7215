package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"shareit/internal/models"
)

type bookingPayload struct {
	ItemID int64      `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var p bookingPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.ItemID <= 0 {
		writeError(w, http.StatusBadRequest, "itemId must be set")
		return
	}
	if p.Start == nil || p.End == nil {
		writeError(w, http.StatusBadRequest, "start and end must be set")
		return
	}
	if !p.Start.Before(*p.End) {
		writeError(w, http.StatusBadRequest, "start must be before end")
		return
	}
	if p.Start.Before(time.Now()) {
		writeError(w, http.StatusBadRequest, "start must not be in the past")
		return
	}

	resp, err := s.client.Post(r.Context(), "/bookings", uid, p)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}

func (s *Server) handleBookerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, "/bookings")
}

func (s *Server) handleOwnerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, "/bookings/owner")
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request, path string) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	raw := r.URL.Query().Get("state")
	if raw != "" {
		if _, ok := models.ParseState(raw); !ok {
			writeError(w, http.StatusBadRequest, "Unknown state: "+raw)
			return
		}
		path += "?state=" + raw
	}

	resp, err := s.client.Get(r.Context(), path, uid)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.client.Get(r.Context(), "/bookings/"+formatID(id), 0)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}

func (s *Server) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
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

	approved := r.URL.Query().Get("approved")
	if approved != "true" && approved != "false" {
		writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}

	resp, err := s.client.Patch(r.Context(), "/bookings/"+formatID(id)+"?approved="+approved, uid, nil)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	relay(w, resp)
}
