package models

import (
	"strings"
	"time"
)

// Booking lifecycle statuses. A booking is created WAITING and moves exactly
// once to APPROVED or REJECTED by the item's owner.
const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type Booking struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"itemId"`
	BookerID  int64     `json:"bookerId"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// BookingDetail is the response view: the booking with its item and booker
// expanded.
type BookingDetail struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Item   Item      `json:"item"`
	Booker User      `json:"booker"`
}

// BookingCreate is the inbound payload for creating a booking. Start and End
// are pointers so that missing fields can be told apart from zero values.
type BookingCreate struct {
	ItemID int64      `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

// State is the temporal filter applied to booking listings.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState resolves a query parameter into a State. Matching is
// case-insensitive and an empty value defaults to ALL.
func ParseState(raw string) (State, bool) {
	if strings.TrimSpace(raw) == "" {
		return StateAll, true
	}
	switch State(strings.ToUpper(strings.TrimSpace(raw))) {
	case StateAll:
		return StateAll, true
	case StateCurrent:
		return StateCurrent, true
	case StatePast:
		return StatePast, true
	case StateFuture:
		return StateFuture, true
	case StateWaiting:
		return StateWaiting, true
	case StateRejected:
		return StateRejected, true
	}
	return "", false
}
