package models

import "time"

type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     int64     `json:"ownerId"`
	RequestID   *int64    `json:"requestId,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// ItemPatch carries a partial update of the mutable item fields. The owner
// and originating request are fixed at creation.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// ItemDetail is the read view of an item: the item itself, its comments and
// the start timestamps of the nearest upcoming and latest booking. The
// booking dates are only populated on the owner's listing.
type ItemDetail struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Available   bool       `json:"available"`
	Comments    []Comment  `json:"comments"`
	NextBooking *time.Time `json:"nextBooking"`
	LastBooking *time.Time `json:"lastBooking"`
}

// ItemResponse is the short item view attached to a request it answers.
type ItemResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}
