package models

import "time"

// Request is a borrow request: "I am looking for X". Items may later be
// created in response to it. Requests are never mutated.
type Request struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requesterId"`
	Created     time.Time `json:"created"`
}

// RequestWithResponses is a request annotated with the items offered for it.
type RequestWithResponses struct {
	ID          int64          `json:"id"`
	Description string         `json:"description"`
	Created     time.Time      `json:"created"`
	Items       []ItemResponse `json:"items"`
}
