package models

import "time"

// Comment is a post-rental review. AuthorName is denormalized at creation
// time so listings do not need a join against users.
type Comment struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	ItemID     int64     `json:"-"`
	AuthorID   int64     `json:"-"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// CommentCreate is the inbound payload for posting a comment.
type CommentCreate struct {
	Text string `json:"text"`
}
