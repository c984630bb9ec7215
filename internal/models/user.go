package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// UserPatch carries a partial update. Nil fields keep the stored value;
// there is no way to clear a field to empty through the API.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
