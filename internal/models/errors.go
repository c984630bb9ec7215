package models

import "errors"

// Domain error kinds. Services wrap these with context via fmt.Errorf("%w: ...")
// and the HTTP layer maps them to status codes with errors.Is.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrRequestNotFound = errors.New("request not found")

	ErrDuplicateEmail = errors.New("user with this email already exists")
	ErrAlreadyDecided = errors.New("booking is already decided")

	ErrNotOwner = errors.New("user is not the owner of the item")

	ErrItemNotAvailable  = errors.New("item is not available for booking")
	ErrCommentNotAllowed = errors.New("comment is not allowed")
	ErrInvalidDates      = errors.New("booking start must be before end")
	ErrInvalidState      = errors.New("state is not valid")
)
