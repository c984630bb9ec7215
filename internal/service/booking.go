package service

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/database"
	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// BookingService owns the booking lifecycle: creation in WAITING, the
// one-shot owner decision, and the temporal listing filters.
type BookingService struct {
	db     *database.DB
	logger *zerolog.Logger
}

func NewBookingService(db *database.DB, logger *zerolog.Logger) *BookingService {
	return &BookingService{db: db, logger: logger}
}

// Create books an item for the given user. The gateway already validated the
// date range; the check is repeated here because the server must stay correct
// when called directly.
func (s *BookingService) Create(ctx context.Context, bookerID int64, create models.BookingCreate) (*models.BookingDetail, error) {
	booker, err := s.db.GetUserByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	if create.Start == nil || create.End == nil || !create.Start.Before(*create.End) {
		return nil, fmt.Errorf("%w: start %v, end %v", models.ErrInvalidDates, create.Start, create.End)
	}

	item, err := s.db.GetItemByID(ctx, create.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, fmt.Errorf("%w: id %d", models.ErrItemNotAvailable, item.ID)
	}

	booking := &models.Booking{
		ItemID:   item.ID,
		BookerID: booker.ID,
		Start:    *create.Start,
		End:      *create.End,
		Status:   models.StatusWaiting,
	}
	if err := s.db.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", item.ID).
		Int64("booker_id", booker.ID).
		Msg("booking created")

	return &models.BookingDetail{
		ID:     booking.ID,
		Start:  booking.Start,
		End:    booking.End,
		Status: booking.Status,
		Item:   *item,
		Booker: *booker,
	}, nil
}

// Approve is the one-shot status transition. Only the item's owner may
// decide, and only a WAITING booking can be decided. The underlying update
// is conditional on the WAITING status, so a concurrent decision loses with
// ErrAlreadyDecided instead of overwriting.
func (s *BookingService) Approve(ctx context.Context, actorID, bookingID int64, approved bool) (*models.BookingDetail, error) {
	detail, err := s.db.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if detail.Item.OwnerID != actorID {
		return nil, fmt.Errorf("%w: user %d, item %d", models.ErrNotOwner, actorID, detail.Item.ID)
	}
	if detail.Status != models.StatusWaiting {
		return nil, fmt.Errorf("%w: id %d has status %s", models.ErrAlreadyDecided, bookingID, detail.Status)
	}

	status := models.StatusRejected
	if approved {
		status = models.StatusApproved
	}
	if err := s.db.DecideBooking(ctx, bookingID, status); err != nil {
		return nil, err
	}

	metrics.IncBookingTransition(status)
	s.logger.Info().
		Int64("booking_id", bookingID).
		Str("status", status).
		Msg("booking decided")

	detail.Status = status
	return detail, nil
}

func (s *BookingService) GetByID(ctx context.Context, bookingID int64) (*models.BookingDetail, error) {
	return s.db.GetBookingByID(ctx, bookingID)
}

// List returns the bookings visible to the subject in the given role,
// filtered by state against a single "now" captured per call.
func (s *BookingService) List(ctx context.Context, scope database.Scope, userID int64, state models.State) ([]models.BookingDetail, error) {
	if _, err := s.db.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	bookings, err := s.db.ListBookings(ctx, scope, userID, state, time.Now())
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.BookingDetail{}
	}
	return bookings, nil
}
