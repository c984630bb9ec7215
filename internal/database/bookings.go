package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

// Scope selects whose bookings a listing returns.
type Scope string

const (
	ScopeBooker Scope = "booker"
	ScopeOwner  Scope = "owner"
)

const bookingDetailColumns = `b.id, b.start_at, b.end_at, b.status,
       i.id, i.name, i.description, i.available, i.owner_id, i.request_id,
       u.id, u.name, u.email`

const bookingDetailFrom = ` FROM bookings b
       JOIN items i ON i.id = b.item_id
       JOIN users u ON u.id = b.booker_id`

func scanBookingDetail(row interface{ Scan(...any) error }) (*models.BookingDetail, error) {
	var d models.BookingDetail
	var requestID sql.NullInt64
	err := row.Scan(
		&d.ID, &d.Start, &d.End, &d.Status,
		&d.Item.ID, &d.Item.Name, &d.Item.Description, &d.Item.Available,
		&d.Item.OwnerID, &requestID,
		&d.Booker.ID, &d.Booker.Name, &d.Booker.Email,
	)
	if err != nil {
		return nil, err
	}
	if requestID.Valid {
		d.Item.RequestID = &requestID.Int64
	}
	return &d, nil
}

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (item_id, booker_id, start_at, end_at, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		booking.ItemID, booking.BookerID, booking.Start, booking.End, booking.Status, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBookingByID(ctx context.Context, id int64) (*models.BookingDetail, error) {
	query := `SELECT ` + bookingDetailColumns + bookingDetailFrom + ` WHERE b.id = ?`
	detail, err := scanBookingDetail(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", models.ErrBookingNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return detail, nil
}

// ListBookings is the single parameterized query behind every state filter,
// for both the booker and the owner view. The time predicates are strict:
// a booking whose start or end equals now is not CURRENT. All branches order
// by start descending.
func (db *DB) ListBookings(ctx context.Context, scope Scope, userID int64, state models.State, now time.Time) ([]models.BookingDetail, error) {
	var where string
	args := []any{}

	switch scope {
	case ScopeOwner:
		where = `i.owner_id = ?`
	default:
		where = `b.booker_id = ?`
	}
	args = append(args, userID)

	switch state {
	case models.StateAll:
	case models.StateCurrent:
		where += ` AND b.start_at < ? AND b.end_at > ?`
		args = append(args, now, now)
	case models.StatePast:
		where += ` AND b.end_at < ?`
		args = append(args, now)
	case models.StateFuture:
		where += ` AND b.start_at > ?`
		args = append(args, now)
	case models.StateWaiting, models.StateRejected:
		where += ` AND b.status = ?`
		args = append(args, string(state))
	default:
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidState, state)
	}

	query := `SELECT ` + bookingDetailColumns + bookingDetailFrom +
		` WHERE ` + where + ` ORDER BY b.start_at DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.BookingDetail
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *d)
	}
	return bookings, rows.Err()
}

// GetBookingsBetween returns every booking that overlaps the given period,
// oldest first. Used by the report tool.
func (db *DB) GetBookingsBetween(ctx context.Context, from, to time.Time) ([]models.BookingDetail, error) {
	query := `SELECT ` + bookingDetailColumns + bookingDetailFrom +
		` WHERE b.start_at < ? AND b.end_at > ? ORDER BY b.start_at`

	rows, err := db.QueryContext(ctx, query, to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.BookingDetail
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *d)
	}
	return bookings, rows.Err()
}

// DecideBooking moves a WAITING booking to the given status. The update is
// conditional on the current status so two concurrent decisions cannot both
// win; the loser sees zero affected rows.
func (db *DB) DecideBooking(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	result, err := db.ExecContext(ctx, query, status, time.Now(), id, models.StatusWaiting)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %d", models.ErrAlreadyDecided, id)
	}
	return nil
}

// CountFinishedBookings returns how many bookings the booker has on the item
// that ended strictly before now. Used as the comment eligibility gate.
func (db *DB) CountFinishedBookings(ctx context.Context, itemID, bookerID int64, now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE item_id = ? AND booker_id = ? AND end_at < ?`
	var count int
	err := db.QueryRowContext(ctx, query, itemID, bookerID, now).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count finished bookings: %w", err)
	}
	return count, nil
}

// BookingDates are the per-item booking annotations for the owner's listing.
type BookingDates struct {
	Next *time.Time
	Last *time.Time
}

// GetOwnerBookingDates returns, per item of the owner, the start of the
// nearest approved booking after now and of the latest approved booking at
// or before now.
func (db *DB) GetOwnerBookingDates(ctx context.Context, ownerID int64, now time.Time) (map[int64]BookingDates, error) {
	query := `SELECT b.item_id, b.start_at
              FROM bookings b
              JOIN items i ON i.id = b.item_id
              WHERE i.owner_id = ? AND b.status = ?`
	rows, err := db.QueryContext(ctx, query, ownerID, models.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking dates: %w", err)
	}
	defer rows.Close()

	dates := make(map[int64]BookingDates)
	for rows.Next() {
		var itemID int64
		var start time.Time
		if err := rows.Scan(&itemID, &start); err != nil {
			return nil, fmt.Errorf("failed to scan booking dates: %w", err)
		}

		d := dates[itemID]
		s := start
		if start.After(now) {
			if d.Next == nil || start.Before(*d.Next) {
				d.Next = &s
			}
		} else {
			if d.Last == nil || start.After(*d.Last) {
				d.Last = &s
			}
		}
		dates[itemID] = d
	}
	return dates, rows.Err()
}
