package export

import (
	"context"
	"os"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type staticSource struct {
	bookings []models.BookingDetail
}

func (s staticSource) GetBookingsBetween(ctx context.Context, from, to time.Time) ([]models.BookingDetail, error) {
	return s.bookings, nil
}

func TestBookingsReport(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	now := time.Now()

	source := staticSource{bookings: []models.BookingDetail{
		{
			ID:     1,
			Start:  now.Add(-2 * time.Hour),
			End:    now.Add(-time.Hour),
			Status: models.StatusApproved,
			Item:   models.Item{ID: 10, Name: "Drill", OwnerID: 3},
			Booker: models.User{ID: 5, Name: "Boris", Email: "boris@example.com"},
		},
		{
			ID:     2,
			Start:  now.Add(time.Hour),
			End:    now.Add(2 * time.Hour),
			Status: models.StatusWaiting,
			Item:   models.Item{ID: 11, Name: "Saw", OwnerID: 3},
			Booker: models.User{ID: 5, Name: "Boris", Email: "boris@example.com"},
		},
	}}

	dir := t.TempDir()
	exporter := NewExporter(source, dir, &logger)

	path, err := exporter.BookingsReport(context.Background(), now.Add(-24*time.Hour), now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.FileExists(t, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// Header row plus one row per booking.
	name, err := f.GetCellValue(sheetName, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Drill", name)

	booker, err := f.GetCellValue(sheetName, "C3")
	require.NoError(t, err)
	assert.Equal(t, "Boris (boris@example.com)", booker)

	status, err := f.GetCellValue(sheetName, "F4")
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, status)
}

func TestBookingsReport_EmptyPeriod(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	exporter := NewExporter(staticSource{}, t.TempDir(), &logger)

	path, err := exporter.BookingsReport(context.Background(), time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.FileExists(t, path)
}
