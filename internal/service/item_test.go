package service

import (
	"context"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemCreate(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	owner := env.user(t, "Anna", "anna@example.com")

	item, err := env.items.Create(ctx, owner.ID, &models.Item{
		Name: "Drill", Description: "Cordless drill", Available: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, owner.ID, item.OwnerID)

	_, err = env.items.Create(ctx, 999, &models.Item{
		Name: "Ghost", Description: "No owner", Available: true,
	})
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestItemCreate_ForRequest(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	owner := env.user(t, "Anna", "anna@example.com")
	requester := env.user(t, "Boris", "boris@example.com")

	request, err := env.requests.Create(ctx, requester.ID, "Need a drill")
	require.NoError(t, err)

	item, err := env.items.Create(ctx, owner.ID, &models.Item{
		Name: "Drill", Description: "As requested", Available: true, RequestID: &request.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, item.RequestID)
	assert.Equal(t, request.ID, *item.RequestID)

	missing := int64(999)
	_, err = env.items.Create(ctx, owner.ID, &models.Item{
		Name: "Drill", Description: "For nothing", Available: true, RequestID: &missing,
	})
	assert.ErrorIs(t, err, models.ErrRequestNotFound)
}

func TestItemUpdate(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	owner := env.user(t, "Anna", "anna@example.com")
	stranger := env.user(t, "Boris", "boris@example.com")
	item := env.item(t, owner.ID, "Drill", true)

	name := "Drill XL"
	available := false
	updated, err := env.items.Update(ctx, owner.ID, item.ID, models.ItemPatch{
		Name: &name, Available: &available,
	})
	require.NoError(t, err)
	assert.Equal(t, "Drill XL", updated.Name)
	assert.False(t, updated.Available)
	// Untouched fields survive the patch.
	assert.Equal(t, item.Description, updated.Description)

	_, err = env.items.Update(ctx, stranger.ID, item.ID, models.ItemPatch{Name: &name})
	assert.ErrorIs(t, err, models.ErrNotOwner)

	_, err = env.items.Update(ctx, 999, item.ID, models.ItemPatch{Name: &name})
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	_, err = env.items.Update(ctx, owner.ID, 999, models.ItemPatch{Name: &name})
	assert.ErrorIs(t, err, models.ErrItemNotFound)
}

func TestItemSearch(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	owner := env.user(t, "Anna", "anna@example.com")
	env.item(t, owner.ID, "Power Drill", true)
	env.item(t, owner.ID, "Hammer", true)

	items, err := env.items.Search(ctx, "drill")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Power Drill", items[0].Name)

	items, err = env.items.Search(ctx, "tractor")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestItemComment_RequiresFinishedBooking(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	owner := env.user(t, "Anna", "anna@example.com")
	booker := env.user(t, "Boris", "boris@example.com")
	item := env.item(t, owner.ID, "Drill", true)

	// No booking at all yet.
	_, err := env.items.CreateComment(ctx, booker.ID, item.ID, "Nice drill")
	assert.ErrorIs(t, err, models.ErrCommentNotAllowed)

	// A future booking does not count either.
	future := bookingDates(time.Hour, time.Hour)
	future.ItemID = item.ID
	_, err = env.bookings.Create(ctx, booker.ID, future)
	require.NoError(t, err)

	_, err = env.items.CreateComment(ctx, booker.ID, item.ID, "Nice drill")
	assert.ErrorIs(t, err, models.ErrCommentNotAllowed)

	// Plant a finished booking directly at the store level.
	now := time.Now()
	booking := &models.Booking{
		ItemID: item.ID, BookerID: booker.ID,
		Start: now.Add(-2 * time.Hour), End: now.Add(-time.Hour),
		Status: models.StatusApproved,
	}
	require.NoError(t, env.db.CreateBooking(ctx, booking))

	comment, err := env.items.CreateComment(ctx, booker.ID, item.ID, "Nice drill")
	require.NoError(t, err)
	assert.Equal(t, "Nice drill", comment.Text)
	assert.Equal(t, "Boris", comment.AuthorName)

	detail, err := env.items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "Nice drill", detail.Comments[0].Text)
}

func TestItemListByOwner_BookingDates(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	owner := env.user(t, "Anna", "anna@example.com")
	booker := env.user(t, "Boris", "boris@example.com")
	item := env.item(t, owner.ID, "Drill", true)
	idle := env.item(t, owner.ID, "Saw", true)

	now := time.Now().Round(time.Second)
	past := &models.Booking{
		ItemID: item.ID, BookerID: booker.ID,
		Start: now.Add(-2 * time.Hour), End: now.Add(-time.Hour),
		Status: models.StatusApproved,
	}
	upcoming := &models.Booking{
		ItemID: item.ID, BookerID: booker.ID,
		Start: now.Add(2 * time.Hour), End: now.Add(3 * time.Hour),
		Status: models.StatusApproved,
	}
	require.NoError(t, env.db.CreateBooking(ctx, past))
	require.NoError(t, env.db.CreateBooking(ctx, upcoming))

	details, err := env.items.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, details, 2)

	byID := make(map[int64]models.ItemDetail)
	for _, d := range details {
		byID[d.ID] = d
	}

	drill := byID[item.ID]
	require.NotNil(t, drill.NextBooking)
	require.NotNil(t, drill.LastBooking)
	assert.WithinDuration(t, upcoming.Start, *drill.NextBooking, time.Second)
	assert.WithinDuration(t, past.Start, *drill.LastBooking, time.Second)
	assert.NotNil(t, drill.Comments)

	saw := byID[idle.ID]
	assert.Nil(t, saw.NextBooking)
	assert.Nil(t, saw.LastBooking)
}

func TestItemGetByID_NoBookingDates(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	owner := env.user(t, "Anna", "anna@example.com")
	booker := env.user(t, "Boris", "boris@example.com")
	item := env.item(t, owner.ID, "Drill", true)

	now := time.Now()
	require.NoError(t, env.db.CreateBooking(ctx, &models.Booking{
		ItemID: item.ID, BookerID: booker.ID,
		Start: now.Add(time.Hour), End: now.Add(2 * time.Hour),
		Status: models.StatusApproved,
	}))

	// The single-item view never carries booking dates.
	detail, err := env.items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.NextBooking)
	assert.Nil(t, detail.LastBooking)
}
