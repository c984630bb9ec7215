package service

import (
	"context"
	"testing"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestCreate(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	requester := env.user(t, "Boris", "boris@example.com")

	request, err := env.requests.Create(ctx, requester.ID, "Need a drill")
	require.NoError(t, err)
	assert.NotZero(t, request.ID)
	assert.False(t, request.Created.IsZero())

	_, err = env.requests.Create(ctx, 999, "Need anything")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestRequestByRequester_WithResponses(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	owner := env.user(t, "Anna", "anna@example.com")
	requester := env.user(t, "Boris", "boris@example.com")

	request, err := env.requests.Create(ctx, requester.ID, "Need a drill")
	require.NoError(t, err)
	unanswered, err := env.requests.Create(ctx, requester.ID, "Need a ladder")
	require.NoError(t, err)

	item, err := env.items.Create(ctx, owner.ID, &models.Item{
		Name: "Drill", Description: "As requested", Available: true, RequestID: &request.ID,
	})
	require.NoError(t, err)

	got, err := env.requests.ByRequester(ctx, requester.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	byID := make(map[int64]models.RequestWithResponses)
	for _, r := range got {
		byID[r.ID] = r
	}

	answered := byID[request.ID]
	require.Len(t, answered.Items, 1)
	assert.Equal(t, item.ID, answered.Items[0].ID)
	assert.Equal(t, "Drill", answered.Items[0].Name)
	assert.Equal(t, owner.ID, answered.Items[0].OwnerID)

	// No responses yet, but the list is present, not null.
	empty := byID[unanswered.ID]
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)

	_, err = env.requests.ByRequester(ctx, 999)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestRequestByID(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	requester := env.user(t, "Boris", "boris@example.com")
	request, err := env.requests.Create(ctx, requester.ID, "Need a drill")
	require.NoError(t, err)

	got, err := env.requests.ByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, "Need a drill", got.Description)
	assert.NotNil(t, got.Items)

	_, err = env.requests.ByID(ctx, 999)
	assert.ErrorIs(t, err, models.ErrRequestNotFound)
}

func TestRequestAll(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	all, err := env.requests.All(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	requester := env.user(t, "Boris", "boris@example.com")
	_, err = env.requests.Create(ctx, requester.ID, "Need a drill")
	require.NoError(t, err)

	all, err = env.requests.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
