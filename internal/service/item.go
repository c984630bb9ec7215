package service

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// ItemService owns the item catalog and the comment ledger.
type ItemService struct {
	db     *database.DB
	logger *zerolog.Logger
}

func NewItemService(db *database.DB, logger *zerolog.Logger) *ItemService {
	return &ItemService{db: db, logger: logger}
}

// Create registers an item for an existing owner. When the item answers a
// borrow request, that request must exist too.
func (s *ItemService) Create(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error) {
	if _, err := s.db.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if item.RequestID != nil {
		if _, err := s.db.GetRequestByID(ctx, *item.RequestID); err != nil {
			return nil, err
		}
	}

	item.OwnerID = ownerID
	if err := s.db.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return item, nil
}

// GetByID returns the item with its comments. The next/last booking dates
// are only populated on the owner's listing, not here.
func (s *ItemService) GetByID(ctx context.Context, itemID int64) (*models.ItemDetail, error) {
	item, err := s.db.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	comments, err := s.db.GetCommentsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	detail := itemToDetail(*item, comments, database.BookingDates{})
	return &detail, nil
}

// ListByOwner returns the owner's items annotated with their comments and
// the start of the nearest upcoming and latest past approved booking.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]models.ItemDetail, error) {
	if _, err := s.db.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.db.GetItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	comments, err := s.db.GetCommentsByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	dates, err := s.db.GetOwnerBookingDates(ctx, ownerID, time.Now())
	if err != nil {
		return nil, err
	}

	details := make([]models.ItemDetail, 0, len(items))
	for _, item := range items {
		details = append(details, itemToDetail(item, comments[item.ID], dates[item.ID]))
	}
	return details, nil
}

func (s *ItemService) Search(ctx context.Context, text string) ([]models.Item, error) {
	items, err := s.db.SearchItems(ctx, text)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// Update applies a partial update. Only the owner may mutate an item, and
// only name, description and availability are mutable.
func (s *ItemService) Update(ctx context.Context, actorID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	if _, err := s.db.GetUserByID(ctx, actorID); err != nil {
		return nil, err
	}
	item, err := s.db.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != actorID {
		return nil, fmt.Errorf("%w: user %d, item %d", models.ErrNotOwner, actorID, itemID)
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.db.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// CreateComment posts a review. The author must have at least one booking of
// the item that ended before now.
func (s *ItemService) CreateComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error) {
	author, err := s.db.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	item, err := s.db.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	finished, err := s.db.CountFinishedBookings(ctx, item.ID, author.ID, now)
	if err != nil {
		return nil, err
	}
	if finished == 0 {
		return nil, fmt.Errorf("%w: user %d has no finished booking of item %d",
			models.ErrCommentNotAllowed, authorID, itemID)
	}

	comment := &models.Comment{
		Text:       text,
		ItemID:     item.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.db.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func itemToDetail(item models.Item, comments []models.Comment, dates database.BookingDates) models.ItemDetail {
	if comments == nil {
		comments = []models.Comment{}
	}
	return models.ItemDetail{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		Comments:    comments,
		NextBooking: dates.Next,
		LastBooking: dates.Last,
	}
}
