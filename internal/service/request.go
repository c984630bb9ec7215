package service

import (
	"context"
	"time"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// RequestService owns the borrow-request board. Requests are append-only.
type RequestService struct {
	db     *database.DB
	logger *zerolog.Logger
}

func NewRequestService(db *database.DB, logger *zerolog.Logger) *RequestService {
	return &RequestService{db: db, logger: logger}
}

func (s *RequestService) Create(ctx context.Context, requesterID int64, description string) (*models.Request, error) {
	if _, err := s.db.GetUserByID(ctx, requesterID); err != nil {
		return nil, err
	}

	request := &models.Request{
		Description: description,
		RequesterID: requesterID,
		Created:     time.Now(),
	}
	if err := s.db.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("request_id", request.ID).Msg("request created")
	return request, nil
}

func (s *RequestService) All(ctx context.Context) ([]models.Request, error) {
	requests, err := s.db.GetAllRequests(ctx)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []models.Request{}
	}
	return requests, nil
}

// ByRequester returns the user's own requests, newest first, each annotated
// with the items offered in response.
func (s *RequestService) ByRequester(ctx context.Context, requesterID int64) ([]models.RequestWithResponses, error) {
	if _, err := s.db.GetUserByID(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.db.GetRequestsByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	responses, err := s.db.GetItemsByRequests(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.RequestWithResponses, 0, len(requests))
	for _, r := range requests {
		result = append(result, withResponses(r, responses[r.ID]))
	}
	return result, nil
}

func (s *RequestService) ByID(ctx context.Context, requestID int64) (*models.RequestWithResponses, error) {
	request, err := s.db.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	items, err := s.db.GetItemsByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	result := withResponses(*request, items)
	return &result, nil
}

func withResponses(request models.Request, items []models.Item) models.RequestWithResponses {
	responses := make([]models.ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, models.ItemResponse{
			ID:      item.ID,
			Name:    item.Name,
			OwnerID: item.OwnerID,
		})
	}
	return models.RequestWithResponses{
		ID:          request.ID,
		Description: request.Description,
		Created:     request.Created,
		Items:       responses,
	}
}
