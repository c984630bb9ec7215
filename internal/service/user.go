package service

import (
	"context"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// UserService owns the user directory. Email uniqueness is enforced by the
// store's unique index; the duplicate surfaces here as ErrDuplicateEmail.
type UserService struct {
	db     *database.DB
	logger *zerolog.Logger
}

func NewUserService(db *database.DB, logger *zerolog.Logger) *UserService {
	return &UserService{db: db, logger: logger}
}

func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.db.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.db.GetUserByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	return s.db.UpdateUser(ctx, id, patch)
}

func (s *UserService) Delete(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.db.DeleteUser(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return user, nil
}
