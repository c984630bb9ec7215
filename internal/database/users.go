package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (name, email, created_at, updated_at) VALUES (?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query, user.Name, user.Email, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", models.ErrDuplicateEmail, user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	query := `SELECT id, name, email, created_at, updated_at FROM users WHERE id = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", models.ErrUserNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateUser applies a partial update. The read and the write run in one
// transaction so concurrent patches cannot interleave.
func (db *DB) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	var user models.User
	err := db.inTx(ctx, func(tx *sql.Tx) error {
		query := `SELECT id, name, email, created_at, updated_at FROM users WHERE id = ?`
		err := tx.QueryRowContext(ctx, query, id).Scan(
			&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: id %d", models.ErrUserNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}

		if patch.Name != nil {
			user.Name = *patch.Name
		}
		if patch.Email != nil {
			user.Email = *patch.Email
		}
		user.UpdatedAt = time.Now()

		_, err = tx.ExecContext(ctx,
			`UPDATE users SET name = ?, email = ?, updated_at = ? WHERE id = ?`,
			user.Name, user.Email, user.UpdatedAt, id,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", models.ErrDuplicateEmail, user.Email)
			}
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user and returns the deleted record.
func (db *DB) DeleteUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := db.inTx(ctx, func(tx *sql.Tx) error {
		query := `SELECT id, name, email, created_at, updated_at FROM users WHERE id = ?`
		err := tx.QueryRowContext(ctx, query, id).Scan(
			&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: id %d", models.ErrUserNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
