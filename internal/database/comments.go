package database

import (
	"context"
	"fmt"
	"strings"

	"shareit/internal/models"
)

func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comments (item_id, author_id, text, created) VALUES (?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		comment.ItemID, comment.AuthorID, comment.Text, comment.Created,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	comment.ID = id
	return nil
}

const commentColumns = `c.id, c.text, c.item_id, c.author_id, u.name, c.created`

func (db *DB) GetCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments c
              JOIN users u ON u.id = c.author_id
              WHERE c.item_id = ? ORDER BY c.created DESC`
	return db.queryComments(ctx, query, itemID)
}

// GetCommentsByItems returns the comments of several items in one query,
// grouped by item id.
func (db *DB) GetCommentsByItems(ctx context.Context, itemIDs []int64) (map[int64][]models.Comment, error) {
	grouped := make(map[int64][]models.Comment)
	if len(itemIDs) == 0 {
		return grouped, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(itemIDs)), ",")
	args := make([]any, len(itemIDs))
	for i, id := range itemIDs {
		args[i] = id
	}

	query := `SELECT ` + commentColumns + ` FROM comments c
              JOIN users u ON u.id = c.author_id
              WHERE c.item_id IN (` + placeholders + `) ORDER BY c.created DESC`
	comments, err := db.queryComments(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	for _, c := range comments {
		grouped[c.ItemID] = append(grouped[c.ItemID], c)
	}
	return grouped, nil
}

func (db *DB) queryComments(ctx context.Context, query string, args ...any) ([]models.Comment, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
