package store

import (
	"context"
	"fmt"

	"tasklane/internal/models"
)

// CreateComment inserts a comment.
func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	if c == nil {
		return fmt.Errorf("comment is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, task_id, user_id, body, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.TaskID, c.UserID, c.Body, formatTime(c.CreatedAt))
	return err
}

// ListComments returns a task's comments, oldest first.
func (s *Store) ListComments(ctx context.Context, taskID string) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, task_id, user_id, body, created_at
		FROM comments
		WHERE task_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		var createdAt string
		if err := rows.Scan(&c.ID, &c.TaskID, &c.UserID, &c.Body, &createdAt); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}
