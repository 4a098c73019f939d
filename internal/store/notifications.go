package store

import (
	"context"
	"fmt"

	"tasklane/internal/models"
)

// NotificationFilter narrows a notification listing.
type NotificationFilter struct {
	Status models.NotificationStatus
	Limit  int
}

// CreateNotification inserts one notification.
func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	if n == nil {
		return fmt.Errorf("notification is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, event_type, reference_id, message, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, n.ID, n.UserID, string(n.EventType), n.ReferenceID, n.Message, string(n.Status), formatTime(n.CreatedAt))
	return err
}

// ListNotifications returns a user's notifications, newest first.
func (s *Store) ListNotifications(ctx context.Context, userID string, filter NotificationFilter) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, event_type, reference_id, message, status, created_at
		FROM notifications
		WHERE user_id = ?`
	args := []any{userID}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		var eventType, status, createdAt string
		if err := rows.Scan(&n.ID, &n.UserID, &eventType, &n.ReferenceID, &n.Message, &status, &createdAt); err != nil {
			return nil, err
		}
		n.EventType = models.EventType(eventType)
		n.Status = models.NotificationStatus(status)
		if n.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}
