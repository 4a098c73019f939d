package store

import (
	"context"
	"encoding/json"
	"fmt"

	"tasklane/internal/models"
)

// AppendHistory inserts one history entry. Entries are never updated or deleted.
func (s *Store) AppendHistory(ctx context.Context, entry *models.HistoryEntry) error {
	if entry == nil {
		return fmt.Errorf("history entry is required")
	}
	changes, err := encodeList(entry.Changes)
	if err != nil {
		return fmt.Errorf("encode changes: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO task_history (id, task_id, user_id, timestamp, changes, comment)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.TaskID, entry.UserID, formatTime(entry.Timestamp), changes, entry.Comment)
	return err
}

// ListHistory returns a task's history, oldest first.
func (s *Store) ListHistory(ctx context.Context, taskID string) ([]models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, task_id, user_id, timestamp, changes, comment
		FROM task_history
		WHERE task_id = ?
		ORDER BY timestamp ASC, rowid ASC
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var entry models.HistoryEntry
		var timestamp, changes string
		if err := rows.Scan(&entry.ID, &entry.TaskID, &entry.UserID, &timestamp, &changes, &entry.Comment); err != nil {
			return nil, err
		}
		if entry.Timestamp, err = parseTime(timestamp); err != nil {
			return nil, err
		}
		entry.Changes = []models.FieldChange{}
		if err := json.Unmarshal([]byte(changes), &entry.Changes); err != nil {
			return nil, fmt.Errorf("decode changes for %s: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
