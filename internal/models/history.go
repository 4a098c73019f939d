package models

import "time"

// FieldChange records one field transition inside a history entry.
// OldValue is nil when the field had no previous value.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"old_value"`
	NewValue any    `json:"new_value"`
}

// HistoryEntry is an immutable audit record appended to a task's history.
type HistoryEntry struct {
	ID        string        `json:"id"`
	TaskID    string        `json:"task_id"`
	UserID    string        `json:"user_id"`
	Timestamp time.Time     `json:"timestamp"`
	Changes   []FieldChange `json:"changes"`
	Comment   string        `json:"comment"`
}

// Change returns the first change recorded for field.
func (h HistoryEntry) Change(field string) (FieldChange, bool) {
	for _, change := range h.Changes {
		if change.Field == field {
			return change, true
		}
	}
	return FieldChange{}, false
}
