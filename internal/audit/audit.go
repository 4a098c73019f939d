// Package audit appends immutable history entries to a task's trail.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasklane/internal/models"
)

// HistoryAppender persists history entries. Entries are append-only.
type HistoryAppender interface {
	AppendHistory(ctx context.Context, entry *models.HistoryEntry) error
}

// Logger records history entries.
type Logger struct {
	store  HistoryAppender
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option customizes a Logger.
type Option func(*Logger)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithIDGenerator overrides the entry id source.
func WithIDGenerator(newID func() string) Option {
	return func(l *Logger) {
		if newID != nil {
			l.newID = newID
		}
	}
}

// NewLogger returns a Logger writing to store.
func NewLogger(store HistoryAppender, logger *slog.Logger, opts ...Option) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Logger{
		store:  store,
		logger: logger.With("component", "audit"),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record assigns an id and timestamp to entry, appends it, and returns the stored entry.
// Any id or timestamp already set on entry is replaced.
func (l *Logger) Record(ctx context.Context, entry models.HistoryEntry) (models.HistoryEntry, error) {
	if strings.TrimSpace(entry.TaskID) == "" {
		return models.HistoryEntry{}, fmt.Errorf("history entry task id is required")
	}

	entry.ID = l.newID()
	entry.Timestamp = l.now().UTC()
	if entry.Changes == nil {
		entry.Changes = []models.FieldChange{}
	}

	if err := l.store.AppendHistory(ctx, &entry); err != nil {
		return models.HistoryEntry{}, fmt.Errorf("append history for %s: %w", entry.TaskID, err)
	}

	l.logger.Debug("history recorded", "task_id", entry.TaskID, "entry_id", entry.ID, "changes", len(entry.Changes))
	return entry, nil
}
