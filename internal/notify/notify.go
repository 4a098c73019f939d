// Package notify fans out per-recipient notifications for mutating actions.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasklane/internal/models"
)

// NotificationWriter persists notifications.
type NotificationWriter interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
}

// Event describes what happened and what it refers to.
type Event struct {
	Type        models.EventType
	ReferenceID string
	Message     string
}

// Dispatcher creates one unread notification per recipient.
type Dispatcher struct {
	store  NotificationWriter
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewDispatcher returns a Dispatcher writing to store.
func NewDispatcher(store NotificationWriter, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		store:  store,
		logger: logger.With("component", "notify"),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// Recipients returns candidates as a set with actorID and empty ids removed.
// First-seen order is kept.
func Recipients(candidates []string, actorID string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, id := range candidates {
		id = strings.TrimSpace(id)
		if id == "" || id == actorID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Dispatch writes a notification for every recipient except actorID. Writes are
// independent: a failure for one recipient does not stop or undo the others.
// It returns the notifications that were stored and the joined errors of those
// that were not.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event, recipients []string, actorID string) ([]models.Notification, error) {
	if !models.IsValidEventType(event.Type) {
		return nil, fmt.Errorf("invalid event type: %s", event.Type)
	}

	targets := Recipients(recipients, actorID)
	sent := make([]models.Notification, 0, len(targets))
	var errs []error
	for _, userID := range targets {
		n := models.Notification{
			ID:          d.newID(),
			UserID:      userID,
			EventType:   event.Type,
			ReferenceID: event.ReferenceID,
			Message:     event.Message,
			Status:      models.NotificationUnread,
			CreatedAt:   d.now().UTC(),
		}
		if err := d.store.CreateNotification(ctx, &n); err != nil {
			d.logger.Warn("notification write failed", "event_type", event.Type, "reference_id", event.ReferenceID, "user_id", userID, "error", err)
			errs = append(errs, fmt.Errorf("notify %s: %w", userID, err))
			continue
		}
		sent = append(sent, n)
	}

	if len(sent) > 0 {
		d.logger.Debug("notifications dispatched", "event_type", event.Type, "reference_id", event.ReferenceID, "count", len(sent))
	}
	return sent, errors.Join(errs...)
}
