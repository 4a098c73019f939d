package models

import (
	"fmt"
	"strings"
	"time"
)

// EventType identifies the action that produced a notification.
type EventType string

const (
	EventCreateTask   EventType = "CREATE_TASK"
	EventUpdateTask   EventType = "UPDATE_TASK"
	EventAddComment   EventType = "ADD_COMMENT"
	EventInviteMember EventType = "INVITE_MEMBER"
	EventRemoveMember EventType = "REMOVE_MEMBER"
	EventUpdateRole   EventType = "UPDATE_ROLE"
)

// NotificationStatus tracks whether the recipient has seen a notification.
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

var validEventTypes = map[EventType]struct{}{
	EventCreateTask:   {},
	EventUpdateTask:   {},
	EventAddComment:   {},
	EventInviteMember: {},
	EventRemoveMember: {},
	EventUpdateRole:   {},
}

// Notification is one per-recipient message produced by a mutating action.
type Notification struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	EventType   EventType          `json:"event_type"`
	ReferenceID string             `json:"reference_id"`
	Message     string             `json:"message"`
	Status      NotificationStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
}

func (e EventType) String() string { return string(e) }

func IsValidEventType(eventType EventType) bool {
	_, ok := validEventTypes[eventType]
	return ok
}

func ParseEventType(raw string) (EventType, error) {
	value := EventType(strings.ToUpper(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("event type is required")
	}
	if !IsValidEventType(value) {
		return "", fmt.Errorf("invalid event type: %s", value)
	}
	return value, nil
}
