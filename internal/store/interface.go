package store

import (
	"context"
	"time"

	"tasklane/internal/models"
)

// TaskStore abstracts task storage backends.
// Lookups return (nil, nil) when the record does not exist.
type TaskStore interface {
	TaskExists(id string) (bool, error)
	GenerateTaskID() (string, error)
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, id string) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, update TaskUpdate) error
	SetTaskProgress(ctx context.Context, id string, percentDone int, updatedAt time.Time) error
	ListChildTasks(ctx context.Context, parentID string) ([]models.Task, error)
	ListProjectTasks(ctx context.Context, projectID string) ([]models.Task, error)
	CountChildTasks(ctx context.Context, parentID string) (int, error)
}

// HistoryStore keeps the append-only task history.
type HistoryStore interface {
	AppendHistory(ctx context.Context, entry *models.HistoryEntry) error
	ListHistory(ctx context.Context, taskID string) ([]models.HistoryEntry, error)
}

// NotificationStore keeps per-user notifications.
type NotificationStore interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListNotifications(ctx context.Context, userID string, filter NotificationFilter) ([]models.Notification, error)
}

// ProjectStore keeps projects and their memberships.
type ProjectStore interface {
	ProjectExists(id string) (bool, error)
	GenerateProjectID() (string, error)
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, id string) (*models.Project, error)
	GetMembership(ctx context.Context, projectID, userID string) (*models.Membership, error)
	ListMembers(ctx context.Context, projectID string) ([]models.Membership, error)
	PutMembership(ctx context.Context, membership *models.Membership) error
	DeleteMembership(ctx context.Context, projectID, userID string) (bool, error)
}

// CommentStore keeps task comments.
type CommentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, taskID string) ([]models.Comment, error)
}

// AuthStore keeps users and their sessions.
type AuthStore interface {
	CreateUser(ctx context.Context, id, displayName, passwordHash string, now time.Time) (*AuthUser, error)
	GetUserByID(ctx context.Context, id string) (*AuthUser, error)
	ListUsers(ctx context.Context) ([]AuthUser, error)
	SetUserDisabled(ctx context.Context, id string, disabled bool, now time.Time) (*AuthUser, error)
	CreateSession(ctx context.Context, userID, tokenHash string, expiresAt, createdAt time.Time) error
	GetUserBySessionTokenHash(ctx context.Context, tokenHash string, now time.Time) (*AuthUser, error)
	RevokeSessionByTokenHash(ctx context.Context, tokenHash string, revokedAt time.Time) error
}

var (
	_ TaskStore         = (*Store)(nil)
	_ HistoryStore      = (*Store)(nil)
	_ NotificationStore = (*Store)(nil)
	_ ProjectStore      = (*Store)(nil)
	_ CommentStore      = (*Store)(nil)
	_ AuthStore         = (*Store)(nil)
)
