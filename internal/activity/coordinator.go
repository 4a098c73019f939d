// Package activity coordinates how a task's status, progress, and history
// evolve as users act on it.
//
// Every entry point applies its primary mutation first and then runs the
// secondary steps (audit, notify, propagate) in a fixed order. Secondary
// steps are independent: a failure is logged, recorded in the Outcome, and
// never rolls back earlier writes.
package activity

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasklane/internal/audit"
	"tasklane/internal/models"
	"tasklane/internal/notify"
	"tasklane/internal/progress"
	"tasklane/internal/store"
)

// Operation names used in logs and metrics.
const (
	OpChangeStatus      = "change_status"
	OpCreateSubtask     = "create_subtask"
	OpAddComment        = "add_comment"
	OpInviteMember      = "invite_member"
	OpRemoveMember      = "remove_member"
	OpUpdateMemberRoles = "update_member_roles"
	OpUpdateProgress    = "update_progress"
	OpCreateTask        = "create_task"
	OpCreateProject     = "create_project"
)

// Result labels passed to Recorder.RecordOperation.
const (
	ResultOK       = "ok"
	ResultPartial  = "partial"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Actor identifies who is acting. Membership is optional: when it is set and
// belongs to the project being acted on it is used as is, otherwise the
// coordinator loads it.
type Actor struct {
	UserID      string
	DisplayName string
	Membership  *models.Membership
}

// Name returns the display name, falling back to the user id.
func (a Actor) Name() string {
	if strings.TrimSpace(a.DisplayName) != "" {
		return a.DisplayName
	}
	return a.UserID
}

// Recorder receives operation metrics.
type Recorder interface {
	RecordOperation(op, result string)
	RecordStepFailure(op, step string)
	RecordNotifications(eventType string, count int)
}

type nopRecorder struct{}

func (nopRecorder) RecordOperation(string, string)   {}
func (nopRecorder) RecordStepFailure(string, string) {}
func (nopRecorder) RecordNotifications(string, int)  {}

// Stores bundles the collaborators the coordinator reads and writes.
type Stores struct {
	Tasks         store.TaskStore
	History       store.HistoryStore
	Notifications store.NotificationStore
	Projects      store.ProjectStore
	Comments      store.CommentStore
}

// Coordinator orchestrates the task activity operations.
type Coordinator struct {
	tasks         store.TaskStore
	history       store.HistoryStore
	notifications store.NotificationStore
	projects      store.ProjectStore
	comments      store.CommentStore

	audit      *audit.Logger
	dispatcher *notify.Dispatcher
	propagator *progress.Propagator
	policy     audit.CommentPolicy
	metrics    Recorder
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithRecorder routes operation metrics to r.
func WithRecorder(r Recorder) Option {
	return func(c *Coordinator) {
		if r != nil {
			c.metrics = r
		}
	}
}

// WithCommentPolicy overrides how comments are summarized in history.
func WithCommentPolicy(p audit.CommentPolicy) Option {
	return func(c *Coordinator) { c.policy = p }
}

// WithClock overrides the time source for records the coordinator creates.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns a Coordinator over stores.
func New(stores Stores, logger *slog.Logger, opts ...Option) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Coordinator{
		tasks:         stores.Tasks,
		history:       stores.History,
		notifications: stores.Notifications,
		projects:      stores.Projects,
		comments:      stores.Comments,
		policy:        audit.DefaultCommentPolicy,
		metrics:       nopRecorder{},
		logger:        logger.With("component", "activity"),
		now:           time.Now,
		newID:         func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	c.audit = audit.NewLogger(stores.History, logger, audit.WithClock(c.now))
	c.dispatcher = notify.NewDispatcher(stores.Notifications, logger)
	c.propagator = progress.NewPropagator(stores.Tasks, c.audit, logger)
	return c
}

func (c *Coordinator) loadTask(ctx context.Context, id string) (*models.Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, validationf("task id is required")
	}
	task, err := c.tasks.GetTask(ctx, id)
	if err != nil {
		return nil, persistence(err, "load task %s", id)
	}
	if task == nil {
		return nil, notFoundf("task %s not found", id)
	}
	return task, nil
}

func (c *Coordinator) loadProject(ctx context.Context, id string) (*models.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, validationf("project id is required")
	}
	project, err := c.projects.GetProject(ctx, id)
	if err != nil {
		return nil, persistence(err, "load project %s", id)
	}
	if project == nil {
		return nil, notFoundf("project %s not found", id)
	}
	return project, nil
}

// membershipFor returns the actor's membership in projectID. A missing
// membership is reported as ErrNotFound so non-members cannot probe projects.
func (c *Coordinator) membershipFor(ctx context.Context, actor Actor, projectID string) (models.Membership, error) {
	if strings.TrimSpace(actor.UserID) == "" {
		return models.Membership{}, validationf("actor is required")
	}
	if actor.Membership != nil && actor.Membership.ProjectID == projectID && actor.Membership.UserID == actor.UserID {
		return *actor.Membership, nil
	}
	m, err := c.projects.GetMembership(ctx, projectID, actor.UserID)
	if err != nil {
		return models.Membership{}, persistence(err, "load membership of %s in %s", actor.UserID, projectID)
	}
	if m == nil {
		return models.Membership{}, notFoundf("project %s not found", projectID)
	}
	return *m, nil
}

// taskContext loads a task, its project, and the actor's membership in it.
func (c *Coordinator) taskContext(ctx context.Context, actor Actor, taskID string) (*models.Task, *models.Project, models.Membership, error) {
	task, err := c.loadTask(ctx, taskID)
	if err != nil {
		return nil, nil, models.Membership{}, err
	}
	project, err := c.loadProject(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, models.Membership{}, err
	}
	membership, err := c.membershipFor(ctx, actor, project.ID)
	if err != nil {
		return nil, nil, models.Membership{}, err
	}
	return task, project, membership, nil
}

func (c *Coordinator) record(ctx context.Context, op string, out *Outcome, entry models.HistoryEntry) {
	stored, err := c.audit.Record(ctx, entry)
	if err != nil {
		c.stepFailed(op, out, StepAudit, err, "task_id", entry.TaskID)
		return
	}
	out.History = append(out.History, stored)
}

func (c *Coordinator) dispatch(ctx context.Context, op string, out *Outcome, event notify.Event, recipients []string, actorID string) {
	sent, err := c.dispatcher.Dispatch(ctx, event, recipients, actorID)
	out.Notifications = append(out.Notifications, sent...)
	if len(sent) > 0 {
		c.metrics.RecordNotifications(string(event.Type), len(sent))
	}
	if err != nil {
		c.stepFailed(op, out, StepNotify, err, "reference_id", event.ReferenceID)
	}
}

func (c *Coordinator) propagate(ctx context.Context, op string, out *Outcome, parentID, actorID string) {
	result, err := c.propagator.Propagate(ctx, parentID, actorID)
	if result.ParentID != "" {
		out.Propagation = &result
	}
	if err != nil {
		c.stepFailed(op, out, StepPropagate, err, "task_id", parentID)
	}
}

func (c *Coordinator) stepFailed(op string, out *Outcome, step Step, err error, attrs ...any) {
	out.fail(step, err)
	c.metrics.RecordStepFailure(op, string(step))
	fields := append([]any{"operation", op, "step", string(step), "error", err}, attrs...)
	c.logger.Warn("secondary step failed", fields...)
}

// finish records the operation result and returns the outcome unchanged.
func (c *Coordinator) finish(op string, out Outcome, err error) (Outcome, error) {
	switch {
	case err == nil && out.Partial():
		c.metrics.RecordOperation(op, ResultPartial)
	case err == nil:
		c.metrics.RecordOperation(op, ResultOK)
	case isRejection(err):
		c.metrics.RecordOperation(op, ResultRejected)
		c.logger.Debug("operation rejected", "operation", op, "error", err)
	default:
		c.metrics.RecordOperation(op, ResultError)
		c.logger.Error("operation failed", "operation", op, "error", err)
	}
	return out, err
}
