package activity

import (
	"context"
	"math"
	"strings"
	"time"

	"tasklane/internal/audit"
	"tasklane/internal/auth"
	"tasklane/internal/models"
	"tasklane/internal/notify"
)

// TaskInput carries the caller-supplied fields of a new task.
type TaskInput struct {
	Title            string
	Description      string
	Type             models.TaskType
	Priority         models.Priority
	AssignedTo       []string
	DueDate          *time.Time
	EstimatedTime    *float64
	Tags             []string
	MediaAttachments []models.MediaAttachment
}

// CreateSubtask creates a child of parentID in status todo at 0% and then
// audits the child, notifies its assignees, and recomputes the parent's progress.
func (c *Coordinator) CreateSubtask(ctx context.Context, actor Actor, parentID string, input TaskInput) (Outcome, error) {
	const op = OpCreateSubtask
	var out Outcome

	parent, _, _, err := c.taskContext(ctx, actor, parentID)
	if err != nil {
		return c.finish(op, out, err)
	}

	child, err := c.newTask(actor, parent.ProjectID, parent.ID, input)
	if err != nil {
		return c.finish(op, out, err)
	}
	if err := c.tasks.CreateTask(ctx, child); err != nil {
		return c.finish(op, out, persistence(err, "create subtask of %s", parent.ID))
	}
	out.Task = child

	c.record(ctx, op, &out, models.HistoryEntry{
		TaskID:  child.ID,
		UserID:  actor.UserID,
		Changes: []models.FieldChange{{Field: "status", OldValue: nil, NewValue: string(models.StatusTodo)}},
		Comment: audit.SubtaskCreatedComment,
	})
	c.dispatch(ctx, op, &out, notify.SubtaskAssigned(*child), child.AssignedTo, actor.UserID)
	c.propagate(ctx, op, &out, parent.ID, actor.UserID)

	c.logger.Info("subtask created", "task_id", child.ID, "parent_id", parent.ID, "actor", actor.UserID)
	return c.finish(op, out, nil)
}

// CreateTask creates a root task in projectID. New tasks start in todo at 0%.
func (c *Coordinator) CreateTask(ctx context.Context, actor Actor, projectID string, input TaskInput) (Outcome, error) {
	const op = OpCreateTask
	var out Outcome

	project, err := c.loadProject(ctx, projectID)
	if err != nil {
		return c.finish(op, out, err)
	}
	if _, err := c.membershipFor(ctx, actor, project.ID); err != nil {
		return c.finish(op, out, err)
	}

	task, err := c.newTask(actor, project.ID, "", input)
	if err != nil {
		return c.finish(op, out, err)
	}
	if err := c.tasks.CreateTask(ctx, task); err != nil {
		return c.finish(op, out, persistence(err, "create task in %s", project.ID))
	}
	out.Task = task

	c.record(ctx, op, &out, models.HistoryEntry{
		TaskID:  task.ID,
		UserID:  actor.UserID,
		Changes: []models.FieldChange{{Field: "status", OldValue: nil, NewValue: string(models.StatusTodo)}},
		Comment: audit.TaskCreatedComment,
	})
	c.dispatch(ctx, op, &out, notify.TaskAssigned(*task), task.AssignedTo, actor.UserID)

	c.logger.Info("task created", "task_id", task.ID, "project_id", project.ID, "actor", actor.UserID)
	return c.finish(op, out, nil)
}

func (c *Coordinator) newTask(actor Actor, projectID, parentID string, input TaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, validationf("title is required")
	}

	taskType := input.Type
	if taskType == "" {
		taskType = models.DefaultType
	}
	if !models.IsValidTaskType(taskType) {
		return nil, validationf("invalid type: %s", taskType)
	}
	priority := input.Priority
	if priority == "" {
		priority = models.DefaultPriority
	}
	if !models.IsValidPriority(priority) {
		return nil, validationf("invalid priority: %s", priority)
	}
	if input.EstimatedTime != nil && (*input.EstimatedTime < 0 || math.IsNaN(*input.EstimatedTime) || math.IsInf(*input.EstimatedTime, 0)) {
		return nil, validationf("estimated time must be a non-negative number of hours")
	}

	assignees, err := normalizeAssignees(input.AssignedTo)
	if err != nil {
		return nil, err
	}

	id, err := c.tasks.GenerateTaskID()
	if err != nil {
		return nil, persistence(err, "generate task id")
	}

	now := c.now().UTC()
	return &models.Task{
		ID:               id,
		ProjectID:        projectID,
		ParentTaskID:     parentID,
		Title:            title,
		Description:      strings.TrimSpace(input.Description),
		Type:             taskType,
		Status:           models.StatusTodo,
		Priority:         priority,
		AssignedTo:       assignees,
		CreatedBy:        actor.UserID,
		CreatedAt:        now,
		UpdatedAt:        now,
		DueDate:          input.DueDate,
		EstimatedTime:    input.EstimatedTime,
		PercentDone:      models.PercentDoneMin,
		Tags:             uniqueNonEmpty(input.Tags),
		MediaAttachments: input.MediaAttachments,
	}, nil
}

// normalizeAssignees maps assignee ids onto canonical user ids, dropping
// blanks and duplicates.
func normalizeAssignees(values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		id, err := auth.NormalizeUserID(v)
		if err != nil {
			return nil, validationf("invalid assignee: %v", err)
		}
		out = append(out, id)
	}
	return uniqueNonEmpty(out), nil
}

func uniqueNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
