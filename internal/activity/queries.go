package activity

import (
	"context"
	"strings"

	"tasklane/internal/models"
	"tasklane/internal/store"
	"tasklane/internal/subtasks"
)

// GetProject returns a project the actor is a member of.
func (c *Coordinator) GetProject(ctx context.Context, actor Actor, projectID string) (*models.Project, error) {
	project, err := c.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if _, err := c.membershipFor(ctx, actor, project.ID); err != nil {
		return nil, err
	}
	return project, nil
}

// ListMembers returns the memberships of a project the actor belongs to.
func (c *Coordinator) ListMembers(ctx context.Context, actor Actor, projectID string) ([]models.Membership, error) {
	project, err := c.GetProject(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	members, err := c.projects.ListMembers(ctx, project.ID)
	if err != nil {
		return nil, persistence(err, "list members of %s", project.ID)
	}
	return members, nil
}

// GetTask returns a task in a project the actor belongs to.
func (c *Coordinator) GetTask(ctx context.Context, actor Actor, taskID string) (*models.Task, error) {
	task, _, _, err := c.taskContext(ctx, actor, taskID)
	return task, err
}

// ListSubtasks filters the direct children of taskID for the actor and returns one page.
// Each call is a fresh view: criteria are applied first, then the requested page.
func (c *Coordinator) ListSubtasks(ctx context.Context, actor Actor, taskID string, criteria subtasks.Criteria, page, pageSize int) (subtasks.Page, error) {
	task, _, _, err := c.taskContext(ctx, actor, taskID)
	if err != nil {
		return subtasks.Page{}, err
	}
	children, err := c.tasks.ListChildTasks(ctx, task.ID)
	if err != nil {
		return subtasks.Page{}, persistence(err, "list subtasks of %s", task.ID)
	}
	view := subtasks.NewView(pageSize)
	view.SetCriteria(criteria)
	view.SetPage(page)
	return view.Apply(children, actor.UserID), nil
}

// ListProjectTasks returns every task in a project the actor belongs to.
func (c *Coordinator) ListProjectTasks(ctx context.Context, actor Actor, projectID string) ([]models.Task, error) {
	project, err := c.GetProject(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	tasks, err := c.tasks.ListProjectTasks(ctx, project.ID)
	if err != nil {
		return nil, persistence(err, "list tasks of %s", project.ID)
	}
	return tasks, nil
}

// ListHistory returns a task's audit trail, oldest first.
func (c *Coordinator) ListHistory(ctx context.Context, actor Actor, taskID string) ([]models.HistoryEntry, error) {
	task, _, _, err := c.taskContext(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}
	entries, err := c.history.ListHistory(ctx, task.ID)
	if err != nil {
		return nil, persistence(err, "list history of %s", task.ID)
	}
	return entries, nil
}

// ListComments returns a task's comments, oldest first.
func (c *Coordinator) ListComments(ctx context.Context, actor Actor, taskID string) ([]models.Comment, error) {
	task, _, _, err := c.taskContext(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}
	comments, err := c.comments.ListComments(ctx, task.ID)
	if err != nil {
		return nil, persistence(err, "list comments of %s", task.ID)
	}
	return comments, nil
}

// ListNotifications returns the actor's own notifications, newest first.
func (c *Coordinator) ListNotifications(ctx context.Context, actor Actor, filter store.NotificationFilter) ([]models.Notification, error) {
	if strings.TrimSpace(actor.UserID) == "" {
		return nil, validationf("actor is required")
	}
	notifications, err := c.notifications.ListNotifications(ctx, actor.UserID, filter)
	if err != nil {
		return nil, persistence(err, "list notifications of %s", actor.UserID)
	}
	return notifications, nil
}
