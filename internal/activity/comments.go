package activity

import (
	"context"
	"strings"

	"tasklane/internal/models"
	"tasklane/internal/notify"
)

// AddComment stores a comment on a task, echoes a summary of it into the
// task's history, and notifies the assignees other than the author.
func (c *Coordinator) AddComment(ctx context.Context, actor Actor, taskID, body string) (Outcome, error) {
	const op = OpAddComment
	var out Outcome

	body = strings.TrimSpace(body)
	if body == "" {
		return c.finish(op, out, validationf("comment body is required"))
	}

	task, _, _, err := c.taskContext(ctx, actor, taskID)
	if err != nil {
		return c.finish(op, out, err)
	}

	comment := &models.Comment{
		ID:        c.newID(),
		TaskID:    task.ID,
		UserID:    actor.UserID,
		Body:      body,
		CreatedAt: c.now().UTC(),
	}
	if err := c.comments.CreateComment(ctx, comment); err != nil {
		return c.finish(op, out, persistence(err, "store comment on %s", task.ID))
	}
	out.Task = task
	out.Comment = comment

	c.record(ctx, op, &out, models.HistoryEntry{
		TaskID:  task.ID,
		UserID:  actor.UserID,
		Changes: []models.FieldChange{},
		Comment: c.policy.Summarize(body),
	})
	c.dispatch(ctx, op, &out, notify.CommentAdded(*task, actor.Name()), task.AssignedTo, actor.UserID)

	return c.finish(op, out, nil)
}
