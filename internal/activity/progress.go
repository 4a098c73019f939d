package activity

import (
	"context"

	"tasklane/internal/audit"
	"tasklane/internal/models"
	"tasklane/internal/notify"
	"tasklane/internal/store"
)

// UpdateProgress sets percentDone on a leaf task. Tasks with subtasks derive
// their progress from them and are rejected. The same users who may start a
// todo task (assignees and devs) may edit its progress.
func (c *Coordinator) UpdateProgress(ctx context.Context, actor Actor, taskID string, percentDone int) (Outcome, error) {
	const op = OpUpdateProgress
	var out Outcome

	if !models.IsValidPercentDone(percentDone) {
		return c.finish(op, out, validationf("percent done must be between %d and %d", models.PercentDoneMin, models.PercentDoneMax))
	}

	task, _, membership, err := c.taskContext(ctx, actor, taskID)
	if err != nil {
		return c.finish(op, out, err)
	}
	if !task.IsAssignedTo(actor.UserID) && !membership.HasRole(models.RoleDev) {
		return c.finish(op, out, notPermittedf("%s may not update progress of %s: requires an assignee or role dev", actor.UserID, task.ID))
	}

	children, err := c.tasks.CountChildTasks(ctx, task.ID)
	if err != nil {
		return c.finish(op, out, persistence(err, "count subtasks of %s", task.ID))
	}
	if children > 0 {
		return c.finish(op, out, validationf("task %s has %d subtasks; its progress is derived from them", task.ID, children))
	}

	out.Task = task
	old := task.PercentDone
	if old == percentDone {
		return c.finish(op, out, nil)
	}

	updatedAt := c.now().UTC()
	if err := c.tasks.UpdateTask(ctx, task.ID, store.TaskUpdate{PercentDone: &percentDone, UpdatedAt: updatedAt}); err != nil {
		return c.finish(op, out, persistence(err, "update progress of %s", task.ID))
	}
	task.PercentDone = percentDone
	task.UpdatedAt = updatedAt

	c.record(ctx, op, &out, models.HistoryEntry{
		TaskID:  task.ID,
		UserID:  actor.UserID,
		Changes: []models.FieldChange{{Field: "percentDone", OldValue: old, NewValue: percentDone}},
		Comment: audit.ProgressUpdatedComment,
	})
	c.dispatch(ctx, op, &out, notify.ProgressChanged(*task, percentDone), task.AssignedTo, actor.UserID)
	if task.IsSubtask() {
		c.propagate(ctx, op, &out, task.ParentTaskID, actor.UserID)
	}

	return c.finish(op, out, nil)
}
