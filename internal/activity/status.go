package activity

import (
	"context"
	"errors"

	"tasklane/internal/audit"
	"tasklane/internal/commitref"
	"tasklane/internal/models"
	"tasklane/internal/notify"
	"tasklane/internal/store"
	"tasklane/internal/workflow"
)

// ChangeStatus advances a task to the next status in the cycle.
//
// commitText is only consulted when the task moves into resolved; a commit id
// extracted from it is stored on the task and recorded in the same history
// entry as the status change. Assignees other than the actor are notified.
func (c *Coordinator) ChangeStatus(ctx context.Context, actor Actor, taskID, commitText string) (Outcome, error) {
	const op = OpChangeStatus
	var out Outcome

	task, _, membership, err := c.taskContext(ctx, actor, taskID)
	if err != nil {
		return c.finish(op, out, err)
	}

	from := task.Status
	next, err := workflow.Authorize(actor.UserID, *task, membership)
	if err != nil {
		if errors.Is(err, workflow.ErrTransitionDenied) {
			return c.finish(op, out, notPermittedf("%s may not advance task %s: %v", actor.UserID, task.ID, err))
		}
		return c.finish(op, out, validationf("task %s: %v", task.ID, err))
	}

	commitID := ""
	if workflow.IsCommitTarget(next) {
		commitID = commitref.ExtractCommitID(commitText)
	}

	update := store.TaskUpdate{Status: &next, UpdatedAt: c.now().UTC()}
	if commitID != "" {
		update.GitCommitID = &commitID
	}
	if err := c.tasks.UpdateTask(ctx, task.ID, update); err != nil {
		return c.finish(op, out, persistence(err, "update task %s", task.ID))
	}

	oldCommitID := task.GitCommitID
	task.Status = next
	task.UpdatedAt = update.UpdatedAt
	if commitID != "" {
		task.GitCommitID = commitID
	}
	out.Task = task

	c.record(ctx, op, &out, models.HistoryEntry{
		TaskID:  task.ID,
		UserID:  actor.UserID,
		Changes: audit.StatusChanges(from, next, oldCommitID, commitID),
		Comment: audit.StatusChangeComment(from, next, commitID),
	})
	c.dispatch(ctx, op, &out, notify.StatusChanged(*task, next), task.AssignedTo, actor.UserID)

	c.logger.Info("task status changed", "task_id", task.ID, "from", from, "to", next, "actor", actor.UserID, "commit", commitID)
	return c.finish(op, out, nil)
}
