// Package progress keeps a parent task's completion in step with its subtasks.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tasklane/internal/audit"
	"tasklane/internal/models"
)

// Aggregate returns the mean percentDone of children rounded half up, or 0 when
// there are no children.
func Aggregate(children []models.Task) int {
	if len(children) == 0 {
		return 0
	}
	sum := 0
	for _, child := range children {
		sum += child.PercentDone
	}
	n := len(children)
	// Integer round half up: floor((2*sum + n) / (2*n)).
	return (2*sum + n) / (2 * n)
}

// TaskStore is the subset of task storage propagation needs.
type TaskStore interface {
	GetTask(ctx context.Context, id string) (*models.Task, error)
	ListChildTasks(ctx context.Context, parentID string) ([]models.Task, error)
	SetTaskProgress(ctx context.Context, id string, percentDone int, updatedAt time.Time) error
}

// HistoryRecorder appends history entries.
type HistoryRecorder interface {
	Record(ctx context.Context, entry models.HistoryEntry) (models.HistoryEntry, error)
}

// Result describes what a propagation changed.
type Result struct {
	ParentID string
	Changed  bool
	Old      int
	New      int
}

// Propagator recomputes a parent's percentDone from its direct children.
// It updates the immediate parent only and never walks further up the tree.
type Propagator struct {
	tasks   TaskStore
	history HistoryRecorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewPropagator returns a Propagator.
func NewPropagator(tasks TaskStore, history HistoryRecorder, logger *slog.Logger) *Propagator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Propagator{
		tasks:   tasks,
		history: history,
		logger:  logger.With("component", "progress"),
		now:     time.Now,
	}
}

// Propagate loads parentID and its children and, when the aggregate differs from
// the stored value, updates the parent and appends one history entry to it.
func (p *Propagator) Propagate(ctx context.Context, parentID, actorID string) (Result, error) {
	result := Result{ParentID: parentID}

	parent, err := p.tasks.GetTask(ctx, parentID)
	if err != nil {
		return result, fmt.Errorf("load parent %s: %w", parentID, err)
	}
	if parent == nil {
		return result, fmt.Errorf("parent task %s not found", parentID)
	}
	children, err := p.tasks.ListChildTasks(ctx, parentID)
	if err != nil {
		return result, fmt.Errorf("list children of %s: %w", parentID, err)
	}

	result.Old = parent.PercentDone
	result.New = Aggregate(children)
	if result.New == result.Old {
		return result, nil
	}

	if err := p.tasks.SetTaskProgress(ctx, parentID, result.New, p.now().UTC()); err != nil {
		return result, fmt.Errorf("update parent %s progress: %w", parentID, err)
	}
	result.Changed = true

	_, err = p.history.Record(ctx, models.HistoryEntry{
		TaskID:  parentID,
		UserID:  actorID,
		Changes: []models.FieldChange{{Field: "percentDone", OldValue: result.Old, NewValue: result.New}},
		Comment: audit.AutoProgressComment,
	})
	if err != nil {
		return result, fmt.Errorf("record parent %s progress: %w", parentID, err)
	}

	p.logger.Debug("parent progress updated", "task_id", parentID, "old", result.Old, "new", result.New, "children", len(children))
	return result, nil
}
