package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"tasklane/internal/models"
)

const taskColumns = `id, project_id, parent_task_id, title, description, type, status, priority, assigned_to,
	created_by, created_at, updated_at, due_date, estimated_time, percent_done, tags, git_commit_id, media_attachments`

// TaskUpdate describes fields to update. UpdatedAt is always written.
type TaskUpdate struct {
	Status      *models.TaskStatus
	PercentDone *int
	GitCommitID *string
	UpdatedAt   time.Time
}

// CreateTask inserts a task.
func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	if task == nil {
		return fmt.Errorf("task is required")
	}

	assignedTo, err := encodeList(task.AssignedTo)
	if err != nil {
		return fmt.Errorf("encode assigned_to: %w", err)
	}
	tags, err := encodeList(task.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	media, err := encodeList(task.MediaAttachments)
	if err != nil {
		return fmt.Errorf("encode media_attachments: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		task.ID,
		task.ProjectID,
		nullIfEmpty(task.ParentTaskID),
		task.Title,
		nullIfEmpty(task.Description),
		string(task.Type),
		string(task.Status),
		string(task.Priority),
		assignedTo,
		task.CreatedBy,
		formatTime(task.CreatedAt),
		formatTime(task.UpdatedAt),
		nullTime(task.DueDate),
		nullFloat(task.EstimatedTime),
		task.PercentDone,
		tags,
		nullIfEmpty(task.GitCommitID),
		media,
	)
	return err
}

// GetTask returns a task by id, or nil when it does not exist.
func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	return scanTask(row)
}

// UpdateTask updates mutable fields on a task.
func (s *Store) UpdateTask(ctx context.Context, id string, update TaskUpdate) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}

	set := []string{}
	args := []any{}

	if update.Status != nil {
		set = append(set, "status = ?")
		args = append(args, string(*update.Status))
	}
	if update.PercentDone != nil {
		set = append(set, "percent_done = ?")
		args = append(args, *update.PercentDone)
	}
	if update.GitCommitID != nil {
		set = append(set, "git_commit_id = ?")
		args = append(args, nullIfEmpty(*update.GitCommitID))
	}

	set = append(set, "updated_at = ?")
	args = append(args, formatTime(update.UpdatedAt))

	args = append(args, id)
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", strings.Join(set, ", "))
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}

// SetTaskProgress writes a task's percent_done and updated_at.
func (s *Store) SetTaskProgress(ctx context.Context, id string, percentDone int, updatedAt time.Time) error {
	return s.UpdateTask(ctx, id, TaskUpdate{PercentDone: &percentDone, UpdatedAt: updatedAt})
}

// ListChildTasks returns the direct children of parentID in creation order.
func (s *Store) ListChildTasks(ctx context.Context, parentID string) ([]models.Task, error) {
	return s.queryTasks(ctx, "SELECT "+taskColumns+" FROM tasks WHERE parent_task_id = ? ORDER BY created_at ASC, id ASC", parentID)
}

// ListProjectTasks returns all tasks in a project in creation order.
func (s *Store) ListProjectTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	return s.queryTasks(ctx, "SELECT "+taskColumns+" FROM tasks WHERE project_id = ? ORDER BY created_at ASC, id ASC", projectID)
}

// CountChildTasks returns how many tasks reference parentID.
func (s *Store) CountChildTasks(ctx context.Context, parentID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks WHERE parent_task_id = ?", parentID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func scanTask(scanner interface {
	Scan(dest ...any) error
}) (*models.Task, error) {
	var task models.Task
	var parentTaskID, description, dueDate, gitCommitID sql.NullString
	var estimatedTime sql.NullFloat64
	var taskType, status, priority string
	var assignedTo, tags, media string
	var createdAt, updatedAt string

	if err := scanner.Scan(
		&task.ID,
		&task.ProjectID,
		&parentTaskID,
		&task.Title,
		&description,
		&taskType,
		&status,
		&priority,
		&assignedTo,
		&task.CreatedBy,
		&createdAt,
		&updatedAt,
		&dueDate,
		&estimatedTime,
		&task.PercentDone,
		&tags,
		&gitCommitID,
		&media,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	task.ParentTaskID = parentTaskID.String
	task.Description = description.String
	task.Type = models.TaskType(taskType)
	task.Status = models.TaskStatus(status)
	task.Priority = models.Priority(priority)
	task.GitCommitID = gitCommitID.String
	if estimatedTime.Valid {
		value := estimatedTime.Float64
		task.EstimatedTime = &value
	}

	var err error
	if task.AssignedTo, err = decodeList[string](assignedTo); err != nil {
		return nil, fmt.Errorf("decode assigned_to for %s: %w", task.ID, err)
	}
	if task.Tags, err = decodeList[string](tags); err != nil {
		return nil, fmt.Errorf("decode tags for %s: %w", task.ID, err)
	}
	if task.MediaAttachments, err = decodeList[models.MediaAttachment](media); err != nil {
		return nil, fmt.Errorf("decode media_attachments for %s: %w", task.ID, err)
	}
	if task.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if task.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if task.DueDate, err = parseNullTime(dueDate); err != nil {
		return nil, err
	}

	return &task, nil
}
