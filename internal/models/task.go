package models

import (
	"slices"
	"time"
)

// Task represents a single unit of work inside a project.
type Task struct {
	ID               string            `json:"id"`
	ProjectID        string            `json:"project_id"`
	ParentTaskID     string            `json:"parent_task_id,omitempty"`
	Title            string            `json:"title"`
	Description      string            `json:"description,omitempty"`
	Type             TaskType          `json:"type"`
	Status           TaskStatus        `json:"status"`
	Priority         Priority          `json:"priority"`
	AssignedTo       []string          `json:"assigned_to"`
	CreatedBy        string            `json:"created_by"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	DueDate          *time.Time        `json:"due_date,omitempty"`
	EstimatedTime    *float64          `json:"estimated_time,omitempty"`
	PercentDone      int               `json:"percent_done"`
	Tags             []string          `json:"tags"`
	GitCommitID      string            `json:"git_commit_id,omitempty"`
	MediaAttachments []MediaAttachment `json:"media_attachments,omitempty"`
}

// MediaAttachment is a reference returned by the external media upload service.
type MediaAttachment struct {
	URL          string `json:"url"`
	PublicID     string `json:"public_id"`
	ResourceType string `json:"resource_type"`
	Format       string `json:"format"`
}

// IsAssignedTo reports whether userID is one of the task's assignees.
func (t Task) IsAssignedTo(userID string) bool {
	if userID == "" {
		return false
	}
	return slices.Contains(t.AssignedTo, userID)
}

// IsSubtask reports whether the task references a parent task.
func (t Task) IsSubtask() bool {
	return t.ParentTaskID != ""
}
