package api

import "tasklane/internal/models"

// TaskCreateRequest is the payload for creating a root task or a subtask.
type TaskCreateRequest struct {
	Title            string                   `json:"title"`
	Description      string                   `json:"description,omitempty"`
	Type             string                   `json:"type,omitempty"`
	Priority         string                   `json:"priority,omitempty"`
	AssignedTo       []string                 `json:"assigned_to,omitempty"`
	DueDate          string                   `json:"due_date,omitempty"`
	EstimatedTime    *float64                 `json:"estimated_time,omitempty"`
	Tags             []string                 `json:"tags,omitempty"`
	MediaAttachments []models.MediaAttachment `json:"media_attachments,omitempty"`
}

// AdvanceRequest is the payload for POST /v1/tasks/{id}/advance. Commit may be
// a commit URL or a bare hash and is only used when the task moves to resolved.
type AdvanceRequest struct {
	Commit string `json:"commit,omitempty"`
}

// ProgressRequest is the payload for PUT /v1/tasks/{id}/progress.
type ProgressRequest struct {
	PercentDone *int `json:"percent_done"`
}

// CommentRequest is the payload for POST /v1/tasks/{id}/comments.
type CommentRequest struct {
	Body string `json:"body"`
}

// Propagation reports a recomputed parent progress value.
type Propagation struct {
	ParentID string `json:"parent_id"`
	Changed  bool   `json:"changed"`
	Old      int    `json:"old"`
	New      int    `json:"new"`
}

// TaskActivityResponse is returned by every task mutation.
type TaskActivityResponse struct {
	Task          models.Task           `json:"task"`
	Comment       *models.Comment       `json:"comment,omitempty"`
	History       []models.HistoryEntry `json:"history"`
	Notifications []models.Notification `json:"notifications"`
	Propagation   *Propagation          `json:"propagation,omitempty"`
	Warnings      []Warning             `json:"warnings"`
}

// SubtaskListResponse is one filtered page of subtasks.
type SubtaskListResponse struct {
	Items      []models.Task `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalItems int           `json:"total_items"`
	TotalPages int           `json:"total_pages"`
}
