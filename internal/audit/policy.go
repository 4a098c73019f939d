package audit

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"tasklane/internal/models"
)

const (
	DefaultCommentLimit = 100
	DefaultEllipsis     = "..."

	TaskCreatedComment      = "Task created"
	SubtaskCreatedComment   = "Subtask created"
	ProgressUpdatedComment  = "Progress updated"
	AutoProgressComment     = "Progress updated automatically based on subtasks"
	commitLinkedCommentForm = "%s (commit %s)"
)

// CommentPolicy shortens user comments echoed into history entries.
type CommentPolicy struct {
	Limit    int
	Ellipsis string
}

// DefaultCommentPolicy keeps the first 100 characters and appends "...".
var DefaultCommentPolicy = CommentPolicy{Limit: DefaultCommentLimit, Ellipsis: DefaultEllipsis}

// Summarize returns text unchanged when it fits within Limit characters,
// otherwise its first Limit characters followed by Ellipsis.
func (p CommentPolicy) Summarize(text string) string {
	text = strings.TrimSpace(text)
	if p.Limit <= 0 || utf8.RuneCountInString(text) <= p.Limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:p.Limit]) + p.Ellipsis
}

// StatusChangeComment describes a status transition, mentioning the linked commit when set.
func StatusChangeComment(from, to models.TaskStatus, commitID string) string {
	comment := fmt.Sprintf("Status changed from %s to %s", from, to)
	if commitID != "" {
		comment = fmt.Sprintf(commitLinkedCommentForm, comment, commitID)
	}
	return comment
}

// StatusChanges returns the field changes for a transition; the commit id change
// is included only when commitID is non-empty.
func StatusChanges(from, to models.TaskStatus, oldCommitID, commitID string) []models.FieldChange {
	changes := []models.FieldChange{{Field: "status", OldValue: string(from), NewValue: string(to)}}
	if commitID != "" {
		var old any
		if oldCommitID != "" {
			old = oldCommitID
		}
		changes = append(changes, models.FieldChange{Field: "gitCommitId", OldValue: old, NewValue: commitID})
	}
	return changes
}
