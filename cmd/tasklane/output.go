package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"tasklane/internal/api"
	"tasklane/internal/format"
	"tasklane/internal/models"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// outputOptions carries the --output flag. An empty or "text" format prints
// human readable lines; anything else goes through a structured formatter.
type outputOptions struct {
	format string
}

func (o *outputOptions) validate() error {
	if !o.structured() {
		return nil
	}
	_, err := format.ForName(o.format)
	return err
}

func (o *outputOptions) structured() bool {
	name := strings.ToLower(strings.TrimSpace(o.format))
	return name != "" && name != "text"
}

func (o *outputOptions) write(payload any) error {
	formatter, err := format.ForName(o.format)
	if err != nil {
		return err
	}
	return formatter.Write(stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(stdout, format, args...)
	return err
}

func writeTaskList(tasks []models.Task) error {
	if len(tasks) == 0 {
		return writePlain("no tasks\n")
	}
	for _, task := range tasks {
		if err := writePlain("%s\n", formatTaskLine(task)); err != nil {
			return err
		}
	}
	return nil
}

func writeTaskDetail(task models.Task) error {
	lines := []string{
		fmt.Sprintf("id: %s", task.ID),
		fmt.Sprintf("project_id: %s", task.ProjectID),
		fmt.Sprintf("title: %s", task.Title),
		fmt.Sprintf("status: %s", task.Status),
		fmt.Sprintf("type: %s", task.Type),
		fmt.Sprintf("priority: %s", task.Priority),
		fmt.Sprintf("percent_done: %d", task.PercentDone),
		fmt.Sprintf("created_by: %s", task.CreatedBy),
		fmt.Sprintf("created_at: %s", formatTime(task.CreatedAt)),
		fmt.Sprintf("updated_at: %s", formatTime(task.UpdatedAt)),
	}

	if task.ParentTaskID != "" {
		lines = append(lines, fmt.Sprintf("parent_task_id: %s", task.ParentTaskID))
	}
	if len(task.AssignedTo) > 0 {
		lines = append(lines, fmt.Sprintf("assigned_to: %s", strings.Join(task.AssignedTo, ", ")))
	}
	if task.Description != "" {
		lines = append(lines, fmt.Sprintf("description: %s", task.Description))
	}
	if task.DueDate != nil {
		lines = append(lines, fmt.Sprintf("due_date: %s", formatTime(*task.DueDate)))
	}
	if task.EstimatedTime != nil {
		lines = append(lines, fmt.Sprintf("estimated_time: %gh", *task.EstimatedTime))
	}
	if task.GitCommitID != "" {
		lines = append(lines, fmt.Sprintf("git_commit_id: %s", task.GitCommitID))
	}
	if len(task.Tags) > 0 {
		lines = append(lines, fmt.Sprintf("tags: %s", strings.Join(task.Tags, ", ")))
	}
	for _, media := range task.MediaAttachments {
		lines = append(lines, fmt.Sprintf("media: %s (%s)", media.URL, media.ResourceType))
	}

	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func formatTaskLine(task models.Task) string {
	line := fmt.Sprintf("%s [%s] [%s/%s] %3d%% - %s", task.ID, task.Status, task.Type, task.Priority, task.PercentDone, task.Title)
	if len(task.AssignedTo) > 0 {
		line += " @" + strings.Join(task.AssignedTo, ",@")
	}
	return line
}

// writeActivity prints the outcome of a mutating task call. Secondary step
// failures are reported on stderr; the primary change already happened.
func writeActivity(out *outputOptions, resp api.TaskActivityResponse) error {
	if out.structured() {
		return out.write(resp)
	}
	if err := writePlain("%s\n", formatTaskLine(resp.Task)); err != nil {
		return err
	}
	if resp.Comment != nil {
		if err := writePlain("comment %s added\n", resp.Comment.ID); err != nil {
			return err
		}
	}
	if p := resp.Propagation; p != nil && p.Changed {
		if err := writePlain("parent %s progress %d%% -> %d%%\n", p.ParentID, p.Old, p.New); err != nil {
			return err
		}
	}
	if len(resp.Notifications) > 0 {
		recipients := make([]string, 0, len(resp.Notifications))
		for _, n := range resp.Notifications {
			recipients = append(recipients, n.UserID)
		}
		if err := writePlain("notified: %s\n", strings.Join(recipients, ", ")); err != nil {
			return err
		}
	}
	writeWarnings(resp.Warnings)
	return nil
}

func writeWarnings(warnings []api.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(stderr, "warning: %s step failed: %s\n", w.Step, w.Error)
	}
}

func writeMembership(out *outputOptions, resp api.MembershipResponse, action string) error {
	if out.structured() {
		return out.write(resp)
	}
	m := resp.Membership
	if err := writePlain("%s %s in %s (%s)\n", action, m.UserID, m.ProjectID, joinRoles(m.Roles)); err != nil {
		return err
	}
	writeWarnings(resp.Warnings)
	return nil
}

func joinRoles(roles []models.Role) string {
	parts := make([]string, 0, len(roles))
	for _, role := range roles {
		parts = append(parts, string(role))
	}
	return strings.Join(parts, ",")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
