package notify

import (
	"fmt"
	"strings"

	"tasklane/internal/models"
)

// StatusChanged builds the event sent to assignees when a task changes status.
func StatusChanged(task models.Task, to models.TaskStatus) Event {
	return Event{
		Type:        models.EventUpdateTask,
		ReferenceID: task.ID,
		Message:     fmt.Sprintf("Task %q moved to %s", task.Title, to),
	}
}

// ProgressChanged builds the event sent when a leaf task's progress is edited.
func ProgressChanged(task models.Task, percentDone int) Event {
	return Event{
		Type:        models.EventUpdateTask,
		ReferenceID: task.ID,
		Message:     fmt.Sprintf("Task %q is now %d%% done", task.Title, percentDone),
	}
}

// SubtaskAssigned builds the event sent to assignees of a new subtask.
func SubtaskAssigned(subtask models.Task) Event {
	return Event{
		Type:        models.EventCreateTask,
		ReferenceID: subtask.ID,
		Message:     fmt.Sprintf("You were assigned to new subtask %q", subtask.Title),
	}
}

// TaskAssigned builds the event sent to assignees of a new root task.
func TaskAssigned(task models.Task) Event {
	return Event{
		Type:        models.EventCreateTask,
		ReferenceID: task.ID,
		Message:     fmt.Sprintf("You were assigned to new task %q", task.Title),
	}
}

// CommentAdded builds the event sent to assignees when a comment is posted.
func CommentAdded(task models.Task, author string) Event {
	message := fmt.Sprintf("New comment on %q", task.Title)
	if author != "" {
		message = fmt.Sprintf("%s commented on %q", author, task.Title)
	}
	return Event{Type: models.EventAddComment, ReferenceID: task.ID, Message: message}
}

// MemberInvited builds the event sent to a user added to a project.
func MemberInvited(project models.Project, roles []models.Role) Event {
	return Event{
		Type:        models.EventInviteMember,
		ReferenceID: project.ID,
		Message:     fmt.Sprintf("You were added to project %q as %s", project.Name, joinRoles(roles)),
	}
}

// MemberRemoved builds the event sent to a user removed from a project.
func MemberRemoved(project models.Project) Event {
	return Event{
		Type:        models.EventRemoveMember,
		ReferenceID: project.ID,
		Message:     fmt.Sprintf("You were removed from project %q", project.Name),
	}
}

// RolesUpdated builds the event sent to a user whose project roles changed.
func RolesUpdated(project models.Project, roles []models.Role) Event {
	return Event{
		Type:        models.EventUpdateRole,
		ReferenceID: project.ID,
		Message:     fmt.Sprintf("Your roles in project %q are now %s", project.Name, joinRoles(roles)),
	}
}

func joinRoles(roles []models.Role) string {
	if len(roles) == 0 {
		return "none"
	}
	parts := make([]string, len(roles))
	for i, role := range roles {
		parts[i] = string(role)
	}
	return strings.Join(parts, ", ")
}
