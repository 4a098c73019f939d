// Package workflow encodes the task status cycle and who may advance it.
//
// The cycle is fixed:
//
//	todo → in_progress → resolved → closed → todo (reopen)
//
// Authorization is keyed on the task's current status, not on the target
// status, so reopening a closed task requires the tester role.
package workflow

import (
	"errors"
	"fmt"

	"tasklane/internal/models"
)

// ErrTransitionDenied is returned by Authorize when the user may not advance the task.
var ErrTransitionDenied = errors.New("status transition denied")

// permission decides whether a user may advance a task out of its current status.
type permission struct {
	describe string
	allows   func(userID string, task models.Task, membership models.Membership) bool
}

type transition struct {
	next       models.TaskStatus
	permission permission
}

var transitions = map[models.TaskStatus]transition{
	models.StatusTodo: {
		next:       models.StatusInProgress,
		permission: assigneeOrRole(models.RoleDev),
	},
	models.StatusInProgress: {
		next:       models.StatusResolved,
		permission: role(models.RoleDev),
	},
	models.StatusResolved: {
		next:       models.StatusClosed,
		permission: role(models.RoleTester),
	},
	models.StatusClosed: {
		next:       models.StatusTodo,
		permission: role(models.RoleTester),
	},
}

// NextStatus returns the cyclic successor of current.
// It reports false only for values outside the four known statuses.
func NextStatus(current models.TaskStatus) (models.TaskStatus, bool) {
	t, ok := transitions[current]
	if !ok {
		return "", false
	}
	return t.next, true
}

// GetNextStatus returns the status the task moves to when advanced.
func GetNextStatus(task models.Task) (models.TaskStatus, bool) {
	return NextStatus(task.Status)
}

// CanTransition reports whether userID, holding membership, may advance task.
func CanTransition(userID string, task models.Task, membership models.Membership) bool {
	if userID == "" {
		return false
	}
	t, ok := transitions[task.Status]
	if !ok {
		return false
	}
	return t.permission.allows(userID, task, membership)
}

// Authorize returns the status task advances to when userID may trigger the
// transition, or an error wrapping ErrTransitionDenied.
func Authorize(userID string, task models.Task, membership models.Membership) (models.TaskStatus, error) {
	next, ok := GetNextStatus(task)
	if !ok {
		return "", fmt.Errorf("unknown status %q", task.Status)
	}
	if !CanTransition(userID, task, membership) {
		return "", fmt.Errorf("%w: moving %s to %s requires %s", ErrTransitionDenied, task.Status, next, Requirement(task.Status))
	}
	return next, nil
}

// Requirement describes who may advance a task out of status.
func Requirement(status models.TaskStatus) string {
	t, ok := transitions[status]
	if !ok {
		return "nobody"
	}
	return t.permission.describe
}

// IsCommitTarget reports whether moving into status may record a commit id.
func IsCommitTarget(status models.TaskStatus) bool {
	return status == models.StatusResolved
}

func role(required models.Role) permission {
	return permission{
		describe: "role " + string(required),
		allows: func(_ string, _ models.Task, membership models.Membership) bool {
			return membership.HasRole(required)
		},
	}
}

func assigneeOrRole(required models.Role) permission {
	return permission{
		describe: "an assignee or role " + string(required),
		allows: func(userID string, task models.Task, membership models.Membership) bool {
			return task.IsAssignedTo(userID) || membership.HasRole(required)
		},
	}
}
