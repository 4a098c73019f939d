package models

import (
	"fmt"
	"strings"
)

// TaskStatus defines allowed lifecycle states for tasks.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusResolved   TaskStatus = "resolved"
	StatusClosed     TaskStatus = "closed"
)

// TaskType defines allowed task categories.
type TaskType string

const (
	TypeBug           TaskType = "bug"
	TypeFeature       TaskType = "feature"
	TypeEnhancement   TaskType = "enhancement"
	TypeDocumentation TaskType = "documentation"
)

// Priority defines allowed task priorities.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Role is a permission label held by a user within one project.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleDev            Role = "dev"
	RoleTester         Role = "tester"
	RoleDocumentWriter Role = "documentWriter"
)

const (
	DefaultType     = TypeFeature
	DefaultPriority = PriorityMedium

	PercentDoneMin = 0
	PercentDoneMax = 100
)

var validTaskStatuses = map[TaskStatus]struct{}{
	StatusTodo:       {},
	StatusInProgress: {},
	StatusResolved:   {},
	StatusClosed:     {},
}

var validTaskTypes = map[TaskType]struct{}{
	TypeBug:           {},
	TypeFeature:       {},
	TypeEnhancement:   {},
	TypeDocumentation: {},
}

var validPriorities = map[Priority]struct{}{
	PriorityLow:      {},
	PriorityMedium:   {},
	PriorityHigh:     {},
	PriorityCritical: {},
}

var validRoles = map[Role]struct{}{
	RoleAdmin:          {},
	RoleDev:            {},
	RoleTester:         {},
	RoleDocumentWriter: {},
}

func (s TaskStatus) String() string { return string(s) }

func (t TaskType) String() string { return string(t) }

func (p Priority) String() string { return string(p) }

func (r Role) String() string { return string(r) }

func IsValidTaskStatus(status TaskStatus) bool {
	_, ok := validTaskStatuses[status]
	return ok
}

func IsValidTaskType(taskType TaskType) bool {
	_, ok := validTaskTypes[taskType]
	return ok
}

func IsValidPriority(priority Priority) bool {
	_, ok := validPriorities[priority]
	return ok
}

func IsValidRole(role Role) bool {
	_, ok := validRoles[role]
	return ok
}

func IsValidPercentDone(value int) bool {
	return value >= PercentDoneMin && value <= PercentDoneMax
}

func ParseTaskStatus(raw string) (TaskStatus, error) {
	value := TaskStatus(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("status is required")
	}
	if !IsValidTaskStatus(value) {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return value, nil
}

func ParseTaskType(raw string) (TaskType, error) {
	value := TaskType(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("type is required")
	}
	if !IsValidTaskType(value) {
		return "", fmt.Errorf("invalid type: %s", value)
	}
	return value, nil
}

func ParsePriority(raw string) (Priority, error) {
	value := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("priority is required")
	}
	if !IsValidPriority(value) {
		return "", fmt.Errorf("invalid priority: %s", value)
	}
	return value, nil
}

func ParseRole(raw string) (Role, error) {
	value := Role(strings.TrimSpace(raw))
	if value == "" {
		return "", fmt.Errorf("role is required")
	}
	if strings.EqualFold(string(value), string(RoleDocumentWriter)) {
		return RoleDocumentWriter, nil
	}
	value = Role(strings.ToLower(string(value)))
	if !IsValidRole(value) {
		return "", fmt.Errorf("invalid role: %s", value)
	}
	return value, nil
}

// ParseRoles validates and de-duplicates a role list, preserving first-seen order.
func ParseRoles(raw []string) ([]Role, error) {
	roles := make([]Role, 0, len(raw))
	seen := map[Role]struct{}{}
	for _, value := range raw {
		role, err := ParseRole(value)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, role)
	}
	return roles, nil
}
