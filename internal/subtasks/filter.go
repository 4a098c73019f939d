// Package subtasks filters and paginates a task's direct children.
package subtasks

import (
	"slices"
	"strings"

	"tasklane/internal/auth"
	"tasklane/internal/models"
)

// MeToken in Criteria.Assignees stands for the acting user.
const MeToken = "me"

// Criteria holds one set per facet. An empty set places no constraint.
type Criteria struct {
	Statuses   []models.TaskStatus `json:"status,omitempty"`
	Types      []models.TaskType   `json:"type,omitempty"`
	Priorities []models.Priority   `json:"priority,omitempty"`
	Assignees  []string            `json:"assignee,omitempty"`
}

// IsEmpty reports whether no facet constrains the result.
func (c Criteria) IsEmpty() bool {
	return len(c.Statuses) == 0 && len(c.Types) == 0 && len(c.Priorities) == 0 && len(c.Assignees) == 0
}

// Equal reports whether c and other select the same facets, ignoring order.
func (c Criteria) Equal(other Criteria) bool {
	return sameSet(c.Statuses, other.Statuses) &&
		sameSet(c.Types, other.Types) &&
		sameSet(c.Priorities, other.Priorities) &&
		sameSet(c.Assignees, other.Assignees)
}

// Filter returns the children that pass every non-empty facet, keeping input order.
//
// Within a facet values are OR-ed. In Assignees the "me" token is a mandatory
// co-filter: the task must be assigned to actingUser and, when other ids are
// also present, to at least one of them.
func Filter(children []models.Task, criteria Criteria, actingUser string) []models.Task {
	wantMe, others := splitAssignees(criteria.Assignees)
	out := make([]models.Task, 0, len(children))
	for _, task := range children {
		if len(criteria.Statuses) > 0 && !slices.Contains(criteria.Statuses, task.Status) {
			continue
		}
		if len(criteria.Types) > 0 && !slices.Contains(criteria.Types, task.Type) {
			continue
		}
		if len(criteria.Priorities) > 0 && !slices.Contains(criteria.Priorities, task.Priority) {
			continue
		}
		if wantMe && !task.IsAssignedTo(actingUser) {
			continue
		}
		if len(others) > 0 && !slices.ContainsFunc(others, task.IsAssignedTo) {
			continue
		}
		out = append(out, task)
	}
	return out
}

func splitAssignees(assignees []string) (bool, []string) {
	wantMe := false
	others := make([]string, 0, len(assignees))
	for _, id := range assignees {
		id = strings.TrimSpace(id)
		switch {
		case id == "":
		case strings.EqualFold(id, MeToken):
			wantMe = true
		default:
			others = append(others, id)
		}
	}
	return wantMe, others
}

func sameSet[T comparable](a, b []T) bool {
	set := make(map[T]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	other := make(map[T]struct{}, len(b))
	for _, v := range b {
		if _, ok := set[v]; !ok {
			return false
		}
		other[v] = struct{}{}
	}
	return len(set) == len(other)
}

// ParseCriteria validates raw facet values and builds Criteria.
func ParseCriteria(statuses, types, priorities, assignees []string) (Criteria, error) {
	var c Criteria
	for _, raw := range statuses {
		status, err := models.ParseTaskStatus(raw)
		if err != nil {
			return Criteria{}, err
		}
		c.Statuses = append(c.Statuses, status)
	}
	for _, raw := range types {
		taskType, err := models.ParseTaskType(raw)
		if err != nil {
			return Criteria{}, err
		}
		c.Types = append(c.Types, taskType)
	}
	for _, raw := range priorities {
		priority, err := models.ParsePriority(raw)
		if err != nil {
			return Criteria{}, err
		}
		c.Priorities = append(c.Priorities, priority)
	}
	for _, raw := range assignees {
		id := strings.TrimSpace(raw)
		switch {
		case id == "":
		case strings.EqualFold(id, MeToken):
			c.Assignees = append(c.Assignees, MeToken)
		default:
			normalized, err := auth.NormalizeUserID(id)
			if err != nil {
				return Criteria{}, err
			}
			c.Assignees = append(c.Assignees, normalized)
		}
	}
	return c, nil
}
