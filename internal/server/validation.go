package server

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tasklane/internal/models"
)

var (
	taskIDRegex    = regexp.MustCompile(`^tk-[0-9a-z]{6}$`)
	projectIDRegex = regexp.MustCompile(`^pj-[0-9a-z]{6}$`)
)

func validateTaskID(id string) bool {
	return taskIDRegex.MatchString(id)
}

func validateProjectID(id string) bool {
	return projectIDRegex.MatchString(id)
}

func normalizeType(value string) (models.TaskType, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	taskType, err := models.ParseTaskType(value)
	if err != nil {
		return "", badRequestCode(err, ErrCodeInvalidType)
	}
	return taskType, nil
}

func normalizePriority(value string) (models.Priority, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	priority, err := models.ParsePriority(value)
	if err != nil {
		return "", badRequestCode(err, ErrCodeInvalidPriority)
	}
	return priority, nil
}

func normalizeRoles(values []string) ([]models.Role, error) {
	if len(values) == 0 {
		return nil, badRequestCode(fmt.Errorf("roles are required"), ErrCodeMissingRequired)
	}
	roles, err := models.ParseRoles(values)
	if err != nil {
		return nil, badRequestCode(err, ErrCodeInvalidRole)
	}
	return roles, nil
}

// parseDueDate accepts RFC3339 or YYYY-MM-DD. An empty value means no due date.
func parseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	return nil, badRequestCode(fmt.Errorf("due_date: expected RFC3339 or YYYY-MM-DD format"), ErrCodeInvalidDate)
}
