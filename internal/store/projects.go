package store

import (
	"context"
	"database/sql"
	"fmt"

	"tasklane/internal/models"
)

// CreateProject inserts a project.
func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	if project == nil {
		return fmt.Errorf("project is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, project.ID, project.Name, nullIfEmpty(project.Description), project.OwnerID,
		formatTime(project.CreatedAt), formatTime(project.UpdatedAt))
	return err
}

// GetProject returns a project by id, or nil when it does not exist.
func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	var description sql.NullString
	var createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM projects WHERE id = ?
	`, id).Scan(&project.ID, &project.Name, &description, &project.OwnerID, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	project.Description = description.String
	if project.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if project.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetMembership returns one user's membership in a project, or nil when absent.
func (s *Store) GetMembership(ctx context.Context, projectID, userID string) (*models.Membership, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT project_id, user_id, roles, added_at, added_by
		FROM project_members
		WHERE project_id = ? AND user_id = ?
	`, projectID, userID)
	return scanMembership(row)
}

// ListMembers returns a project's members ordered by user id.
func (s *Store) ListMembers(ctx context.Context, projectID string) ([]models.Membership, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT project_id, user_id, roles, added_at, added_by
		FROM project_members
		WHERE project_id = ?
		ORDER BY user_id ASC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.Membership{}
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

// PutMembership inserts or replaces a membership. Replacing keeps the
// original added_at and added_by.
func (s *Store) PutMembership(ctx context.Context, m *models.Membership) error {
	if m == nil {
		return fmt.Errorf("membership is required")
	}
	roles, err := encodeList(m.Roles)
	if err != nil {
		return fmt.Errorf("encode roles: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO project_members (project_id, user_id, roles, added_at, added_by)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(project_id, user_id) DO UPDATE SET roles = excluded.roles
	`, m.ProjectID, m.UserID, roles, formatTime(m.AddedAt), m.AddedBy)
	return err
}

// DeleteMembership removes a user from a project and reports whether a row was removed.
func (s *Store) DeleteMembership(ctx context.Context, projectID, userID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM project_members WHERE project_id = ? AND user_id = ?", projectID, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanMembership(scanner interface {
	Scan(dest ...any) error
}) (*models.Membership, error) {
	var m models.Membership
	var roles, addedAt string
	if err := scanner.Scan(&m.ProjectID, &m.UserID, &roles, &addedAt, &m.AddedBy); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	var err error
	if m.Roles, err = decodeList[models.Role](roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	if m.AddedAt, err = parseTime(addedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
