package activity

import (
	"context"
	"strings"

	"tasklane/internal/models"
)

// CreateProject creates a project owned by the actor, who becomes its admin.
func (c *Coordinator) CreateProject(ctx context.Context, actor Actor, name, description string) (*models.Project, error) {
	project, err := c.createProject(ctx, actor, name, description)
	_, err = c.finish(OpCreateProject, Outcome{}, err)
	return project, err
}

func (c *Coordinator) createProject(ctx context.Context, actor Actor, name, description string) (*models.Project, error) {
	if strings.TrimSpace(actor.UserID) == "" {
		return nil, validationf("actor is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("project name is required")
	}

	id, err := c.projects.GenerateProjectID()
	if err != nil {
		return nil, persistence(err, "generate project id")
	}
	now := c.now().UTC()
	project := &models.Project{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(description),
		OwnerID:     actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.projects.CreateProject(ctx, project); err != nil {
		return nil, persistence(err, "create project")
	}
	owner := &models.Membership{
		ProjectID: project.ID,
		UserID:    actor.UserID,
		Roles:     []models.Role{models.RoleAdmin},
		AddedAt:   now,
		AddedBy:   actor.UserID,
	}
	if err := c.projects.PutMembership(ctx, owner); err != nil {
		return nil, persistence(err, "add owner to project %s", project.ID)
	}

	c.logger.Info("project created", "project_id", project.ID, "owner", actor.UserID)
	return project, nil
}
