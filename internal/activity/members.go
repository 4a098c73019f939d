package activity

import (
	"context"
	"slices"
	"strings"

	"tasklane/internal/models"
	"tasklane/internal/notify"
)

// InviteMember adds userID to projectID with roles and notifies them.
// Only project admins may change membership.
func (c *Coordinator) InviteMember(ctx context.Context, actor Actor, projectID, userID string, roles []models.Role) (Outcome, error) {
	const op = OpInviteMember
	var out Outcome

	project, userID, err := c.authorizeMembershipChange(ctx, actor, projectID, userID)
	if err != nil {
		return c.finish(op, out, err)
	}
	if err := validateRoles(roles); err != nil {
		return c.finish(op, out, err)
	}

	existing, err := c.projects.GetMembership(ctx, project.ID, userID)
	if err != nil {
		return c.finish(op, out, persistence(err, "load membership of %s", userID))
	}
	if existing != nil {
		return c.finish(op, out, validationf("%s is already a member of %s", userID, project.ID))
	}

	membership := &models.Membership{
		ProjectID: project.ID,
		UserID:    userID,
		Roles:     roles,
		AddedAt:   c.now().UTC(),
		AddedBy:   actor.UserID,
	}
	if err := c.projects.PutMembership(ctx, membership); err != nil {
		return c.finish(op, out, persistence(err, "add %s to %s", userID, project.ID))
	}
	out.Membership = membership

	c.dispatch(ctx, op, &out, notify.MemberInvited(*project, roles), []string{userID}, actor.UserID)

	c.logger.Info("member invited", "project_id", project.ID, "user_id", userID, "roles", roles, "actor", actor.UserID)
	return c.finish(op, out, nil)
}

// UpdateMemberRoles replaces the roles userID holds in projectID and notifies them.
func (c *Coordinator) UpdateMemberRoles(ctx context.Context, actor Actor, projectID, userID string, roles []models.Role) (Outcome, error) {
	const op = OpUpdateMemberRoles
	var out Outcome

	project, userID, err := c.authorizeMembershipChange(ctx, actor, projectID, userID)
	if err != nil {
		return c.finish(op, out, err)
	}
	if err := validateRoles(roles); err != nil {
		return c.finish(op, out, err)
	}
	if userID == project.OwnerID && !slices.Contains(roles, models.RoleAdmin) {
		return c.finish(op, out, validationf("the project owner must keep the admin role"))
	}

	existing, err := c.projects.GetMembership(ctx, project.ID, userID)
	if err != nil {
		return c.finish(op, out, persistence(err, "load membership of %s", userID))
	}
	if existing == nil {
		return c.finish(op, out, notFoundf("%s is not a member of %s", userID, project.ID))
	}

	updated := *existing
	updated.Roles = roles
	if err := c.projects.PutMembership(ctx, &updated); err != nil {
		return c.finish(op, out, persistence(err, "update roles of %s in %s", userID, project.ID))
	}
	out.Membership = &updated

	c.dispatch(ctx, op, &out, notify.RolesUpdated(*project, roles), []string{userID}, actor.UserID)

	c.logger.Info("member roles updated", "project_id", project.ID, "user_id", userID, "roles", roles, "actor", actor.UserID)
	return c.finish(op, out, nil)
}

// RemoveMember removes userID from projectID and notifies them.
// The project owner cannot be removed.
func (c *Coordinator) RemoveMember(ctx context.Context, actor Actor, projectID, userID string) (Outcome, error) {
	const op = OpRemoveMember
	var out Outcome

	project, userID, err := c.authorizeMembershipChange(ctx, actor, projectID, userID)
	if err != nil {
		return c.finish(op, out, err)
	}
	if userID == project.OwnerID {
		return c.finish(op, out, validationf("the project owner cannot be removed"))
	}

	existing, err := c.projects.GetMembership(ctx, project.ID, userID)
	if err != nil {
		return c.finish(op, out, persistence(err, "load membership of %s", userID))
	}
	if existing == nil {
		return c.finish(op, out, notFoundf("%s is not a member of %s", userID, project.ID))
	}
	if _, err := c.projects.DeleteMembership(ctx, project.ID, userID); err != nil {
		return c.finish(op, out, persistence(err, "remove %s from %s", userID, project.ID))
	}
	out.Membership = existing

	c.dispatch(ctx, op, &out, notify.MemberRemoved(*project), []string{userID}, actor.UserID)

	c.logger.Info("member removed", "project_id", project.ID, "user_id", userID, "actor", actor.UserID)
	return c.finish(op, out, nil)
}

func (c *Coordinator) authorizeMembershipChange(ctx context.Context, actor Actor, projectID, userID string) (*models.Project, string, error) {
	project, err := c.loadProject(ctx, projectID)
	if err != nil {
		return nil, "", err
	}
	membership, err := c.membershipFor(ctx, actor, project.ID)
	if err != nil {
		return nil, "", err
	}
	if !membership.HasRole(models.RoleAdmin) {
		return nil, "", notPermittedf("%s may not change members of %s: requires role admin", actor.UserID, project.ID)
	}
	userID = strings.TrimSpace(strings.ToLower(userID))
	if userID == "" {
		return nil, "", validationf("user id is required")
	}
	return project, userID, nil
}

func validateRoles(roles []models.Role) error {
	if len(roles) == 0 {
		return validationf("at least one role is required")
	}
	for _, role := range roles {
		if !models.IsValidRole(role) {
			return validationf("invalid role: %s", role)
		}
	}
	return nil
}
