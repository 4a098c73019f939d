package api

import "tasklane/internal/models"

// ProjectCreateRequest is the payload for POST /v1/projects.
type ProjectCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// MemberInviteRequest is the payload for POST /v1/projects/{id}/members.
type MemberInviteRequest struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
}

// MemberRolesRequest is the payload for PATCH /v1/projects/{id}/members/{user}.
type MemberRolesRequest struct {
	Roles []string `json:"roles"`
}

// MembershipResponse is returned by every membership mutation.
type MembershipResponse struct {
	Membership    models.Membership     `json:"membership"`
	Notifications []models.Notification `json:"notifications"`
	Warnings      []Warning             `json:"warnings"`
}
