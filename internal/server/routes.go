package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health and metrics.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	// Auth.
	mux.HandleFunc("POST /v1/auth/login", s.handleAuthLogin)

	// Projects and membership.
	mux.HandleFunc("POST /v1/projects", s.authed(s.handleCreateProject))
	mux.HandleFunc("GET /v1/projects/{id}", s.authed(s.handleGetProject))
	mux.HandleFunc("GET /v1/projects/{id}/members", s.authed(s.handleListMembers))
	mux.HandleFunc("POST /v1/projects/{id}/members", s.authed(s.handleInviteMember))
	mux.HandleFunc("PATCH /v1/projects/{id}/members/{user}", s.authed(s.handleUpdateMemberRoles))
	mux.HandleFunc("DELETE /v1/projects/{id}/members/{user}", s.authed(s.handleRemoveMember))

	// Project tasks.
	mux.HandleFunc("GET /v1/projects/{id}/tasks", s.authed(s.handleListProjectTasks))
	mux.HandleFunc("POST /v1/projects/{id}/tasks", s.authed(s.handleCreateTask))

	// Single task.
	mux.HandleFunc("GET /v1/tasks/{id}", s.authed(s.handleGetTask))
	mux.HandleFunc("POST /v1/tasks/{id}/advance", s.authed(s.handleAdvanceTask))
	mux.HandleFunc("PUT /v1/tasks/{id}/progress", s.authed(s.handleUpdateProgress))
	mux.HandleFunc("GET /v1/tasks/{id}/history", s.authed(s.handleListHistory))

	// Subtasks.
	mux.HandleFunc("GET /v1/tasks/{id}/subtasks", s.authed(s.handleListSubtasks))
	mux.HandleFunc("POST /v1/tasks/{id}/subtasks", s.authed(s.handleCreateSubtask))

	// Comments.
	mux.HandleFunc("GET /v1/tasks/{id}/comments", s.authed(s.handleListComments))
	mux.HandleFunc("POST /v1/tasks/{id}/comments", s.authed(s.handleAddComment))

	// Notifications.
	mux.HandleFunc("GET /v1/notifications", s.authed(s.handleListNotifications))

	return mux
}
