package server

import (
	"fmt"
	"net/http"

	"tasklane/internal/activity"
	"tasklane/internal/api"
	internalauth "tasklane/internal/auth"
)

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	var req api.ProjectCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	project, err := s.coordinator.CreateProject(r.Context(), actor, req.Name, req.Description)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, project)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	projectID, ok := s.projectIDOrBadRequest(w, r)
	if !ok {
		return
	}
	project, err := s.coordinator.GetProject(r.Context(), actor, projectID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, project)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	projectID, ok := s.projectIDOrBadRequest(w, r)
	if !ok {
		return
	}
	members, err := s.coordinator.ListMembers(r.Context(), actor, projectID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nonNil(members))
}

func (s *Server) handleInviteMember(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	projectID, ok := s.projectIDOrBadRequest(w, r)
	if !ok {
		return
	}
	var req api.MemberInviteRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	userID, err := internalauth.NormalizeUserID(req.UserID)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(err, ErrCodeInvalidID))
		return
	}
	roles, err := normalizeRoles(req.Roles)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	out, err := s.coordinator.InviteMember(r.Context(), actor, projectID, userID, roles)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, membershipResponse(out))
}

func (s *Server) handleUpdateMemberRoles(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	projectID, userID, ok := s.memberPathOrBadRequest(w, r)
	if !ok {
		return
	}
	var req api.MemberRolesRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	roles, err := normalizeRoles(req.Roles)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	out, err := s.coordinator.UpdateMemberRoles(r.Context(), actor, projectID, userID, roles)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, membershipResponse(out))
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	projectID, userID, ok := s.memberPathOrBadRequest(w, r)
	if !ok {
		return
	}
	out, err := s.coordinator.RemoveMember(r.Context(), actor, projectID, userID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, membershipResponse(out))
}

func (s *Server) handleListProjectTasks(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	projectID, ok := s.projectIDOrBadRequest(w, r)
	if !ok {
		return
	}
	tasks, err := s.coordinator.ListProjectTasks(r.Context(), actor, projectID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nonNil(tasks))
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	projectID, ok := s.projectIDOrBadRequest(w, r)
	if !ok {
		return
	}
	var req api.TaskCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	input, err := taskInputFromRequest(req)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	out, err := s.coordinator.CreateTask(r.Context(), actor, projectID, input)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, taskActivityResponse(out))
}

func (s *Server) memberPathOrBadRequest(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	projectID, ok := s.projectIDOrBadRequest(w, r)
	if !ok {
		return "", "", false
	}
	userID, err := internalauth.NormalizeUserID(r.PathValue("user"))
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("invalid user id: %w", err), ErrCodeInvalidID))
		return "", "", false
	}
	return projectID, userID, true
}
