package server

import (
	"fmt"
	"net/http"

	"tasklane/internal/activity"
	"tasklane/internal/api"
	"tasklane/internal/models"
	"tasklane/internal/subtasks"
)

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	taskID, ok := s.taskIDOrBadRequest(w, r)
	if !ok {
		return
	}
	task, err := s.coordinator.GetTask(r.Context(), actor, taskID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, task)
}

// handleAdvanceTask moves a task one step along the workflow. The body is
// optional and only carries commit text.
func (s *Server) handleAdvanceTask(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	taskID, ok := s.taskIDOrBadRequest(w, r)
	if !ok {
		return
	}
	var req api.AdvanceRequest
	if r.ContentLength != 0 {
		if !s.decodeJSONReq(w, r, &req) {
			return
		}
	}

	out, err := s.coordinator.ChangeStatus(r.Context(), actor, taskID, req.Commit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, taskActivityResponse(out))
}

func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	taskID, ok := s.taskIDOrBadRequest(w, r)
	if !ok {
		return
	}
	var req api.ProgressRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	if req.PercentDone == nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("percent_done is required"), ErrCodeMissingRequired))
		return
	}
	if !models.IsValidPercentDone(*req.PercentDone) {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("percent_done must be between 0 and 100"), ErrCodeInvalidPercent))
		return
	}

	out, err := s.coordinator.UpdateProgress(r.Context(), actor, taskID, *req.PercentDone)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, taskActivityResponse(out))
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	taskID, ok := s.taskIDOrBadRequest(w, r)
	if !ok {
		return
	}
	entries, err := s.coordinator.ListHistory(r.Context(), actor, taskID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nonNil(entries))
}

func (s *Server) handleListSubtasks(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	taskID, ok := s.taskIDOrBadRequest(w, r)
	if !ok {
		return
	}
	criteria, page, pageSize, err := s.parseSubtaskQuery(r)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	result, err := s.coordinator.ListSubtasks(r.Context(), actor, taskID, criteria, page, pageSize)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.SubtaskListResponse{
		Items:      nonNil(result.Items),
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	})
}

func (s *Server) handleCreateSubtask(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	parentID, ok := s.taskIDOrBadRequest(w, r)
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

	out, err := s.coordinator.CreateSubtask(r.Context(), actor, parentID, input)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, taskActivityResponse(out))
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	taskID, ok := s.taskIDOrBadRequest(w, r)
	if !ok {
		return
	}
	comments, err := s.coordinator.ListComments(r.Context(), actor, taskID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nonNil(comments))
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	taskID, ok := s.taskIDOrBadRequest(w, r)
	if !ok {
		return
	}
	var req api.CommentRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	out, err := s.coordinator.AddComment(r.Context(), actor, taskID, req.Body)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, taskActivityResponse(out))
}

// parseSubtaskQuery reads status, type, priority, and assignee facets plus
// page and page_size. Facets may repeat or be comma separated.
func (s *Server) parseSubtaskQuery(r *http.Request) (subtasks.Criteria, int, int, error) {
	criteria, err := subtasks.ParseCriteria(
		queryList(r, "status"),
		queryList(r, "type"),
		queryList(r, "priority"),
		queryList(r, "assignee"),
	)
	if err != nil {
		return subtasks.Criteria{}, 0, 0, badRequestCode(err, ErrCodeInvalidQuery)
	}
	page, err := queryIntDefault(r, "page", 1)
	if err != nil {
		return subtasks.Criteria{}, 0, 0, err
	}
	pageSize, err := queryIntDefault(r, "page_size", s.subtaskPageSize)
	if err != nil {
		return subtasks.Criteria{}, 0, 0, err
	}
	if pageSize == 0 {
		pageSize = s.subtaskPageSize
	}
	return criteria, page, pageSize, nil
}
