package server

import (
	"fmt"
	"net/http"
	"strings"

	"tasklane/internal/activity"
	"tasklane/internal/api"
	"tasklane/internal/models"
	"tasklane/internal/store"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request, actor activity.Actor) {
	filter := store.NotificationFilter{Limit: s.notificationLimit}

	switch status := models.NotificationStatus(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))); status {
	case "":
	case models.NotificationUnread, models.NotificationRead:
		filter.Status = status
	default:
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("invalid notification status %q", status), ErrCodeInvalidQuery))
		return
	}

	limit, err := queryIntDefault(r, "limit", s.notificationLimit)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}
	if limit > 0 {
		filter.Limit = limit
	}

	notifications, err := s.coordinator.ListNotifications(r.Context(), actor, filter)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.NotificationListResponse{Notifications: nonNil(notifications)})
}
