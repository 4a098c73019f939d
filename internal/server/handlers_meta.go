package server

import (
	"net/http"

	"tasklane/internal/api"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			s.writeStoreError(w, r, err)
			return
		}
	}
	s.writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}
