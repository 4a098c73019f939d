package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"tasklane/internal/api"
)

func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	var req api.AuthLoginRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	now := s.now().UTC()
	limiterKey := loginAttemptKey(req.UserID, r)
	if !s.loginLimiter.Allow(limiterKey, now) {
		s.writeErrorReq(w, r, http.StatusTooManyRequests, makeAPIError(
			http.StatusTooManyRequests,
			"resource_exhausted",
			ErrCodeResourceExhausted,
			fmt.Errorf("too many login attempts; retry later"),
		))
		return
	}

	result, err := s.authService.Login(r.Context(), req.UserID, req.Password, now)
	if err != nil {
		var apiErr apiError
		switch {
		case errors.Is(err, errInvalidCredentials):
			s.loginLimiter.Fail(limiterKey, now)
			s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(err))
		case errors.As(err, &apiErr):
			s.writeErrorReq(w, r, apiErr.status, apiErr)
		default:
			s.writeStoreError(w, r, err)
		}
		return
	}
	s.loginLimiter.Succeed(limiterKey)

	s.writeJSON(w, http.StatusOK, api.AuthLoginResponse{
		Token:       result.Token,
		UserID:      result.User.ID,
		DisplayName: result.User.DisplayName,
		ExpiresAt:   result.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func loginAttemptKey(userID string, r *http.Request) string {
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		host = h
	}
	return host + "|" + strings.ToLower(strings.TrimSpace(userID))
}
