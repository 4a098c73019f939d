package api

import "tasklane/internal/models"

// ErrorResponse is a generic JSON error wrapper.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// Warning reports one secondary step that failed after the primary write
// succeeded.
type Warning struct {
	Step  string `json:"step"`
	Error string `json:"error"`
}

// HealthResponse is the response from GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// AuthLoginRequest is the payload for POST /v1/auth/login.
type AuthLoginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// AuthLoginResponse carries a new session token.
type AuthLoginResponse struct {
	Token       string `json:"token"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	ExpiresAt   string `json:"expires_at"`
}

// NotificationListResponse wraps the caller's notifications.
type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
}
