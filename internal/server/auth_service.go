package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	internalauth "tasklane/internal/auth"
	"tasklane/internal/config"
	"tasklane/internal/store"
)

var errInvalidCredentials = errors.New("invalid credentials")

// AuthService issues and resolves bearer sessions backed by the store.
type AuthService struct {
	store      store.AuthStore
	sessionTTL time.Duration
}

type authLoginResult struct {
	User      *store.AuthUser
	Token     string
	ExpiresAt time.Time
}

// NewAuthService returns an AuthService. A non-positive ttl uses the default
// session lifetime.
func NewAuthService(authStore store.AuthStore, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = config.DefaultSessionTTL
	}
	return &AuthService{store: authStore, sessionTTL: ttl}
}

// Login verifies credentials and opens a session.
func (a *AuthService) Login(ctx context.Context, userID, password string, now time.Time) (*authLoginResult, error) {
	normalized, err := internalauth.NormalizeUserID(userID)
	if err != nil {
		return nil, badRequest(err)
	}
	if strings.TrimSpace(password) == "" {
		return nil, badRequestCode(fmt.Errorf("password is required"), ErrCodeMissingRequired)
	}

	user, err := a.store.GetUserByID(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Disabled || !internalauth.VerifyPassword(user.PasswordHash, password) {
		return nil, errInvalidCredentials
	}

	token, err := internalauth.GenerateSessionToken()
	if err != nil {
		return nil, err
	}
	expiresAt := now.Add(a.sessionTTL)
	if err := a.store.CreateSession(ctx, user.ID, internalauth.HashSessionToken(token), expiresAt, now); err != nil {
		return nil, err
	}

	return &authLoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a bearer token to its user. It returns nil without
// error when the token is unknown, expired, revoked, or the user is disabled.
func (a *AuthService) Authenticate(ctx context.Context, token string, now time.Time) (*store.AuthUser, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	user, err := a.store.GetUserBySessionTokenHash(ctx, internalauth.HashSessionToken(token), now)
	if err != nil || user == nil {
		return nil, err
	}
	if user.Disabled {
		return nil, nil
	}
	return user, nil
}

// Logout revokes the session behind token.
func (a *AuthService) Logout(ctx context.Context, token string, now time.Time) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return a.store.RevokeSessionByTokenHash(ctx, internalauth.HashSessionToken(token), now)
}
