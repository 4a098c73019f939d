package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"tasklane/internal/auth"
)

// AuthUser is a provisioned user. The id doubles as the login name and is the
// identifier tasks and memberships refer to.
type AuthUser struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	Disabled     bool      `json:"disabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const authUserColumns = "id, display_name, password_hash, disabled, created_at, updated_at"

// CreateUser creates one local user.
func (s *Store) CreateUser(ctx context.Context, id, displayName, passwordHash string, now time.Time) (*AuthUser, error) {
	id, err := auth.NormalizeUserID(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = id
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (`+authUserColumns+`)
		VALUES (?, ?, ?, 0, ?, ?)
	`, id, displayName, passwordHash, formatTime(now), formatTime(now))
	if err != nil {
		return nil, err
	}

	return &AuthUser{
		ID:           id,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}, nil
}

// GetUserByID returns a provisioned user by id, or nil when absent.
func (s *Store) GetUserByID(ctx context.Context, id string) (*AuthUser, error) {
	id, err := auth.NormalizeUserID(id)
	if err != nil {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, "SELECT "+authUserColumns+" FROM users WHERE id = ? LIMIT 1", id)
	return scanAuthUser(row)
}

// ListUsers returns all provisioned users sorted by id.
func (s *Store) ListUsers(ctx context.Context) ([]AuthUser, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+authUserColumns+" FROM users ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]AuthUser, 0)
	for rows.Next() {
		user, err := scanAuthUser(rows)
		if err != nil {
			return nil, err
		}
		if user == nil {
			continue
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// SetUserDisabled updates one user's disabled state. It returns nil when the user does not exist.
func (s *Store) SetUserDisabled(ctx context.Context, id string, disabled bool, now time.Time) (*AuthUser, error) {
	id, err := auth.NormalizeUserID(id)
	if err != nil {
		return nil, err
	}

	disabledInt := 0
	if disabled {
		disabledInt = 1
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET disabled = ?, updated_at = ?
		WHERE id = ?
	`, disabledInt, formatTime(now), id)
	if err != nil {
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}
	return s.GetUserByID(ctx, id)
}

// CreateSession creates a session bound to one user and token hash.
func (s *Store) CreateSession(ctx context.Context, userID, tokenHash string, expiresAt, createdAt time.Time) error {
	userID, err := auth.NormalizeUserID(userID)
	if err != nil {
		return err
	}
	tokenHash = strings.TrimSpace(tokenHash)
	if tokenHash == "" {
		return fmt.Errorf("token hash is required")
	}

	sessionID, err := generateSessionID()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, token_hash, expires_at, revoked_at, created_at)
		VALUES (?, ?, ?, ?, NULL, ?)
	`, sessionID, userID, tokenHash, formatTime(expiresAt), formatTime(createdAt))
	return err
}

// GetUserBySessionTokenHash returns the owning user for an active, non-revoked session token hash.
func (s *Store) GetUserBySessionTokenHash(ctx context.Context, tokenHash string, now time.Time) (*AuthUser, error) {
	tokenHash = strings.TrimSpace(tokenHash)
	if tokenHash == "" {
		return nil, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT u.id, u.display_name, u.password_hash, u.disabled, u.created_at, u.updated_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token_hash = ?
		  AND s.revoked_at IS NULL
		  AND s.expires_at > ?
		  AND u.disabled = 0
		LIMIT 1
	`, tokenHash, formatTime(now))

	return scanAuthUser(row)
}

// RevokeSessionByTokenHash marks one session revoked by token hash.
func (s *Store) RevokeSessionByTokenHash(ctx context.Context, tokenHash string, revokedAt time.Time) error {
	tokenHash = strings.TrimSpace(tokenHash)
	if tokenHash == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET revoked_at = ?
		WHERE token_hash = ?
		  AND revoked_at IS NULL
	`, formatTime(revokedAt), tokenHash)
	return err
}

func scanAuthUser(scanner interface {
	Scan(dest ...any) error
}) (*AuthUser, error) {
	var user AuthUser
	var disabled int
	var createdAt, updatedAt string
	if err := scanner.Scan(&user.ID, &user.DisplayName, &user.PasswordHash, &disabled, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	user.Disabled = disabled != 0
	var err error
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}

func generateSessionID() (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "as-" + hex.EncodeToString(buf), nil
}
