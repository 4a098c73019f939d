package server

import (
	"context"
	"fmt"
	"net/http"

	"tasklane/internal/activity"
	internalauth "tasklane/internal/auth"
	"tasklane/internal/store"
)

type authContextKey struct{}

type authPrincipal struct {
	User  *store.AuthUser
	Token string
}

// actorHandler is a handler that runs on behalf of an authenticated user.
type actorHandler func(w http.ResponseWriter, r *http.Request, actor activity.Actor)

func contextWithAuthPrincipal(ctx context.Context, principal authPrincipal) context.Context {
	return context.WithValue(ctx, authContextKey{}, principal)
}

func authPrincipalFromContext(ctx context.Context) (authPrincipal, bool) {
	if ctx == nil {
		return authPrincipal{}, false
	}
	principal, ok := ctx.Value(authContextKey{}).(authPrincipal)
	return principal, ok
}

// authed resolves the bearer token and hands the acting user to next.
func (s *Server) authed(next actorHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := internalauth.BearerToken(r.Header.Get("Authorization"))
		if !ok {
			s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("missing bearer token")))
			return
		}
		user, err := s.authService.Authenticate(r.Context(), token, s.now().UTC())
		if err != nil {
			s.writeStoreError(w, r, err)
			return
		}
		if user == nil {
			s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("invalid or expired session")))
			return
		}

		ctx := contextWithAuthPrincipal(r.Context(), authPrincipal{User: user, Token: token})
		next(w, r.WithContext(ctx), activity.Actor{UserID: user.ID, DisplayName: user.DisplayName})
	}
}
