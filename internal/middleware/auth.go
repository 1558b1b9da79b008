// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/courtkings/api/internal/auth"
	"github.com/courtkings/api/internal/core"
)

// SessionResolver resolves a session id to its user. Absence is (nil, nil);
// an error means the session store itself failed.
type SessionResolver interface {
	CurrentUser(ctx context.Context, sessionID string) (*auth.User, error)
}

// BearerVerifier validates an identity-provider access token.
type BearerVerifier interface {
	VerifyBearer(ctx context.Context, token string) (*auth.User, error)
}

// SessionLoader reads the session cookie and attaches the user to the
// request context. A missing or stale cookie leaves the request anonymous;
// refusal is the route guard's job, not this middleware's. A failing
// session store is reported, never mistaken for a logged-out visitor.
func SessionLoader(
	resolver SessionResolver,
	cookieName string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := resolver.CurrentUser(r.Context(), cookie.Value)
			if err != nil {
				core.ServiceUnavailable(w, err)
				return
			}

			if user != nil {
				r = r.WithContext(auth.ContextWithUser(r.Context(), user))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BearerFallback authenticates via the Authorization header when the
// session cookie produced no user, so API clients without cookies can
// reach protected routes.
func BearerFallback(verifier BearerVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth.UserFromContext(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			token := ExtractToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := verifier.VerifyBearer(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			next.ServeHTTP(
				w,
				r.WithContext(auth.ContextWithUser(r.Context(), user)),
			)
		})
	}
}

// RequireAuth refuses anonymous requests. Role checks layer on top via the
// guard package.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.UserFromContext(r.Context()) == nil {
			core.JSONError(w, core.UnauthorizedError("authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrTokenRevoked):
		core.JSONError(w, core.TokenRevokedError())
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}
