// AngelaMos | 2026
// middleware.go

package guard

import (
	"net/http"

	"github.com/courtkings/api/internal/auth"
	"github.com/courtkings/api/internal/core"
)

// RequireRole refuses requests whose context user does not satisfy the
// role requirement. An absent user maps to 401, an insufficient role to
// 403 carrying the required and actual roles so the client can explain
// the refusal.
func RequireRole(required auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := Decide(auth.UserFromContext(r.Context()), required).
				WithOrigin(r.URL.Path)

			switch decision.State {
			case StateUnauthenticated:
				core.JSONError(w,
					core.UnauthorizedError("Authentication required").
						WithDetails(map[string]any{
							"redirect_to": decision.RedirectTo,
							"from":        decision.From,
						}))
				return
			case StateInsufficientRole:
				core.JSONError(w, core.ForbiddenError("Insufficient role").
					WithDetails(map[string]any{
						"required": decision.Required,
						"actual":   decision.Actual,
					}))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdminAccess admits admin and comando, the two roles allowed into
// the management surface.
func RequireAdminAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := auth.UserFromContext(r.Context())
		if u == nil {
			core.Unauthorized(w, "Authentication required")
			return
		}
		if !auth.CanAccessAdmin(u) {
			core.Forbidden(w, "Insufficient role")
			return
		}
		next.ServeHTTP(w, r)
	})
}
