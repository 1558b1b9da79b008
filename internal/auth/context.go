// AngelaMos | 2026
// context.go

package auth

import "context"

type contextKey string

const userContextKey contextKey = "auth_user"

// ContextWithUser attaches the authenticated user to the request context.
func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// UserFromContext returns the authenticated user, or nil when the request
// carries no valid session.
func UserFromContext(ctx context.Context) *User {
	u, ok := ctx.Value(userContextKey).(*User)
	if !ok {
		return nil
	}
	return u
}
