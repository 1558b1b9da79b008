// AngelaMos | 2026
// guard.go

package guard

import (
	"github.com/courtkings/api/internal/auth"
)

// State is the outcome of evaluating a protected route for a visitor.
type State string

const (
	// StateUnauthenticated means no session exists; the visitor belongs on
	// the login page, with the attempted location preserved for return.
	StateUnauthenticated State = "unauthenticated"

	// StateInsufficientRole means a session exists but its role does not
	// satisfy the route's requirement. Never redirected to login.
	StateInsufficientRole State = "insufficient_role"

	// StateAuthorized means the visitor may proceed.
	StateAuthorized State = "authorized"
)

// Paths the guard redirects to. These mirror the client route table.
const (
	LoginPath           = "/login"
	LandingPath         = "/"
	DashboardPath       = "/dashboard"
	PlayerDashboardPath = "/player-dashboard"
)

type Decision struct {
	State      State     `json:"state"`
	RedirectTo string    `json:"redirect_to,omitempty"`
	From       string    `json:"from,omitempty"`
	Required   auth.Role `json:"required,omitempty"`
	Actual     auth.Role `json:"actual,omitempty"`
}

// WithOrigin records the path the visitor was trying to reach so login can
// send them back. Only an unauthenticated decision carries it; a refused
// role never bounces through login.
func (d Decision) WithOrigin(path string) Decision {
	if d.State == StateUnauthenticated && path != "" {
		d.From = path
	}
	return d
}

// Decide classifies a visitor against a route's role requirement. The three
// outcomes are mutually exclusive: absence of a session always wins over
// role comparison, and an authenticated visitor with the wrong role is
// refused in place rather than bounced to login.
func Decide(u *auth.User, required auth.Role) Decision {
	if u == nil {
		return Decision{
			State:      StateUnauthenticated,
			RedirectTo: LoginPath,
			Required:   required,
		}
	}

	if !auth.HasRole(u, required) {
		return Decision{
			State:    StateInsufficientRole,
			Required: required,
			Actual:   u.Role,
		}
	}

	return Decision{State: StateAuthorized, Actual: u.Role}
}

// HomePath picks the post-login landing spot for a user. Players get their
// own dashboard; admin and comando share the management dashboard.
// Anonymous visitors go to the public landing page.
func HomePath(u *auth.User) string {
	if u == nil {
		return LandingPath
	}
	if auth.IsPlayerOnly(u) {
		return PlayerDashboardPath
	}
	return DashboardPath
}
