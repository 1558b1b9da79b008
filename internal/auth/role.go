// AngelaMos | 2026
// role.go

package auth

import "fmt"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleComando Role = "comando"
	RolePlayer  Role = "player"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleComando, RolePlayer:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Resource string

const (
	ResourcePlayers     Resource = "players"
	ResourceGames       Resource = "games"
	ResourceTournaments Resource = "tournaments"
	ResourceProfile     Resource = "profile"
)

type actionSet map[Action]bool

// permissionMatrix is the single source of truth for write permissions.
// Anything not listed is denied. Route-level gating uses HasRole instead,
// which follows a different relation over the same three roles.
var permissionMatrix = map[Role]map[Resource]actionSet{
	RoleAdmin: {
		ResourcePlayers:     {ActionCreate: true, ActionUpdate: true, ActionDelete: true},
		ResourceGames:       {ActionCreate: true, ActionUpdate: true, ActionDelete: true},
		ResourceTournaments: {ActionCreate: true, ActionUpdate: true, ActionDelete: true},
		ResourceProfile:     {ActionCreate: true, ActionUpdate: true, ActionDelete: true},
	},
	RoleComando: {
		ResourcePlayers:     {ActionCreate: true, ActionUpdate: true},
		ResourceGames:       {ActionCreate: true, ActionUpdate: true},
		ResourceTournaments: {},
		ResourceProfile:     {ActionUpdate: true},
	},
	RolePlayer: {
		ResourcePlayers:     {},
		ResourceGames:       {},
		ResourceTournaments: {},
		ResourceProfile:     {ActionUpdate: true},
	},
}

// HasRole answers route-level minimum-role checks. The player gate is the
// weakest: any authenticated role passes it. This is deliberately NOT the
// same ordering as the permission matrix above.
func HasRole(u *User, required Role) bool {
	if u == nil {
		return false
	}

	switch required {
	case RolePlayer:
		return u.Role == RoleAdmin || u.Role == RoleComando || u.Role == RolePlayer
	case RoleComando:
		return u.Role == RoleAdmin || u.Role == RoleComando
	case RoleAdmin:
		return u.Role == RoleAdmin
	}

	return false
}

func CanPerformAction(u *User, action Action, resource Resource) bool {
	if u == nil {
		return false
	}

	resources, ok := permissionMatrix[u.Role]
	if !ok {
		return false
	}

	actions, ok := resources[resource]
	if !ok {
		return false
	}

	return actions[action]
}

// CanAccessAdmin reports whether the user may use the staff-facing surface.
func CanAccessAdmin(u *User) bool {
	if u == nil {
		return false
	}
	return u.Role == RoleAdmin || u.Role == RoleComando
}

// IsPlayerOnly reports whether the user is restricted to the player pages.
func IsPlayerOnly(u *User) bool {
	if u == nil {
		return false
	}
	return u.Role == RolePlayer
}
