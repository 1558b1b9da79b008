// AngelaMos | 2026
// entity.go

package auth

// User is the session-facing identity. It never carries the secret hash.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Credential is the server-side record backing a User. It exists only in the
// credential store and must never cross into a response or into the session.
type Credential struct {
	ID         string
	Username   string
	SecretHash string
	Role       Role
}
