// AngelaMos | 2026
// handler.go

package guard

import (
	"net/http"

	"github.com/courtkings/api/internal/auth"
	"github.com/courtkings/api/internal/core"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Check evaluates the caller against the role named in the "required" query
// parameter and returns the full decision, including where to send the
// visitor when access is refused. An optional "from" parameter names the
// path the visitor was trying to reach; an unauthenticated decision carries
// it back so login can return them there.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	required, err := auth.ParseRole(r.URL.Query().Get("required"))
	if err != nil {
		core.BadRequest(w, "required must be one of: admin, comando, player")
		return
	}

	decision := Decide(auth.UserFromContext(r.Context()), required).
		WithOrigin(r.URL.Query().Get("from"))

	core.OK(w, decision)
}

// Home returns the landing path for the caller, used for post-login
// redirects and the catch-all route.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	core.OK(w, map[string]string{
		"path": HomePath(auth.UserFromContext(r.Context())),
	})
}
