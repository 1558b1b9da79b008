// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/courtkings/api/internal/auth"
	"github.com/courtkings/api/internal/core"
)

// Handler is the administrative account surface. Routes mounting it must
// already be gated to admins; it never exposes secret hashes.
type Handler struct {
	service  *auth.Service
	validate *validator.Validate
}

func NewHandler(service *auth.Service, validate *validator.Validate) *Handler {
	return &Handler{service: service, validate: validate}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		core.ServiceUnavailable(w, err)
		return
	}

	core.OK(w, map[string]any{"users": users, "total": len(users)})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req auth.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.CreateUser(
		r.Context(),
		req.Username,
		req.Password,
		auth.Role(req.Role),
	)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			core.JSONError(w, core.DuplicateError("username"))
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "role must be one of: admin, comando, player")
			return
		}
		core.ServiceUnavailable(w, err)
		return
	}

	core.Created(w, map[string]string{
		"username": req.Username,
		"role":     req.Role,
	})
}
