// AngelaMos | 2026
// handler.go

package game

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/courtkings/api/internal/auth"
	"github.com/courtkings/api/internal/core"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service, validate *validator.Validate) *Handler {
	return &Handler{service: service, validate: validate}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// List supports ?status= and ?tournament_id= filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := Status(r.URL.Query().Get("status"))
	switch status {
	case "", StatusScheduled, StatusLive, StatusCompleted, StatusCancelled:
	default:
		core.BadRequest(w,
			"status must be one of: scheduled, live, completed, cancelled")
		return
	}

	games, err := h.service.List(
		r.Context(),
		status,
		r.URL.Query().Get("tournament_id"),
	)
	if err != nil {
		core.ServiceUnavailable(w, err)
		return
	}

	core.OK(w, map[string]any{"games": games, "total": len(games)})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, g)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	g, err := h.service.Create(r.Context(), auth.UserFromContext(r.Context()), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, g)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	g, err := h.service.Update(
		r.Context(),
		auth.UserFromContext(r.Context()),
		chi.URLParam(r, "id"),
		&req,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, g)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(
		r.Context(),
		auth.UserFromContext(r.Context()),
		chi.URLParam(r, "id"),
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "Insufficient permissions")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "game")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.ServiceUnavailable(w, err)
	}
}
