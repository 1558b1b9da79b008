// AngelaMos | 2026
// handler.go

package tournament

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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.service.List(r.Context())
	if err != nil {
		core.ServiceUnavailable(w, err)
		return
	}

	core.OK(w, map[string]any{
		"tournaments": tournaments,
		"total":       len(tournaments),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, t)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	t, err := h.service.Create(r.Context(), auth.UserFromContext(r.Context()), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, t)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	t, err := h.service.Update(
		r.Context(),
		auth.UserFromContext(r.Context()),
		chi.URLParam(r, "id"),
		&req,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, t)
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
		core.NotFound(w, "tournament")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.ServiceUnavailable(w, err)
	}
}
