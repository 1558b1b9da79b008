// AngelaMos | 2026
// handler.go

package player

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
	r.Get("/{id}/stats", h.Stats)
	r.Get("/{id}/games", h.Games)
	r.Get("/{id}/tournaments", h.TournamentHistory)

	return r
}

// ProfileRoutes is the self-service surface, mounted separately from the
// roster so it sits behind plain authentication rather than roster
// permissions.
func (h *Handler) ProfileRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Profile)
	r.Put("/", h.UpdateProfile)

	return r
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.List(r.Context())
	if err != nil {
		core.ServiceUnavailable(w, err)
		return
	}

	core.OK(w, map[string]any{"players": players, "total": len(players)})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, "player")
		return
	}

	core.OK(w, p)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Create(r.Context(), auth.UserFromContext(r.Context()), &req)
	if err != nil {
		h.writeError(w, err, "player")
		return
	}

	core.Created(w, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Update(
		r.Context(),
		auth.UserFromContext(r.Context()),
		chi.URLParam(r, "id"),
		&req,
	)
	if err != nil {
		h.writeError(w, err, "player")
		return
	}

	core.OK(w, p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(
		r.Context(),
		auth.UserFromContext(r.Context()),
		chi.URLParam(r, "id"),
	)
	if err != nil {
		h.writeError(w, err, "player")
		return
	}

	core.NoContent(w)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.ProfileFor(r.Context(), auth.UserFromContext(r.Context()))
	if err != nil {
		h.writeError(w, err, "profile")
		return
	}

	core.OK(w, p)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.UpdateProfile(
		r.Context(),
		auth.UserFromContext(r.Context()),
		&req,
	)
	if err != nil {
		h.writeError(w, err, "profile")
		return
	}

	core.OK(w, p)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.CalculateStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, "player")
		return
	}

	core.OK(w, stats)
}

func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.ListGames(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, "player")
		return
	}

	core.OK(w, map[string]any{"games": games, "total": len(games)})
}

func (h *Handler) TournamentHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.TournamentHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, "player")
		return
	}

	core.OK(w, map[string]any{"tournaments": history, "total": len(history)})
}

func (h *Handler) writeError(w http.ResponseWriter, err error, resource string) {
	switch {
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "Authentication required")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "Insufficient permissions")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resource)
	default:
		core.ServiceUnavailable(w, err)
	}
}
