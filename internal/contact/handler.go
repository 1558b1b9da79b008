// AngelaMos | 2026
// handler.go

package contact

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/courtkings/api/internal/core"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service, validate *validator.Validate) *Handler {
	return &Handler{service: service, validate: validate}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(msg); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.Send(r.Context(), &msg); err != nil {
		core.ServiceUnavailable(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "Message sent"})
}
