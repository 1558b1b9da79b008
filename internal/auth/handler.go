// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/courtkings/api/internal/config"
	"github.com/courtkings/api/internal/core"
)

type Handler struct {
	service    *Service
	validate   *validator.Validate
	cookieCfg  config.SessionConfig
	sessionTTL time.Duration
}

func NewHandler(
	service *Service,
	validate *validator.Validate,
	cookieCfg config.SessionConfig,
) *Handler {
	return &Handler{
		service:    service,
		validate:   validate,
		cookieCfg:  cookieCfg,
		sessionTTL: cookieCfg.TTL,
	}
}

// Login authenticates a username/password pair, establishes the server-side
// session and hands back the identity-provider access token. Unknown users
// and wrong passwords share one response shape.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.Unauthorized(w, "Invalid username or password")
			return
		}
		core.ServiceUnavailable(w, err)
		return
	}

	h.setSessionCookie(w, result.SessionID)

	core.OK(w, AuthResponse{
		User:        toUserResponse(result.User),
		AccessToken: result.AccessToken,
		ExpiresAt:   result.ExpiresAt,
	})
}

// Logout clears the session and cookie. It succeeds even when no session
// cookie is present, so repeated logouts are harmless.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionIDFromCookie(r)
	accessToken := bearerToken(r)

	if err := h.service.Logout(r.Context(), sessionID, accessToken); err != nil {
		core.ServiceUnavailable(w, err)
		return
	}

	h.clearSessionCookie(w)

	core.OK(w, map[string]string{"message": "Logged out"})
}

// Me returns the session's user, or a null user when no session exists.
// No identity-provider round trip happens here.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionIDFromCookie(r)

	user, err := h.service.CurrentUser(r.Context(), sessionID)
	if err != nil {
		core.ServiceUnavailable(w, err)
		return
	}

	if user == nil {
		core.OK(w, map[string]any{"user": nil})
		return
	}

	core.OK(w, map[string]any{"user": toUserResponse(user)})
}

// ChangePassword re-verifies the caller's current password before storing
// the new one. The caller is resolved from the session cookie.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionIDFromCookie(r)

	user, err := h.service.CurrentUser(r.Context(), sessionID)
	if err != nil {
		core.ServiceUnavailable(w, err)
		return
	}

	if user == nil {
		core.Unauthorized(w, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err = h.service.ChangeSecret(
		r.Context(),
		user.Username,
		req.CurrentPassword,
		req.NewPassword,
	)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.Unauthorized(w, "Current password is incorrect")
			return
		}
		core.ServiceUnavailable(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "Password updated"})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieCfg.CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieCfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieCfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieCfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) sessionIDFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(h.cookieCfg.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
