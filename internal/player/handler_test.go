// AngelaMos | 2026
// handler_test.go

package player

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtkings/api/internal/auth"
)

func newProfileServer(store *fakeStore) http.Handler {
	h := NewHandler(newTestService(store, nil), validator.New())
	return h.ProfileRoutes()
}

func profileRequest(
	method, body string,
	u *auth.User,
) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/", nil)
	} else {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
	}
	if u != nil {
		req = req.WithContext(auth.ContextWithUser(req.Context(), u))
	}
	return req
}

func TestProfileHandlerReturnsLinkedRecord(t *testing.T) {
	store := newFakeStore()
	seedPlayer(t, store, "Marcus")

	rec := httptest.NewRecorder()
	newProfileServer(store).ServeHTTP(rec, profileRequest(
		http.MethodGet, "",
		&auth.User{ID: "u1", Username: "marcus", Role: auth.RolePlayer},
	))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Marcus", body.Data.Name)
}

func TestProfileHandlerWithoutRosterRecord(t *testing.T) {
	rec := httptest.NewRecorder()
	newProfileServer(newFakeStore()).ServeHTTP(rec, profileRequest(
		http.MethodGet, "",
		&auth.User{ID: "u1", Username: "ghost", Role: auth.RolePlayer},
	))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileHandlerUpdate(t *testing.T) {
	store := newFakeStore()
	seedPlayer(t, store, "Marcus")

	rec := httptest.NewRecorder()
	newProfileServer(store).ServeHTTP(rec, profileRequest(
		http.MethodPut,
		`{"phone":"555-0199","height":"6'4\""}`,
		&auth.User{ID: "u1", Username: "marcus", Role: auth.RolePlayer},
	))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Phone  string `json:"phone"`
			Height string `json:"height"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "555-0199", body.Data.Phone)
	assert.Equal(t, "6'4\"", body.Data.Height)
}

func TestProfileHandlerUpdateValidation(t *testing.T) {
	store := newFakeStore()
	seedPlayer(t, store, "Marcus")

	rec := httptest.NewRecorder()
	newProfileServer(store).ServeHTTP(rec, profileRequest(
		http.MethodPut,
		`{"email":"not-an-email"}`,
		&auth.User{ID: "u1", Username: "marcus", Role: auth.RolePlayer},
	))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
