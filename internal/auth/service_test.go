// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtkings/api/internal/config"
	"github.com/courtkings/api/internal/core"
)

type fakeCredStore struct {
	byUsername map[string]*Credential
	nextID     int
}

func newFakeCredStore() *fakeCredStore {
	return &fakeCredStore{byUsername: make(map[string]*Credential), nextID: 1}
}

func (f *fakeCredStore) FindByUsername(
	_ context.Context,
	username string,
) (*Credential, error) {
	cred, ok := f.byUsername[username]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *cred
	return &copied, nil
}

func (f *fakeCredStore) Insert(
	_ context.Context,
	cred *Credential,
) (string, error) {
	if _, ok := f.byUsername[cred.Username]; ok {
		return "", core.ErrDuplicateKey
	}

	stored := *cred
	stored.ID = "cred-" + cred.Username
	f.byUsername[cred.Username] = &stored
	f.nextID++

	return stored.ID, nil
}

func (f *fakeCredStore) ListAll(_ context.Context) ([]Credential, error) {
	creds := make([]Credential, 0, len(f.byUsername))
	for _, c := range f.byUsername {
		creds = append(creds, *c)
	}
	return creds, nil
}

func (f *fakeCredStore) UpdateSecretHash(
	_ context.Context,
	id, secretHash string,
) error {
	for _, c := range f.byUsername {
		if c.ID == id {
			c.SecretHash = secretHash
			return nil
		}
	}
	return core.ErrNotFound
}

type fakeSessionStore struct {
	sessions map[string]*User
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*User)}
}

func (f *fakeSessionStore) Read(
	_ context.Context,
	sessionID string,
) (*User, error) {
	u, ok := f.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeSessionStore) Write(
	_ context.Context,
	sessionID string,
	u *User,
) error {
	copied := *u
	f.sessions[sessionID] = &copied
	return nil
}

func (f *fakeSessionStore) Clear(_ context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

func newTestIssuer(t *testing.T) *TokenIssuer {
	t.Helper()

	dir := t.TempDir()
	privPath := filepath.Join(dir, "ec_private.pem")
	pubPath := filepath.Join(dir, "ec_public.pem")

	require.NoError(t, GenerateKeyPair(privPath, pubPath))

	issuer, err := NewTokenIssuer(config.JWTConfig{
		PrivateKeyPath:    privPath,
		PublicKeyPath:     pubPath,
		AccessTokenExpire: 15 * time.Minute,
		Issuer:            "courtkings-test",
		Audience:          "courtkings",
	})
	require.NoError(t, err)

	return issuer
}

func newTestService(t *testing.T) (*Service, *fakeCredStore, *fakeSessionStore) {
	t.Helper()

	creds := newFakeCredStore()
	sessions := newFakeSessionStore()
	svc := NewService(creds, sessions, newTestIssuer(t), nil)

	return svc, creds, sessions
}

func seedUser(
	t *testing.T,
	creds *fakeCredStore,
	username, password string,
	role Role,
) {
	t.Helper()

	hash, err := core.HashSecret(password)
	require.NoError(t, err)

	_, err = creds.Insert(context.Background(), &Credential{
		Username:   username,
		SecretHash: hash,
		Role:       role,
	})
	require.NoError(t, err)
}

func TestLoginSuccess(t *testing.T) {
	svc, creds, sessions := newTestService(t)
	seedUser(t, creds, "coach", "hunter2hunter2", RoleComando)

	result, err := svc.Login(context.Background(), "coach", "hunter2hunter2")
	require.NoError(t, err)

	assert.Equal(t, "coach", result.User.Username)
	assert.Equal(t, RoleComando, result.User.Role)
	assert.NotEmpty(t, result.SessionID)
	assert.NotEmpty(t, result.AccessToken)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	stored, err := sessions.Read(context.Background(), result.SessionID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, result.User.ID, stored.ID)
	assert.Equal(t, RoleComando, stored.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, creds, sessions := newTestService(t)
	seedUser(t, creds, "coach", "hunter2hunter2", RoleComando)

	_, unknownErr := svc.Login(context.Background(), "nobody", "whatever")
	_, wrongPassErr := svc.Login(context.Background(), "coach", "wrong-password")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())

	// Failed logins leave no session behind.
	assert.Empty(t, sessions.sessions)
}

func TestLoginExactUsernameMatch(t *testing.T) {
	svc, creds, _ := newTestService(t)
	seedUser(t, creds, "coach", "hunter2hunter2", RoleComando)

	_, err := svc.Login(context.Background(), "Coach", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginThenCurrentUserRoundTrip(t *testing.T) {
	svc, creds, _ := newTestService(t)
	seedUser(t, creds, "baller", "dunk-on-em-22", RolePlayer)

	result, err := svc.Login(context.Background(), "baller", "dunk-on-em-22")
	require.NoError(t, err)

	u, err := svc.CurrentUser(context.Background(), result.SessionID)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, result.User.ID, u.ID)
	assert.Equal(t, "baller", u.Username)
	assert.Equal(t, RolePlayer, u.Role)
}

func TestCurrentUserAbsent(t *testing.T) {
	svc, _, _ := newTestService(t)

	u, err := svc.CurrentUser(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = svc.CurrentUser(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, creds, _ := newTestService(t)
	seedUser(t, creds, "coach", "hunter2hunter2", RoleComando)

	result, err := svc.Login(context.Background(), "coach", "hunter2hunter2")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), result.SessionID, ""))

	u, err := svc.CurrentUser(context.Background(), result.SessionID)
	require.NoError(t, err)
	assert.Nil(t, u)

	// Logging out again, or with no session at all, still succeeds.
	require.NoError(t, svc.Logout(context.Background(), result.SessionID, ""))
	require.NoError(t, svc.Logout(context.Background(), "", ""))
}

func TestCreateUser(t *testing.T) {
	svc, _, sessions := newTestService(t)

	err := svc.CreateUser(
		context.Background(), "newplayer", "first-bucket-1", RolePlayer,
	)
	require.NoError(t, err)

	// Registration never establishes a session.
	assert.Empty(t, sessions.sessions)

	result, err := svc.Login(context.Background(), "newplayer", "first-bucket-1")
	require.NoError(t, err)
	assert.Equal(t, RolePlayer, result.User.Role)
}

func TestCreateUserDuplicateLeavesOriginalIntact(t *testing.T) {
	svc, creds, _ := newTestService(t)
	seedUser(t, creds, "coach", "hunter2hunter2", RoleComando)

	err := svc.CreateUser(
		context.Background(), "coach", "different-pass", RoleAdmin,
	)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// The original credential still works and kept its role.
	result, err := svc.Login(context.Background(), "coach", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, RoleComando, result.User.Role)

	// The refused password never became valid.
	_, err = svc.Login(context.Background(), "coach", "different-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.CreateUser(
		context.Background(), "intruder", "whatever-pass", Role("superuser"),
	)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestChangeSecret(t *testing.T) {
	svc, creds, _ := newTestService(t)
	seedUser(t, creds, "baller", "old-password-1", RolePlayer)

	err := svc.ChangeSecret(
		context.Background(), "baller", "wrong-old", "new-password-1",
	)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangeSecret(
		context.Background(), "baller", "old-password-1", "new-password-1",
	)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "baller", "old-password-1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "baller", "new-password-1")
	require.NoError(t, err)
}

func TestListUsersOmitsSecrets(t *testing.T) {
	svc, creds, _ := newTestService(t)
	seedUser(t, creds, "coach", "hunter2hunter2", RoleComando)
	seedUser(t, creds, "boss", "office-keys-99", RoleAdmin)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	names := map[string]Role{}
	for _, u := range users {
		names[u.Username] = u.Role
		assert.NotEmpty(t, u.ID)
	}
	assert.Equal(t, RoleComando, names["coach"])
	assert.Equal(t, RoleAdmin, names["boss"])
}
