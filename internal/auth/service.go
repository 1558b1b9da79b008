// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/courtkings/api/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
)

// CredentialStore is the capability interface the service requires from the
// users collection. FindByUsername matches exactly and case-sensitively and
// returns core.ErrNotFound when no record exists. Insert returns the
// store-assigned id and core.ErrDuplicateKey when the store's unique index
// rejects the username.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*Credential, error)
	Insert(ctx context.Context, cred *Credential) (string, error)
	ListAll(ctx context.Context) ([]Credential, error)
	UpdateSecretHash(ctx context.Context, id, secretHash string) error
}

type Service struct {
	creds    CredentialStore
	sessions SessionStore
	issuer   *TokenIssuer
	redis    *redis.Client
}

func NewService(
	creds CredentialStore,
	sessions SessionStore,
	issuer *TokenIssuer,
	redisClient *redis.Client,
) *Service {
	return &Service{
		creds:    creds,
		sessions: sessions,
		issuer:   issuer,
		redis:    redisClient,
	}
}

type LoginResult struct {
	User        *User
	SessionID   string
	AccessToken string
	ExpiresAt   time.Time
}

// Login performs exactly one lookup by exact username. Unknown username and
// secret mismatch produce the same ErrInvalidCredentials; the only state
// change on success is the session write, which overwrites any prior
// session for this browsing context. On any failure no state is touched.
func (s *Service) Login(
	ctx context.Context,
	username, secret string,
) (*LoginResult, error) {
	cred, err := s.creds.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifySecretTimingSafe(secret, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}

	valid, newHash, err := core.VerifySecretTimingSafe(secret, &cred.SecretHash)
	if err != nil {
		return nil, fmt.Errorf("verify secret: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.creds.UpdateSecretHash(ctx, cred.ID, newHash)
	}

	user := &User{
		ID:       cred.ID,
		Username: cred.Username,
		Role:     cred.Role,
	}

	accessToken, expiresAt, err := s.issuer.IssueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	sessionID, err := core.GenerateSessionID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	if err := s.sessions.Write(ctx, sessionID, user); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &LoginResult{
		User:        user,
		SessionID:   sessionID,
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout clears the session unconditionally; clearing a session that does
// not exist is a no-op. Revoking the identity-provider access token is
// best-effort cleanup and never blocks local session removal.
func (s *Service) Logout(ctx context.Context, sessionID, accessToken string) error {
	if accessToken != "" {
		if err := s.revokeAccessToken(ctx, accessToken); err != nil {
			slog.Warn("access token revocation failed", "error", err)
		}
	}

	if sessionID == "" {
		return nil
	}

	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}

// CurrentUser reads the stored session without any network validation.
// Absence (including a malformed stored record) is (nil, nil), not an error.
func (s *Service) CurrentUser(
	ctx context.Context,
	sessionID string,
) (*User, error) {
	if sessionID == "" {
		return nil, nil
	}
	return s.sessions.Read(ctx, sessionID)
}

// CreateUser registers a new credential record. It never creates a session;
// the caller must log in separately. The lookup pre-check and the store's
// unique index both map to ErrUsernameTaken.
func (s *Service) CreateUser(
	ctx context.Context,
	username, secret string,
	role Role,
) error {
	if _, err := ParseRole(string(role)); err != nil {
		return fmt.Errorf("create user: %w: %w", core.ErrInvalidInput, err)
	}

	_, err := s.creds.FindByUsername(ctx, username)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("check username: %w", err)
	}

	secretHash, err := core.HashSecret(secret)
	if err != nil {
		return fmt.Errorf("hash secret: %w", err)
	}

	cred := &Credential{
		Username:   username,
		SecretHash: secretHash,
		Role:       role,
	}

	if _, err := s.creds.Insert(ctx, cred); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert credential: %w", err)
	}

	return nil
}

// ListUsers returns every account without the secret hashes. Used by the
// administrative listing view only.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	creds, err := s.creds.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}

	users := make([]User, 0, len(creds))
	for _, c := range creds {
		users = append(users, User{
			ID:       c.ID,
			Username: c.Username,
			Role:     c.Role,
		})
	}

	return users, nil
}

// ChangeSecret verifies the current secret before storing a new hash.
func (s *Service) ChangeSecret(
	ctx context.Context,
	username, currentSecret, newSecret string,
) error {
	cred, err := s.creds.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("find credential: %w", err)
	}

	valid, _, err := core.VerifySecretWithRehash(currentSecret, cred.SecretHash)
	if err != nil {
		return fmt.Errorf("verify secret: %w", err)
	}

	if !valid {
		return ErrInvalidCredentials
	}

	newHash, err := core.HashSecret(newSecret)
	if err != nil {
		return fmt.Errorf("hash secret: %w", err)
	}

	if err := s.creds.UpdateSecretHash(ctx, cred.ID, newHash); err != nil {
		return fmt.Errorf("update secret: %w", err)
	}

	return nil
}

// VerifyBearer validates an identity-provider access token and rejects
// tokens revoked at logout. The returned user carries the same shape the
// session store holds.
func (s *Service) VerifyBearer(
	ctx context.Context,
	accessToken string,
) (*User, error) {
	claims, err := s.issuer.VerifyAccessToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	revoked, err := s.isAccessTokenBlacklisted(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, core.ErrTokenRevoked
	}

	return &User{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

func (s *Service) revokeAccessToken(ctx context.Context, accessToken string) error {
	claims, err := s.issuer.VerifyAccessToken(ctx, accessToken)
	if err != nil {
		// Expired or garbage tokens need no blacklist entry.
		return nil
	}

	key := "blacklist:" + claims.TokenID
	ttl := time.Until(claims.ExpiresAt)

	if ttl <= 0 {
		return nil
	}

	if err := s.redis.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}

	return nil
}

func (s *Service) isAccessTokenBlacklisted(
	ctx context.Context,
	jti string,
) (bool, error) {
	exists, err := s.redis.Exists(ctx, "blacklist:"+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}

	return exists > 0, nil
}
