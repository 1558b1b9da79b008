// AngelaMos | 2026
// session.go

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore holds at most one serialized User per browsing context.
// Read returns (nil, nil) when nothing is stored; a record that cannot be
// deserialized is treated the same way, never as a hard failure.
type SessionStore interface {
	Read(ctx context.Context, sessionID string) (*User, error)
	Write(ctx context.Context, sessionID string, u *User) error
	Clear(ctx context.Context, sessionID string) error
}

const sessionKeyPrefix = "session:"

type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(
	client *redis.Client,
	ttl time.Duration,
) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Read(
	ctx context.Context,
	sessionID string,
) (*User, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		// A corrupt record reads as "no session". Drop it so the next
		// read does not hit the same garbage.
		slog.Debug("discarding malformed session record", "error", err)
		//nolint:errcheck // best-effort cleanup
		_ = s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
		return nil, nil
	}

	if _, err := ParseRole(string(u.Role)); err != nil {
		slog.Debug("discarding session with unknown role", "role", u.Role)
		//nolint:errcheck // best-effort cleanup
		_ = s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
		return nil, nil
	}

	return &u, nil
}

func (s *RedisSessionStore) Write(
	ctx context.Context,
	sessionID string,
	u *User,
) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("serialize session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	return nil
}

func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

var _ SessionStore = (*RedisSessionStore)(nil)
