package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace-service/internal/identity"

	"github.com/redis/go-redis/v9"
)

// identityTTL bounds how long a persisted login survives without a
// fresh save. Every successful transition into an authenticated screen
// re-saves the identity, refreshing the window.
const identityTTL = 24 * time.Hour

// RedisStore persists one identity record per browser session under a
// single well-known key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store scoped to one session id.
func NewRedisStore(client *redis.Client, sessionID string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    "identity:" + sessionID,
	}
}

func (r *RedisStore) Load(ctx context.Context) (*identity.Identity, error) {
	val, err := r.client.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return nil, nil // logged out
	}
	if err != nil {
		return nil, fmt.Errorf("session: load failed: %w", err)
	}

	return decodeIdentity(val), nil
}

func (r *RedisStore) Save(ctx context.Context, ident *identity.Identity) error {
	if err := ident.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(ident)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	return r.client.Set(ctx, r.key, data, identityTTL).Err()
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
