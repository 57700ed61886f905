package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/messkit/meal-access-service/internal/domain"
)

// TokenStore holds outstanding QR tokens keyed by opaque payload. Tokens
// are single-use: Delete is called exactly once on the success path of a
// redemption, and deleting an absent token is a no-op.
type TokenStore interface {
	Save(ctx context.Context, token *domain.Token) error
	// Lookup returns the token for a payload, or ErrTokenNotFound.
	Lookup(ctx context.Context, payload string) (*domain.Token, error)
	Delete(ctx context.Context, payload string) error
}

type redisTokenStore struct {
	client    *redis.Client
	retention time.Duration
}

// NewTokenStore returns a Redis-backed store. The retention duration bounds
// how long a record outlives its own expiresAt: the core never sweeps
// expired tokens, so the Redis TTL is the external cleanup, and the extra
// retention keeps a freshly expired token visible long enough to produce
// the distinct "Token Expired" denial instead of "Invalid Token".
func NewTokenStore(client *redis.Client, retention time.Duration) TokenStore {
	return &redisTokenStore{client: client, retention: retention}
}

func tokenKey(payload string) string {
	return "qr:" + payload
}

func (s *redisTokenStore) Save(ctx context.Context, token *domain.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, tokenKey(token.Payload), data, s.retention).Err()
}

func (s *redisTokenStore) Lookup(ctx context.Context, payload string) (*domain.Token, error) {
	data, err := s.client.Get(ctx, tokenKey(payload)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	var token domain.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (s *redisTokenStore) Delete(ctx context.Context, payload string) error {
	return s.client.Del(ctx, tokenKey(payload)).Err()
}
