package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "session:"

// RedisStore keeps sessions in Redis as JSON documents keyed by token.
// Keys expire together with the session.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a RedisStore. An empty prefix defaults to "session:".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Create implements Store.
func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	return r.write(ctx, s)
}

// Get implements Store.
func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := r.client.Get(ctx, r.prefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	if s.IsExpired() {
		return nil, ErrExpired
	}
	if s.Values == nil {
		s.Values = make(map[string]json.RawMessage)
	}
	return &s, nil
}

// Update implements Store.
func (r *RedisStore) Update(ctx context.Context, s *Session) error {
	return r.write(ctx, s)
}

// Delete implements Store.
func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.prefix+token).Err()
}

func (r *RedisStore) write(ctx context.Context, s *Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Join(ErrEncode, err)
	}
	return r.client.Set(ctx, r.prefix+s.Token, data, ttl).Err()
}

var _ Store = (*RedisStore)(nil)
