// Package formtoken issues one-shot tokens that guard form submissions
// against double posting.
package formtoken

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace = "poflow"
	keyPrefix    = "form_token"

	DefaultTTL = 2 * time.Hour
)

var (
	ErrTokenConsumed = errors.New("form already submitted")
	ErrTokenMissing  = errors.New("form token required")
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	SetNX(context.Context, string, any, time.Duration) *redis.BoolCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Store keeps issued tokens in Redis until they are consumed or expire.
type Store struct {
	client cmdable
	raw    *redis.Client
	ttl    time.Duration
}

// New connects to the Redis instance at url and verifies it responds.
func New(ctx context.Context, url string, ttl time.Duration) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	s := newStore(raw, ttl)
	s.raw = raw

	return s, nil
}

func (s *Store) Close() error {
	if s.raw == nil {
		return nil
	}

	return s.raw.Close()
}

func newStore(client cmdable, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Store{client: client, ttl: ttl}
}

// Key namespaces a token for storage.
func Key(scope, token string) string {
	parts := []string{keyNamespace, keyPrefix}

	if scope = strings.TrimSpace(scope); scope != "" {
		parts = append(parts, scope)
	}

	return strings.Join(append(parts, token), ":")
}

// Issue returns a fresh token for scope, e.g. "po:create" or "po:<id>".
func (s *Store) Issue(ctx context.Context, scope string) (string, error) {
	token := uuid.NewString()

	ok, err := s.client.SetNX(ctx, Key(scope, token), time.Now().UTC().Format(time.RFC3339), s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("issuing form token: %w", err)
	}

	if !ok {
		return "", fmt.Errorf("issuing form token: %s already exists", token)
	}

	return token, nil
}

// Consume spends token. Only the first call for a given token succeeds.
func (s *Store) Consume(ctx context.Context, scope, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrTokenMissing
	}

	n, err := s.client.Del(ctx, Key(scope, token)).Result()
	if err != nil {
		return fmt.Errorf("consuming form token: %w", err)
	}

	if n == 0 {
		return ErrTokenConsumed
	}

	return nil
}
