package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/zebrands/catalog-api/internal/core/domain"
)

// TokenStore keeps one opaque token per user. Tokens do not expire; they
// live until the owning user is deleted.
//
// Key format:
//
//	token:<key>        -> user id
//	user:<id>:token    -> key
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Issue returns the user's existing token, or mints one.
func (s *TokenStore) Issue(ctx context.Context, u *domain.User) (string, error) {
	existing, err := s.client.Get(ctx, userKey(u.ID)).Result()
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, redis.Nil):
		return "", fmt.Errorf("lookup token: %w", err)
	}

	key, err := newKey()
	if err != nil {
		return "", err
	}
	// SetNX on the user key keeps concurrent logins on a single token.
	ok, err := s.client.SetNX(ctx, userKey(u.ID), key, 0).Result()
	if err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	if !ok {
		return s.client.Get(ctx, userKey(u.ID)).Result()
	}
	if err := s.client.Set(ctx, tokenKey(key), u.ID, 0).Err(); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return key, nil
}

func (s *TokenStore) Resolve(ctx context.Context, token string) (int64, error) {
	raw, err := s.client.Get(ctx, tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrInvalidToken
	}
	if err != nil {
		return 0, fmt.Errorf("resolve token: %w", err)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidToken
	}
	return id, nil
}

// Revoke deletes the user's token. Revoking a user without a token is a
// no-op.
func (s *TokenStore) Revoke(ctx context.Context, userID int64) error {
	key, err := s.client.GetDel(ctx, userKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return s.client.Del(ctx, tokenKey(key)).Err()
}

func newKey() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func tokenKey(key string) string { return "token:" + key }

func userKey(id int64) string { return fmt.Sprintf("user:%d:token", id) }
