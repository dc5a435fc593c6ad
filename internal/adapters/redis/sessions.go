package redisad

import (
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	"stayhub/internal/domain"
)

// SessionStore keeps opaque bearer tokens in Redis with a TTL. Tokens are
// 32 random bytes, hex encoded; the value is the user id.
type SessionStore struct{ c *redis.Client }

func NewSessionStore(addr, pass string, db int) *SessionStore {
	return &SessionStore{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func NewSessionStoreWithClient(c *redis.Client) *SessionStore { return &SessionStore{c: c} }

func sessionKey(token string) string { return "session:" + token }

func (s *SessionStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	var b [32]byte
	if _, err := crand.Read(b[:]); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b[:])
	if err := s.c.Set(ctx, sessionKey(token), userID, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *SessionStore) Resolve(ctx context.Context, token string) (string, error) {
	v, err := s.c.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return "", domain.ErrNoSession
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	err := s.c.Del(ctx, sessionKey(token)).Err()
	if err == redis.Nil {
		return nil
	}
	return err
}
