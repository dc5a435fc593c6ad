package redisad_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "stayhub/internal/adapters/redis"
	"stayhub/internal/domain"
)

func newStore(t *testing.T) (*redisad.SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return redisad.NewSessionStoreWithClient(client), mr
}

func TestSessions_CreateResolveDelete(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token")
	}

	id, err := store.Resolve(ctx, token)
	if err != nil || id != "user-1" {
		t.Fatalf("resolve: %v %q", err, id)
	}

	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Resolve(ctx, token); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected NO_SESSION after delete, got %v", err)
	}
}

func TestSessions_UnknownToken(t *testing.T) {
	store, _ := newStore(t)
	if _, err := store.Resolve(context.Background(), "nope"); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected NO_SESSION, got %v", err)
	}
}

func TestSessions_Expiry(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", time.Minute)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := store.Resolve(ctx, token); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected NO_SESSION after TTL, got %v", err)
	}
}

func TestSessions_TokensAreUnique(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	a, _ := store.Create(ctx, "user-1", time.Hour)
	b, _ := store.Create(ctx, "user-1", time.Hour)
	if a == b {
		t.Fatalf("tokens must be unique per session")
	}
}
