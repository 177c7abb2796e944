package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func TestSessionStore_Resolve(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	defer client.Close()

	s.Set("session:tok-1", "user-1")

	store := NewSessionStore(client)

	userID, err := store.Resolve(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("expected user-1, got %q", userID)
	}
}

func TestSessionStore_UnknownTokenIsAnonymous(t *testing.T) {
	store := NewSessionStore(newTestClient(t))

	userID, err := store.Resolve(context.Background(), "never-issued")
	if err != nil {
		t.Fatalf("expected unknown token to be error-free, got %v", err)
	}
	if userID != "" {
		t.Fatalf("expected empty user ID, got %q", userID)
	}
}

func TestSessionStore_EmptyTokenSkipsLookup(t *testing.T) {
	store := NewSessionStore(newTestClient(t))

	userID, err := store.Resolve(context.Background(), "")
	if err != nil || userID != "" {
		t.Fatalf("expected empty token to resolve to anonymous, got %q (%v)", userID, err)
	}
}

func TestIdempotencyStore_ReplayReturnsStoredResponse(t *testing.T) {
	store := NewIdempotencyStore(newTestClient(t))
	ctx := context.Background()

	exists, _, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("first check failed: %v", err)
	}
	if exists {
		t.Fatal("expected first check to claim the key")
	}

	if err := store.Update(ctx, "key-1", []byte(`{"id":"tx-1"}`), time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	exists, cached, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("second check failed: %v", err)
	}
	if !exists {
		t.Fatal("expected replay to find the key")
	}
	if string(cached) != `{"id":"tx-1"}` {
		t.Fatalf("expected stored response, got %q", cached)
	}
}
