package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) *goredis.Client {
	t.Helper()

	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })

	return client
}

func TestCache_SetGet(t *testing.T) {
	cache := NewCache(newTestClient(t))
	ctx := context.Background()

	if err := cache.Set(ctx, "txlist:u1:0:2024-03-15:0", []byte(`[]`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := cache.Get(ctx, "txlist:u1:0:2024-03-15:0")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != `[]` {
		t.Fatalf("expected stored value, got %q", got)
	}
}

func TestCache_GetMissingKey(t *testing.T) {
	cache := NewCache(newTestClient(t))

	got, err := cache.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("expected miss to be error-free, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil value on miss, got %q", got)
	}
}

func TestCache_Delete(t *testing.T) {
	cache := NewCache(newTestClient(t))
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := cache.Delete(ctx, "key"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	got, err := cache.Get(ctx, "key")
	if err != nil || got != nil {
		t.Fatalf("expected deleted key to miss, got %q (%v)", got, err)
	}
}

func TestCache_Incr(t *testing.T) {
	cache := NewCache(newTestClient(t))
	ctx := context.Background()

	v1, err := cache.Incr(ctx, "txlist:version:u1")
	if err != nil {
		t.Fatalf("incr failed: %v", err)
	}
	v2, err := cache.Incr(ctx, "txlist:version:u1")
	if err != nil {
		t.Fatalf("incr failed: %v", err)
	}

	if v1 != 1 || v2 != 2 {
		t.Fatalf("expected 1 then 2, got %d then %d", v1, v2)
	}
}
