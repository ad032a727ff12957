package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newMiniRedisStore(t *testing.T, ttl time.Duration, prefix string) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	store := NewRedisStore(client, ttl, prefix)
	t.Cleanup(func() { _ = store.Close() })
	return store, server
}

func TestRedisStoreRoundTripWithTTL(t *testing.T) {
	t.Parallel()

	store, server := newMiniRedisStore(t, time.Hour, "")
	ctx := context.Background()

	if err := store.Save(ctx, " tok-1 ", sampleTranscript()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !server.Exists("chative:conversation:tok-1") {
		t.Fatalf("keys = %v", server.Keys())
	}
	if got := server.TTL("chative:conversation:tok-1"); got != time.Hour {
		t.Fatalf("TTL = %v, want 1h", got)
	}

	got, err := store.Load(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 4 || got[0].Content != "add item 42 to my cart" {
		t.Fatalf("Load() = %+v", got)
	}

	server.FastForward(2 * time.Hour)
	if _, err := store.Load(ctx, "tok-1"); !errors.Is(err, ErrConversationNotFound) {
		t.Fatalf("Load() after ttl error = %v, want ErrConversationNotFound", err)
	}
}

func TestRedisStoreMissingAndInvalidTokens(t *testing.T) {
	t.Parallel()

	store, _ := newMiniRedisStore(t, 0, "shop:")
	ctx := context.Background()

	if _, err := store.Load(ctx, "nope"); !errors.Is(err, ErrConversationNotFound) {
		t.Fatalf("Load() error = %v, want ErrConversationNotFound", err)
	}
	if err := store.Save(ctx, "  ", sampleTranscript()); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Save() error = %v, want ErrInvalidToken", err)
	}
}

func TestRedisStoreKeyPrefix(t *testing.T) {
	t.Parallel()

	store, server := newMiniRedisStore(t, 0, "shop:conv:")
	if err := store.Save(context.Background(), "tok-2", sampleTranscript()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !server.Exists("shop:conv:tok-2") {
		t.Fatalf("keys = %v", server.Keys())
	}
	if got := server.TTL("shop:conv:tok-2"); got != 0 {
		t.Fatalf("TTL = %v, want none", got)
	}
}

func TestNewRedisStoreFromURL(t *testing.T) {
	t.Parallel()

	server := miniredis.RunT(t)
	store, err := NewRedisStoreFromURL(context.Background(), "redis://"+server.Addr()+"/0", time.Minute, "")
	if err != nil {
		t.Fatalf("NewRedisStoreFromURL() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if _, err := NewRedisStoreFromURL(context.Background(), "not-a-url", time.Minute, ""); err == nil {
		t.Fatal("expected error for invalid url")
	}
}
