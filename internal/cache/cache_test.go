package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestMemory_SetGetExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	c := NewMemory(30 * time.Second)
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", []byte("v"))

	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Fatalf("got (%q, %v)", got, ok)
	}

	now = now.Add(31 * time.Second)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)

	c.Set(ctx, "a", []byte("1"))
	c.Set(ctx, "b", []byte("2"))
	c.Delete(ctx, "a", "b", "missing")

	if _, ok := c.Get(ctx, "a"); ok {
		t.Fatalf("a still cached")
	}
	if _, ok := c.Get(ctx, "b"); ok {
		t.Fatalf("b still cached")
	}
}

func TestRedis_RoundTripAndTTL(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)

	client, err := Connect(ctx, RedisConfig{Addr: srv.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewRedis(client, 10*time.Second, "catalog:", log)

	if _, ok := c.Get(ctx, "produtos:list"); ok {
		t.Fatalf("expected miss on empty cache")
	}

	c.Set(ctx, "produtos:list", []byte(`[]`))

	if !srv.Exists("catalog:produtos:list") {
		t.Fatalf("key not written with prefix")
	}

	got, ok := c.Get(ctx, "produtos:list")
	if !ok || string(got) != "[]" {
		t.Fatalf("got (%q, %v)", got, ok)
	}

	srv.FastForward(11 * time.Second)

	if _, ok := c.Get(ctx, "produtos:list"); ok {
		t.Fatalf("expected ttl expiry")
	}

	c.Set(ctx, "a", []byte("1"))
	c.Delete(ctx, "a")
	if _, ok := c.Get(ctx, "a"); ok {
		t.Fatalf("expected delete")
	}
}

func TestRedis_UnreachableReadsAsMiss(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)

	client, err := Connect(ctx, RedisConfig{Addr: srv.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	c := NewRedis(client, time.Minute, "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv.Close()

	c.Set(ctx, "k", []byte("v"))
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("expected miss when redis is down")
	}
}

func TestConnect_FailsFast(t *testing.T) {
	if _, err := Connect(context.Background(), RedisConfig{Addr: "127.0.0.1:1"}); err == nil {
		t.Fatalf("expected ping error")
	}
}
