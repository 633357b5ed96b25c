package cache

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
)

func stubSeams(t *testing.T) *string {
	t.Helper()
	origNewClient := newRedisClient
	origPing := pingRedis
	t.Cleanup(func() {
		newRedisClient = origNewClient
		pingRedis = origPing
	})

	captured := new(string)
	newRedisClient = func(opts *redis.Options) *redis.Client {
		*captured = opts.Addr
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return nil
	}
	return captured
}

func TestInitRedisWithPlainAddr(t *testing.T) {
	captured := stubSeams(t)

	client, err := InitRedis(context.Background(), "redis:9999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected a client")
	}
	if *captured != "redis:9999" {
		t.Fatalf("expected custom addr, got %s", *captured)
	}
}

func TestInitRedisWithURL(t *testing.T) {
	captured := stubSeams(t)

	client, err := InitRedis(context.Background(), "redis://localhost:6380/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected a client")
	}
	if *captured != "localhost:6380" {
		t.Fatalf("expected parsed addr, got %s", *captured)
	}
}

func TestInitRedisEmptyAddr(t *testing.T) {
	client, err := InitRedis(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client != nil {
		t.Fatal("expected nil client when no address is configured")
	}
}

func TestInitRedisBadURL(t *testing.T) {
	if _, err := InitRedis(context.Background(), "redis://[bad"); err == nil {
		t.Fatal("expected parse error")
	}
}
