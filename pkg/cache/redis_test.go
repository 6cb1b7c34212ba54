package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestInitConnectsAndClose(t *testing.T) {
	mr := miniredis.RunT(t)

	if err := Init(Config{Address: mr.Addr()}); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	if !IsInitialized() {
		t.Error("expected IsInitialized after successful Init")
	}
	if Client() == nil {
		t.Fatal("expected non-nil client after Init")
	}
	if err := Ping(context.Background()); err != nil {
		t.Errorf("Ping returned error: %v", err)
	}

	if err := Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if IsInitialized() {
		t.Error("expected client to be reset after Close")
	}
	if err := Close(); err == nil {
		t.Error("expected error closing an uninitialized client")
	}
}

func TestInitRejectsEmptyAddress(t *testing.T) {
	if err := Init(Config{}); err == nil {
		t.Fatal("expected error for empty address")
	}
}

func TestNewConfigFromRedisConfig(t *testing.T) {
	cfg := NewConfigFromRedisConfig(RedisConfig{Host: "localhost", Port: "6379", DB: 2})
	if cfg.Address != "localhost:6379" {
		t.Errorf("expected host:port join, got %q", cfg.Address)
	}
	if cfg.DB != 2 {
		t.Errorf("expected DB 2, got %d", cfg.DB)
	}

	// An explicit Addr wins over Host/Port.
	cfg = NewConfigFromRedisConfig(RedisConfig{Host: "ignored", Port: "0", Addr: "redis:6380"})
	if cfg.Address != "redis:6380" {
		t.Errorf("expected Addr to take precedence, got %q", cfg.Address)
	}
}

func TestInitWithRedisConfig(t *testing.T) {
	mr := miniredis.RunT(t)

	if err := InitWithRedisConfig(RedisConfig{Addr: mr.Addr()}); err != nil {
		t.Fatalf("InitWithRedisConfig returned error: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	if err := Client().Set(context.Background(), "connectivity-check", "1", 0).Err(); err != nil {
		t.Errorf("client write failed: %v", err)
	}
}
