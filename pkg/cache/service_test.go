package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestService(t *testing.T) (Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewService(client), mr
}

func TestSetAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	type payload struct {
		Name  string  `json:"name"`
		Total float64 `json:"total"`
	}

	if err := svc.Set(ctx, "test:key", payload{Name: "gilbert", Total: 1200.5}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got payload
	if err := svc.Get(ctx, "test:key", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "gilbert" || got.Total != 1200.5 {
		t.Errorf("Get = %+v, want {gilbert 1200.5}", got)
	}
}

func TestGetMissReturnsErrCacheMiss(t *testing.T) {
	svc, _ := newTestService(t)

	var dest string
	err := svc.Get(context.Background(), "missing:key", &dest)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get on missing key = %v, want ErrCacheMiss", err)
	}
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Set(ctx, "test:gone", "value", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := svc.Delete(ctx, "test:gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if svc.Exists(ctx, "test:gone") {
		t.Error("key should not exist after Delete")
	}
}

func TestDeletePattern(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	keys := []string{"analytics:period:a", "analytics:period:b", "locations:list"}
	for _, key := range keys {
		if err := svc.Set(ctx, key, "v", time.Minute); err != nil {
			t.Fatalf("Set %s: %v", key, err)
		}
	}

	if err := svc.DeletePattern(ctx, "analytics:*"); err != nil {
		t.Fatalf("DeletePattern: %v", err)
	}

	if svc.Exists(ctx, "analytics:period:a") || svc.Exists(ctx, "analytics:period:b") {
		t.Error("analytics keys should be gone")
	}
	if !svc.Exists(ctx, "locations:list") {
		t.Error("unrelated key should survive pattern delete")
	}
}

func TestTTLExpiry(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	if err := svc.Set(ctx, "test:ttl", "v", 10*time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}

	mr.FastForward(11 * time.Second)

	var dest string
	if err := svc.Get(ctx, "test:ttl", &dest); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after TTL = %v, want ErrCacheMiss", err)
	}
}

func TestGetOrSetFetchesOnMiss(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	calls := 0
	fetcher := func() (interface{}, error) {
		calls++
		return map[string]int{"leads": 40}, nil
	}

	var dest map[string]int
	if err := svc.GetOrSet(ctx, "test:aside", time.Minute, fetcher, &dest); err != nil {
		t.Fatalf("GetOrSet: %v", err)
	}
	if calls != 1 {
		t.Errorf("fetcher called %d times, want 1", calls)
	}
	if dest["leads"] != 40 {
		t.Errorf("dest = %v, want leads 40", dest)
	}
}
