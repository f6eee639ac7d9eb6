//go:build !integration

package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"razorpay-checkout/internal/domain"
)

// fakeLockClient implements lockClient in memory. TTLs are ignored.
type fakeLockClient struct {
	mu   sync.Mutex
	data map[string]string

	setnxErr error
}

var _ lockClient = (*fakeLockClient)(nil)

func newFakeLockClient() *fakeLockClient {
	return &fakeLockClient{data: map[string]string{}}
}

func (f *fakeLockClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd {
	if f.setnxErr != nil {
		return goredis.NewBoolResult(false, f.setnxErr)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, held := f.data[key]; held {
		return goredis.NewBoolResult(false, nil)
	}
	f.data[key] = value.(string)
	return goredis.NewBoolResult(true, nil)
}

func (f *fakeLockClient) compareAndDel(keys []string, args []interface{}) *goredis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(keys) == 1 && len(args) == 1 && f.data[keys[0]] == fmt.Sprint(args[0]) {
		delete(f.data, keys[0])
		return goredis.NewCmdResult(int64(1), nil)
	}
	return goredis.NewCmdResult(int64(0), nil)
}

func (f *fakeLockClient) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *goredis.Cmd {
	return f.compareAndDel(keys, args)
}

func (f *fakeLockClient) EvalSha(ctx context.Context, sha1 string, keys []string, args ...interface{}) *goredis.Cmd {
	return f.compareAndDel(keys, args)
}

func (f *fakeLockClient) ScriptExists(ctx context.Context, hashes ...string) *goredis.BoolSliceCmd {
	return goredis.NewBoolSliceResult([]bool{true}, nil)
}

func (f *fakeLockClient) ScriptLoad(ctx context.Context, script string) *goredis.StringCmd {
	return goredis.NewStringResult("", nil)
}

func TestRedisLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("should acquire and release a lock", func(t *testing.T) {
		// --- Arrange ---
		cli := newFakeLockClient()
		locker := &RedisLocker{cli: cli}

		// --- Act ---
		token, err := locker.TryLock(ctx, "order_callback:ord-1", time.Second)

		// --- Assert ---
		if err != nil {
			t.Fatalf("TryLock failed: %v", err)
		}
		if token == "" {
			t.Fatal("expected a lock token")
		}
		if err := locker.Unlock(ctx, "order_callback:ord-1", token); err != nil {
			t.Fatalf("Unlock failed: %v", err)
		}
		if _, held := cli.data["order_callback:ord-1"]; held {
			t.Error("expected the lock key to be deleted")
		}
	})

	t.Run("should not release a lock held with another token", func(t *testing.T) {
		// --- Arrange ---
		cli := newFakeLockClient()
		locker := &RedisLocker{cli: cli}
		token, err := locker.TryLock(ctx, "order_callback:ord-1", time.Second)
		if err != nil {
			t.Fatalf("TryLock failed: %v", err)
		}

		// --- Act ---
		_ = locker.Unlock(ctx, "order_callback:ord-1", "stale-token")

		// --- Assert ---
		if got := cli.data["order_callback:ord-1"]; got != token {
			t.Error("a mismatched token must leave the lock in place")
		}
	})

	t.Run("should report ErrOrderLocked while the key is held", func(t *testing.T) {
		// --- Arrange ---
		cli := newFakeLockClient()
		locker := &RedisLocker{cli: cli}
		if _, err := locker.TryLock(ctx, "order_callback:ord-1", time.Second); err != nil {
			t.Fatalf("TryLock failed: %v", err)
		}

		// --- Act ---
		_, err := locker.TryLock(ctx, "order_callback:ord-1", time.Second)

		// --- Assert ---
		if !errors.Is(err, domain.ErrOrderLocked) {
			t.Fatalf("expected ErrOrderLocked, got %v", err)
		}
	})

	t.Run("should surface the backend error instead of ErrOrderLocked", func(t *testing.T) {
		// --- Arrange ---
		cli := newFakeLockClient()
		cli.setnxErr = errors.New("connection refused")
		locker := &RedisLocker{cli: cli}

		// --- Act ---
		_, err := locker.TryLock(ctx, "order_callback:ord-1", time.Second)

		// --- Assert ---
		if err == nil {
			t.Fatal("expected an error, but got nil")
		}
		if errors.Is(err, domain.ErrOrderLocked) {
			t.Fatal("an outage must not masquerade as contention")
		}
		if !errors.Is(err, cli.setnxErr) {
			t.Fatalf("expected the backend error, got %v", err)
		}
	})
}
