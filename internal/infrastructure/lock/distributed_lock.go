package lock

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// ============================================================================
// Distributed lock
// ============================================================================
//
// The bill serial counter is a single shared number. If two bill
// generations interleave, both read last_bill_serial = N and both try to
// issue N+1 - a duplicate serial on printed bills. The lock makes the
// sequencer a single writer; the optimistic compare-and-set on the counter
// is the second line of defence if a lock ever expires mid-operation.
//
// Acquire: SET key value NX EX timeout
//   - NX: only set when the key is absent (mutual exclusion)
//   - EX: expiry so a crashed holder can't deadlock the shop
//   - value: holder token, verified on release so an expired holder can't
//     free a lock someone else now owns
//
// Release: Lua script checks the token and deletes atomically.
// ============================================================================

var ErrLockFailed = errors.New("failed to acquire distributed lock")

// DistributedLock is a redis SETNX lock.
type DistributedLock struct {
	client     *redis.Client
	key        string
	value      string
	expiration time.Duration
}

func NewDistributedLock(client *redis.Client, key, value string, expiration time.Duration) *DistributedLock {
	return &DistributedLock{
		client:     client,
		key:        key,
		value:      value,
		expiration: expiration,
	}
}

// TryLock attempts one non-blocking acquire.
func (l *DistributedLock) TryLock(ctx context.Context) (bool, error) {
	success, err := l.client.SetNX(ctx, l.key, l.value, l.expiration).Result()
	if err != nil {
		return false, err
	}
	return success, nil
}

// Lock acquires with retries.
func (l *DistributedLock) Lock(ctx context.Context, retryInterval time.Duration, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		success, err := l.TryLock(ctx)
		if err != nil {
			return err
		}
		if success {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return ErrLockFailed
}

// Unlock releases the lock only if this holder still owns it.
func (l *DistributedLock) Unlock(ctx context.Context) error {
	script := `
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		else
			return 0
		end
	`
	_, err := l.client.Eval(ctx, script, []string{l.key}, l.value).Result()
	return err
}

// NewBillSerialLock guards the bill serial counter. One key for the whole
// shop: bill generation is the only operation that touches the counter, and
// only one sequencer invocation may be in flight at a time.
func NewBillSerialLock(client *redis.Client, token string) *DistributedLock {
	return NewDistributedLock(client, "khata:lock:bill_serial", token, 30*time.Second)
}
