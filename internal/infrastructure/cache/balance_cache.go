package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

// BalanceCache is a display cache over derived balances.
//
// The transaction journal is the only source of truth for a balance; this
// cache exists so list views don't refold the journal on every render. The
// contract that keeps it honest: every transaction write (create, clear
// record, bill-generated debit) invalidates the party's key before the
// write commits. The TTL is only a backstop against missed invalidation.
type BalanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBalanceCache(client *redis.Client, ttl time.Duration) *BalanceCache {
	return &BalanceCache{client: client, ttl: ttl}
}

func balanceKey(entityID string) string {
	return fmt.Sprintf("khata:balance:%s", entityID)
}

// Get returns the cached balance and whether it was present. Any redis
// error degrades to a miss - the caller falls back to deriving.
func (c *BalanceCache) Get(ctx context.Context, entityID string) (decimal.Decimal, bool) {
	val, err := c.client.Get(ctx, balanceKey(entityID)).Result()
	if err != nil {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func (c *BalanceCache) Set(ctx context.Context, entityID string, balance decimal.Decimal) {
	c.client.Set(ctx, balanceKey(entityID), balance.String(), c.ttl)
}

func (c *BalanceCache) Invalidate(ctx context.Context, entityID string) {
	c.client.Del(ctx, balanceKey(entityID))
}
