package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	loanTypesAllKey = "loan_types:all"
	DefaultTTL      = 30 * time.Minute
)

func loanTypeKey(id string) string {
	return "loan_types:" + id
}

// LoanTypeCache is a read-through Redis cache in front of a record.LoanTypeReader.
// Redis failures fall through to the store; they never fail a read.
type LoanTypeCache struct {
	next   record.LoanTypeReader
	rdb    *redis.Client
	ttl    time.Duration
	sf     singleflight.Group
	logger *slog.Logger
}

func NewLoanTypeCache(next record.LoanTypeReader, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *LoanTypeCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &LoanTypeCache{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

var _ record.LoanTypeReader = (*LoanTypeCache)(nil)

// GetLoanType implements record.LoanTypeReader.
func (c *LoanTypeCache) GetLoanType(ctx context.Context, id string) (record.LoanType, error) {
	return readThrough(ctx, c, loanTypeKey(id), func(ctx context.Context) (record.LoanType, error) {
		return c.next.GetLoanType(ctx, id)
	})
}

// ListLoanTypes implements record.LoanTypeReader.
func (c *LoanTypeCache) ListLoanTypes(ctx context.Context) ([]record.LoanType, error) {
	return readThrough(ctx, c, loanTypesAllKey, c.next.ListLoanTypes)
}

func readThrough[T any](ctx context.Context, c *LoanTypeCache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	cached, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		if err := json.Unmarshal(cached, &v); err == nil {
			return v, nil
		}
		c.logger.Warn("discarding undecodable cache entry", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		fresh, err := load(ctx)
		if err != nil {
			return fresh, err
		}
		if data, err := json.Marshal(fresh); err == nil {
			if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
				c.logger.Warn("cache write failed", slog.String("key", key), slog.String("error", err.Error()))
			}
		}
		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
