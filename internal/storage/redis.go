package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// StoreOptions configures the Redis-backed store.
type StoreOptions struct {
	DefaultTTL time.Duration
}

// DefaultStoreOptions returns sensible defaults. Records outlive any quote
// validity window by a wide margin; expiry stays a lazy predicate in the
// engine, Redis TTLs only bound overall growth.
func DefaultStoreOptions() *StoreOptions {
	return &StoreOptions{
		DefaultTTL: 24 * time.Hour,
	}
}

// RedisStore implements Store on Redis so several simulator instances can
// share one quote cache and ledger. SetNX backs the atomic check-then-act
// semantics of LockQuote and PutPayment.
type RedisStore struct {
	client *redis.Client
	opts   *StoreOptions
	ctx    context.Context
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithStoreOptions overrides the default store options.
func WithStoreOptions(opts *StoreOptions) RedisOption {
	return func(rs *RedisStore) {
		rs.opts = opts
	}
}

// WithContext sets the context used for store operations.
func WithContext(ctx context.Context) RedisOption {
	return func(rs *RedisStore) {
		rs.ctx = ctx
	}
}

// NewRedisStore connects to Redis at addr (e.g. "tcp://localhost:6379/0").
func NewRedisStore(addr string, options ...RedisOption) (*RedisStore, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid redis address %q: %w", addr, err)
	}
	var passwd string
	if u.User != nil {
		passwd, _ = u.User.Password()
	}
	db := 0
	if len(u.Path) > 1 {
		db, err = strconv.Atoi(u.Path[1:])
		if err != nil {
			return nil, fmt.Errorf("invalid redis db in %q: %w", addr, err)
		}
	}

	client := redis.NewClient(&redis.Options{
		Network:  u.Scheme,
		Addr:     u.Host,
		Password: passwd,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	store := &RedisStore{
		client: client,
		opts:   DefaultStoreOptions(),
		ctx:    ctx,
	}
	for _, option := range options {
		option(store)
	}
	return store, nil
}

func (rs *RedisStore) PutQuote(q Quote) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}
	return rs.client.Set(rs.ctx, quoteKeyPrefix+q.QuoteID, data, rs.opts.DefaultTTL).Err()
}

func (rs *RedisStore) GetQuote(quoteID string) (Quote, error) {
	data, err := rs.client.Get(rs.ctx, quoteKeyPrefix+quoteID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return Quote{}, ErrQuoteNotFound
		}
		return Quote{}, fmt.Errorf("failed to get quote from Redis: %w", err)
	}
	var q Quote
	if err := json.Unmarshal(data, &q); err != nil {
		return Quote{}, fmt.Errorf("failed to unmarshal quote: %w", err)
	}
	return q, nil
}

func (rs *RedisStore) LockQuote(quoteID string) error {
	exists, err := rs.client.Exists(rs.ctx, quoteKeyPrefix+quoteID).Result()
	if err != nil {
		return fmt.Errorf("failed to check quote existence: %w", err)
	}
	if exists == 0 {
		return ErrQuoteNotFound
	}
	// SET NX makes the lock a single atomic check-then-act.
	ok, err := rs.client.SetNX(rs.ctx, quoteLockKeyPrefix+quoteID, "locked", rs.opts.DefaultTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire quote lock: %w", err)
	}
	if !ok {
		return ErrQuoteAlreadyLocked
	}
	return nil
}

func (rs *RedisStore) QuoteLocked(quoteID string) bool {
	exists, err := rs.client.Exists(rs.ctx, quoteLockKeyPrefix+quoteID).Result()
	return err == nil && exists > 0
}

func (rs *RedisStore) PutPayment(p Payment, trail []MessageTrailEntry, events []PaymentEvent) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal payment: %w", err)
	}
	ok, err := rs.client.SetNX(rs.ctx, paymentKeyPrefix+p.UETR, data, rs.opts.DefaultTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to store payment: %w", err)
	}
	if !ok {
		return ErrDuplicateUETR
	}

	trailData, err := json.Marshal(trail)
	if err != nil {
		return fmt.Errorf("failed to marshal message trail: %w", err)
	}
	if err := rs.client.Set(rs.ctx, trailKeyPrefix+p.UETR, trailData, rs.opts.DefaultTTL).Err(); err != nil {
		return fmt.Errorf("failed to store message trail: %w", err)
	}

	eventsData, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}
	if err := rs.client.Set(rs.ctx, eventsKeyPrefix+p.UETR, eventsData, rs.opts.DefaultTTL).Err(); err != nil {
		return fmt.Errorf("failed to store events: %w", err)
	}
	return nil
}

func (rs *RedisStore) GetPayment(uetr string) (Payment, error) {
	data, err := rs.client.Get(rs.ctx, paymentKeyPrefix+uetr).Bytes()
	if err != nil {
		if err == redis.Nil {
			return Payment{}, ErrPaymentNotFound
		}
		return Payment{}, fmt.Errorf("failed to get payment from Redis: %w", err)
	}
	var p Payment
	if err := json.Unmarshal(data, &p); err != nil {
		return Payment{}, fmt.Errorf("failed to unmarshal payment: %w", err)
	}
	return p, nil
}

func (rs *RedisStore) GetMessages(uetr string) ([]MessageTrailEntry, error) {
	data, err := rs.client.Get(rs.ctx, trailKeyPrefix+uetr).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get message trail from Redis: %w", err)
	}
	var trail []MessageTrailEntry
	if err := json.Unmarshal(data, &trail); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message trail: %w", err)
	}
	return trail, nil
}

func (rs *RedisStore) GetEvents(uetr string) ([]PaymentEvent, error) {
	data, err := rs.client.Get(rs.ctx, eventsKeyPrefix+uetr).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get events from Redis: %w", err)
	}
	var events []PaymentEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal events: %w", err)
	}
	return events, nil
}

func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
