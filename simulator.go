// Package schemesim is a deterministic behavioral stand-in for a
// cross-border instant-payment scheme: FX quotes with expiry, a
// regulator-grade fee disclosure, quote locking, proxy resolution and a
// terminal payment ledger with a replayable message trail. It exists so a
// dashboard can exercise every happy and unhappy path without a live
// backend.
package schemesim

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/crossgate/schemesim/internal/engine"
	"github.com/crossgate/schemesim/internal/scenario"
	"github.com/crossgate/schemesim/internal/storage"
)

// Client is the public API of the simulator.
type Client struct {
	engine *engine.Engine
	store  storage.Store
	opts   *ClientOptions
}

// ClientOptions configures a Client.
type ClientOptions struct {
	RedisAddr     string
	QuoteTTL      time.Duration
	FeeSchedule   engine.FeeSchedule
	Clock         engine.Clock
	Rand          *rand.Rand
	Store         storage.Store
	EnableLogging bool
}

// DefaultClientOptions returns sensible defaults: in-memory store, wall
// clock, 600 s quote window.
func DefaultClientOptions() *ClientOptions {
	return &ClientOptions{
		QuoteTTL:    engine.DefaultQuoteTTL,
		FeeSchedule: engine.DefaultFeeSchedule(),
	}
}

// ClientOption configures client options.
type ClientOption func(*ClientOptions)

// WithRedisStore backs the simulator with Redis at addr so several
// instances share one quote cache and ledger.
func WithRedisStore(addr string) ClientOption {
	return func(opts *ClientOptions) {
		opts.RedisAddr = addr
	}
}

// WithStore injects a prebuilt store, overriding the Redis/memory choice.
func WithStore(s storage.Store) ClientOption {
	return func(opts *ClientOptions) {
		opts.Store = s
	}
}

// WithQuoteTTL overrides the fixed quote validity window.
func WithQuoteTTL(ttl time.Duration) ClientOption {
	return func(opts *ClientOptions) {
		opts.QuoteTTL = ttl
	}
}

// WithFeeSchedule overrides the published fee schedule.
func WithFeeSchedule(fs engine.FeeSchedule) ClientOption {
	return func(opts *ClientOptions) {
		opts.FeeSchedule = fs
	}
}

// WithClock injects the time source used for quote expiry and timestamps.
func WithClock(clock engine.Clock) ClientOption {
	return func(opts *ClientOptions) {
		opts.Clock = clock
	}
}

// WithRand injects the random source used for quote draws.
func WithRand(rng *rand.Rand) ClientOption {
	return func(opts *ClientOptions) {
		opts.Rand = rng
	}
}

// WithLogging enables or disables client logging.
func WithLogging(enabled bool) ClientOption {
	return func(opts *ClientOptions) {
		opts.EnableLogging = enabled
	}
}

// NewClient creates a simulator client.
func NewClient(options ...ClientOption) (*Client, error) {
	opts := DefaultClientOptions()
	for _, option := range options {
		option(opts)
	}

	store := opts.Store
	if store == nil {
		if opts.RedisAddr != "" {
			rs, err := storage.NewRedisStore(opts.RedisAddr)
			if err != nil {
				return nil, fmt.Errorf("failed to create Redis store: %w", err)
			}
			store = rs
		} else {
			store = storage.NewMemoryStore()
		}
	}

	eng := engine.New(store, &engine.Options{
		QuoteTTL:    opts.QuoteTTL,
		FeeSchedule: opts.FeeSchedule,
		Clock:       opts.Clock,
		Rand:        opts.Rand,
	})

	return &Client{engine: eng, store: store, opts: opts}, nil
}

// GenerateQuotes produces one quote per liquidity provider on the corridor
// and caches each for later retrieval by id. An unknown corridor yields an
// empty list, not an error.
func (c *Client) GenerateQuotes(req QuoteRequest) ([]Quote, error) {
	quotes, err := c.engine.Quotes.Generate(req)
	if err != nil {
		return nil, err
	}
	c.log("generated quotes corridor=%s:%s->%s:%s count=%d",
		req.SourceCountry, req.SourceCurrency, req.DestCountry, req.DestCurrency, len(quotes))
	return quotes, nil
}

// ComputeFees builds the Pre-Transaction Disclosure for a cached quote.
func (c *Client) ComputeFees(quoteID, sourceFeeType string) (FeeBreakdown, error) {
	return c.engine.Fees.Compute(quoteID, sourceFeeType)
}

// ConfirmQuote re-validates expiry and locks the quote for execution.
func (c *Client) ConfirmQuote(quoteID string) (SenderConfirmation, error) {
	return c.engine.Gate.Confirm(quoteID)
}

// ResolveProxy looks up a destination proxy in the simulated directory.
func (c *Client) ResolveProxy(destCountry, proxyType, proxyValue, scenarioCode string) ResolutionResult {
	return c.engine.Proxy.Resolve(destCountry, proxyType, proxyValue, scenarioCode)
}

// SubmitPayment records a payment with its terminal status and message
// trail.
func (c *Client) SubmitPayment(params SubmitParams) (Payment, error) {
	p, err := c.engine.Ledger.Submit(params)
	if err != nil {
		return Payment{}, err
	}
	c.log("payment submitted uetr=%s status=%s reason=%s", p.UETR, p.Status, p.StatusReasonCode)
	return p, nil
}

// GetStatus reports a payment's terminal status; unknown UETRs return the
// NOT_FOUND sentinel.
func (c *Client) GetStatus(uetr string) StatusResult {
	return c.engine.Ledger.GetStatus(uetr)
}

// GetPayment returns the full ledger record or ErrPaymentNotFound.
func (c *Client) GetPayment(uetr string) (Payment, error) {
	return c.engine.Ledger.GetPayment(uetr)
}

// GetMessages returns the replayable message trail for a payment.
func (c *Client) GetMessages(uetr string) ([]MessageTrailEntry, error) {
	return c.engine.Ledger.GetMessages(uetr)
}

// GetEvents returns the lifecycle event feed for a payment.
func (c *Client) GetEvents(uetr string) ([]PaymentEvent, error) {
	return c.engine.Ledger.GetEvents(uetr)
}

// Scenarios lists every scenario code in the outcome policy table.
func (c *Client) Scenarios() []string {
	return scenario.Codes()
}

// Close releases the underlying store.
func (c *Client) Close() error {
	return c.store.Close()
}

func (c *Client) log(format string, args ...interface{}) {
	if c.opts.EnableLogging {
		log.Printf("level=info component=schemesim msg=\""+format+"\"", args...)
	}
}

// Re-exported types for a clean public API.
type (
	QuoteRequest       = engine.QuoteRequest
	SubmitParams       = engine.SubmitParams
	FeeBreakdown       = engine.FeeBreakdown
	SenderConfirmation = engine.SenderConfirmation
	ResolutionResult   = engine.ResolutionResult
	StatusResult       = engine.StatusResult
	FeeSchedule        = engine.FeeSchedule
	Quote              = storage.Quote
	Payment            = storage.Payment
	Participant        = storage.Participant
	MessageTrailEntry  = storage.MessageTrailEntry
	PaymentEvent       = storage.PaymentEvent
)

// Re-exported recoverable errors.
var (
	ErrQuoteNotFound      = engine.ErrQuoteNotFound
	ErrQuoteExpired       = engine.ErrQuoteExpired
	ErrQuoteAlreadyLocked = engine.ErrQuoteAlreadyLocked
	ErrDuplicateUETR      = engine.ErrDuplicateUETR
	ErrPaymentNotFound    = engine.ErrPaymentNotFound
)

// Amount and fee type selectors.
const (
	AmountTypeSource      = engine.AmountTypeSource
	AmountTypeDestination = engine.AmountTypeDestination
	FeeTypeInvoiced       = engine.FeeTypeInvoiced
	FeeTypeDeducted       = engine.FeeTypeDeducted
)

// Payment statuses.
const (
	StatusSettled   = storage.StatusSettled
	StatusCompleted = storage.StatusCompleted
	StatusRejected  = storage.StatusRejected
	StatusNotFound  = storage.StatusNotFound
)
