package engine

import (
	"math/rand"
	"time"

	"github.com/crossgate/schemesim/internal/storage"
)

// Options configures the simulation engine. The clock and random source are
// injectable so expiry windows and quote draws are fully deterministic under
// test.
type Options struct {
	QuoteTTL    time.Duration
	FeeSchedule FeeSchedule
	Clock       Clock
	Rand        *rand.Rand
}

// DefaultOptions returns the production-shaped defaults: wall clock, seeded
// RNG, the fixed 600 s quote window and the published fee schedule.
func DefaultOptions() *Options {
	return &Options{
		QuoteTTL:    DefaultQuoteTTL,
		FeeSchedule: DefaultFeeSchedule(),
		Clock:       func() time.Time { return time.Now().UTC() },
		Rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Engine wires the five simulator components over one shared store.
type Engine struct {
	store storage.Store

	Quotes *QuoteBook
	Fees   *FeeDisclosureEngine
	Gate   *ConfirmationGate
	Proxy  *ProxyResolutionSimulator
	Ledger *PaymentLedger
}

// New builds an engine over the given store. Nil options fields fall back to
// their defaults.
func New(store storage.Store, opts *Options) *Engine {
	defaults := DefaultOptions()
	if opts == nil {
		opts = defaults
	}
	if opts.Clock == nil {
		opts.Clock = defaults.Clock
	}
	if opts.Rand == nil {
		opts.Rand = defaults.Rand
	}
	if opts.QuoteTTL <= 0 {
		opts.QuoteTTL = defaults.QuoteTTL
	}
	if opts.FeeSchedule == (FeeSchedule{}) {
		opts.FeeSchedule = defaults.FeeSchedule
	}

	return &Engine{
		store:  store,
		Quotes: NewQuoteBook(store, opts.Clock, opts.Rand, opts.QuoteTTL),
		Fees:   NewFeeDisclosureEngine(store, opts.Clock, opts.FeeSchedule),
		Gate:   NewConfirmationGate(store, opts.Clock),
		Proxy:  NewProxyResolutionSimulator(opts.Clock),
		Ledger: NewPaymentLedger(store, opts.Clock),
	}
}

// Store exposes the underlying store, mainly for the facade's Close.
func (e *Engine) Store() storage.Store {
	return e.store
}
