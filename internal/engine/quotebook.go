package engine

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crossgate/schemesim/internal/storage"
)

// baseRateJitterBps bounds the per-quote drift of the drawn base rate around
// the corridor mid (±25 bps).
const baseRateJitterBps = 25

// QuoteBook generates FX quotes and caches every one of them in the shared
// store so later stages can retrieve them by id alone.
type QuoteBook struct {
	store storage.Store
	clock Clock
	ttl   time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuoteBook creates a quote book over the given store. The rng drives
// base-rate jitter and spread draws; inject a seeded source for
// deterministic tests.
func NewQuoteBook(store storage.Store, clock Clock, rng *rand.Rand, ttl time.Duration) *QuoteBook {
	if ttl <= 0 {
		ttl = DefaultQuoteTTL
	}
	return &QuoteBook{store: store, clock: clock, ttl: ttl, rng: rng}
}

// Generate produces one quote per liquidity provider on the corridor and
// inserts each into the store. An unknown corridor yields an empty list and
// nil error: "no offers" is a normal outcome, not a failure.
func (qb *QuoteBook) Generate(req QuoteRequest) ([]storage.Quote, error) {
	corridor, ok := lookupCorridor(req.SourceCountry, req.SourceCurrency, req.DestCountry, req.DestCurrency)
	if !ok {
		return nil, nil
	}

	amountType := strings.ToUpper(strings.TrimSpace(req.AmountType))
	if amountType != AmountTypeSource && amountType != AmountTypeDestination {
		return nil, fmt.Errorf("unknown amount type %q", req.AmountType)
	}
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %s", req.Amount)
	}

	now := qb.clock().UTC()
	quotes := make([]storage.Quote, 0, len(corridor.Providers))
	for _, p := range corridor.Providers {
		q := qb.buildQuote(corridor, p, req.Amount, amountType, now)
		if err := qb.store.PutQuote(q); err != nil {
			return nil, fmt.Errorf("failed to cache quote %s: %w", q.QuoteID, err)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (qb *QuoteBook) buildQuote(c Corridor, p Provider, amount decimal.Decimal, amountType string, now time.Time) storage.Quote {
	baseRate, spreadBps := qb.draw(c, p)

	// Improvements only ever tighten the customer rate back toward mid;
	// they never invert the direction of the spread adjustment.
	rate := bpsDown(baseRate, spreadBps)
	rate = bpsUp(rate, p.TierImprovementBps)
	rate = bpsUp(rate, p.ProviderImprovementBps)
	rate = roundRate(rate)

	var sourceAmount, destAmount decimal.Decimal
	capped := false
	switch amountType {
	case AmountTypeSource:
		sourceAmount = amount
	case AmountTypeDestination:
		sourceAmount = amount.Div(rate)
	}
	if sourceAmount.GreaterThan(c.MaxSourceAmount) {
		sourceAmount = c.MaxSourceAmount
		capped = true
	}
	sourceAmount = roundAmount(sourceAmount)
	destAmount = roundAmount(sourceAmount.Mul(rate))

	providerFee := roundAmount(p.FeeFlat.Add(bpsOf(destAmount, p.FeeBps)))

	return storage.Quote{
		QuoteID:                    uuid.NewString(),
		ProviderID:                 p.ID,
		ProviderName:               p.Name,
		SourceCountry:              c.SourceCountry,
		SourceCurrency:             c.SourceCurrency,
		DestCountry:                c.DestCountry,
		DestCurrency:               c.DestCurrency,
		BaseRate:                   baseRate,
		SpreadBps:                  spreadBps,
		TierImprovementBps:         p.TierImprovementBps,
		ProviderImprovementBps:     p.ProviderImprovementBps,
		ExchangeRate:               rate,
		SourceInterbankAmount:      sourceAmount,
		DestinationInterbankAmount: destAmount,
		DestinationProviderFee:     providerFee,
		CreditorAccountAmount:      destAmount.Sub(providerFee),
		CappedToMaxAmount:          capped,
		CreatedAt:                  now,
		ExpiresAt:                  now.Add(qb.ttl),
	}
}

// draw picks the provider's base rate and spread. The base rate drifts a few
// bps around the corridor mid so repeated requests look like a live market.
func (qb *QuoteBook) draw(c Corridor, p Provider) (decimal.Decimal, int64) {
	qb.mu.Lock()
	jitter := qb.rng.Int63n(2*baseRateJitterBps+1) - baseRateJitterBps
	spread := p.SpreadBpsMin
	if p.SpreadBpsMax > p.SpreadBpsMin {
		spread += qb.rng.Int63n(p.SpreadBpsMax - p.SpreadBpsMin + 1)
	}
	qb.mu.Unlock()

	base := roundRate(bpsUp(c.MidRate, jitter))
	return base, spread
}

// TTL returns the fixed quote validity window.
func (qb *QuoteBook) TTL() time.Duration {
	return qb.ttl
}
