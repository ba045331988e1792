package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/crossgate/schemesim/internal/storage"
)

// FeeSchedule holds the charges the disclosure engine applies on top of a
// quote: the source-side provider fee and the scheme fee, each flat + bps.
// Amounts are in source currency.
type FeeSchedule struct {
	SourceFeeFlat decimal.Decimal
	SourceFeeBps  int64
	SchemeFeeFlat decimal.Decimal
	SchemeFeeBps  int64
}

// DefaultFeeSchedule mirrors the charges the demo scheme publishes.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		SourceFeeFlat: decimal.RequireFromString("4.00"),
		SourceFeeBps:  20,
		SchemeFeeFlat: decimal.RequireFromString("0.50"),
		SchemeFeeBps:  5,
	}
}

// FeeDisclosureEngine computes the regulator-grade Pre-Transaction
// Disclosure from a live quote. Results are recomputed on every call so the
// disclosure can never outlive the quote's validity window.
type FeeDisclosureEngine struct {
	store    storage.Store
	clock    Clock
	schedule FeeSchedule
}

// NewFeeDisclosureEngine creates a disclosure engine over the shared store.
func NewFeeDisclosureEngine(store storage.Store, clock Clock, schedule FeeSchedule) *FeeDisclosureEngine {
	return &FeeDisclosureEngine{store: store, clock: clock, schedule: schedule}
}

// Compute builds the disclosure for a cached quote. Fails with
// ErrQuoteNotFound for unknown ids and ErrQuoteExpired once the validity
// window has passed; both are recoverable by requesting fresh quotes.
func (fe *FeeDisclosureEngine) Compute(quoteID, sourceFeeType string) (FeeBreakdown, error) {
	feeType := strings.ToUpper(strings.TrimSpace(sourceFeeType))
	if feeType != FeeTypeInvoiced && feeType != FeeTypeDeducted {
		return FeeBreakdown{}, fmt.Errorf("unknown source fee type %q", sourceFeeType)
	}

	q, err := fe.store.GetQuote(quoteID)
	if err != nil {
		return FeeBreakdown{}, err
	}
	if q.Expired(fe.clock().UTC()) {
		return FeeBreakdown{}, fmt.Errorf("quote %s: %w", quoteID, ErrQuoteExpired)
	}

	principal := q.SourceInterbankAmount
	sourceFee := roundAmount(fe.schedule.SourceFeeFlat.Add(bpsOf(principal, fe.schedule.SourceFeeBps)))
	schemeFee := roundAmount(fe.schedule.SchemeFeeFlat.Add(bpsOf(principal, fe.schedule.SchemeFeeBps)))

	var senderTotal, payoutGross, recipientNet decimal.Decimal
	switch feeType {
	case FeeTypeInvoiced:
		// Fee invoiced on top: the full principal converts, the recipient
		// receives the quote's creditor amount unchanged.
		senderTotal = principal.Add(sourceFee).Add(schemeFee)
		payoutGross = q.DestinationInterbankAmount
		recipientNet = q.CreditorAccountAmount
	case FeeTypeDeducted:
		// Fee deducted from the principal before conversion: the recipient
		// absorbs the fee's FX-converted value.
		convertedFee := roundAmount(sourceFee.Mul(q.ExchangeRate))
		senderTotal = principal.Add(schemeFee)
		payoutGross = q.DestinationInterbankAmount.Sub(convertedFee)
		recipientNet = q.CreditorAccountAmount.Sub(convertedFee)
	}

	effectiveRate := roundRate(recipientNet.Div(senderTotal))
	// Cost vs the mid-market benchmark: |1 − effective/market| × 100.
	costPct := decimal.NewFromInt(1).
		Sub(effectiveRate.Div(q.BaseRate)).
		Abs().
		Mul(decimal.NewFromInt(100)).
		Round(4)

	return FeeBreakdown{
		QuoteID:                q.QuoteID,
		SourceCurrency:         q.SourceCurrency,
		DestinationCurrency:    q.DestCurrency,
		MarketRate:             q.BaseRate,
		CustomerRate:           q.ExchangeRate,
		EffectiveRate:          effectiveRate,
		SenderPrincipal:        principal,
		SourceProviderFee:      sourceFee,
		SourceFeeType:          feeType,
		SchemeFee:              schemeFee,
		SenderTotal:            senderTotal,
		PayoutGrossAmount:      payoutGross,
		DestinationProviderFee: q.DestinationProviderFee,
		RecipientNetAmount:     recipientNet,
		TotalCostPercent:       costPct,
		G20Aligned:             costPct.LessThanOrEqual(decimal.NewFromFloat(g20CostThresholdPct)),
		QuoteValidUntil:        q.ExpiresAt,
	}, nil
}
