package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var reconciliationEpsilon = decimal.RequireFromString("0.000001")

func TestComputeFeesReconciliation(t *testing.T) {
	eng, _ := newTestEngine(t)

	quotes, err := eng.Quotes.Generate(sgdIdrRequest("2500", AmountTypeSource))
	if err != nil {
		t.Fatal(err)
	}

	for _, feeType := range []string{FeeTypeInvoiced, FeeTypeDeducted} {
		t.Run(feeType, func(t *testing.T) {
			for _, q := range quotes {
				fb, err := eng.Fees.Compute(q.QuoteID, feeType)
				if err != nil {
					t.Fatalf("Compute(%s, %s) failed: %v", q.QuoteID, feeType, err)
				}

				wantSenderTotal := fb.SenderPrincipal.Add(fb.SchemeFee)
				if feeType == FeeTypeInvoiced {
					wantSenderTotal = wantSenderTotal.Add(fb.SourceProviderFee)
				}
				if diff := fb.SenderTotal.Sub(wantSenderTotal).Abs(); diff.GreaterThan(reconciliationEpsilon) {
					t.Errorf("sender reconciliation off by %s: total=%s principal=%s srcFee=%s schemeFee=%s",
						diff, fb.SenderTotal, fb.SenderPrincipal, fb.SourceProviderFee, fb.SchemeFee)
				}

				wantGross := fb.RecipientNetAmount.Add(fb.DestinationProviderFee)
				if diff := fb.PayoutGrossAmount.Sub(wantGross).Abs(); diff.GreaterThan(reconciliationEpsilon) {
					t.Errorf("payout reconciliation off by %s: gross=%s net=%s destFee=%s",
						diff, fb.PayoutGrossAmount, fb.RecipientNetAmount, fb.DestinationProviderFee)
				}

				if !fb.QuoteValidUntil.Equal(q.ExpiresAt) {
					t.Errorf("QuoteValidUntil = %v, want %v", fb.QuoteValidUntil, q.ExpiresAt)
				}
			}
		})
	}
}

func TestComputeFeesInvoicedVsDeducted(t *testing.T) {
	eng, _ := newTestEngine(t)

	quotes, err := eng.Quotes.Generate(sgdIdrRequest("2500", AmountTypeSource))
	if err != nil {
		t.Fatal(err)
	}
	q := quotes[0]

	invoiced, err := eng.Fees.Compute(q.QuoteID, FeeTypeInvoiced)
	if err != nil {
		t.Fatal(err)
	}
	deducted, err := eng.Fees.Compute(q.QuoteID, FeeTypeDeducted)
	if err != nil {
		t.Fatal(err)
	}

	if !invoiced.SenderTotal.GreaterThan(invoiced.SenderPrincipal) {
		t.Error("INVOICED sender total must exceed principal")
	}
	if !invoiced.SenderTotal.GreaterThan(deducted.SenderTotal) {
		t.Error("INVOICED sender total must exceed DEDUCTED total for the same quote")
	}
	if !invoiced.RecipientNetAmount.Equal(q.CreditorAccountAmount) {
		t.Errorf("INVOICED recipient net = %s, want quote creditor amount %s",
			invoiced.RecipientNetAmount, q.CreditorAccountAmount)
	}
	if !deducted.RecipientNetAmount.LessThan(invoiced.RecipientNetAmount) {
		t.Error("DEDUCTED must reduce the recipient net")
	}

	// The deduction on the destination leg is the fee's FX-converted value.
	wantReduction := invoiced.SourceProviderFee.Mul(q.ExchangeRate).Round(2)
	gotReduction := invoiced.RecipientNetAmount.Sub(deducted.RecipientNetAmount)
	if !gotReduction.Equal(wantReduction) {
		t.Errorf("DEDUCTED reduction = %s, want %s", gotReduction, wantReduction)
	}
}

func TestComputeFeesRateTriplet(t *testing.T) {
	eng, _ := newTestEngine(t)

	quotes, err := eng.Quotes.Generate(sgdIdrRequest("2500", AmountTypeSource))
	if err != nil {
		t.Fatal(err)
	}
	q := quotes[0]

	fb, err := eng.Fees.Compute(q.QuoteID, FeeTypeInvoiced)
	if err != nil {
		t.Fatal(err)
	}
	if !fb.MarketRate.Equal(q.BaseRate) {
		t.Errorf("market rate = %s, want %s", fb.MarketRate, q.BaseRate)
	}
	if !fb.CustomerRate.Equal(q.ExchangeRate) {
		t.Errorf("customer rate = %s, want %s", fb.CustomerRate, q.ExchangeRate)
	}
	wantEffective := fb.RecipientNetAmount.Div(fb.SenderTotal).Round(6)
	if !fb.EffectiveRate.Equal(wantEffective) {
		t.Errorf("effective rate = %s, want %s", fb.EffectiveRate, wantEffective)
	}
	if fb.TotalCostPercent.Sign() < 0 {
		t.Errorf("total cost percent must be non-negative, got %s", fb.TotalCostPercent)
	}
	if fb.G20Aligned != fb.TotalCostPercent.LessThanOrEqual(decimal.NewFromInt(3)) {
		t.Errorf("G20 flag inconsistent with cost %s", fb.TotalCostPercent)
	}
}

func TestComputeFeesUnknownQuote(t *testing.T) {
	eng, _ := newTestEngine(t)

	_, err := eng.Fees.Compute("no-such-quote", FeeTypeInvoiced)
	if !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("Compute on unknown quote = %v, want ErrQuoteNotFound", err)
	}
}

func TestComputeFeesExpiredQuote(t *testing.T) {
	eng, now := newTestEngine(t)

	quotes, err := eng.Quotes.Generate(sgdIdrRequest("2500", AmountTypeSource))
	if err != nil {
		t.Fatal(err)
	}
	q := quotes[0]

	// Still valid one second before the boundary.
	*now = testStart.Add(DefaultQuoteTTL - time.Second)
	if _, err := eng.Fees.Compute(q.QuoteID, FeeTypeInvoiced); err != nil {
		t.Fatalf("quote should still be valid: %v", err)
	}

	// now >= expiresAt is expired, inclusive.
	*now = testStart.Add(DefaultQuoteTTL)
	if _, err := eng.Fees.Compute(q.QuoteID, FeeTypeInvoiced); !errors.Is(err, ErrQuoteExpired) {
		t.Fatalf("Compute on expired quote = %v, want ErrQuoteExpired", err)
	}
}

func TestComputeFeesBadFeeType(t *testing.T) {
	eng, _ := newTestEngine(t)

	if _, err := eng.Fees.Compute("any", "ON_THE_HOUSE"); err == nil {
		t.Error("unknown fee type should error before the store lookup")
	}
}
