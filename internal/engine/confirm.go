package engine

import (
	"fmt"

	"github.com/crossgate/schemesim/internal/scenario"
	"github.com/crossgate/schemesim/internal/storage"
)

// ConfirmationGate validates that a quote is still live and locks it for
// execution. Expiry is re-checked here even if the caller just computed a
// disclosure: the earlier read is not trusted at confirmation time.
type ConfirmationGate struct {
	store storage.Store
	clock Clock
}

// NewConfirmationGate creates a gate over the shared store.
func NewConfirmationGate(store storage.Store, clock Clock) *ConfirmationGate {
	return &ConfirmationGate{store: store, clock: clock}
}

// Confirm locks quoteID for execution. An expired quote is a normal
// negative outcome: ProceedToExecution=false with a message, no error. A
// second confirmation against an already-locked quote fails with
// ErrQuoteAlreadyLocked so one FX lock can never back two submissions.
func (cg *ConfirmationGate) Confirm(quoteID string) (SenderConfirmation, error) {
	q, err := cg.store.GetQuote(quoteID)
	if err != nil {
		return SenderConfirmation{}, err
	}

	now := cg.clock().UTC()
	if q.Expired(now) {
		msg := "quote has expired; request fresh quotes to continue"
		if e, ok := scenario.ByReasonCode("TM01"); ok {
			msg = e.Description
		}
		return SenderConfirmation{
			QuoteID:            quoteID,
			ConfirmationStatus: ConfirmationExpired,
			ConfirmedAt:        now,
			ProceedToExecution: false,
			Message:            msg,
		}, nil
	}

	if err := cg.store.LockQuote(quoteID); err != nil {
		return SenderConfirmation{}, fmt.Errorf("confirm quote %s: %w", quoteID, err)
	}

	return SenderConfirmation{
		QuoteID:            quoteID,
		ConfirmationStatus: ConfirmationConfirmed,
		ConfirmedAt:        now,
		ProceedToExecution: true,
		Message:            "quote locked for execution",
	}, nil
}
