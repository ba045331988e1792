package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/crossgate/schemesim/internal/scenario"
	"github.com/crossgate/schemesim/internal/storage"
)

// PaymentLedger is the terminal state machine: Submit decides the final
// status in one step, records a replayable message trail and never mutates a
// record afterwards.
type PaymentLedger struct {
	store storage.Store
	clock Clock
}

// NewPaymentLedger creates a ledger over the shared store.
func NewPaymentLedger(store storage.Store, clock Clock) *PaymentLedger {
	return &PaymentLedger{store: store, clock: clock}
}

// Submit records a payment. The outcome is decided here, synchronously: a
// happy scenario settles (ACSC when the proxy flow ran, ACCC otherwise) and
// any scenario-policy entry rejects with its reason code, whatever stage the
// entry names: a payment forced through despite an earlier-stage failure
// still surfaces the injected code. UETR collisions fail with
// ErrDuplicateUETR; the first record always wins.
func (pl *PaymentLedger) Submit(params SubmitParams) (storage.Payment, error) {
	uetr := strings.TrimSpace(params.UETR)
	if uetr == "" {
		uetr = uuid.NewString()
	}

	now := pl.clock().UTC()
	p := storage.Payment{
		UETR:                uetr,
		QuoteID:             params.QuoteID,
		ExchangeRate:        params.ExchangeRate,
		SourceAmount:        params.SourceAmount,
		SourceCurrency:      params.SourceCurrency,
		DestinationAmount:   params.DestinationAmount,
		DestinationCurrency: params.DestinationCurrency,
		Debtor:              params.Debtor,
		Creditor:            params.Creditor,
		ScenarioCode:        strings.ToLower(strings.TrimSpace(params.ScenarioCode)),
		ProxyResolved:       params.Resolution != nil && params.Resolution.Verified,
		InitiatedAt:         now,
	}

	if entry, ok := scenario.Lookup(params.ScenarioCode); ok {
		p.Status = storage.StatusRejected
		p.StatusReasonCode = entry.ReasonCode
		p.StatusReason = entry.Description
	} else if p.ProxyResolved {
		p.Status = storage.StatusSettled
	} else {
		p.Status = storage.StatusCompleted
	}
	trail := buildMessageTrail(p, params.Resolution)
	completed := trail[len(trail)-1].Timestamp.Add(settlementLatency)
	p.CompletedAt = &completed

	events := buildEvents(p)

	if err := pl.store.PutPayment(p, trail, events); err != nil {
		if errors.Is(err, storage.ErrDuplicateUETR) {
			return storage.Payment{}, fmt.Errorf("submit %s: %w", uetr, err)
		}
		return storage.Payment{}, err
	}
	return p, nil
}

// GetStatus reports a payment's terminal status. Unknown UETRs return the
// NOT_FOUND sentinel rather than an error: the dashboard treats that as a
// normal search outcome.
func (pl *PaymentLedger) GetStatus(uetr string) StatusResult {
	p, err := pl.store.GetPayment(uetr)
	if err != nil {
		return StatusResult{UETR: uetr, Status: storage.StatusNotFound}
	}
	initiated := p.InitiatedAt
	return StatusResult{
		UETR:             p.UETR,
		Status:           p.Status,
		StatusReasonCode: p.StatusReasonCode,
		StatusReason:     p.StatusReason,
		InitiatedAt:      &initiated,
		CompletedAt:      p.CompletedAt,
	}
}

// GetMessages returns the replayable message trail for a payment.
func (pl *PaymentLedger) GetMessages(uetr string) ([]storage.MessageTrailEntry, error) {
	return pl.store.GetMessages(uetr)
}

// GetEvents returns the lifecycle event feed for a payment.
func (pl *PaymentLedger) GetEvents(uetr string) ([]storage.PaymentEvent, error) {
	return pl.store.GetEvents(uetr)
}

// GetPayment returns the full ledger record or ErrPaymentNotFound.
func (pl *PaymentLedger) GetPayment(uetr string) (storage.Payment, error) {
	return pl.store.GetPayment(uetr)
}
