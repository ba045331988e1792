package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeBreakdown is the full Pre-Transaction Disclosure for one quote.
// Recomputed from the live quote on every request, never cached, so it
// always reflects the current expiry state.
type FeeBreakdown struct {
	QuoteID             string          `json:"quoteId"`
	SourceCurrency      string          `json:"sourceCurrency"`
	DestinationCurrency string          `json:"destinationCurrency"`

	MarketRate    decimal.Decimal `json:"marketRate"`
	CustomerRate  decimal.Decimal `json:"customerRate"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`

	SenderPrincipal   decimal.Decimal `json:"senderPrincipal"`
	SourceProviderFee decimal.Decimal `json:"sourceProviderFee"`
	SourceFeeType     string          `json:"sourceFeeType"`
	SchemeFee         decimal.Decimal `json:"schemeFee"`
	SenderTotal       decimal.Decimal `json:"senderTotal"`

	PayoutGrossAmount      decimal.Decimal `json:"payoutGrossAmount"`
	DestinationProviderFee decimal.Decimal `json:"destinationProviderFee"`
	RecipientNetAmount     decimal.Decimal `json:"recipientNetAmount"`

	TotalCostPercent decimal.Decimal `json:"totalCostPercent"`
	G20Aligned       bool            `json:"g20Aligned"`
	QuoteValidUntil  time.Time       `json:"quoteValidUntil"`
}

// SenderConfirmation is the outcome of attempting to lock a quote for
// execution. An expired quote yields ProceedToExecution=false with a
// message rather than an error.
type SenderConfirmation struct {
	QuoteID            string    `json:"quoteId"`
	ConfirmationStatus string    `json:"confirmationStatus"`
	ConfirmedAt        time.Time `json:"confirmedAt"`
	ProceedToExecution bool      `json:"proceedToExecution"`
	Message            string    `json:"message,omitempty"`
}

// ResolutionResult is the outcome of a proxy directory lookup. Not-found is
// a normal result with Verified=false, never an error.
type ResolutionResult struct {
	DestinationCountry string    `json:"destinationCountry"`
	ProxyType          string    `json:"proxyType"`
	ProxyValue         string    `json:"proxyValue"`
	Verified           bool      `json:"verified"`
	Name               string    `json:"name,omitempty"`
	Account            string    `json:"account,omitempty"`
	AgentID            string    `json:"agentId,omitempty"`
	ReasonCode         string    `json:"reasonCode,omitempty"`
	Reason             string    `json:"reason,omitempty"`
	ResolvedAt         time.Time `json:"resolvedAt"`
}

// StatusResult reports a payment's terminal status. Unknown UETRs come back
// as StatusNotFound because the dashboard treats that as a normal search
// outcome.
type StatusResult struct {
	UETR             string     `json:"uetr"`
	Status           string     `json:"status"`
	StatusReasonCode string     `json:"statusReasonCode,omitempty"`
	StatusReason     string     `json:"statusReason,omitempty"`
	InitiatedAt      *time.Time `json:"initiatedAt,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}
