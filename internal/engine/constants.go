package engine

import "time"

// DefaultQuoteTTL is the fixed validity window of a generated quote.
const DefaultQuoteTTL = 600 * time.Second

// Amount types for quote requests.
const (
	AmountTypeSource      = "SOURCE"
	AmountTypeDestination = "DESTINATION"
)

// Source-side provider fee treatments.
const (
	FeeTypeInvoiced = "INVOICED"
	FeeTypeDeducted = "DEDUCTED"
)

// Confirmation statuses.
const (
	ConfirmationConfirmed = "CONFIRMED"
	ConfirmationExpired   = "EXPIRED"
)

// Scheme message identifiers used in the synthesized trail.
const (
	MsgProxyLookupRequest  = "prxy.003.001.01"
	MsgProxyLookupResponse = "prxy.004.001.01"
	MsgCreditTransfer      = "pacs.008.001.08"
	MsgStatusReport        = "pacs.002.001.10"
)

// g20CostThresholdPct flags disclosures whose total cost meets the G20
// remittance target. Display-only, never an error condition.
const g20CostThresholdPct = 3.0

// Decimal places kept for amounts and rates.
const (
	amountScale = 2
	rateScale   = 6
)
