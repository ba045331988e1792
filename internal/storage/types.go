package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Terminal payment statuses. ACSC and ACCC are both terminal success; the
// distinction is whether the full proxy-resolution flow ran.
const (
	StatusPending   = "PDNG"
	StatusAccepted  = "ACSP"
	StatusSettled   = "ACSC"
	StatusCompleted = "ACCC"
	StatusRejected  = "RJCT"
	StatusNotFound  = "NOT_FOUND"
)

// Message trail directions, from the point of view of the source provider.
const (
	DirectionOutbound = "outbound"
	DirectionInbound  = "inbound"
)

// Quote is one liquidity provider's FX offer for a corridor. Immutable once
// created; validity is the derived predicate now < ExpiresAt, never a state
// transition.
type Quote struct {
	QuoteID                    string          `json:"quoteId"`
	ProviderID                 string          `json:"providerId"`
	ProviderName               string          `json:"providerName"`
	SourceCountry              string          `json:"sourceCountry"`
	SourceCurrency             string          `json:"sourceCurrency"`
	DestCountry                string          `json:"destCountry"`
	DestCurrency               string          `json:"destCurrency"`
	BaseRate                   decimal.Decimal `json:"baseRate"`
	SpreadBps                  int64           `json:"spreadBps"`
	TierImprovementBps         int64           `json:"tierImprovementBps"`
	ProviderImprovementBps     int64           `json:"providerImprovementBps"`
	ExchangeRate               decimal.Decimal `json:"exchangeRate"`
	SourceInterbankAmount      decimal.Decimal `json:"sourceInterbankAmount"`
	DestinationInterbankAmount decimal.Decimal `json:"destinationInterbankAmount"`
	DestinationProviderFee     decimal.Decimal `json:"destinationProviderFee"`
	CreditorAccountAmount      decimal.Decimal `json:"creditorAccountAmount"`
	CappedToMaxAmount          bool            `json:"cappedToMaxAmount"`
	CreatedAt                  time.Time       `json:"createdAt"`
	ExpiresAt                  time.Time       `json:"expiresAt"`
}

// Expired reports whether the quote is no longer valid at the given instant.
func (q Quote) Expired(now time.Time) bool {
	return !now.Before(q.ExpiresAt)
}

// Participant is one party on a payment leg.
type Participant struct {
	Name    string `json:"name"`
	Account string `json:"account"`
	AgentID string `json:"agentId"`
}

// Payment is the terminal record for one UETR. Append-only: the status is
// decided at submission time and never transitions afterwards.
type Payment struct {
	UETR                string          `json:"uetr"`
	QuoteID             string          `json:"quoteId"`
	ExchangeRate        decimal.Decimal `json:"exchangeRate"`
	SourceAmount        decimal.Decimal `json:"sourceAmount"`
	SourceCurrency      string          `json:"sourceCurrency"`
	DestinationAmount   decimal.Decimal `json:"destinationAmount"`
	DestinationCurrency string          `json:"destinationCurrency"`
	Debtor              Participant     `json:"debtor"`
	Creditor            Participant     `json:"creditor"`
	Status              string          `json:"status"`
	StatusReasonCode    string          `json:"statusReasonCode,omitempty"`
	StatusReason        string          `json:"statusReason,omitempty"`
	ScenarioCode        string          `json:"scenarioCode,omitempty"`
	ProxyResolved       bool            `json:"proxyResolved"`
	InitiatedAt         time.Time       `json:"initiatedAt"`
	CompletedAt         *time.Time      `json:"completedAt,omitempty"`
}

// MessagePayload is a scheme-message-like rendering: a message type tag plus
// flat fields. Enough structure for the dashboard to render a readable trace
// without wire-level schema fidelity.
type MessagePayload struct {
	MessageType string            `json:"messageType"`
	Fields      map[string]string `json:"fields"`
}

// MessageTrailEntry is one simulated protocol message for a payment.
type MessageTrailEntry struct {
	UETR        string         `json:"uetr"`
	MessageType string         `json:"messageType"`
	Direction   string         `json:"direction"`
	Actor       string         `json:"actor"`
	Timestamp   time.Time      `json:"timestamp"`
	Payload     MessagePayload `json:"payload"`
}

// PaymentEvent is one lifecycle event for the dashboard's activity feed.
type PaymentEvent struct {
	UETR        string    `json:"uetr"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
