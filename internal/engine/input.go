package engine

import (
	"github.com/shopspring/decimal"

	"github.com/crossgate/schemesim/internal/storage"
)

// QuoteRequest asks for FX offers on one corridor.
type QuoteRequest struct {
	SourceCountry  string          `json:"sourceCountry"`
	SourceCurrency string          `json:"sourceCurrency"`
	DestCountry    string          `json:"destCountry"`
	DestCurrency   string          `json:"destCurrency"`
	Amount         decimal.Decimal `json:"amount"`
	AmountType     string          `json:"amountType"` // SOURCE or DESTINATION
}

// SubmitParams carries everything PaymentLedger needs to record a payment.
// UETR is generated when empty. Resolution is nil when the proxy flow was
// skipped (direct account entry in the dashboard).
type SubmitParams struct {
	UETR                string              `json:"uetr,omitempty"`
	QuoteID             string              `json:"quoteId"`
	ExchangeRate        decimal.Decimal     `json:"exchangeRate"`
	SourceAmount        decimal.Decimal     `json:"sourceAmount"`
	SourceCurrency      string              `json:"sourceCurrency"`
	DestinationAmount   decimal.Decimal     `json:"destinationAmount"`
	DestinationCurrency string              `json:"destinationCurrency"`
	Debtor              storage.Participant `json:"debtor"`
	Creditor            storage.Participant `json:"creditor"`
	Resolution          *ResolutionResult   `json:"resolution,omitempty"`
	ScenarioCode        string              `json:"scenarioCode,omitempty"`
}
