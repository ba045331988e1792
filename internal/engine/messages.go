package engine

import (
	"time"

	"github.com/crossgate/schemesim/internal/storage"
)

// settlementLatency spaces the synthesized message timestamps so the trail
// reads like a real exchange: request strictly before response, instruction
// strictly before status report.
const settlementLatency = 150 * time.Millisecond

const schemeActor = "scheme"

// buildMessageTrail synthesizes the protocol messages for a payment: the
// proxy lookup pair when the resolution flow ran, the credit-transfer
// instruction, and the final status report. Timestamps strictly increase
// from InitiatedAt.
func buildMessageTrail(p storage.Payment, res *ResolutionResult) []storage.MessageTrailEntry {
	at := p.InitiatedAt
	next := func() time.Time {
		at = at.Add(settlementLatency)
		return at
	}

	var trail []storage.MessageTrailEntry

	if res != nil {
		trail = append(trail, storage.MessageTrailEntry{
			UETR:        p.UETR,
			MessageType: MsgProxyLookupRequest,
			Direction:   storage.DirectionOutbound,
			Actor:       p.Debtor.AgentID,
			Timestamp:   p.InitiatedAt,
			Payload: storage.MessagePayload{
				MessageType: MsgProxyLookupRequest,
				Fields: map[string]string{
					"proxyType":          res.ProxyType,
					"proxyValue":         res.ProxyValue,
					"destinationCountry": res.DestinationCountry,
				},
			},
		})
		respFields := map[string]string{
			"verified": boolField(res.Verified),
		}
		if res.Verified {
			respFields["creditorName"] = res.Name
			respFields["creditorAccount"] = res.Account
			respFields["creditorAgent"] = res.AgentID
		} else {
			respFields["reasonCode"] = res.ReasonCode
			respFields["reason"] = res.Reason
		}
		trail = append(trail, storage.MessageTrailEntry{
			UETR:        p.UETR,
			MessageType: MsgProxyLookupResponse,
			Direction:   storage.DirectionInbound,
			Actor:       schemeActor,
			Timestamp:   next(),
			Payload: storage.MessagePayload{
				MessageType: MsgProxyLookupResponse,
				Fields:      respFields,
			},
		})
	}

	instructionAt := p.InitiatedAt
	if res != nil {
		instructionAt = next()
	}
	trail = append(trail, storage.MessageTrailEntry{
		UETR:        p.UETR,
		MessageType: MsgCreditTransfer,
		Direction:   storage.DirectionOutbound,
		Actor:       p.Debtor.AgentID,
		Timestamp:   instructionAt,
		Payload: storage.MessagePayload{
			MessageType: MsgCreditTransfer,
			Fields: map[string]string{
				"uetr":                p.UETR,
				"debtorName":          p.Debtor.Name,
				"debtorAccount":       p.Debtor.Account,
				"debtorAgent":         p.Debtor.AgentID,
				"creditorName":        p.Creditor.Name,
				"creditorAccount":     p.Creditor.Account,
				"creditorAgent":       p.Creditor.AgentID,
				"interbankAmount":     p.SourceAmount.String(),
				"currency":            p.SourceCurrency,
				"settlementAmount":    p.DestinationAmount.String(),
				"settlementCurrency":  p.DestinationCurrency,
				"exchangeRate":        p.ExchangeRate.String(),
				"chargeBearer":        "DEBT",
				"settlementPriority":  "HIGH",
			},
		},
	})

	statusFields := map[string]string{
		"uetr":   p.UETR,
		"status": p.Status,
	}
	if p.Status == storage.StatusRejected {
		statusFields["reasonCode"] = p.StatusReasonCode
		statusFields["reason"] = p.StatusReason
	}
	trail = append(trail, storage.MessageTrailEntry{
		UETR:        p.UETR,
		MessageType: MsgStatusReport,
		Direction:   storage.DirectionInbound,
		Actor:       schemeActor,
		Timestamp:   next(),
		Payload: storage.MessagePayload{
			MessageType: MsgStatusReport,
			Fields:      statusFields,
		},
	})

	return trail
}

// buildEvents derives the dashboard's activity feed from the terminal
// record: initiation, optional proxy verification, scheme acceptance, and
// the final outcome.
func buildEvents(p storage.Payment) []storage.PaymentEvent {
	at := p.InitiatedAt
	next := func() time.Time {
		at = at.Add(settlementLatency)
		return at
	}

	events := []storage.PaymentEvent{{
		UETR:        p.UETR,
		Status:      storage.StatusPending,
		Description: "payment initiated",
		Timestamp:   p.InitiatedAt,
	}}

	if p.ProxyResolved {
		events = append(events, storage.PaymentEvent{
			UETR:        p.UETR,
			Status:      storage.StatusPending,
			Description: "creditor proxy verified",
			Timestamp:   next(),
		})
	}

	events = append(events, storage.PaymentEvent{
		UETR:        p.UETR,
		Status:      storage.StatusAccepted,
		Description: "credit transfer accepted by scheme",
		Timestamp:   next(),
	})

	final := storage.PaymentEvent{
		UETR:      p.UETR,
		Status:    p.Status,
		Timestamp: next(),
	}
	if p.Status == storage.StatusRejected {
		final.Description = p.StatusReasonCode + ": " + p.StatusReason
	} else {
		final.Description = "settlement completed"
	}
	return append(events, final)
}

func boolField(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
