package engine

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/crossgate/schemesim/internal/scenario"
	"github.com/crossgate/schemesim/internal/storage"
)

func testSubmitParams(scenarioCode string, res *ResolutionResult) SubmitParams {
	return SubmitParams{
		QuoteID:             "q-test",
		ExchangeRate:        decimal.RequireFromString("12200.50"),
		SourceAmount:        decimal.RequireFromString("8.20"),
		SourceCurrency:      "SGD",
		DestinationAmount:   decimal.RequireFromString("100044.10"),
		DestinationCurrency: "IDR",
		Debtor: storage.Participant{
			Name:    "Tan Wei Ming",
			Account: "0412938475",
			AgentID: "DBSSSGSGXXX",
		},
		Creditor: storage.Participant{
			Name:    "Siti Rahayu",
			Account: "8837261504",
			AgentID: "BMRIIDJAXXX",
		},
		Resolution:   res,
		ScenarioCode: scenarioCode,
	}
}

func verifiedResolution() *ResolutionResult {
	return &ResolutionResult{
		DestinationCountry: "ID",
		ProxyType:          "MOBILE",
		ProxyValue:         "+62-812-5550-1234",
		Verified:           true,
		Name:               "Siti Rahayu",
		Account:            "8837261504",
		AgentID:            "BMRIIDJAXXX",
	}
}

func TestSubmitHappyPath(t *testing.T) {
	eng, now := newTestEngine(t)

	p, err := eng.Ledger.Submit(testSubmitParams("happy", verifiedResolution()))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if p.UETR == "" {
		t.Error("uetr must be generated when absent")
	}
	if p.Status != storage.StatusSettled && p.Status != storage.StatusCompleted {
		t.Errorf("status = %q, want terminal success", p.Status)
	}
	if p.StatusReasonCode != "" {
		t.Errorf("success must not carry a reason code, got %q", p.StatusReasonCode)
	}
	if !p.InitiatedAt.Equal(*now) {
		t.Errorf("InitiatedAt = %v, want %v", p.InitiatedAt, *now)
	}
	if p.CompletedAt == nil || !p.CompletedAt.After(p.InitiatedAt) {
		t.Error("CompletedAt must be set after InitiatedAt")
	}
}

func TestSubmitWithoutProxyFlowCompletesAsACCC(t *testing.T) {
	eng, _ := newTestEngine(t)

	p, err := eng.Ledger.Submit(testSubmitParams("", nil))
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != storage.StatusCompleted {
		t.Errorf("direct-account submission status = %q, want %q", p.Status, storage.StatusCompleted)
	}
}

func TestSubmitEveryScenarioCodeRejectsWithTableEntry(t *testing.T) {
	eng, _ := newTestEngine(t)

	for _, code := range scenario.Codes() {
		code := code
		t.Run(code, func(t *testing.T) {
			p, err := eng.Ledger.Submit(testSubmitParams(code, verifiedResolution()))
			if err != nil {
				t.Fatalf("Submit(%s) failed: %v", code, err)
			}
			entry, _ := scenario.Lookup(code)
			if p.Status != storage.StatusRejected {
				t.Errorf("status = %q, want RJCT", p.Status)
			}
			if p.StatusReasonCode != entry.ReasonCode {
				t.Errorf("reason = %q, want table entry %q", p.StatusReasonCode, entry.ReasonCode)
			}
			if p.StatusReason != entry.Description {
				t.Errorf("reason text = %q, want table entry %q", p.StatusReason, entry.Description)
			}
		})
	}
}

func TestSubmitDuplicateUETR(t *testing.T) {
	eng, _ := newTestEngine(t)

	params := testSubmitParams("happy", verifiedResolution())
	params.UETR = "11111111-2222-3333-4444-555555555555"

	first, err := eng.Ledger.Submit(params)
	if err != nil {
		t.Fatal(err)
	}

	params.ScenarioCode = "am04"
	if _, err := eng.Ledger.Submit(params); !errors.Is(err, ErrDuplicateUETR) {
		t.Fatalf("duplicate submit = %v, want ErrDuplicateUETR", err)
	}

	// The ledger record is identical to the first call's result.
	stored, err := eng.Ledger.GetPayment(params.UETR)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != first.Status || stored.StatusReasonCode != first.StatusReasonCode {
		t.Errorf("record changed after duplicate submit: %+v", stored)
	}
}

func TestMessageTrailShapeAndOrdering(t *testing.T) {
	eng, _ := newTestEngine(t)

	tests := []struct {
		name         string
		scenarioCode string
		resolution   *ResolutionResult
		wantLen      int
	}{
		{name: "happy with proxy", scenarioCode: "happy", resolution: verifiedResolution(), wantLen: 4},
		{name: "happy direct", scenarioCode: "", resolution: nil, wantLen: 2},
		{name: "rejected", scenarioCode: "am02", resolution: verifiedResolution(), wantLen: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := eng.Ledger.Submit(testSubmitParams(tt.scenarioCode, tt.resolution))
			if err != nil {
				t.Fatal(err)
			}
			trail, err := eng.Ledger.GetMessages(p.UETR)
			if err != nil {
				t.Fatal(err)
			}
			if len(trail) != tt.wantLen {
				t.Fatalf("trail length = %d, want %d", len(trail), tt.wantLen)
			}

			for i := 1; i < len(trail); i++ {
				if trail[i].Timestamp.Before(trail[i-1].Timestamp) {
					t.Errorf("trail not timestamp-sorted at %d", i)
				}
			}

			// Request-before-response pairs.
			if tt.resolution != nil {
				if trail[0].MessageType != MsgProxyLookupRequest || trail[1].MessageType != MsgProxyLookupResponse {
					t.Errorf("proxy pair out of order: %s, %s", trail[0].MessageType, trail[1].MessageType)
				}
				if !trail[0].Timestamp.Before(trail[1].Timestamp) {
					t.Error("proxy response must follow the request")
				}
			}

			instruction := trail[len(trail)-2]
			if instruction.MessageType != MsgCreditTransfer || instruction.Direction != storage.DirectionOutbound {
				t.Errorf("penultimate message = %s/%s, want outbound pacs.008", instruction.MessageType, instruction.Direction)
			}

			final := trail[len(trail)-1]
			if final.MessageType != MsgStatusReport || final.Direction != storage.DirectionInbound {
				t.Errorf("final message = %s/%s, want inbound pacs.002", final.MessageType, final.Direction)
			}
			if got := final.Payload.Fields["status"]; got != p.Status {
				t.Errorf("final status report carries %q, payment is %q", got, p.Status)
			}
			if p.Status == storage.StatusRejected {
				if final.Payload.Fields["reasonCode"] != p.StatusReasonCode {
					t.Errorf("rejection report reason = %q, want %q",
						final.Payload.Fields["reasonCode"], p.StatusReasonCode)
				}
			}
		})
	}
}

func TestEventsFeed(t *testing.T) {
	eng, _ := newTestEngine(t)

	p, err := eng.Ledger.Submit(testSubmitParams("rr04", verifiedResolution()))
	if err != nil {
		t.Fatal(err)
	}
	events, err := eng.Ledger.GetEvents(p.UETR)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) < 3 {
		t.Fatalf("expected at least 3 events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.Before(events[i-1].Timestamp) {
			t.Errorf("events not timestamp-sorted at %d", i)
		}
	}
	if events[0].Status != storage.StatusPending {
		t.Errorf("first event = %q, want PDNG", events[0].Status)
	}
	last := events[len(events)-1]
	if last.Status != p.Status {
		t.Errorf("last event status = %q, payment is %q", last.Status, p.Status)
	}
}

func TestGetStatusNotFoundSentinel(t *testing.T) {
	eng, _ := newTestEngine(t)

	res := eng.Ledger.GetStatus("no-such-uetr")
	if res.Status != storage.StatusNotFound {
		t.Fatalf("status = %q, want NOT_FOUND sentinel", res.Status)
	}
	if res.UETR != "no-such-uetr" {
		t.Errorf("sentinel should echo the uetr, got %q", res.UETR)
	}
}

func TestGetStatusReflectsLedger(t *testing.T) {
	eng, _ := newTestEngine(t)

	p, err := eng.Ledger.Submit(testSubmitParams("ab04", verifiedResolution()))
	if err != nil {
		t.Fatal(err)
	}
	res := eng.Ledger.GetStatus(p.UETR)
	if res.Status != storage.StatusRejected || res.StatusReasonCode != "AB04" {
		t.Errorf("GetStatus = %+v, want RJCT/AB04", res)
	}
	if res.InitiatedAt == nil || res.CompletedAt == nil {
		t.Error("status result should carry timestamps")
	}
}
