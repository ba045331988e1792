package engine

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Provider is one simulated liquidity provider on a corridor. Spread is
// drawn per quote from [SpreadBpsMin, SpreadBpsMax]; the improvement fields
// strictly reduce the effective spread.
type Provider struct {
	ID                     string
	Name                   string
	AgentID                string
	SpreadBpsMin           int64
	SpreadBpsMax           int64
	TierImprovementBps     int64
	ProviderImprovementBps int64
	FeeFlat                decimal.Decimal // flat part, destination currency
	FeeBps                 int64           // bps part of destination amount
}

// Corridor is one (source country/currency, destination country/currency)
// pair the simulator can quote. MidRate is the mid-market benchmark;
// MaxSourceAmount is the scheme ceiling, which clamps rather than rejects.
type Corridor struct {
	SourceCountry   string
	SourceCurrency  string
	DestCountry     string
	DestCurrency    string
	MidRate         decimal.Decimal
	MaxSourceAmount decimal.Decimal
	Providers       []Provider
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Reference corridors for the demo scheme. Mid rates are plausible ASEAN
// figures, not live market data.
var corridors = map[string]Corridor{
	corridorKey("SG", "SGD", "ID", "IDR"): {
		SourceCountry: "SG", SourceCurrency: "SGD",
		DestCountry: "ID", DestCurrency: "IDR",
		MidRate:         dec("12245.50"),
		MaxSourceAmount: dec("200000"),
		Providers: []Provider{
			{
				ID: "LP-SEABRIDGE", Name: "SeaBridge FX", AgentID: "SBFXSGSGXXX",
				SpreadBpsMin: 35, SpreadBpsMax: 80,
				TierImprovementBps: 5, ProviderImprovementBps: 10,
				FeeFlat: dec("15000"), FeeBps: 8,
			},
			{
				ID: "LP-MERLION", Name: "Merlion Remit", AgentID: "MLRMSGSGXXX",
				SpreadBpsMin: 25, SpreadBpsMax: 60,
				TierImprovementBps: 8, ProviderImprovementBps: 4,
				FeeFlat: dec("22500"), FeeBps: 5,
			},
			{
				ID: "LP-GARUDA", Name: "Garuda Clearing", AgentID: "GRDCIDJAXXX",
				SpreadBpsMin: 45, SpreadBpsMax: 95,
				TierImprovementBps: 3, ProviderImprovementBps: 12,
				FeeFlat: dec("9000"), FeeBps: 12,
			},
		},
	},
	corridorKey("SG", "SGD", "TH", "THB"): {
		SourceCountry: "SG", SourceCurrency: "SGD",
		DestCountry: "TH", DestCurrency: "THB",
		MidRate:         dec("26.45"),
		MaxSourceAmount: dec("200000"),
		Providers: []Provider{
			{
				ID: "LP-SEABRIDGE", Name: "SeaBridge FX", AgentID: "SBFXSGSGXXX",
				SpreadBpsMin: 30, SpreadBpsMax: 70,
				TierImprovementBps: 5, ProviderImprovementBps: 10,
				FeeFlat: dec("45"), FeeBps: 10,
			},
			{
				ID: "LP-SIAMPAY", Name: "SiamPay Gateway", AgentID: "SMPYTHBKXXX",
				SpreadBpsMin: 20, SpreadBpsMax: 55,
				TierImprovementBps: 6, ProviderImprovementBps: 6,
				FeeFlat: dec("30"), FeeBps: 15,
			},
		},
	},
	corridorKey("SG", "SGD", "PH", "PHP"): {
		SourceCountry: "SG", SourceCurrency: "SGD",
		DestCountry: "PH", DestCurrency: "PHP",
		MidRate:         dec("43.80"),
		MaxSourceAmount: dec("150000"),
		Providers: []Provider{
			{
				ID: "LP-MERLION", Name: "Merlion Remit", AgentID: "MLRMSGSGXXX",
				SpreadBpsMin: 30, SpreadBpsMax: 75,
				TierImprovementBps: 8, ProviderImprovementBps: 4,
				FeeFlat: dec("75"), FeeBps: 10,
			},
			{
				ID: "LP-BAYANPAY", Name: "BayanPay", AgentID: "BYPYPHMMXXX",
				SpreadBpsMin: 40, SpreadBpsMax: 90,
				TierImprovementBps: 4, ProviderImprovementBps: 9,
				FeeFlat: dec("50"), FeeBps: 18,
			},
		},
	},
	corridorKey("MY", "MYR", "SG", "SGD"): {
		SourceCountry: "MY", SourceCurrency: "MYR",
		DestCountry: "SG", DestCurrency: "SGD",
		MidRate:         dec("0.3052"),
		MaxSourceAmount: dec("500000"),
		Providers: []Provider{
			{
				ID: "LP-HORNBILL", Name: "Hornbill Exchange", AgentID: "HBEXMYKLXXX",
				SpreadBpsMin: 25, SpreadBpsMax: 65,
				TierImprovementBps: 5, ProviderImprovementBps: 7,
				FeeFlat: dec("4.50"), FeeBps: 10,
			},
			{
				ID: "LP-SEABRIDGE", Name: "SeaBridge FX", AgentID: "SBFXSGSGXXX",
				SpreadBpsMin: 35, SpreadBpsMax: 80,
				TierImprovementBps: 5, ProviderImprovementBps: 10,
				FeeFlat: dec("3.00"), FeeBps: 14,
			},
		},
	},
	corridorKey("SG", "SGD", "IN", "INR"): {
		SourceCountry: "SG", SourceCurrency: "SGD",
		DestCountry: "IN", DestCurrency: "INR",
		MidRate:         dec("64.90"),
		MaxSourceAmount: dec("250000"),
		Providers: []Provider{
			{
				ID: "LP-MERLION", Name: "Merlion Remit", AgentID: "MLRMSGSGXXX",
				SpreadBpsMin: 30, SpreadBpsMax: 70,
				TierImprovementBps: 8, ProviderImprovementBps: 4,
				FeeFlat: dec("120"), FeeBps: 8,
			},
			{
				ID: "LP-INDUSGATE", Name: "IndusGate Payments", AgentID: "IDGPINBBXXX",
				SpreadBpsMin: 20, SpreadBpsMax: 60,
				TierImprovementBps: 7, ProviderImprovementBps: 8,
				FeeFlat: dec("90"), FeeBps: 12,
			},
		},
	},
}

func corridorKey(srcCountry, srcCcy, dstCountry, dstCcy string) string {
	return strings.ToUpper(srcCountry) + ":" + strings.ToUpper(srcCcy) +
		"->" + strings.ToUpper(dstCountry) + ":" + strings.ToUpper(dstCcy)
}

// lookupCorridor returns the corridor configuration for a request, if any.
func lookupCorridor(srcCountry, srcCcy, dstCountry, dstCcy string) (Corridor, bool) {
	c, ok := corridors[corridorKey(srcCountry, srcCcy, dstCountry, dstCcy)]
	return c, ok
}
