package engine

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/crossgate/schemesim/internal/scenario"
)

// ProxyResolutionSimulator stands in for the scheme's proxy directory:
// mobile numbers, national ids and VPAs resolve to recipient identities.
// Lookups are deterministic in their inputs so repeated resolutions are
// idempotent and the dashboard can cache them.
type ProxyResolutionSimulator struct {
	clock Clock
}

// NewProxyResolutionSimulator creates a directory simulator.
func NewProxyResolutionSimulator(clock Clock) *ProxyResolutionSimulator {
	return &ProxyResolutionSimulator{clock: clock}
}

var recipientGivenNames = []string{
	"Siti", "Budi", "Dewi", "Arif", "Nur", "Ketut", "Somchai", "Malee",
	"Juan", "Maria", "Wei", "Mei", "Rajesh", "Priya", "Ahmad", "Aisyah",
}

var recipientFamilyNames = []string{
	"Rahayu", "Santoso", "Wijaya", "Hartono", "Saetang", "Chaiyasit",
	"Dela Cruz", "Santos", "Tan", "Lim", "Sharma", "Patel", "Abdullah", "Hassan",
}

var destinationBanks = map[string][]string{
	"ID": {"BMRIIDJAXXX", "BNINIDJAXXX", "BRINIDJAXXX"},
	"TH": {"BKKBTHBKXXX", "KASITHBKXXX", "SICOTHBKXXX"},
	"PH": {"BOPIPHMMXXX", "BNORPHMMXXX", "MBTCPHMMXXX"},
	"SG": {"DBSSSGSGXXX", "OCBCSGSGXXX", "UOVBSGSGXXX"},
	"IN": {"SBININBBXXX", "HDFCINBBXXX", "ICICINBBXXX"},
}

// Resolve looks up a destination proxy. A scenario entry staged at
// resolution produces that entry's failure deterministically; otherwise the
// proxy resolves to a synthesized identity. Not-found and scenario failures
// are normal results with Verified=false, never errors.
func (pr *ProxyResolutionSimulator) Resolve(destCountry, proxyType, proxyValue, scenarioCode string) ResolutionResult {
	now := pr.clock().UTC()
	result := ResolutionResult{
		DestinationCountry: strings.ToUpper(strings.TrimSpace(destCountry)),
		ProxyType:          strings.ToUpper(strings.TrimSpace(proxyType)),
		ProxyValue:         strings.TrimSpace(proxyValue),
		ResolvedAt:         now,
	}

	if e, ok := scenario.ForStage(scenarioCode, scenario.StageResolution); ok {
		result.Verified = false
		result.ReasonCode = e.ReasonCode
		result.Reason = e.Description
		return result
	}

	if result.ProxyValue == "" {
		result.Verified = false
		result.ReasonCode = "BE23"
		result.Reason = "empty proxy value"
		return result
	}

	banks, ok := destinationBanks[result.DestinationCountry]
	if !ok {
		result.Verified = false
		result.ReasonCode = "RR04"
		result.Reason = fmt.Sprintf("no participating banks in country %s", result.DestinationCountry)
		return result
	}

	// Same proxy, same identity: everything below derives from one hash of
	// the lookup inputs.
	h := fnv.New64a()
	h.Write([]byte(result.DestinationCountry))
	h.Write([]byte{0})
	h.Write([]byte(result.ProxyType))
	h.Write([]byte{0})
	h.Write([]byte(result.ProxyValue))
	seed := h.Sum64()

	given := recipientGivenNames[seed%uint64(len(recipientGivenNames))]
	family := recipientFamilyNames[(seed>>8)%uint64(len(recipientFamilyNames))]

	result.Verified = true
	result.Name = given + " " + family
	result.Account = fmt.Sprintf("%010d", seed%1e10)
	result.AgentID = banks[(seed>>16)%uint64(len(banks))]
	return result
}
