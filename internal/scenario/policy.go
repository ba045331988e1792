package scenario

import (
	"sort"
	"strings"
)

// Stage identifies where in the payment flow an injected outcome takes effect.
type Stage string

const (
	StageResolution   Stage = "resolution"
	StageConfirmation Stage = "confirmation"
	StageSubmission   Stage = "submission"
)

// Happy is the scenario code for the default successful path. An empty
// scenario code is treated the same way.
const Happy = "happy"

// DefaultReasonCode is the catch-all rejection code for scenarios that do not
// map to a more specific ISO reason.
const DefaultReasonCode = "RJCT"

// Entry describes one injected outcome: the stage it fires at, the ISO-style
// status reason code it produces and the human-readable description shown in
// the dashboard.
type Entry struct {
	Code        string `json:"code"`
	Stage       Stage  `json:"stage"`
	ReasonCode  string `json:"reasonCode"`
	Description string `json:"description"`
}

// The full outcome table. Every unhappy-path behavior in the simulator traces
// back to this one map; new scenarios extend it rather than introducing ad
// hoc reason strings at call sites.
var entries = map[string]Entry{
	"be23": {
		Code:        "be23",
		Stage:       StageResolution,
		ReasonCode:  "BE23",
		Description: "Account proxy invalid: the proxy is not registered with any account",
	},
	"ac04": {
		Code:        "ac04",
		Stage:       StageResolution,
		ReasonCode:  "AC04",
		Description: "Creditor account closed",
	},
	"tm01": {
		Code:        "tm01",
		Stage:       StageConfirmation,
		ReasonCode:  "TM01",
		Description: "Quote validity window elapsed before confirmation",
	},
	"ab04": {
		Code:        "ab04",
		Stage:       StageSubmission,
		ReasonCode:  "AB04",
		Description: "Settlement aborted: exchange rate no longer matches the locked quote",
	},
	"dupl": {
		Code:        "dupl",
		Stage:       StageSubmission,
		ReasonCode:  "DUPL",
		Description: "Duplicate payment detected by the scheme",
	},
	"am04": {
		Code:        "am04",
		Stage:       StageSubmission,
		ReasonCode:  "AM04",
		Description: "Insufficient funds on the debtor account",
	},
	"am02": {
		Code:        "am02",
		Stage:       StageSubmission,
		ReasonCode:  "AM02",
		Description: "Amount exceeds the allowed corridor limit",
	},
	"rr04": {
		Code:        "rr04",
		Stage:       StageSubmission,
		ReasonCode:  "RR04",
		Description: "Payment blocked for regulatory reasons",
	},
	"reject": {
		Code:        "reject",
		Stage:       StageSubmission,
		ReasonCode:  DefaultReasonCode,
		Description: "Payment rejected by the scheme",
	},
}

// Lookup returns the policy entry for a scenario code. The second return is
// false for the happy path (empty code or "happy") and for unknown codes.
func Lookup(code string) (Entry, bool) {
	if IsHappy(code) {
		return Entry{}, false
	}
	e, ok := entries[normalize(code)]
	return e, ok
}

// ForStage returns the entry for code only when it fires at the given stage.
func ForStage(code string, stage Stage) (Entry, bool) {
	e, ok := Lookup(code)
	if !ok || e.Stage != stage {
		return Entry{}, false
	}
	return e, true
}

// ByReasonCode returns the entry carrying the given ISO reason code.
func ByReasonCode(reason string) (Entry, bool) {
	for _, e := range entries {
		if e.ReasonCode == strings.ToUpper(strings.TrimSpace(reason)) {
			return e, true
		}
	}
	return Entry{}, false
}

// IsHappy reports whether the code selects the successful path.
func IsHappy(code string) bool {
	n := normalize(code)
	return n == "" || n == Happy
}

// Codes returns every scenario code in the table, sorted.
func Codes() []string {
	out := make([]string, 0, len(entries))
	for c := range entries {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
