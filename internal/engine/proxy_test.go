package engine

import (
	"testing"
)

func TestResolveDeterministicIdentity(t *testing.T) {
	eng, _ := newTestEngine(t)

	first := eng.Proxy.Resolve("ID", "MOBILE", "+62-812-5550-1234", "")
	if !first.Verified {
		t.Fatalf("happy-path resolution failed: %+v", first)
	}
	if first.Name == "" || first.Account == "" || first.AgentID == "" {
		t.Fatalf("identity fields must be populated: %+v", first)
	}

	// Same proxy, same identity: lookups are idempotent for UI caching.
	second := eng.Proxy.Resolve("ID", "MOBILE", "+62-812-5550-1234", "")
	if second.Name != first.Name || second.Account != first.Account || second.AgentID != first.AgentID {
		t.Errorf("repeated lookup changed identity: %+v vs %+v", first, second)
	}

	other := eng.Proxy.Resolve("ID", "MOBILE", "+62-812-5550-9999", "")
	if other.Account == first.Account && other.Name == first.Name {
		t.Error("distinct proxies should not share the full identity")
	}
}

func TestResolveScenarioFailures(t *testing.T) {
	eng, _ := newTestEngine(t)

	tests := []struct {
		name       string
		code       string
		wantReason string
	}{
		{name: "invalid proxy", code: "be23", wantReason: "BE23"},
		{name: "closed account", code: "ac04", wantReason: "AC04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := eng.Proxy.Resolve("ID", "MOBILE", "+62-812-5550-1234", tt.code)
			if res.Verified {
				t.Fatal("scenario failure must not verify")
			}
			if res.ReasonCode != tt.wantReason {
				t.Errorf("reason code = %q, want %q", res.ReasonCode, tt.wantReason)
			}
			if res.Reason == "" {
				t.Error("failure must carry a description")
			}
		})
	}
}

func TestResolveSubmissionScenarioDoesNotFireAtResolution(t *testing.T) {
	eng, _ := newTestEngine(t)

	res := eng.Proxy.Resolve("ID", "MOBILE", "+62-812-5550-1234", "am04")
	if !res.Verified {
		t.Errorf("submission-stage scenario fired at resolution: %+v", res)
	}
}

func TestResolveNotFoundIsValueNotError(t *testing.T) {
	eng, _ := newTestEngine(t)

	empty := eng.Proxy.Resolve("ID", "MOBILE", "", "")
	if empty.Verified {
		t.Error("empty proxy must not verify")
	}
	if empty.ReasonCode != "BE23" {
		t.Errorf("empty proxy reason = %q, want BE23", empty.ReasonCode)
	}

	offNet := eng.Proxy.Resolve("XX", "MOBILE", "+1-555-0100", "")
	if offNet.Verified {
		t.Error("non-participating country must not verify")
	}
	if offNet.ReasonCode == "" || offNet.Reason == "" {
		t.Errorf("non-participating country must carry a reason: %+v", offNet)
	}
}
