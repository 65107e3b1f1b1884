package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// TestNewReport tests the Report constructor.
func TestNewReport(t *testing.T) {
	t.Parallel()

	t.Run("starts with empty forensic list", func(t *testing.T) {
		t.Parallel()
		r := NewReport()
		if r.ForensicReport == nil {
			t.Fatal("expected non-nil forensic list")
		}
		if r.HasEntries() {
			t.Error("expected no entries")
		}
	})

	t.Run("clean report serializes forensic list as array", func(t *testing.T) {
		t.Parallel()
		data, err := json.Marshal(NewReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(data), `"forensic_report":[]`) {
			t.Errorf("expected empty array, got %s", data)
		}
	})
}

// TestReportEntries tests adding and filtering forensic entries.
func TestReportEntries(t *testing.T) {
	t.Parallel()

	r := NewReport()
	r.AddEntry(ForensicEntry{Type: EntryStructure, Observation: "High Entropy"})
	r.AddEntry(ForensicEntry{Type: EntryIdentity, Observation: "Brand Mimicry"})
	r.AddEntry(ForensicEntry{Type: EntryStructure, Observation: "Host Masking (@)"})

	t.Run("keeps detection order", func(t *testing.T) {
		t.Parallel()
		if r.ForensicReport[0].Observation != "High Entropy" {
			t.Errorf("expected first entry High Entropy, got %q", r.ForensicReport[0].Observation)
		}
		if r.ForensicReport[2].Observation != "Host Masking (@)" {
			t.Errorf("expected last entry Host Masking (@), got %q", r.ForensicReport[2].Observation)
		}
	})

	t.Run("filters by type", func(t *testing.T) {
		t.Parallel()
		structure := r.EntriesByType(EntryStructure)
		if len(structure) != 2 {
			t.Errorf("expected 2 structure entries, got %d", len(structure))
		}
		if len(r.EntriesByType(EntryReputation)) != 0 {
			t.Error("expected no reputation entries")
		}
	})
}

// TestReportJSON tests the wire format of a Report.
func TestReportJSON(t *testing.T) {
	t.Parallel()

	r := NewReport()
	r.RiskScore = 100
	r.Verdict = VerdictAnomalous
	r.NeutralOpinion = "CRITICAL: test"
	r.AddEntry(ForensicEntry{
		Type:        EntryReputation,
		Observation: "Risky TLD",
		Rationale:   "Domain uses an extension with high correlation to phishing.",
	})
	r.Specs = Specs{Length: 24, HasHTTPS: false, HasWWW: true, HasTLD: true}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("uses snake case top-level keys", func(t *testing.T) {
		t.Parallel()
		for _, key := range []string{"risk_score", "verdict", "forensic_report", "neutral_opinion", "specs"} {
			if _, ok := decoded[key]; !ok {
				t.Errorf("expected key %q in %s", key, data)
			}
		}
	})

	t.Run("verdict is a name", func(t *testing.T) {
		t.Parallel()
		if decoded["verdict"] != "Anomalous" {
			t.Errorf("expected Anomalous, got %v", decoded["verdict"])
		}
	})

	t.Run("forensic entries use obs and thought", func(t *testing.T) {
		t.Parallel()
		entries, ok := decoded["forensic_report"].([]interface{})
		if !ok || len(entries) != 1 {
			t.Fatalf("expected one entry, got %v", decoded["forensic_report"])
		}
		entry, ok := entries[0].(map[string]interface{})
		if !ok {
			t.Fatalf("expected object entry, got %T", entries[0])
		}
		if entry["type"] != "Reputation" || entry["obs"] != "Risky TLD" {
			t.Errorf("unexpected entry %v", entry)
		}
		if _, ok := entry["thought"]; !ok {
			t.Error("expected thought key")
		}
	})

	t.Run("specs use labels", func(t *testing.T) {
		t.Parallel()
		specs, ok := decoded["specs"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected specs object, got %T", decoded["specs"])
		}
		if specs["has_https"] != "Missing" {
			t.Errorf("expected has_https Missing, got %v", specs["has_https"])
		}
		if specs["has_www"] != "Detected" {
			t.Errorf("expected has_www Detected, got %v", specs["has_www"])
		}
		if specs["has_tld"] != "Standard" {
			t.Errorf("expected has_tld Standard, got %v", specs["has_tld"])
		}
		if specs["length"] != float64(24) {
			t.Errorf("expected length 24, got %v", specs["length"])
		}
	})

	t.Run("round trips", func(t *testing.T) {
		t.Parallel()
		var back Report
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if back.Verdict != VerdictAnomalous || back.Specs.HasWWW != true || back.Specs.HasHTTPS != false {
			t.Errorf("round trip mismatch: %+v", back)
		}
	})
}

// TestPresenceUnmarshal tests that labels and booleans are both accepted.
func TestPresenceUnmarshal(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected Presence
	}{
		{`"Detected"`, true},
		{`"Missing"`, false},
		{`true`, true},
		{`false`, false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			var p Presence
			if err := json.Unmarshal([]byte(tc.input), &p); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, p)
			}
		})
	}
}

// TestTLDShapeString tests the TLD shape labels.
func TestTLDShapeString(t *testing.T) {
	t.Parallel()

	if TLDShape(true).String() != "Standard" {
		t.Errorf("expected Standard, got %q", TLDShape(true).String())
	}
	if TLDShape(false).String() != "Non-Standard" {
		t.Errorf("expected Non-Standard, got %q", TLDShape(false).String())
	}
}

// TestAnalysisError tests the error variant of an analysis.
func TestAnalysisError(t *testing.T) {
	t.Parallel()

	cause := errors.New("invalid port")
	err := NewAnalysisError("https://a.com:x", cause)

	t.Run("message is fixed", func(t *testing.T) {
		t.Parallel()
		if err.Error() != "Malformed URL Structure" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("matches ErrMalformedURL", func(t *testing.T) {
		t.Parallel()
		if !errors.Is(err, ErrMalformedURL) {
			t.Error("expected errors.Is to match ErrMalformedURL")
		}
	})

	t.Run("unwraps to cause", func(t *testing.T) {
		t.Parallel()
		if !errors.Is(err, cause) {
			t.Error("expected errors.Is to match cause")
		}
	})

	t.Run("is reachable with errors.As", func(t *testing.T) {
		t.Parallel()
		var wrapped error = err
		var target *AnalysisError
		if !errors.As(wrapped, &target) {
			t.Fatal("expected errors.As to succeed")
		}
		if target.Input != "https://a.com:x" {
			t.Errorf("unexpected input %q", target.Input)
		}
	})
}
