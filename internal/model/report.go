package model

import "encoding/json"

// Report is the assessment produced for a single URL.
// A Report is created fresh by each analysis and never shared between calls.
type Report struct {
	// RiskScore is the sum of fired rule weights, clamped to 0-100.
	RiskScore int `json:"risk_score"`

	// Verdict is the three-tier classification derived from RiskScore.
	Verdict Verdict `json:"verdict"`

	// ForensicReport lists the detection rules that fired, in detection order.
	ForensicReport []ForensicEntry `json:"forensic_report"`

	// NeutralOpinion is the narrative summary of the assessment.
	NeutralOpinion string `json:"neutral_opinion"`

	// Specs holds lexical structure facts about the URL.
	Specs Specs `json:"specs"`
}

// NewReport creates an empty Report with a non-nil forensic list, so that
// a clean URL serializes "forensic_report" as [] rather than null.
func NewReport() *Report {
	return &Report{
		ForensicReport: make([]ForensicEntry, 0),
	}
}

// AddEntry appends a forensic entry, keeping detection order.
func (r *Report) AddEntry(entry ForensicEntry) {
	r.ForensicReport = append(r.ForensicReport, entry)
}

// HasEntries reports whether any detection rule fired.
func (r *Report) HasEntries() bool {
	return len(r.ForensicReport) > 0
}

// EntriesByType returns the forensic entries of the given category.
func (r *Report) EntriesByType(entryType EntryType) []ForensicEntry {
	var entries []ForensicEntry
	for _, e := range r.ForensicReport {
		if e.Type == entryType {
			entries = append(entries, e)
		}
	}
	return entries
}

// EntryType is the category tag of a forensic entry.
type EntryType string

// Forensic entry categories.
const (
	EntryDeception  EntryType = "Deception"
	EntryStructure  EntryType = "Structure"
	EntryIdentity   EntryType = "Identity"
	EntryReputation EntryType = "Reputation"
)

// ForensicEntry records one detection rule firing.
//
// The JSON keys "obs" and "thought" are the names the scanner front-end reads.
type ForensicEntry struct {
	// Type is the category of the rule (Deception, Structure, ...).
	Type EntryType `json:"type"`

	// Observation is a short label for what was seen.
	Observation string `json:"obs"`

	// Rationale explains why the observation is suspicious.
	Rationale string `json:"thought"`
}

// Specs holds lexical structure facts about the normalized URL.
type Specs struct {
	// Length is the number of characters in the normalized URL.
	Length int `json:"length"`

	// HasHTTPS reports whether the URL starts with "https://".
	HasHTTPS Presence `json:"has_https"`

	// HasWWW reports whether the URL contains "www.".
	HasWWW Presence `json:"has_www"`

	// HasTLD reports whether the host looks like it ends in a TLD.
	HasTLD TLDShape `json:"has_tld"`
}

// Presence is a boolean rendered as "Detected" or "Missing".
type Presence bool

// String returns "Detected" or "Missing".
func (p Presence) String() string {
	if p {
		return "Detected"
	}
	return "Missing"
}

// MarshalJSON encodes the presence as its label.
func (p Presence) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts either the label or a JSON boolean.
func (p *Presence) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*p = Presence(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = s == "Detected"
	return nil
}

// TLDShape is a boolean rendered as "Standard" or "Non-Standard".
type TLDShape bool

// String returns "Standard" or "Non-Standard".
func (t TLDShape) String() string {
	if t {
		return "Standard"
	}
	return "Non-Standard"
}

// MarshalJSON encodes the TLD shape as its label.
func (t TLDShape) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts either the label or a JSON boolean.
func (t *TLDShape) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*t = TLDShape(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = s == "Standard"
	return nil
}
