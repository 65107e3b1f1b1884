package model

import (
	"encoding/json"
	"fmt"
)

// Verdict represents the coarse classification of a scanned URL.
//
// Design decision: We use iota-based constants rather than string constants
// for cheap comparisons and ordering. The String() method and the JSON
// methods provide the human-readable names used on the wire.
type Verdict int

const (
	// VerdictStandard means the URL looks like ordinary web architecture.
	// Risk score 0-25.
	VerdictStandard Verdict = iota

	// VerdictIrregular means some signals fired but not enough to call the
	// URL deceptive. Risk score 26-65.
	VerdictIrregular

	// VerdictAnomalous means the URL carries strong phishing signals.
	// Risk score 66-100.
	VerdictAnomalous
)

// Verdict thresholds. These intentionally differ from the opinion
// thresholds (30/70), so a score of 66-70 is reported as a WARNING opinion
// with an Anomalous verdict.
const (
	irregularAbove = 25
	anomalousAbove = 65
)

// VerdictFromScore maps a clamped risk score to its verdict.
func VerdictFromScore(risk int) Verdict {
	switch {
	case risk > anomalousAbove:
		return VerdictAnomalous
	case risk > irregularAbove:
		return VerdictIrregular
	default:
		return VerdictStandard
	}
}

// String returns the human-readable name of the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictStandard:
		return "Standard"
	case VerdictIrregular:
		return "Irregular"
	case VerdictAnomalous:
		return "Anomalous"
	default:
		return "Unknown"
	}
}

// ParseVerdict converts a verdict name back into a Verdict.
func ParseVerdict(s string) (Verdict, error) {
	switch s {
	case "Standard":
		return VerdictStandard, nil
	case "Irregular":
		return VerdictIrregular, nil
	case "Anomalous":
		return VerdictAnomalous, nil
	default:
		return VerdictStandard, fmt.Errorf("%w: %q", ErrUnknownVerdict, s)
	}
}

// MarshalJSON encodes the verdict as its name.
func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a verdict from its name.
func (v *Verdict) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVerdict(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
