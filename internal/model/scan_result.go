package model

import (
	"encoding/json"
	"time"
)

// Penalty records the weight one rule added to the raw score.
type Penalty struct {
	// Layer is the name of the scoring layer that fired.
	Layer string `json:"layer"`

	// Rule is a short label for the rule inside the layer.
	Rule string `json:"rule"`

	// Weight is the amount added to the raw score.
	Weight int `json:"weight"`
}

// Assessment is the analyzer's full output: the Report served to callers
// plus the scoring detail behind it.
type Assessment struct {
	// Report is the public assessment.
	Report *Report

	// RawScore is the unclamped sum of fired weights. It may exceed 100.
	RawScore int

	// Threats are the threat tags in detection order, duplicates included.
	Threats []ThreatTag

	// Penalties lists every weight that was added, in evaluation order.
	Penalties []Penalty
}

// ScanResult is the outcome of scanning one URL: either an Assessment or
// an error. Exactly one of Assessment and Err is set.
type ScanResult struct {
	// URL is the input exactly as the caller supplied it.
	URL string

	// Assessment is the analyzer output, nil when the analysis failed.
	Assessment *Assessment

	// Err is the analysis error, nil on success.
	Err error

	// ScannedAt is when the analysis finished.
	ScannedAt time.Time
}

// NewScanResult builds a ScanResult from an analysis return pair.
func NewScanResult(url string, assessment *Assessment, err error) *ScanResult {
	r := &ScanResult{
		URL:       url,
		ScannedAt: time.Now(),
	}
	if err != nil {
		r.Err = err
		return r
	}
	r.Assessment = assessment
	return r
}

// OK reports whether the scan produced a Report.
func (r *ScanResult) OK() bool {
	return r.Err == nil && r.Assessment != nil && r.Assessment.Report != nil
}

// Report returns the report of a successful scan, or nil.
func (r *ScanResult) Report() *Report {
	if r.Assessment == nil {
		return nil
	}
	return r.Assessment.Report
}

// scanResultJSON is the wire form of ScanResult.
type scanResultJSON struct {
	URL       string    `json:"url"`
	Report    *Report   `json:"report,omitempty"`
	RawScore  *int      `json:"raw_score,omitempty"`
	Penalties []Penalty `json:"penalties,omitempty"`
	Error     string    `json:"error,omitempty"`
	ScannedAt time.Time `json:"scanned_at"`
}

// MarshalJSON encodes the result with the error flattened to its message.
func (r *ScanResult) MarshalJSON() ([]byte, error) {
	out := scanResultJSON{
		URL:       r.URL,
		ScannedAt: r.ScannedAt,
	}
	if r.Assessment != nil {
		out.Report = r.Assessment.Report
		out.RawScore = &r.Assessment.RawScore
		out.Penalties = r.Assessment.Penalties
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}
