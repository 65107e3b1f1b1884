// Package model defines the data structures shared across PhishScan.
//
// This package contains the following main types:
//   - Report: The assessment produced for one URL
//   - ForensicEntry: One detection rule that fired while scoring
//   - Specs: Lexical structure facts about the scanned URL
//   - Verdict: The three-tier classification derived from the risk score
//   - Assessment: A Report plus the raw score and penalties behind it
//   - ScanResult: An Assessment or an error, tagged with the URL that produced it
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The analyzer, the report writers, the batch processor and the
// HTTP server all need these types, so centralizing them prevents import cycles.
//
// The models serialize to the JSON shape served by POST /scan.
package model
