// Package analyzer implements the URL risk analyzer, the core of PhishScan.
//
// Analyze inspects a URL string and produces a model.Report: a risk score,
// a verdict, forensic entries, a narrative opinion and lexical specs.
// No network access is performed; every signal is derived from the
// text of the URL itself.
//
// # Scoring
//
// The URL is normalized (trimmed, lower-cased) and its authority is
// extracted. Scoring layers then run in a fixed order, each adding weight
// to the score and optionally a forensic entry and a threat tag:
//
//  1. security: missing HTTPS, trust keywords without encryption
//  2. entropy: random-looking authority
//  3. brand: brand name outside the brand's own domain
//  4. masking: '@' in the URL
//  5. tld-reputation: authority ends with a low-reputation extension
//
// Order matters: the first threat tag appears in the WARNING opinion and the
// forensic list is reported in detection order.
//
// # Concurrency
//
// Analyze has no shared mutable state and may be called from any number of
// goroutines. The rule tables are package-level and read-only.
package analyzer
