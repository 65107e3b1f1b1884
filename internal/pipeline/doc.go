// Package pipeline runs URL analyses in batches.
//
// A BatchProcessor fans a list of URLs out to an Assessor with bounded
// concurrency (errgroup.SetLimit) and collects one model.ScanResult per
// URL, in input order. A URL that fails to parse produces an error
// result; it never aborts the rest of the batch. Only context
// cancellation stops a batch early.
//
// ReadTargets parses the --list file format: one URL per line, blank
// lines and '#' comments ignored.
package pipeline
